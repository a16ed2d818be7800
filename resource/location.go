package resource

import (
	"log/slog"
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
)

const (
	// RootContainerName is the name of the root container.
	RootContainerName = ""
	// Separator separates the elements of a name.
	Separator = "/"
)

// IsContainerName reports whether the name denotes a container.
func IsContainerName(name string) bool {
	return name == RootContainerName || strings.HasSuffix(name, Separator)
}

// IsContentName reports whether the name denotes content.
func IsContentName(name string) bool {
	return name != RootContainerName && !strings.HasSuffix(name, Separator)
}

// IsContainerRootName reports whether the name denotes the root container.
func IsContainerRootName(name string) bool {
	return name == RootContainerName || name == Separator
}

// NormalizeName strips the leading separator and collapses repeated separators.
// Container names get exactly one trailing separator, content names none.
//
//	NormalizeName("//path//to//dir//", true)  -> "path/to/dir/"
//	NormalizeName("/", true)                  -> ""
//	NormalizeName("path/to/file.txt/", false) -> "path/to/file.txt"
//
// A name without elements normalizes to the root container, which is not a content name.
func NormalizeName(name string, container bool) string {
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	for e := range strings.SplitSeq(name, Separator) {
		if e == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(Separator)
		}
		sb.WriteString(e)
	}
	if container && sb.Len() > 0 {
		sb.WriteString(Separator)
	}
	return sb.String()
}

// NormalizeContainer normalizes the name as a container name.
func NormalizeContainer(name string) string { return NormalizeName(name, true) }

// NormalizeContent normalizes the name as a content name.
func NormalizeContent(name string) string { return NormalizeName(name, false) }

// Location is a normalized resource name.
// The zero value is the root container.
type Location struct {
	name    string
	content bool
}

// NewLocation normalizes the name and creates a location.
// A content location requires at least one name element.
func NewLocation(name string, container bool) (Location, error) {
	n := NormalizeName(name, container)
	if !container && n == RootContainerName {
		return Location{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("content name %q has no elements", name))
	}
	return Location{name: n, content: !container}, nil
}

// ParseLocation creates a location from the name, a trailing separator marks a container.
func ParseLocation(name string) Location {
	if IsContainerName(name) {
		return Location{name: NormalizeContainer(name)}
	}
	return Location{name: NormalizeContent(name), content: true}
}

// Name returns the normalized name.
func (l Location) Name() string { return l.name }

func (l Location) String() string { return l.name }

// IsContent reports whether the location denotes content.
func (l Location) IsContent() bool { return l.content }

// IsContainer reports whether the location denotes a container.
func (l Location) IsContainer() bool { return !l.content }

// IsContainerRoot reports whether the location is the root container.
func (l Location) IsContainerRoot() bool { return !l.content && l.name == RootContainerName }

// Parent returns the container of the location. The root container is its own parent.
func (l Location) Parent() Location {
	n := strings.TrimSuffix(l.name, Separator)
	i := strings.LastIndex(n, Separator)
	if i < 0 {
		return Location{}
	}
	return Location{name: n[:i+1]}
}

// Child returns the location of the name inside the container l.
func (l Location) Child(name string, container bool) (Location, error) {
	if l.content {
		return Location{}, errtrace.Wrap(errorutil.NewPreconditionError("location %q is not a container", l.name))
	}
	return errtrace.Wrap2(NewLocation(l.name+name, container))
}

// LogValue implements [slog.LogValuer].
func (l Location) LogValue() slog.Value {
	return slog.GroupValue(slog.String("name", l.name), slog.Bool("container", !l.content))
}
