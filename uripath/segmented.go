package uripath

import (
	"iter"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
)

// SegmentedPath is a path broken into its elements.
//
//	"/a/b/"  -> Elements: [a b], Absolute: true,  Container: true
//	"a/b"    -> Elements: [a b], Absolute: false, Container: false
//	"/"      -> Elements: [],    Absolute: true,  Container: true
//	""       -> Elements: [],    Absolute: false, Container: false
type SegmentedPath struct {
	Elements  []string
	Absolute  bool
	Container bool
}

// ParseSegmented breaks the path into its elements.
// Leading slashes make the path absolute, trailing slashes make it a container.
// Empty elements in the middle of the path and blank elements are rejected.
func ParseSegmented(path string) (SegmentedPath, error) {
	if path == "" {
		return SegmentedPath{}, nil
	}
	if strings.TrimSpace(path) == "" {
		return SegmentedPath{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPath, "path %q is blank", path))
	}

	sp := SegmentedPath{
		Absolute:  strings.HasPrefix(path, "/"),
		Container: strings.HasSuffix(path, "/"),
	}
	if trimmed := strings.Trim(path, "/"); trimmed != "" {
		sp.Elements = strings.Split(trimmed, "/")
	}
	if err := sp.Validate(); err != nil {
		return SegmentedPath{}, errtrace.Wrap(err)
	}
	return sp, nil
}

// Validate checks every element: it must be non-empty, non-blank and free of "/".
func (sp SegmentedPath) Validate() error {
	var errs []error
	for i, e := range sp.Elements {
		if err := ValidateElement(e); err != nil {
			errs = append(errs, errorutil.JoinPrefix("element #"+strconv.Itoa(i)+":", err))
		}
	}
	return errtrace.Wrap(errorutil.Join(errs...))
}

// ValidateElement checks a single path element.
func ValidateElement(e string) error {
	switch {
	case e == "":
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidElement, "element is empty"))
	case strings.TrimSpace(e) == "":
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidElement, "element %q is blank", e))
	case strings.ContainsRune(e, '/'):
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidElement, "element %q contains '/'", e))
	}
	return nil
}

// String joins the elements back into a path.
func (sp SegmentedPath) String() string {
	if len(sp.Elements) == 0 {
		if sp.Absolute && sp.Container {
			return "/"
		}
		return ""
	}

	var sb strings.Builder
	if sp.Absolute {
		sb.WriteByte('/')
	}
	sb.WriteString(strings.Join(sp.Elements, "/"))
	if sp.Container {
		sb.WriteByte('/')
	}
	return sb.String()
}

// Len returns the number of elements.
func (sp SegmentedPath) Len() int { return len(sp.Elements) }

// At returns the element at the index.
func (sp SegmentedPath) At(i int) (string, error) {
	if i < 0 || i >= len(sp.Elements) {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("index %d out of range [0, %d)", i, len(sp.Elements)))
	}
	return sp.Elements[i], nil
}

// All iterates over the elements.
func (sp SegmentedPath) All() iter.Seq2[int, string] { return slices.All(sp.Elements) }

// IsContent reports whether the path names a content resource.
func (sp SegmentedPath) IsContent() bool { return !sp.Container }

// IsContainerRoot reports whether the path is "/".
func (sp SegmentedPath) IsContainerRoot() bool {
	return len(sp.Elements) == 0 && sp.Absolute && sp.Container
}

// Append returns a copy with the elements appended.
// The container flag of the result is set by container.
func (sp SegmentedPath) Append(container bool, elems ...string) (SegmentedPath, error) {
	for _, e := range elems {
		if err := ValidateElement(e); err != nil {
			return SegmentedPath{}, errtrace.Wrap(err)
		}
	}
	return SegmentedPath{
		Elements:  append(slices.Clip(sp.Elements), elems...),
		Absolute:  sp.Absolute,
		Container: container,
	}, nil
}

// Parent returns the container of the path, i.e. the path without its last element.
// The parent of a path without elements is the path itself.
func (sp SegmentedPath) Parent() SegmentedPath {
	if len(sp.Elements) == 0 {
		return sp
	}
	return SegmentedPath{
		Elements:  slices.Clone(sp.Elements[:len(sp.Elements)-1]),
		Absolute:  sp.Absolute,
		Container: true,
	}
}
