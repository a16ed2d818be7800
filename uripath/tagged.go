package uripath

import (
	"log/slog"
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/internal/util"
)

// TaggedPath is a path with an optional tag.
//
// Tagged distinguishes an absent tag from a present empty tag, "/a:" has an empty tag.
type TaggedPath struct {
	Path   string
	Tag    string
	Tagged bool
}

// Split splits the full path into the path and the tag.
//
// The tag is the text after the last ":" of the last "/"-separated segment.
// If the last segment has no ":", the whole input is the path and the result is untagged.
// Split never fails, it accepts any input.
func Split(full string) TaggedPath {
	start := strings.LastIndexByte(full, '/') + 1
	i := strings.LastIndexByte(full[start:], ':')
	if i < 0 {
		return TaggedPath{Path: full}
	}
	i += start
	return TaggedPath{Path: full[:i], Tag: full[i+1:], Tagged: true}
}

// NewTaggedPath creates a tagged path and validates it.
func NewTaggedPath(path, tag string) (TaggedPath, error) {
	tp := TaggedPath{Path: path, Tag: tag, Tagged: true}
	if err := tp.Validate(); err != nil {
		return TaggedPath{}, errtrace.Wrap(err)
	}
	return tp, nil
}

// Untagged creates an untagged path.
func Untagged(path string) TaggedPath { return TaggedPath{Path: path} }

// Validate checks that the tagged path formats into a text that splits back into itself.
// The last segment of the path must not contain ":" and the tag must not contain "/".
func (tp TaggedPath) Validate() error {
	var errs []error
	if seg := util.LastSegment(tp.Path); strings.ContainsRune(seg, ':') {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidPath, "last segment %q contains ':'", seg))
	}
	if tp.Tagged && strings.ContainsRune(tp.Tag, '/') {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidTag, "tag %q contains '/'", tp.Tag))
	}
	return errtrace.Wrap(errorutil.Join(errs...))
}

// String joins the path and the tag.
func (tp TaggedPath) String() string {
	if !tp.Tagged {
		return tp.Path
	}
	return tp.Path + ":" + tp.Tag
}

// WithPath returns a copy with the path replaced.
func (tp TaggedPath) WithPath(path string) (TaggedPath, error) {
	tp.Path = path
	if err := tp.Validate(); err != nil {
		return TaggedPath{}, errtrace.Wrap(err)
	}
	return tp, nil
}

// WithTag returns a copy with the tag replaced.
func (tp TaggedPath) WithTag(tag string) (TaggedPath, error) {
	tp.Tag, tp.Tagged = tag, true
	if err := tp.Validate(); err != nil {
		return TaggedPath{}, errtrace.Wrap(err)
	}
	return tp, nil
}

// WithoutTag returns a copy without the tag.
func (tp TaggedPath) WithoutTag() TaggedPath {
	return TaggedPath{Path: tp.Path}
}

// Segmented breaks the path, without the tag, into its elements.
func (tp TaggedPath) Segmented() (SegmentedPath, error) {
	return errtrace.Wrap2(ParseSegmented(tp.Path))
}

// Equal reports whether tp and other denote the same text.
func (tp TaggedPath) Equal(other TaggedPath) bool {
	return tp.Path == other.Path && tp.Tagged == other.Tagged && (!tp.Tagged || tp.Tag == other.Tag)
}

// LogValue implements [slog.LogValuer].
func (tp TaggedPath) LogValue() slog.Value {
	if !tp.Tagged {
		return slog.GroupValue(slog.String("path", tp.Path))
	}
	return slog.GroupValue(slog.String("path", tp.Path), slog.String("tag", tp.Tag))
}

// MarshalText implements [encoding.TextMarshaler].
func (tp TaggedPath) MarshalText() ([]byte, error) {
	return []byte(tp.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (tp *TaggedPath) UnmarshalText(text []byte) error {
	*tp = Split(string(text))
	return nil
}
