package uri

import (
	"iter"
	"slices"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/internal/util"
)

// Scheme is a URI scheme name.
type Scheme string

// Well-known schemes.
const (
	SchemeFile      Scheme = "file"
	SchemeJar       Scheme = "jar"
	SchemeHTTP      Scheme = "http"
	SchemeHTTPS     Scheme = "https"
	SchemeJDBC      Scheme = "jdbc"
	SchemeDocker    Scheme = "docker"
	SchemeClasspath Scheme = "classpath"
)

func (s Scheme) String() string { return string(s) }

// Matches reports whether the scheme of u is s, ignoring case.
func (s Scheme) Matches(u *URI) bool {
	v, ok := u.Scheme().Get()
	return ok && util.EqFold(v, s)
}

// Require fails with [ErrSchemeMismatch] unless the scheme of u is s.
func (s Scheme) Require(u *URI) error {
	if !s.Matches(u) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrSchemeMismatch, "URI %q does not have scheme %q", u.String(), string(s)))
	}
	return nil
}

// SchemeSet is an immutable set of scheme names matched case-insensitively.
// A nil *SchemeSet is an empty set.
type SchemeSet struct {
	names map[string]struct{}
}

// NewSchemeSet creates a set of the scheme names.
func NewSchemeSet[T ~string](schemes ...T) *SchemeSet {
	s := &SchemeSet{names: make(map[string]struct{}, len(schemes))}
	for _, n := range schemes {
		s.names[string(util.LCase(n))] = struct{}{}
	}
	return s
}

// DefaultSchemes is the set of well-known schemes used by [HasStandardScheme]
// unless a [Classifier] is configured with another set.
var DefaultSchemes = NewSchemeSet(SchemeFile, SchemeJar, SchemeHTTP, SchemeHTTPS, SchemeJDBC)

// Contains reports whether the set contains the scheme name.
func (s *SchemeSet) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[util.LCase(name)]
	return ok
}

// Matches reports whether the set contains the scheme of u.
func (s *SchemeSet) Matches(u *URI) bool {
	v, ok := u.Scheme().Get()
	return ok && s.Contains(v)
}

// Len returns the number of schemes.
func (s *SchemeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// All iterates over the scheme names in lower case, sorted.
func (s *SchemeSet) All() iter.Seq[string] {
	if s == nil {
		return func(func(string) bool) {}
	}
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	slices.Sort(names)
	return slices.Values(names)
}

// With returns a new set with the names added.
func (s *SchemeSet) With(names ...string) *SchemeSet {
	return NewSchemeSet(append(slices.Collect(s.All()), names...)...)
}
