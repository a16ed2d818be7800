package uri

import (
	"fmt"
	"iter"
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/internal/util"
)

// Predicate is a classification question about a URI.
type Predicate uint8

const (
	// HasStandardScheme: the scheme belongs to the well-known scheme set.
	HasStandardScheme Predicate = iota
	// IsPathOnly: relative, with a path and without query, fragment and authority.
	IsPathOnly
	// IsOpaque: the URI is opaque.
	IsOpaque
	// IsHierarchical: the URI is not opaque.
	IsHierarchical
	// IsAbsolute: the URI has a scheme.
	IsAbsolute
	// IsRelative: the URI has no scheme.
	IsRelative
	// HasAuthority: hierarchical with an authority, possibly empty.
	HasAuthority
	// HasValidHost: hierarchical with a non-empty host.
	HasValidHost
	// IsPathTagged: hierarchical and the last segment of the path contains ':'.
	IsPathTagged

	predicateCount
)

var predicateNames = [...]string{
	HasStandardScheme: "HasStandardScheme",
	IsPathOnly:        "IsPathOnly",
	IsOpaque:          "IsOpaque",
	IsHierarchical:    "IsHierarchical",
	IsAbsolute:        "IsAbsolute",
	IsRelative:        "IsRelative",
	HasAuthority:      "HasAuthority",
	HasValidHost:      "HasValidHost",
	IsPathTagged:      "IsPathTagged",
}

// Predicates iterates over all predicates.
func Predicates() iter.Seq[Predicate] {
	return func(yield func(Predicate) bool) {
		for p := range predicateCount {
			if !yield(p) {
				return
			}
		}
	}
}

// ParsePredicate returns the predicate with the name, ignoring case.
func ParsePredicate(name string) (Predicate, error) {
	for p := range Predicates() {
		if util.EqFold(p.String(), name) {
			return p, nil
		}
	}
	return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown predicate %q", name))
}

func (p Predicate) String() string {
	if p < predicateCount {
		return predicateNames[p]
	}
	return fmt.Sprintf("Predicate(%d)", uint8(p))
}

// Match evaluates the predicate against [DefaultSchemes].
// A nil URI matches nothing.
func (p Predicate) Match(u *URI) bool { return Classifier{}.Match(p, u) }

// Require fails with [ErrPredicateMismatch] unless the predicate matches u.
func (p Predicate) Require(u *URI) error { return errtrace.Wrap(Classifier{}.Require(p, u)) }

// Classifier evaluates predicates against a configurable set of well-known schemes.
type Classifier struct {
	// Schemes is the well-known scheme set. If nil, [DefaultSchemes] is used.
	Schemes *SchemeSet
}

func (c Classifier) schemes() *SchemeSet {
	if c.Schemes == nil {
		return DefaultSchemes
	}
	return c.Schemes
}

// Match evaluates the predicate. A nil URI matches nothing.
func (c Classifier) Match(p Predicate, u *URI) bool {
	if u == nil {
		return false
	}

	switch p {
	case HasStandardScheme:
		return c.schemes().Matches(u)
	case IsPathOnly:
		return !u.IsAbsolute() && u.path.IsSet() && !u.query.IsSet() && !u.fragment.IsSet() && !u.authority.IsSet()
	case IsOpaque:
		return u.opaque
	case IsHierarchical:
		return !u.opaque
	case IsAbsolute:
		return u.IsAbsolute()
	case IsRelative:
		return !u.IsAbsolute()
	case HasAuthority:
		return !u.opaque && u.authority.IsSet()
	case HasValidHost:
		return !u.opaque && u.host.Or("") != ""
	case IsPathTagged:
		return !u.opaque && strings.ContainsRune(util.LastSegment(u.path.Or("")), ':')
	default:
		return false
	}
}

// Require fails with [ErrPredicateMismatch] unless the predicate matches u.
func (c Classifier) Require(p Predicate, u *URI) error {
	if !c.Match(p, u) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrPredicateMismatch, "URI %q does not satisfy %s", u.String(), p))
	}
	return nil
}

// Classify computes all predicates.
func (c Classifier) Classify(u *URI) Classification {
	return Classification{
		StandardScheme: c.Match(HasStandardScheme, u),
		PathOnly:       c.Match(IsPathOnly, u),
		Opaque:         c.Match(IsOpaque, u),
		Hierarchical:   c.Match(IsHierarchical, u),
		Absolute:       c.Match(IsAbsolute, u),
		Relative:       c.Match(IsRelative, u),
		Authority:      c.Match(HasAuthority, u),
		ValidHost:      c.Match(HasValidHost, u),
		PathTagged:     c.Match(IsPathTagged, u),
	}
}

// Classify computes all predicates against [DefaultSchemes].
func Classify(u *URI) Classification { return Classifier{}.Classify(u) }

// Classification holds the answers of all predicates for a URI.
type Classification struct {
	StandardScheme bool `json:"standard_scheme" yaml:"standard_scheme"`
	PathOnly       bool `json:"path_only" yaml:"path_only"`
	Opaque         bool `json:"opaque" yaml:"opaque"`
	Hierarchical   bool `json:"hierarchical" yaml:"hierarchical"`
	Absolute       bool `json:"absolute" yaml:"absolute"`
	Relative       bool `json:"relative" yaml:"relative"`
	Authority      bool `json:"authority" yaml:"authority"`
	ValidHost      bool `json:"valid_host" yaml:"valid_host"`
	PathTagged     bool `json:"path_tagged" yaml:"path_tagged"`
}

// Has returns the answer of the predicate.
func (c Classification) Has(p Predicate) bool {
	switch p {
	case HasStandardScheme:
		return c.StandardScheme
	case IsPathOnly:
		return c.PathOnly
	case IsOpaque:
		return c.Opaque
	case IsHierarchical:
		return c.Hierarchical
	case IsAbsolute:
		return c.Absolute
	case IsRelative:
		return c.Relative
	case HasAuthority:
		return c.Authority
	case HasValidHost:
		return c.ValidHost
	case IsPathTagged:
		return c.PathTagged
	default:
		return false
	}
}

// Matched iterates over the predicates that hold.
func (c Classification) Matched() iter.Seq[Predicate] {
	return func(yield func(Predicate) bool) {
		for p := range Predicates() {
			if c.Has(p) && !yield(p) {
				return
			}
		}
	}
}
