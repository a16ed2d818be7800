package uri

import (
	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/query"
	"github.com/uniresource/uniresource/uripath"
)

// Builder accumulates components and builds a URI.
//
// Setters mark a component present, Clear* methods mark it absent.
// Builder is not safe for concurrent use.
type Builder struct {
	c Components
}

// NewBuilder creates a builder with every component absent.
func NewBuilder() *Builder { return &Builder{c: NewComponents()} }

// BuilderFrom creates a builder holding the components of u, see [FromURI].
func BuilderFrom(u *URI) *Builder { return &Builder{c: FromURI(u)} }

// BuilderFromString parses s and creates a builder holding its components.
func BuilderFromString(s string) (*Builder, error) {
	u, err := Parse(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return BuilderFrom(u), nil
}

// BuilderFromPath creates a builder holding only the path.
func BuilderFromPath(p string) *Builder {
	b := NewBuilder()
	b.c.Path = Some(p)
	return b
}

// BuilderFromComponents creates a builder holding the components.
func BuilderFromComponents(c Components) *Builder { return &Builder{c: c} }

// SetScheme sets the scheme.
func (b *Builder) SetScheme(v string) *Builder {
	b.c.Scheme = Some(v)
	return b
}

// ClearScheme removes the scheme.
func (b *Builder) ClearScheme() *Builder {
	b.c.Scheme = None()
	return b
}

// SetSchemeSpecificPart sets the scheme-specific part.
func (b *Builder) SetSchemeSpecificPart(v string) *Builder {
	b.c.SchemeSpecificPart = Some(v)
	return b
}

// ClearSchemeSpecificPart removes the scheme-specific part.
func (b *Builder) ClearSchemeSpecificPart() *Builder {
	b.c.SchemeSpecificPart = None()
	return b
}

// SetAuthority sets the registry authority.
func (b *Builder) SetAuthority(v string) *Builder {
	b.c.Authority = Some(v)
	return b
}

// ClearAuthority removes the registry authority.
func (b *Builder) ClearAuthority() *Builder {
	b.c.Authority = None()
	return b
}

// SetUserInfo sets the user information.
func (b *Builder) SetUserInfo(v string) *Builder {
	b.c.UserInfo = Some(v)
	return b
}

// ClearUserInfo removes the user information.
func (b *Builder) ClearUserInfo() *Builder {
	b.c.UserInfo = None()
	return b
}

// SetHost sets the host.
func (b *Builder) SetHost(v string) *Builder {
	b.c.Host = Some(v)
	return b
}

// ClearHost removes the host.
func (b *Builder) ClearHost() *Builder {
	b.c.Host = None()
	return b
}

// SetPort sets the port, [NoPort] clears it.
func (b *Builder) SetPort(v int) *Builder {
	b.c.Port = v
	return b
}

// ClearPort removes the port.
func (b *Builder) ClearPort() *Builder {
	b.c.Port = NoPort
	return b
}

// SetPath sets the path.
func (b *Builder) SetPath(v string) *Builder {
	b.c.Path = Some(v)
	return b
}

// ClearPath removes the path.
func (b *Builder) ClearPath() *Builder {
	b.c.Path = None()
	return b
}

// SetQuery sets the raw query.
func (b *Builder) SetQuery(v string) *Builder {
	b.c.Query = Some(v)
	return b
}

// ClearQuery removes the raw query.
func (b *Builder) ClearQuery() *Builder {
	b.c.Query = None()
	return b
}

// SetFragment sets the fragment.
func (b *Builder) SetFragment(v string) *Builder {
	b.c.Fragment = Some(v)
	return b
}

// ClearFragment removes the fragment.
func (b *Builder) ClearFragment() *Builder {
	b.c.Fragment = None()
	return b
}

// TaggedPath returns the current path split into the path and the tag.
// An absent path is the empty path.
func (b *Builder) TaggedPath() uripath.TaggedPath {
	return uripath.Split(b.c.Path.Or(""))
}

// SetTaggedPath sets the path from the tagged path.
func (b *Builder) SetTaggedPath(tp uripath.TaggedPath) *Builder {
	return b.SetPath(tp.String())
}

// SegmentedPath returns the current path broken into elements.
func (b *Builder) SegmentedPath() (uripath.SegmentedPath, error) {
	return errtrace.Wrap2(uripath.ParseSegmented(b.c.Path.Or("")))
}

// SetSegmentedPath sets the path from the segmented path.
func (b *Builder) SetSegmentedPath(sp uripath.SegmentedPath) *Builder {
	return b.SetPath(sp.String())
}

// MappedQuery returns the current query parsed into pairs.
// An absent query is the empty query.
func (b *Builder) MappedQuery() *query.Query {
	return query.Parse(b.c.Query.Or(""))
}

// SetMappedQuery sets the query from the pairs.
// An empty query clears the query.
func (b *Builder) SetMappedQuery(q *query.Query) *Builder {
	if s, ok := q.Encode(); ok {
		return b.SetQuery(s)
	}
	return b.ClearQuery()
}

// Components returns a copy of the accumulated components.
func (b *Builder) Components() Components { return b.c }

// Rule returns the rule [Builder.Build] would use.
func (b *Builder) Rule() (Rule, bool) { return SelectRule(b.c) }

// Build builds the URI, see [Build].
func (b *Builder) Build() (*URI, error) {
	return errtrace.Wrap2(Build(b.c))
}
