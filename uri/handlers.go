package uri

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/handler"
	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/uripath"
)

// Trait is a set of capabilities of a scheme.
type Trait uint8

const (
	// TraitRegular marks schemes following the generic syntax without extra structure.
	TraitRegular Trait = 1 << iota
	// TraitWithEntry marks schemes addressing an entry inside an archive.
	TraitWithEntry
	// TraitWithProperties marks schemes carrying ";key=value" properties.
	TraitWithProperties
	// TraitWithTag marks schemes with a tagged path.
	TraitWithTag
	// TraitWithInnerURI marks schemes wrapping another URI.
	TraitWithInnerURI
)

var traitNames = []struct {
	t    Trait
	name string
}{
	{TraitRegular, "regular"},
	{TraitWithEntry, "entry"},
	{TraitWithProperties, "properties"},
	{TraitWithTag, "tag"},
	{TraitWithInnerURI, "inner-uri"},
}

// Has reports whether t contains all traits of f.
func (t Trait) Has(f Trait) bool { return t&f == f }

func (t Trait) String() string {
	if t == 0 {
		return "none"
	}
	var names []string
	for _, tn := range traitNames {
		if t.Has(tn.t) {
			names = append(names, tn.name)
		}
	}
	return strings.Join(names, "|")
}

// SchemeHandler describes how URIs of a scheme are structured.
// Readers are nil when the scheme lacks the matching trait.
type SchemeHandler struct {
	Scheme   Scheme
	Trait    Trait
	Entry    func(u *URI) (string, error)
	Props    func(u *URI) (map[string]string, error)
	Tag      func(u *URI) (string, bool)
	InnerURI func(u *URI) (*URI, error)
	// Correct adjusts components before reconstruction.
	Correct func(c Components) Components
}

// CorrectComponents applies the correction of the handler, if any.
func (h *SchemeHandler) CorrectComponents(c Components) Components {
	if h == nil || h.Correct == nil {
		return c
	}
	return h.Correct(c)
}

// Create corrects the components and builds the URI.
func (h *SchemeHandler) Create(c Components) (*URI, error) {
	return errtrace.Wrap2(Build(h.CorrectComponents(c)))
}

// EntryOf returns the archive entry addressed by u.
func (h *SchemeHandler) EntryOf(u *URI) (string, error) {
	if err := h.require(u, h.Entry != nil, TraitWithEntry); err != nil {
		return "", errtrace.Wrap(err)
	}
	return errtrace.Wrap2(h.Entry(u))
}

// PropertiesOf returns the properties carried by u.
func (h *SchemeHandler) PropertiesOf(u *URI) (map[string]string, error) {
	if err := h.require(u, h.Props != nil, TraitWithProperties); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(h.Props(u))
}

// TagOf returns the tag of the path of u.
func (h *SchemeHandler) TagOf(u *URI) (string, bool, error) {
	if err := h.require(u, h.Tag != nil, TraitWithTag); err != nil {
		return "", false, errtrace.Wrap(err)
	}
	tag, ok := h.Tag(u)
	return tag, ok, nil
}

// InnerURIOf returns the URI wrapped by u.
func (h *SchemeHandler) InnerURIOf(u *URI) (*URI, error) {
	if err := h.require(u, h.InnerURI != nil, TraitWithInnerURI); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(h.InnerURI(u))
}

func (h *SchemeHandler) require(u *URI, has bool, t Trait) error {
	if h == nil || !has {
		return errtrace.Wrap(errorutil.NewPreconditionError("scheme handler has no %s trait", t))
	}
	if h.Scheme != "" {
		return errtrace.Wrap(h.Scheme.Require(u))
	}
	return nil
}

// RegularSchemeHandler returns a handler for a scheme without extra structure.
func RegularSchemeHandler(s Scheme) *SchemeHandler {
	return &SchemeHandler{Scheme: s, Trait: TraitRegular}
}

// FileSchemeHandler returns the handler of the "file" scheme.
// Its correction gives "file://..." components with an empty authority the empty host,
// so that they are reconstructed with their authority.
func FileSchemeHandler() *SchemeHandler {
	return &SchemeHandler{
		Scheme:  SchemeFile,
		Trait:   TraitRegular,
		Correct: correctFile,
	}
}

func correctFile(c Components) Components {
	if !SchemeFile.matchesName(c.Scheme) {
		return c
	}
	if strings.HasPrefix(c.SchemeSpecificPart.Or(""), "//") && !c.Host.IsSet() && c.Authority.Or("") == "" {
		c.Host = Some("")
	}
	return c
}

func (s Scheme) matchesName(o Opt) bool {
	v, ok := o.Get()
	return ok && strings.EqualFold(v, string(s))
}

// JarSchemeHandler returns the handler of the "jar" scheme.
func JarSchemeHandler() *SchemeHandler {
	return &SchemeHandler{
		Scheme: SchemeJar,
		Trait:  TraitWithEntry | TraitWithInnerURI,
		Entry: func(u *URI) (string, error) {
			p, err := SplitJar(u)
			if err != nil {
				return "", errtrace.Wrap(err)
			}
			return p.Entry, nil
		},
		InnerURI: JarArchive,
	}
}

// JDBCSchemeHandler returns the handler of the "jdbc" scheme.
func JDBCSchemeHandler() *SchemeHandler {
	return &SchemeHandler{
		Scheme:   SchemeJDBC,
		Trait:    TraitWithProperties | TraitWithInnerURI,
		Props:    JDBCProperties,
		InnerURI: JDBCInner,
	}
}

// DockerSchemeHandler returns the handler of the "docker" scheme.
func DockerSchemeHandler() *SchemeHandler {
	return &SchemeHandler{
		Scheme: SchemeDocker,
		Trait:  TraitWithTag,
		Tag: func(u *URI) (string, bool) {
			tp := uripath.Split(u.Path().Or(""))
			return tp.Tag, tp.Tagged
		},
	}
}

// DefaultSchemeHandlers returns the built-in scheme handlers keyed by scheme name.
func DefaultSchemeHandlers() *handler.Indexed[*SchemeHandler] {
	b := handler.NewIndexedBuilder[*SchemeHandler]()
	for _, h := range []*SchemeHandler{
		FileSchemeHandler(),
		JarSchemeHandler(),
		JDBCSchemeHandler(),
		DockerSchemeHandler(),
		RegularSchemeHandler(SchemeHTTP),
		RegularSchemeHandler(SchemeHTTPS),
	} {
		b.AddHandler(string(h.Scheme), h)
	}
	return b.Build()
}

var defaultSchemeHandlers = DefaultSchemeHandlers()
