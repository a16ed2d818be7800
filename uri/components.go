package uri

import (
	"log/slog"

	"github.com/uniresource/uniresource/handler"
)

// Components is the input of URI reconstruction.
// Absent components are [None], an absent port is [NoPort].
//
// The zero value has port 0, start from [NewComponents] or [FromURI].
type Components struct {
	Scheme             Opt
	SchemeSpecificPart Opt
	Authority          Opt
	UserInfo           Opt
	Host               Opt
	Port               int
	Path               Opt
	Query              Opt
	Fragment           Opt
}

// NewComponents returns components with every component absent.
func NewComponents() Components { return Components{Port: NoPort} }

// Decompose returns the components of u as they were parsed.
// The components of a nil URI are all absent.
func Decompose(u *URI) Components {
	if u == nil {
		return NewComponents()
	}
	c := Components{
		Scheme:             u.scheme,
		SchemeSpecificPart: Some(u.ssp),
		Port:               NoPort,
		Fragment:           u.fragment,
	}
	if !u.opaque {
		c.Authority = u.authority
		c.UserInfo = u.userInfo
		c.Host = u.host
		c.Port = u.port
		c.Path = u.path
		c.Query = u.query
	}
	return c
}

// FromURI decomposes u and corrects the components with the handler of its scheme
// from [DefaultSchemeHandlers].
func FromURI(u *URI) Components {
	return Correct(Decompose(u), defaultSchemeHandlers)
}

// Correct applies the correction of the scheme handler created by f for the scheme of c.
// Components without a scheme or without a handler are returned unchanged.
func Correct(c Components, f handler.Factory[*SchemeHandler]) Components {
	scheme, ok := c.Scheme.Get()
	if !ok || f == nil {
		return c
	}
	h, ok := f.CreateHandler(scheme)
	if !ok || h == nil {
		return c
	}
	return h.CorrectComponents(c)
}

func (c Components) hasPort() bool { return c.Port != NoPort }

// LogValue implements [slog.LogValuer].
func (c Components) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 9)
	add := func(k string, o Opt) {
		if v, ok := o.Get(); ok {
			attrs = append(attrs, slog.String(k, v))
		}
	}
	add("scheme", c.Scheme)
	add("ssp", c.SchemeSpecificPart)
	add("authority", c.Authority)
	add("user_info", c.UserInfo)
	add("host", c.Host)
	if c.hasPort() {
		attrs = append(attrs, slog.Int("port", c.Port))
	}
	add("path", c.Path)
	add("query", c.Query)
	add("fragment", c.Fragment)
	return slog.GroupValue(attrs...)
}
