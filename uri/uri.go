package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/types"
	"github.com/uniresource/uniresource/internal/util"
)

// Opt is an optional component value.
// The zero value is absent, which is distinct from a present empty value.
type Opt = types.Opt

// Some returns a present component value.
func Some(v string) Opt { return types.Some(v) }

// None returns an absent component value.
func None() Opt { return types.None() }

// NoPort is the port of a URI without a port.
const NoPort = -1

// URI is a parsed URI reference.
// The zero value is not a valid URI, use [Parse] or [Build] to obtain one.
type URI struct {
	raw       string
	scheme    Opt
	ssp       string
	opaque    bool
	authority Opt
	userInfo  Opt
	host      Opt
	port      int
	path      Opt
	query     Opt
	fragment  Opt
}

// Scheme returns the scheme.
func (u *URI) Scheme() Opt {
	if u == nil {
		return None()
	}
	return u.scheme
}

// SchemeSpecificPart returns the raw scheme-specific part:
// everything between the scheme and the fragment.
func (u *URI) SchemeSpecificPart() string {
	if u == nil {
		return ""
	}
	return u.ssp
}

// Authority returns the raw authority of a hierarchical URI.
func (u *URI) Authority() Opt {
	if u == nil {
		return None()
	}
	return u.authority
}

// UserInfo returns the user info of a server-based authority.
func (u *URI) UserInfo() Opt {
	if u == nil {
		return None()
	}
	return u.userInfo
}

// Host returns the host of a server-based authority.
// IP literals keep their brackets.
func (u *URI) Host() Opt {
	if u == nil {
		return None()
	}
	return u.host
}

// Port returns the port of a server-based authority or [NoPort].
func (u *URI) Port() int {
	if u == nil {
		return NoPort
	}
	return u.port
}

// Path returns the path. It is present for every hierarchical URI and absent for opaque URIs.
func (u *URI) Path() Opt {
	if u == nil {
		return None()
	}
	return u.path
}

// Query returns the query of a hierarchical URI.
func (u *URI) Query() Opt {
	if u == nil {
		return None()
	}
	return u.query
}

// Fragment returns the fragment.
func (u *URI) Fragment() Opt {
	if u == nil {
		return None()
	}
	return u.fragment
}

// IsOpaque reports whether the URI is opaque.
func (u *URI) IsOpaque() bool { return u != nil && u.opaque }

// IsAbsolute reports whether the URI has a scheme.
func (u *URI) IsAbsolute() bool { return u != nil && u.scheme.IsSet() }

// String returns the text the URI was parsed from.
func (u *URI) String() string {
	if u == nil {
		return ""
	}
	return u.raw
}

// Format implements [fmt.Formatter].
// The %+v verb prints the components.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		if verb == 'v' && f.Flag('+') {
			fmt.Fprint(f, u.GoString())
			return
		}
		fmt.Fprint(f, u.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	default:
		fmt.Fprintf(f, "%%!%c(*uri.URI=%s)", verb, u.String())
	}
}

// GoString returns the components of the URI.
func (u *URI) GoString() string {
	if u == nil {
		return "(*uri.URI)(nil)"
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	fmt.Fprintf(sb, "URI{scheme: %#v, ssp: %q", u.scheme, u.ssp)
	if u.opaque {
		sb.WriteString(", opaque")
	} else {
		fmt.Fprintf(sb, ", authority: %#v, userInfo: %#v, host: %#v, port: %d, path: %#v, query: %#v",
			u.authority, u.userInfo, u.host, u.port, u.path, u.query)
	}
	fmt.Fprintf(sb, ", fragment: %#v}", u.fragment)
	return sb.String()
}

// Equal reports whether both URIs are equal.
// Schemes and hosts are compared case-insensitively, other components exactly.
func (u *URI) Equal(other *URI) bool {
	if u == other {
		return true
	}
	if u == nil || other == nil {
		return false
	}
	if u.opaque != other.opaque || !eqFoldOpt(u.scheme, other.scheme) || u.fragment != other.fragment {
		return false
	}
	if u.opaque {
		return u.ssp == other.ssp
	}
	if u.path != other.path || u.query != other.query {
		return false
	}
	if u.host.IsSet() || other.host.IsSet() {
		return u.userInfo == other.userInfo && eqFoldOpt(u.host, other.host) && u.port == other.port
	}
	return u.authority == other.authority
}

func eqFoldOpt(a, b Opt) bool {
	av, aok := a.Get()
	bv, bok := b.Get()
	return aok == bok && util.EqFold(av, bv)
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// LogValue implements [slog.LogValuer].
func (u *URI) LogValue() slog.Value {
	if u == nil {
		return slog.AnyValue(nil)
	}
	return slog.StringValue(u.raw)
}
