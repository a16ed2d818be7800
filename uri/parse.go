package uri

import (
	"net/netip"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/grammar"
	"github.com/uniresource/uniresource/internal/util"
)

// Parse parses a URI reference from the given input s (string or []byte).
//
// The empty input is a valid relative URI with an empty path.
// Text that is not a URI reference fails with [ErrMalformedInput].
func Parse[T ~string | ~[]byte](s T) (*URI, error) {
	return errtrace.Wrap2(parse(string(s)))
}

// MustParse is like [Parse] but panics on error.
func MustParse(s string) *URI { return util.Must2(parse(s)) }

func parse(s string) (*URI, error) {
	u := &URI{raw: s, port: NoPort}

	rest := s
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		frag := rest[i+1:]
		if err := grammar.Validate(frag, grammar.IsQueryChar); err != nil {
			return nil, errtrace.Wrap(wrapMalformedErr(s, "fragment", err))
		}
		u.fragment = Some(frag)
		rest = rest[:i]
	}

	if i := strings.IndexAny(rest, ":/?"); i >= 0 && rest[i] == ':' {
		scheme := rest[:i]
		switch {
		case i == 0:
			return nil, errtrace.Wrap(newMalformedErr(s, "expected scheme name at index 0"))
		case !grammar.IsScheme(scheme):
			return nil, errtrace.Wrap(newMalformedErr(s, "illegal scheme name %q", scheme))
		case i+1 == len(rest):
			return nil, errtrace.Wrap(newMalformedErr(s, "expected scheme-specific part at index %d", i+1))
		}
		u.scheme = Some(scheme)
		rest = rest[i+1:]
	}

	u.ssp = rest
	if u.scheme.IsSet() && rest[0] != '/' {
		if err := grammar.Validate(rest, grammar.IsOpaqueChar); err != nil {
			return nil, errtrace.Wrap(wrapMalformedErr(s, "scheme-specific part", err))
		}
		u.opaque = true
		return u, nil
	}

	if err := u.parseHierarchical(rest); err != nil {
		return nil, errtrace.Wrap(wrapMalformedErr(s, "hierarchical part", err))
	}
	return u, nil
}

func (u *URI) parseHierarchical(hier string) error {
	if i := strings.IndexByte(hier, '?'); i >= 0 {
		q := hier[i+1:]
		if err := grammar.Validate(q, grammar.IsQueryChar); err != nil {
			return errtrace.Wrap(err)
		}
		u.query = Some(q)
		hier = hier[:i]
	}

	path := hier
	if strings.HasPrefix(hier, "//") {
		auth := hier[2:]
		path = ""
		if i := strings.IndexByte(auth, '/'); i >= 0 {
			auth, path = auth[:i], auth[i:]
		}
		if err := u.parseAuthority(auth); err != nil {
			return errtrace.Wrap(err)
		}
	}

	if err := grammar.Validate(path, grammar.IsPathChar); err != nil {
		return errtrace.Wrap(err)
	}
	u.path = Some(path)
	return nil
}

func (u *URI) parseAuthority(auth string) error {
	if err := grammar.Validate(auth, grammar.IsAuthorityChar); err != nil {
		return errtrace.Wrap(err)
	}
	u.authority = Some(auth)

	if ui, host, port, ok := parseServerAuthority(auth); ok {
		u.userInfo, u.host, u.port = ui, Some(host), port
	}
	return nil
}

// parseServerAuthority splits "[userinfo@]host[:port]".
// It returns false when the authority is registry-based.
func parseServerAuthority(auth string) (userInfo Opt, host string, port int, ok bool) {
	hp := auth
	if i := strings.IndexByte(auth, '@'); i >= 0 {
		ui := auth[:i]
		if grammar.Validate(ui, grammar.IsUserInfoChar) != nil {
			return None(), "", NoPort, false
		}
		userInfo = Some(ui)
		hp = auth[i+1:]
	}

	var portText string
	if strings.HasPrefix(hp, "[") {
		i := strings.IndexByte(hp, ']')
		if i < 0 || !isIPLiteral(hp[1:i]) {
			return None(), "", NoPort, false
		}
		host = hp[:i+1]
		if rest := hp[i+1:]; rest != "" {
			if rest[0] != ':' {
				return None(), "", NoPort, false
			}
			portText = rest[1:]
		}
	} else {
		host = hp
		if i := strings.LastIndexByte(hp, ':'); i >= 0 {
			host, portText = hp[:i], hp[i+1:]
		}
		if grammar.Validate(host, grammar.IsRegNameChar) != nil {
			return None(), "", NoPort, false
		}
	}

	port = NoPort
	if portText != "" {
		if !isDigits(portText) {
			return None(), "", NoPort, false
		}
		n, err := strconv.Atoi(portText)
		if err != nil {
			return None(), "", NoPort, false
		}
		port = n
	}
	return userInfo, host, port, true
}

// isIPLiteral checks the content of an IP-literal: IPv6address or IPvFuture.
func isIPLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == 'v' || s[0] == 'V' {
		ver, rest, ok := strings.Cut(s[1:], ".")
		if !ok || ver == "" || rest == "" {
			return false
		}
		for i := 0; i < len(ver); i++ {
			if !grammar.IsHex(ver[i]) {
				return false
			}
		}
		for i := 0; i < len(rest); i++ {
			if !grammar.IsUserInfoChar(rest[i]) {
				return false
			}
		}
		return true
	}
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is6() && addr.Zone() == ""
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !grammar.IsDigit(s[i]) {
			return false
		}
	}
	return s != ""
}
