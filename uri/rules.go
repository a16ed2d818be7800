package uri

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/internal/grammar"
	"github.com/uniresource/uniresource/internal/util"
)

// Rule is a way to reconstruct a URI from a subset of [Components].
type Rule uint8

// Rules in the order they are tried by [Build].
const (
	// RuleOpaque uses scheme, scheme-specific part and fragment.
	RuleOpaque Rule = iota + 1
	// RuleAuthorityDecomposed uses scheme, user info, host, port, path, query and fragment.
	RuleAuthorityDecomposed
	// RuleServerBased uses scheme, host, path and fragment.
	RuleServerBased
	// RuleAuthority uses scheme, authority, path, query and fragment.
	RuleAuthority
)

var ruleNames = [...]string{
	RuleOpaque:              "Opaque",
	RuleAuthorityDecomposed: "AuthorityDecomposed",
	RuleServerBased:         "ServerBased",
	RuleAuthority:           "Authority",
}

// Rules iterates over the rules in order.
func Rules() iter.Seq[Rule] {
	return func(yield func(Rule) bool) {
		for r := RuleOpaque; r <= RuleAuthority; r++ {
			if !yield(r) {
				return
			}
		}
	}
}

func (r Rule) String() string {
	if r >= RuleOpaque && r <= RuleAuthority {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

// Applies reports whether the rule applies to the components.
func (r Rule) Applies(c Components) bool {
	switch r {
	case RuleOpaque:
		return c.SchemeSpecificPart.IsSet() &&
			!c.Authority.IsSet() &&
			!c.UserInfo.IsSet() &&
			!c.Host.IsSet() &&
			!c.hasPort() &&
			!c.Path.IsSet() &&
			!c.Query.IsSet()
	case RuleAuthorityDecomposed:
		return c.UserInfo.IsSet() ||
			c.hasPort() ||
			c.Host.IsSet() && (c.hasPort() || c.Query.IsSet())
	case RuleServerBased:
		return (c.Host.IsSet() || c.Path.IsSet() || c.Fragment.IsSet()) &&
			!c.UserInfo.IsSet() &&
			!c.hasPort() &&
			!c.Query.IsSet()
	case RuleAuthority:
		return c.Authority.IsSet()
	default:
		return false
	}
}

// ApplicableRules iterates over the rules applying to the components, in order.
func ApplicableRules(c Components) iter.Seq[Rule] {
	return func(yield func(Rule) bool) {
		for r := range Rules() {
			if r.Applies(c) && !yield(r) {
				return
			}
		}
	}
}

// SelectRule returns the first rule applying to the components.
func SelectRule(c Components) (Rule, bool) {
	return util.IterFirst(ApplicableRules(c))
}

// SelectByTrial returns the first rule, in order, that builds a URI from the components,
// whether or not it applies to them.
func SelectByTrial(c Components) (Rule, *URI, bool) {
	for r := range Rules() {
		if u, err := r.Build(c); err == nil {
			return r, u, true
		}
	}
	return 0, nil, false
}

// Build reconstructs a URI from the components using the first applicable rule.
// It fails with [ErrNoRule] if no rule applies.
func Build(c Components) (*URI, error) {
	r, ok := SelectRule(c)
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrNoRule, "components %v", c.LogValue()))
	}
	return errtrace.Wrap2(r.Build(c))
}

// Build reconstructs a URI from the components the rule uses, other components are ignored.
// The rendered text is parsed again.
func (r Rule) Build(c Components) (*URI, error) {
	s, err := r.render(c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	u, err := parse(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if usesHost(r, c) && !u.host.IsSet() {
		return nil, errtrace.Wrap(newMalformedErr(s, "invalid host %q", c.Host.Or("")))
	}
	return u, nil
}

func usesHost(r Rule, c Components) bool {
	return c.Host.IsSet() && (r == RuleAuthorityDecomposed || r == RuleServerBased)
}

// Render returns the text of the URI the rule reconstructs from the components without parsing it.
func (r Rule) Render(c Components) (string, error) {
	return errtrace.Wrap2(r.render(c))
}

func (r Rule) render(c Components) (string, error) {
	if c.Port < NoPort {
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid port %d", c.Port))
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	scheme, hasScheme := c.Scheme.Get()
	if hasScheme {
		if !grammar.IsScheme(scheme) {
			return "", errtrace.Wrap(newMalformedErr(scheme, "illegal scheme name"))
		}
		sb.WriteString(scheme)
		sb.WriteByte(':')
	}

	var hasAuth bool
	switch r {
	case RuleOpaque:
		sb.WriteString(grammar.Escape(c.SchemeSpecificPart.Or(""), grammar.IsOpaqueChar))
	case RuleAuthorityDecomposed:
		host, ok := c.Host.Get()
		if !ok {
			return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("host is required with user info or port"))
		}
		hasAuth = true
		sb.WriteString("//")
		if ui, ok := c.UserInfo.Get(); ok {
			sb.WriteString(grammar.Escape(ui, grammar.IsUserInfoChar))
			sb.WriteByte('@')
		}
		writeHost(sb, host)
		if c.hasPort() {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(c.Port))
		}
	case RuleServerBased:
		if host, ok := c.Host.Get(); ok {
			hasAuth = true
			sb.WriteString("//")
			writeHost(sb, host)
		} else if auth, ok := c.Authority.Get(); ok {
			hasAuth = true
			sb.WriteString("//")
			sb.WriteString(grammar.Escape(auth, grammar.IsAuthorityChar))
		}
	case RuleAuthority:
		auth, ok := c.Authority.Get()
		if !ok {
			return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("authority is required"))
		}
		hasAuth = true
		sb.WriteString("//")
		sb.WriteString(grammar.Escape(auth, grammar.IsAuthorityChar))
	default:
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown rule %s", r))
	}

	if r != RuleOpaque {
		path := c.Path.Or("")
		if err := checkPath(path, hasScheme, hasAuth); err != nil {
			return "", errtrace.Wrap(err)
		}
		sb.WriteString(grammar.Escape(path, grammar.IsPathChar))
		if q, ok := c.Query.Get(); ok && r != RuleServerBased {
			sb.WriteByte('?')
			sb.WriteString(grammar.Escape(q, grammar.IsQueryChar))
		}
	}

	if f, ok := c.Fragment.Get(); ok {
		sb.WriteByte('#')
		sb.WriteString(grammar.Escape(f, grammar.IsQueryChar))
	}
	return sb.String(), nil
}

func checkPath(path string, hasScheme, hasAuth bool) error {
	if path == "" {
		return nil
	}
	switch {
	case hasAuth && path[0] != '/':
		return errtrace.Wrap(newMalformedErr(path, "path must be absolute after an authority"))
	case hasAuth:
		return nil
	case hasScheme && path[0] != '/':
		return errtrace.Wrap(newMalformedErr(path, "relative path in absolute URI"))
	case strings.HasPrefix(path, "//"):
		return errtrace.Wrap(newMalformedErr(path, "path starts with \"//\" without an authority"))
	case !hasScheme && strings.ContainsRune(firstSegment(path), ':'):
		return errtrace.Wrap(newMalformedErr(path, "first segment of relative path contains ':'"))
	}
	return nil
}

func firstSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

func writeHost(sb *strings.Builder, host string) {
	switch {
	case strings.HasPrefix(host, "["):
		sb.WriteString(host)
	case strings.ContainsRune(host, ':'):
		sb.WriteByte('[')
		sb.WriteString(host)
		sb.WriteByte(']')
	default:
		sb.WriteString(grammar.Escape(host, grammar.IsRegNameChar))
	}
}
