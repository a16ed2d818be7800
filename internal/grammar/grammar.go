// Package grammar implements the character classes of the RFC 3986 generic URI syntax
// together with validation and percent-escaping helpers built on them.
package grammar

//go:generate go tool errtrace -w .

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
)

// Text is the input accepted by the generic helpers.
type Text interface {
	~string | ~[]byte
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Syntax() bool { return true }

const ErrMalformedInput Error = "malformed input"

// NewMalformedInputErr creates or wraps an error with [ErrMalformedInput].
func NewMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// IsAlpha checks ALPHA rule.
func IsAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

// IsDigit checks DIGIT rule.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsHex checks HEXDIG rule.
func IsHex(c byte) bool {
	switch {
	case IsDigit(c):
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

// IsUnreserved checks unreserved rule.
func IsUnreserved(c byte) bool {
	return IsAlpha(c) || IsDigit(c) || c == '-' || c == '.' || c == '_' || c == '~'
}

// IsSubDelim checks sub-delims rule.
func IsSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// IsGenDelim checks gen-delims rule.
func IsGenDelim(c byte) bool {
	switch c {
	case ':', '/', '?', '#', '[', ']', '@':
		return true
	}
	return false
}

// IsSchemeChar checks the characters allowed after the first letter of a scheme.
func IsSchemeChar(c byte) bool {
	return IsAlpha(c) || IsDigit(c) || c == '+' || c == '-' || c == '.'
}

// IsPChar checks pchar rule (without pct-encoded).
func IsPChar(c byte) bool { return IsUnreserved(c) || IsSubDelim(c) || c == ':' || c == '@' }

// IsPathChar checks the characters allowed in a path.
func IsPathChar(c byte) bool { return IsPChar(c) || c == '/' }

// IsQueryChar checks the characters allowed in a query or a fragment.
func IsQueryChar(c byte) bool { return IsPChar(c) || c == '/' || c == '?' }

// IsUserInfoChar checks userinfo rule (without pct-encoded).
func IsUserInfoChar(c byte) bool { return IsUnreserved(c) || IsSubDelim(c) || c == ':' }

// IsRegNameChar checks reg-name rule (without pct-encoded).
func IsRegNameChar(c byte) bool { return IsUnreserved(c) || IsSubDelim(c) }

// IsAuthorityChar checks the characters allowed in a raw authority.
func IsAuthorityChar(c byte) bool { return IsUserInfoChar(c) || c == '@' || c == '[' || c == ']' }

// IsOpaqueChar checks the characters allowed in an opaque scheme-specific part.
func IsOpaqueChar(c byte) bool { return IsUnreserved(c) || IsSubDelim(c) || (IsGenDelim(c) && c != '#') }

// IsScheme checks scheme rule.
func IsScheme[T Text](s T) bool {
	if len(s) == 0 || !IsAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsSchemeChar(s[i]) {
			return false
		}
	}
	return true
}

// Validate checks that every byte of s is either allowed, a part of a pct-encoded triplet
// or a part of a printable non-ASCII character.
func Validate[T Text](s T, allowed func(c byte) bool) error {
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '%':
			if i+2 >= len(s) || !IsHex(s[i+1]) || !IsHex(s[i+2]) {
				return errtrace.Wrap(NewMalformedInputErr("malformed escape at index %d", i))
			}
			i += 3
		case c >= utf8.RuneSelf:
			r, n := utf8.DecodeRuneInString(string(s[i:min(len(s), i+utf8.UTFMax)]))
			if !isOtherRune(r) {
				return errtrace.Wrap(NewMalformedInputErr("illegal character %q at index %d", r, i))
			}
			i += n
		case allowed(c):
			i++
		default:
			return errtrace.Wrap(NewMalformedInputErr("illegal character %s at index %d", quoteByte(c), i))
		}
	}
	return nil
}

func isOtherRune(r rune) bool {
	return r != utf8.RuneError && !unicode.IsSpace(r) && !unicode.IsControl(r)
}

func quoteByte(c byte) string { return fmt.Sprintf("%q", rune(c)) }
