package grammar

import (
	"bytes"
	"unicode/utf8"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
func Unescape[T Text](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && IsHex(s[i+1]) && IsHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char not accepted by the allowed callback with the hex form "% HEXDIG HEXDIG".
// Existing escape triplets and printable non-ASCII characters are kept as is.
func Escape[T Text](s T, allowed func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && IsHex(s[i+1]) && IsHex(s[i+2]):
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 3
		case c >= utf8.RuneSelf:
			r, n := utf8.DecodeRuneInString(string(s[i:min(len(s), i+utf8.UTFMax)]))
			if isOtherRune(r) {
				b.WriteString(string(s[i : i+n]))
			} else {
				for j := i; j < i+n; j++ {
					writeEscaped(&b, s[j])
				}
			}
			i += n
		case c != '%' && allowed(c):
			b.WriteByte(c)
			i++
		default:
			writeEscaped(&b, c)
			i++
		}
	}
	return T(b.Bytes())
}

const upperhex = "0123456789ABCDEF"

func writeEscaped(b *bytes.Buffer, c byte) {
	b.WriteByte('%')
	b.WriteByte(upperhex[c>>4])
	b.WriteByte(upperhex[c&15])
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
