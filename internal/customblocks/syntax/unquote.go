package syntax

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unquote strips the outer quotes of a single or double quoted literal and
// interprets its backslash escapes.
//
// Recognized escapes are \\ \' \" \a \b \f \n \r \t \v, octal \ooo, \xhh,
// \uXXXX and \UXXXXXXXX. Unknown or malformed escapes are kept verbatim,
// backslash included. Strings that are not quoted are returned unchanged.
func Unquote(s string) string {
	if !isQuoted(s) {
		return s
	}
	body := s[1 : len(s)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			i++
			continue
		}
		n := unescape(&b, body[i+1:])
		if n == 0 {
			b.WriteByte('\\')
			i++
			continue
		}
		i += 1 + n
	}
	return b.String()
}

// unescape writes the value of the escape sequence at the start of s (the
// part after the backslash) and returns how many bytes it used, or 0 when
// s does not start with a known escape.
func unescape(b *strings.Builder, s string) int {
	switch s[0] {
	case '\\', '\'', '"':
		b.WriteByte(s[0])
		return 1
	case '\n':
		return 1
	case 'a':
		b.WriteByte('\a')
		return 1
	case 'b':
		b.WriteByte('\b')
		return 1
	case 'f':
		b.WriteByte('\f')
		return 1
	case 'n':
		b.WriteByte('\n')
		return 1
	case 'r':
		b.WriteByte('\r')
		return 1
	case 't':
		b.WriteByte('\t')
		return 1
	case 'v':
		b.WriteByte('\v')
		return 1
	case 'x':
		return writeHexRune(b, s, 2)
	case 'u':
		return writeHexRune(b, s, 4)
	case 'U':
		return writeHexRune(b, s, 8)
	}
	if isOctal(s[0]) {
		n := 1
		for n < 3 && n < len(s) && isOctal(s[n]) {
			n++
		}
		v, _ := strconv.ParseUint(s[:n], 8, 32)
		b.WriteRune(rune(v))
		return n
	}
	return 0
}

func writeHexRune(b *strings.Builder, s string, digits int) int {
	if len(s) < 1+digits {
		return 0
	}
	v, err := strconv.ParseUint(s[1:1+digits], 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0
	}
	b.WriteRune(rune(v))
	return 1 + digits
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
