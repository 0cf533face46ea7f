package common

import (
	"strconv"
	"strings"
)

// SanitizeIdentifier maps every rune that is not valid in a C++ identifier
// to '_'. The result is only used as a suffix, so a leading digit is kept
// ("0" -> "InParam0").
func SanitizeIdentifier(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// CString quotes s as a C string literal.
func CString(s string) string {
	return `"` + CEscape(s) + `"`
}

// CEscape escapes s for use between the quotes of a C string literal.
func CEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FloatLiteral formats v as a C++ float literal independent of locale:
// 0.5 -> "0.5f", 1 -> "1.0f", -2.25 -> "-2.25f".
func FloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "f"
}
