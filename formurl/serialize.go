package formurl

import "strings"

// Serialize implements the spec's application/x-www-form-urlencoded
// serializer: each pair's name and value are percent-encoded against the
// format's own encode set (space becomes '+' rather than "%20"), joined by
// '=', and pairs are joined by '&'.
func Serialize(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(encode(p.Name))
		b.WriteByte('=')
		b.WriteString(encode(p.Value))
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

// encode implements the application/x-www-form-urlencoded percent-encode
// set: every byte except ASCII alphanumerics and '*', '-', '.', '_' is
// percent-encoded, except that U+0020 SPACE is rendered as '+' instead.
func encode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case isUnreserved(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0F])
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return true
	case c == '*' || c == '-' || c == '.' || c == '_':
		return true
	}
	return false
}
