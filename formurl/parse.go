package formurl

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/netic-go/weburl/urlparser"
)

// Pair is one (name, value) entry of a parsed x-www-form-urlencoded byte
// sequence, in the order it appeared in the input.
type Pair struct {
	Name  string
	Value string
}

// Parse implements the spec's "application/x-www-form-urlencoded parser":
// split input on '&', split each piece on the first '=', replace '+' with
// space in both halves, and percent-decode each half as UTF-8 bytes.
// Empty byte sequences between, before, or after '&' are skipped.
func Parse(input []byte) []Pair {
	var out []Pair
	for _, seq := range bytes.Split(input, []byte{'&'}) {
		if len(seq) == 0 {
			continue
		}
		var name, value []byte
		if idx := bytes.IndexByte(seq, '='); idx >= 0 {
			name, value = seq[:idx], seq[idx+1:]
		} else {
			name = seq
		}
		name = replacePlusWithSpace(name)
		value = replacePlusWithSpace(value)
		out = append(out, Pair{
			Name:  decodeUTF8(name),
			Value: decodeUTF8(value),
		})
	}
	return out
}

// ParseString is a convenience wrapper over Parse for string input.
func ParseString(input string) []Pair {
	return Parse([]byte(input))
}

func replacePlusWithSpace(b []byte) []byte {
	if !bytes.ContainsRune(b, '+') {
		return b
	}
	out := make([]byte, len(b))
	for i, c := range b {
		if c == '+' {
			out[i] = ' '
		} else {
			out[i] = c
		}
	}
	return out
}

// decodeUTF8 percent-decodes b and interprets the result as UTF-8, matching
// the spec's "UTF-8 decode without BOM" step (ill-formed sequences become
// U+FFFD).
func decodeUTF8(b []byte) string {
	decoded := urlparser.PercentDecode(b)
	if utf8.Valid(decoded) {
		return string(decoded)
	}
	var sb strings.Builder
	for len(decoded) > 0 {
		r, size := utf8.DecodeRune(decoded)
		sb.WriteRune(r)
		decoded = decoded[size:]
	}
	return sb.String()
}
