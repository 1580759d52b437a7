package urlparser

import (
	"strconv"
	"strings"
)

// SerializeHost implements the spec's host-serializer: IPv4 renders as
// dotted decimal, IPv6 renders bracketed with the first longest run of
// two-or-more zero pieces compressed to "::", and domain/opaque/empty
// hosts pass through verbatim.
func SerializeHost(h Host) string {
	switch v := h.(type) {
	case nil:
		return ""
	case EmptyHost:
		return ""
	case DomainHost:
		return string(v)
	case OpaqueHost:
		return string(v)
	case IPv4Host:
		return serializeIPv4(uint32(v))
	case IPv6Host:
		return "[" + serializeIPv6([8]uint16(v)) + "]"
	default:
		return ""
	}
}

func serializeIPv4(v uint32) string {
	return strconv.Itoa(int(v>>24&0xFF)) + "." +
		strconv.Itoa(int(v>>16&0xFF)) + "." +
		strconv.Itoa(int(v>>8&0xFF)) + "." +
		strconv.Itoa(int(v&0xFF))
}

// serializeIPv6 finds the first longest run of >= 2 zero pieces and
// collapses it to "::"; every other piece is rendered as lowercase hex
// with no leading zeros.
func serializeIPv6(pieces [8]uint16) string {
	compressStart, compressLen := longestZeroRun(pieces)

	var b strings.Builder
	ignore0 := false
	for i := 0; i < 8; i++ {
		if ignore0 && pieces[i] == 0 {
			continue
		}
		ignore0 = false

		if compressLen >= 2 && i == compressStart {
			if i == 0 {
				b.WriteString("::")
			} else {
				b.WriteString(":")
			}
			ignore0 = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(pieces[i]), 16))
		if i != 7 {
			b.WriteString(":")
		}
	}
	return b.String()
}

// longestZeroRun returns the start index and length of the first longest
// run of zero pieces of length >= 2. If no such run exists, length is 0.
func longestZeroRun(pieces [8]uint16) (start, length int) {
	bestStart, bestLen := -1, 0
	curStart, curLen := -1, 0
	for i := 0; i < 8; i++ {
		if pieces[i] == 0 {
			if curStart == -1 {
				curStart = i
			}
			curLen++
			if curLen > bestLen {
				bestLen = curLen
				bestStart = curStart
			}
		} else {
			curStart, curLen = -1, 0
		}
	}
	if bestLen < 2 {
		return -1, 0
	}
	return bestStart, bestLen
}
