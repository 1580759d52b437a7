package urlparser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// Host is the tagged union of host forms the spec's data model allows:
// a domain, an IPv4 address, an IPv6 address, an opaque host, or the empty
// host. A nil Host means "no host" (host absent).
type Host interface {
	isHost()
}

// DomainHost is an ASCII domain, already run through domain_to_ascii.
type DomainHost string

// OpaqueHost is a non-special URL's opaque host string, already
// percent-encoded against the C0-control set.
type OpaqueHost string

// EmptyHost is the host "" (e.g. file:///path has an empty host).
type EmptyHost struct{}

// IPv4Host is a 32-bit IPv4 address, big-endian bit layout
// (bits 31..24 are the first dotted-quad octet).
type IPv4Host uint32

// IPv6Host is eight 16-bit pieces, network order.
type IPv6Host [8]uint16

func (DomainHost) isHost() {}
func (OpaqueHost) isHost() {}
func (EmptyHost) isHost()  {}
func (IPv4Host) isHost()   {}
func (IPv6Host) isHost()   {}

// IsDomain, IsIPv4, IsIPv6, IsOpaque, and IsEmpty report h's concrete kind.
// These are the spec's supplemented host-union accessors.
func IsDomain(h Host) bool { _, ok := h.(DomainHost); return ok }
func IsIPv4(h Host) bool   { _, ok := h.(IPv4Host); return ok }
func IsIPv6(h Host) bool   { _, ok := h.(IPv6Host); return ok }
func IsOpaque(h Host) bool { _, ok := h.(OpaqueHost); return ok }
func IsEmpty(h Host) bool  { _, ok := h.(EmptyHost); return ok }

// idnaProfile implements the spec's external domain_be_strict=false
// collaborator parameters: CheckHyphens=false, CheckBidi=true (BidiRule),
// CheckJoiners=true (the default for idna.New's joiner validation),
// Transitional=false, UseSTD3ASCIIRules=false, VerifyDnsLength=false.
var idnaProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
	idna.BidiRule(),
)

// idnaProfileStrict is the be_strict=true variant: UseSTD3ASCIIRules and
// VerifyDnsLength both enabled.
var idnaProfileStrict = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.BidiRule(),
	idna.StrictDomainName(true),
	idna.VerifyDNSLength(true),
)

// domainToASCII runs UTS-46 processing on domain, per spec domain_to_ascii.
func domainToASCII(domain string, beStrict bool) (string, error) {
	profile := idnaProfile
	if beStrict {
		profile = idnaProfileStrict
	}
	out, err := profile.ToASCII(domain)
	if err != nil {
		return "", err
	}
	return out, nil
}

// domainToUnicode runs the reverse of domainToASCII, returning the Unicode
// form of an ASCII-compatible-encoded domain. It is unexported and nothing
// in this module calls it at present.
func domainToUnicode(domain string) (string, error) {
	return idnaProfile.ToUnicode(domain)
}

// ParseHost implements the spec's parse_host(input, is_not_special).
func ParseHost(input string, isNotSpecial bool, sink ErrorSink) (Host, error) {
	if sink == nil {
		sink = DefaultErrorSink
	}
	if input == "" {
		return EmptyHost{}, nil
	}
	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			sink("IPv6 address is missing the closing bracket")
			return nil, invalidHostf("unterminated IPv6 literal %q", input)
		}
		return parseIPv6(input[1 : len(input)-1])
	}
	if isNotSpecial {
		return parseOpaqueHost(input, sink)
	}

	decoded := utf8Decode(percentDecode([]byte(input)))
	domain, err := domainToASCII(decoded, false)
	if err != nil {
		return nil, invalidHostf("domain_to_ascii failed for %q: %w", input, err)
	}
	for _, r := range domain {
		if isForbiddenDomainCodePoint(r) {
			sink("forbidden host code point in domain")
			return nil, invalidHostf("forbidden host code point in domain %q", domain)
		}
	}

	ipv4, isIPv4, err := parseIPv4(domain)
	if err != nil {
		return nil, err
	}
	if isIPv4 {
		return IPv4Host(ipv4), nil
	}
	return DomainHost(domain), nil
}

// parseOpaqueHost implements the spec's opaque-host parser: every
// forbidden host code point except '%' is rejected, then every code point
// is UTF-8 percent-encoded against the C0-control set.
func parseOpaqueHost(input string, sink ErrorSink) (Host, error) {
	for _, r := range input {
		if r != '%' && isForbiddenHostCodePoint(r) {
			sink("forbidden host code point in opaque host")
			return nil, invalidHostf("forbidden host code point in opaque host %q", input)
		}
	}
	var b strings.Builder
	for _, r := range input {
		if r == '%' {
			// '%' itself is allowed verbatim in an opaque host; it is
			// not re-encoded (it is already either a literal percent or
			// the start of an existing percent-encode triple).
			b.WriteByte('%')
			continue
		}
		b.WriteString(utf8PercentEncode(r, C0ControlEncodeSet))
	}
	return OpaqueHost(b.String()), nil
}

// parseIPv4 implements the spec's IPv4 parser. ok is false (with err nil)
// when input should be treated as a domain rather than an IPv4 address
// (more than four dot-separated parts, or not all parts are numeric).
func parseIPv4(input string) (value uint32, ok bool, err error) {
	parts := strings.Split(input, ".")
	if len(parts) > 0 && parts[len(parts)-1] == "" && len(parts) > 1 {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 4 {
		return 0, false, nil
	}

	numbers := make([]int64, 0, len(parts))
	for _, part := range parts {
		n, valid := parseIPv4Number(part)
		if !valid {
			return 0, false, nil
		}
		numbers = append(numbers, n)
	}

	for i := 0; i < len(numbers)-1; i++ {
		if numbers[i] > 255 {
			return 0, false, invalidHostf("IPv4 segment out of range in %q", input)
		}
	}
	last := numbers[len(numbers)-1]
	maxLast := int64(1)
	for i := 0; i < 5-len(numbers); i++ {
		maxLast *= 256
	}
	if last >= maxLast {
		return 0, false, invalidHostf("IPv4 segment out of range in %q", input)
	}

	var ipv4 uint32
	for i := 0; i < len(numbers)-1; i++ {
		shift := uint((3 - i) * 8)
		ipv4 += uint32(numbers[i]) << shift
	}
	ipv4 += uint32(last)
	return ipv4, true, nil
}

// parseIPv4Number implements radix detection (0x/0X -> 16, leading 0 with
// length >= 2 -> 8, else 10) and parses the remainder as an integer.
func parseIPv4Number(part string) (int64, bool) {
	if part == "" {
		return 0, false
	}
	radix := 10
	if len(part) >= 2 && part[0] == '0' && (part[1] == 'x' || part[1] == 'X') {
		radix = 16
		part = part[2:]
	} else if len(part) >= 2 && part[0] == '0' {
		radix = 8
		part = part[1:]
	}
	if part == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(part, radix, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseIPv6 implements the spec's IPv6 parser over the bracket-stripped
// contents. It tracks a compress pointer exactly as the spec's state
// machine does, including an embedded dotted-quad (IPv4-in-IPv6) tail.
func parseIPv6(input string) (IPv6Host, error) {
	var addr [8]uint16
	pieceIndex := 0
	compress := -1
	runes := []rune(input)
	i := 0

	fail := func(reason string) (IPv6Host, error) {
		return IPv6Host{}, invalidHostf("invalid IPv6 address %q: %s", input, reason)
	}

	if i < len(runes) && runes[i] == ':' {
		if i+1 >= len(runes) || runes[i+1] != ':' {
			return fail("expected '::'")
		}
		i += 2
		pieceIndex++
		compress = pieceIndex
	}

	for i < len(runes) {
		if pieceIndex == 8 {
			return fail("too many pieces")
		}
		if runes[i] == ':' {
			if compress != -1 {
				return fail("more than one '::'")
			}
			i++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		value := 0
		length := 0
		for length < 4 && i < len(runes) && isASCIIHexDigit(runes[i]) {
			v, _ := hexVal(byte(runes[i]))
			value = value*16 + int(v)
			i++
			length++
		}

		if i < len(runes) && runes[i] == '.' {
			if length == 0 {
				return fail("IPv4-in-IPv6 piece with no digits")
			}
			i -= length
			if pieceIndex > 6 {
				return fail("IPv4-in-IPv6 requires room for two pieces")
			}

			numbersSeen := 0
			for i < len(runes) {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if runes[i] == '.' && numbersSeen < 4 {
						i++
					} else {
						return fail("malformed IPv4-in-IPv6 tail")
					}
				}
				if i >= len(runes) || !isASCIIDigit(runes[i]) {
					return fail("malformed IPv4-in-IPv6 tail")
				}
				for i < len(runes) && isASCIIDigit(runes[i]) {
					digit := int(runes[i] - '0')
					if ipv4Piece == -1 {
						ipv4Piece = digit
					} else if ipv4Piece == 0 {
						return fail("IPv4-in-IPv6 piece has leading zero")
					} else {
						ipv4Piece = ipv4Piece*10 + digit
					}
					if ipv4Piece > 255 {
						return fail("IPv4-in-IPv6 piece out of range")
					}
					i++
				}
				addr[pieceIndex] = addr[pieceIndex]*256 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return fail("IPv4-in-IPv6 tail must have four parts")
			}
			break
		}

		if i < len(runes) && runes[i] == ':' {
			i++
			if i >= len(runes) {
				return fail("unexpected end after ':'")
			}
		} else if i < len(runes) {
			return fail("unexpected character in IPv6 address")
		}
		addr[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress != -1 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for pieceIndex != 0 && swaps > 0 {
			tmp := addr[pieceIndex]
			addr[pieceIndex] = addr[compress+swaps-1]
			addr[compress+swaps-1] = tmp
			pieceIndex--
			swaps--
		}
	} else if pieceIndex != 8 {
		return fail("too few pieces and no compression")
	}

	return IPv6Host(addr), nil
}

// utf8Decode decodes b as UTF-8, replacing ill-formed sequences with
// U+FFFD, matching the spec's utf8_decode external collaborator.
func utf8Decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
