package urlparser

import "strings"

// Serialize implements the spec's URL serializer. When excludeFragment is
// true the trailing "#fragment" is omitted even if present, the form that
// APIs like fetch use when they strip fragments before comparison.
func Serialize(u *URL, excludeFragment bool) string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteByte(':')

	if u.Host != nil {
		b.WriteString("//")
		if u.HasCredentials() {
			b.WriteString(u.Username)
			if u.Password != "" {
				b.WriteByte(':')
				b.WriteString(u.Password)
			}
			b.WriteByte('@')
		}
		b.WriteString(SerializeHost(u.Host))
		if u.Port != nil {
			b.WriteByte(':')
			b.WriteString(itoa(*u.Port))
		}
	} else if u.Scheme == "file" {
		b.WriteString("//")
	}

	if u.CannotBeABaseURL {
		if len(u.Path) > 0 {
			b.WriteString(u.Path[0])
		}
	} else {
		b.WriteString(joinPath(u.Path))
	}

	if u.Query != nil {
		b.WriteByte('?')
		b.WriteString(*u.Query)
	}
	if !excludeFragment && u.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.Fragment)
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}

// Origin is the spec's origin tuple: a scheme, host, and port. Opaque
// marks the spec's "opaque origin" case; when Opaque is true the other
// fields are meaningless.
type Origin struct {
	Opaque bool
	Scheme string
	Host   Host
	Port   *int
}

// opaqueOrigin is every opaque origin's canonical value. The spec treats
// opaque origins as internally generated unique values; for comparison
// purposes within one process this is adequate since two opaque origins
// are never equal unless they are the same origin object, which this
// representation collapses. Equal documents the one caller-visible
// consequence: Equal always reports false between two opaque origins.
var opaqueOrigin = Origin{Opaque: true}

// OriginForURL implements the spec's "obtain an origin" algorithm run over
// url's tuple origin, per the host/port/scheme rules for blob, ftp, http,
// https, ws, and wss; every other scheme yields an opaque origin.
//
// resolveBlob, when non-nil, is consulted for "blob:" URLs to recover the
// origin of the entry the blob URL was created from (the spec's blob URL
// entry environment's origin); when resolveBlob is nil or returns false,
// blob URLs with a path that is itself a parseable URL fall back to that
// inner URL's origin, and otherwise resolve to an opaque origin.
func OriginForURL(u *URL, resolveBlob func(*URL) (*URL, bool)) Origin {
	switch u.Scheme {
	case "blob":
		if u.BlobEntry != nil {
			if entryURL, ok := u.BlobEntry.(*URL); ok {
				return OriginForURL(entryURL, resolveBlob)
			}
		}
		if resolveBlob != nil {
			if inner, ok := resolveBlob(u); ok {
				return OriginForURL(inner, resolveBlob)
			}
		}
		pathURL, err := parseBlobPathAsURL(u)
		if err == nil && pathURL != nil {
			return OriginForURL(pathURL, resolveBlob)
		}
		return opaqueOrigin
	case "ftp", "http", "https", "ws", "wss":
		return Origin{Scheme: u.Scheme, Host: u.Host, Port: u.Port}
	case "file":
		// The spec leaves file: origin "implementation-defined"; every
		// file: URL is given its own opaque origin here, which matches
		// the common browser behavior of never treating two file URLs
		// as same-origin.
		return opaqueOrigin
	default:
		return opaqueOrigin
	}
}

// parseBlobPathAsURL attempts to parse a blob URL's path as a URL in its
// own right, the fallback the spec takes when no entry is recorded for it
// (e.g. a blob URL string that was never minted by this process, received
// from elsewhere and re-parsed).
func parseBlobPathAsURL(u *URL) (*URL, error) {
	if len(u.Path) == 0 {
		return nil, ErrInvalidURL
	}
	return Parse(u.Path[0], nil, nil)
}

// Equal implements the spec's origin-equality comparator: two opaque
// origins are never equal (even to themselves, per this representation),
// and two tuple origins are equal when scheme, host, and port all match.
func (o Origin) Equal(other Origin) bool {
	if o.Opaque || other.Opaque {
		return false
	}
	if o.Scheme != other.Scheme {
		return false
	}
	if o.Port == nil && other.Port != nil || o.Port != nil && other.Port == nil {
		return false
	}
	if o.Port != nil && other.Port != nil && *o.Port != *other.Port {
		return false
	}
	return SerializeHost(o.Host) == SerializeHost(other.Host)
}

// String implements the spec's "unicode serialization of an origin": the
// literal "null" for an opaque origin, or "scheme://host[:port]" for a
// tuple origin.
func (o Origin) String() string {
	if o.Opaque {
		return "null"
	}
	var b strings.Builder
	b.WriteString(o.Scheme)
	b.WriteString("://")
	b.WriteString(SerializeHost(o.Host))
	if o.Port != nil {
		b.WriteByte(':')
		b.WriteString(itoa(*o.Port))
	}
	return b.String()
}
