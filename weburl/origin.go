package weburl

import "github.com/netic-go/weburl/urlparser"

// Origin is the tuple-or-opaque origin type, aliased from package
// urlparser so callers comparing origins across URLs don't need to import
// both packages.
type Origin = urlparser.Origin

// OriginTuple returns u's origin as a comparable Origin value, the
// supplemented operation behind the Origin() string getter.
func (u *URL) OriginTuple() Origin {
	return u.originTuple()
}
