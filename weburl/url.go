package weburl

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/netic-go/weburl/formurl"
	"github.com/netic-go/weburl/urlparser"
)

// URL is the public accessor object over an urlparser.URL record. It
// mirrors the WHATWG URL interface's getters and setters, re-entering the
// basic URL parser at the matching state override for every setter that
// the standard itself routes through the state machine.
type URL struct {
	record *urlparser.URL
	query  *SearchParams

	resolveBlob func(*urlparser.URL) (*urlparser.URL, bool)
}

// Parse implements the URL() constructor: basic URL parse raw against an
// optional base, returning an error wrapping ErrInvalidURL and the
// urlparser failure on failure.
func Parse(raw string, base *URL) (*URL, error) {
	return ParseWithSink(raw, base, nil)
}

// ParseWithSink is Parse with an additional urlparser.ErrorSink that
// receives every non-fatal validation-error message encountered along the
// way (spec.md's "global validation sink" note). A nil sink behaves like
// Parse.
func ParseWithSink(raw string, base *URL, sink urlparser.ErrorSink) (*URL, error) {
	var baseRecord *urlparser.URL
	if base != nil {
		baseRecord = base.record
	}
	record, err := urlparser.Parse(raw, baseRecord, &urlparser.Options{ErrorSink: sink})
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidURL, raw, err)
	}
	u := &URL{record: record}
	u.query = newSearchParamsFromQuery(u)
	return u, nil
}

func newSearchParamsFromQuery(u *URL) *SearchParams {
	sp := &SearchParams{url: u}
	if u.record.Query != nil && *u.record.Query != "" {
		sp.pairs = formurl.ParseString(*u.record.Query)
	}
	return sp
}

// Href returns the URL's serialization.
func (u *URL) Href() string {
	return urlparser.Serialize(u.record, false)
}

// SetHref re-parses value as a fresh URL, replacing the held record and
// resynchronizing SearchParams. Unlike every other setter, a failure here
// propagates to the caller, since this is construction, not mutation.
func (u *URL) SetHref(value string) error {
	record, err := urlparser.Parse(value, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidURL, value, err)
	}
	u.record = record
	u.query = newSearchParamsFromQuery(u)
	return nil
}

// Origin returns the Unicode serialization of the URL's origin.
func (u *URL) Origin() string {
	return u.originTuple().String()
}

func (u *URL) originTuple() urlparser.Origin {
	return urlparser.OriginForURL(u.record, u.resolveBlob)
}

// SetBlobResolver installs the pluggable hook used to resolve blob: URL
// origins (spec.md §9's "Blob URL resolution" design note). Passing nil
// reverts to the fallback of re-parsing the blob URL's path as a URL.
func (u *URL) SetBlobResolver(resolve func(*urlparser.URL) (*urlparser.URL, bool)) {
	u.resolveBlob = resolve
}

// Protocol returns the URL's scheme followed by ":".
func (u *URL) Protocol() string {
	return u.record.Scheme + ":"
}

// SetProtocol re-parses value+":" with the held record and a scheme-start
// state override. A failure (e.g. value is not a valid scheme) leaves the
// record unchanged; the scheme field is only assigned after every
// override-specific failure check passes.
func (u *URL) SetProtocol(value string) {
	state := urlparser.StateSchemeStart
	_, _ = urlparser.Parse(value+":", nil, &urlparser.Options{URL: u.record, StateOverride: &state})
}

// Username returns the URL's username.
func (u *URL) Username() string {
	return u.record.Username
}

// SetUsername implements the spec's "set the username" direct algorithm:
// a no-op if the URL cannot have a username, otherwise every code point of
// value is percent-encoded against the userinfo encode set.
func (u *URL) SetUsername(value string) {
	if u.record.CannotHaveUsernamePasswordPort() {
		return
	}
	u.record.Username = urlparser.PercentEncodeString(value, urlparser.UserinfoEncodeSet)
}

// Password returns the URL's password.
func (u *URL) Password() string {
	return u.record.Password
}

// SetPassword mirrors SetUsername for the password field.
func (u *URL) SetPassword(value string) {
	if u.record.CannotHaveUsernamePasswordPort() {
		return
	}
	u.record.Password = urlparser.PercentEncodeString(value, urlparser.UserinfoEncodeSet)
}

// Host returns "hostname:port", or just hostname when port is absent, or
// "" when host is absent.
func (u *URL) Host() string {
	if u.record.Host == nil {
		return ""
	}
	host := urlparser.SerializeHost(u.record.Host)
	if u.record.Port == nil {
		return host
	}
	return fmt.Sprintf("%s:%d", host, *u.record.Port)
}

// SetHost re-parses value with a host-state override. A no-op if the URL
// has an opaque path.
func (u *URL) SetHost(value string) {
	if u.record.HasOpaquePath() {
		return
	}
	state := urlparser.StateHost
	_, _ = urlparser.Parse(value, nil, &urlparser.Options{URL: u.record, StateOverride: &state})
}

// Hostname returns the serialized host without the port.
func (u *URL) Hostname() string {
	if u.record.Host == nil {
		return ""
	}
	return urlparser.SerializeHost(u.record.Host)
}

// SetHostname re-parses value with a hostname-state override (which stops
// before consuming a port). A no-op if the URL has an opaque path.
func (u *URL) SetHostname(value string) {
	if u.record.HasOpaquePath() {
		return
	}
	state := urlparser.StateHostname
	_, _ = urlparser.Parse(value, nil, &urlparser.Options{URL: u.record, StateOverride: &state})
}

// Port returns the URL's port as a decimal string, or "" when absent.
func (u *URL) Port() string {
	if u.record.Port == nil {
		return ""
	}
	return fmt.Sprintf("%d", *u.record.Port)
}

// SetPort clears the port when value is empty, otherwise re-parses value
// with a port-state override. A no-op if the URL cannot have a port.
func (u *URL) SetPort(value string) {
	if u.record.CannotHaveUsernamePasswordPort() {
		return
	}
	if value == "" {
		u.record.Port = nil
		return
	}
	state := urlparser.StatePort
	_, _ = urlparser.Parse(value, nil, &urlparser.Options{URL: u.record, StateOverride: &state})
}

// Pathname returns the URL's path: the opaque string for a cannot-be-a-base
// URL, or every segment joined with a leading "/" otherwise.
func (u *URL) Pathname() string {
	if u.record.CannotBeABaseURL {
		if len(u.record.Path) == 0 {
			return ""
		}
		return u.record.Path[0]
	}
	var b strings.Builder
	for _, seg := range u.record.Path {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}

// SetPathname clears the path and re-parses value with a path-start state
// override. A no-op if the URL has an opaque path.
func (u *URL) SetPathname(value string) {
	if u.record.HasOpaquePath() {
		return
	}
	u.record.Path = nil
	state := urlparser.StatePathStart
	_, _ = urlparser.Parse(value, nil, &urlparser.Options{URL: u.record, StateOverride: &state})
}

// Search returns "" when the query is absent or empty, or "?query"
// otherwise.
func (u *URL) Search() string {
	if u.record.Query == nil || *u.record.Query == "" {
		return ""
	}
	return "?" + *u.record.Query
}

// SetSearch clears the query when value is empty (and empties
// SearchParams' list), otherwise strips one leading "?" and re-parses the
// remainder with a query-state override, then resynchronizes SearchParams
// from the resulting query string.
func (u *URL) SetSearch(value string) {
	if value == "" {
		u.record.Query = nil
		u.query.pairs = nil
		return
	}
	input := strings.TrimPrefix(value, "?")
	q := ""
	u.record.Query = &q
	state := urlparser.StateQuery
	_, _ = urlparser.Parse(input, nil, &urlparser.Options{URL: u.record, StateOverride: &state})
	u.query.pairs = formurl.ParseString(*u.record.Query)
}

// Hash returns "" when the fragment is absent or empty, or "#fragment"
// otherwise.
func (u *URL) Hash() string {
	if u.record.Fragment == nil || *u.record.Fragment == "" {
		return ""
	}
	return "#" + *u.record.Fragment
}

// SetHash clears the fragment when value is empty, otherwise strips one
// leading "#" and re-parses the remainder with a fragment-state override.
func (u *URL) SetHash(value string) {
	if value == "" {
		u.record.Fragment = nil
		return
	}
	input := strings.TrimPrefix(value, "#")
	f := ""
	u.record.Fragment = &f
	state := urlparser.StateFragment
	_, _ = urlparser.Parse(input, nil, &urlparser.Options{URL: u.record, StateOverride: &state})
}

// SearchParams returns the URL's query object, updated in place as the
// query string changes through SetSearch or through the query object's own
// mutating methods.
func (u *URL) SearchParams() *SearchParams {
	return u.query
}

// String implements fmt.Stringer by returning Href.
func (u *URL) String() string {
	return u.Href()
}

// Equal reports whether u and other serialize identically.
func (u *URL) Equal(other *URL) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Href() == other.Href()
}

// MarshalText implements encoding.TextMarshaler by returning Href.
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.Href()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via SetHref.
func (u *URL) UnmarshalText(text []byte) error {
	return u.SetHref(string(text))
}

// MarshalJSON implements json.Marshaler by serializing Href as a JSON
// string, the spec's "URL serializer used for JSON" (to_json) behavior.
func (u *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Href())
}
