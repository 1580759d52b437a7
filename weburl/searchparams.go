package weburl

import (
	"fmt"
	"sort"
	"unicode/utf16"

	"github.com/netic-go/weburl/formurl"
)

// SearchParams is the application/x-www-form-urlencoded query view over a
// URL's query string (or, constructed standalone, over no URL at all).
// Pairs are kept in insertion order in a plain slice — never a map, since
// the format allows duplicate names and callers depend on order.
//
// When obtained via URL.SearchParams, url is a non-owning back-reference:
// SearchParams never outlives the URL's own lifetime management, it only
// needs a way to push mutations back to the owner's query field, modeling
// spec.md §9's "Cyclic reference" design note.
type SearchParams struct {
	pairs []formurl.Pair
	url   *URL
}

// NewSearchParams parses init (optionally "?"-prefixed) as a standalone
// SearchParams with no owning URL.
func NewSearchParams(init string) *SearchParams {
	input := init
	if len(input) > 0 && input[0] == '?' {
		input = input[1:]
	}
	return &SearchParams{pairs: formurl.ParseString(input)}
}

// NewSearchParamsFromPairs builds a standalone SearchParams from an
// ordered sequence of [name, value] pairs, per the construction surface's
// "ordered sequence of pairs" form. It returns an error if any pair is not
// of length 2.
func NewSearchParamsFromPairs(pairs [][]string) (*SearchParams, error) {
	sp := &SearchParams{}
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("weburl: search params pair has %d elements, want 2", len(p))
		}
		sp.pairs = append(sp.pairs, formurl.Pair{Name: p[0], Value: p[1]})
	}
	return sp, nil
}

// NewSearchParamsFromMap builds a standalone SearchParams from a mapping.
// Pairs are added in Go's map iteration order, which is unspecified: the
// resulting pair order does not follow any order the caller wrote the keys
// in. NewSearchParamsFromPairs keeps the order of its input.
func NewSearchParamsFromMap(m map[string]string) *SearchParams {
	sp := &SearchParams{}
	for k, v := range m {
		sp.pairs = append(sp.pairs, formurl.Pair{Name: k, Value: v})
	}
	return sp
}

func (s *SearchParams) update() {
	if s.url == nil {
		return
	}
	q := formurl.Serialize(s.pairs)
	s.url.record.Query = &q
}

// Append adds a new name-value pair, always at the end of the list.
func (s *SearchParams) Append(name, value string) {
	s.pairs = append(s.pairs, formurl.Pair{Name: name, Value: value})
	s.update()
}

// Delete removes every pair whose name matches name.
func (s *SearchParams) Delete(name string) {
	out := s.pairs[:0]
	for _, p := range s.pairs {
		if p.Name != name {
			out = append(out, p)
		}
	}
	s.pairs = out
	s.update()
}

// Get returns the value of the first pair whose name matches name, and
// false if no such pair exists.
func (s *SearchParams) Get(name string) (string, bool) {
	for _, p := range s.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// GetAll returns the values of every pair whose name matches name, in
// insertion order.
func (s *SearchParams) GetAll(name string) []string {
	var out []string
	for _, p := range s.pairs {
		if p.Name == name {
			out = append(out, p.Value)
		}
	}
	return out
}

// Has reports whether any pair's name matches name.
func (s *SearchParams) Has(name string) bool {
	for _, p := range s.pairs {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Set replaces the value of the first pair whose name matches name and
// removes every other pair with that name; if no such pair exists, it
// appends a new one.
func (s *SearchParams) Set(name, value string) {
	found := false
	out := s.pairs[:0]
	for _, p := range s.pairs {
		if p.Name != name {
			out = append(out, p)
			continue
		}
		if !found {
			p.Value = value
			out = append(out, p)
			found = true
		}
	}
	s.pairs = out
	if !found {
		s.pairs = append(s.pairs, formurl.Pair{Name: name, Value: value})
	}
	s.update()
}

// Sort stably reorders pairs by name, comparing UTF-16 code units (the
// spec's comparison is defined over the JavaScript-facing 16-bit string
// representation; this decodes each name to UTF-16 before comparing so
// the ordering matches across ecosystems).
func (s *SearchParams) Sort() {
	sort.SliceStable(s.pairs, func(i, j int) bool {
		return utf16Less(s.pairs[i].Name, s.pairs[j].Name)
	})
	s.update()
}

func utf16Less(a, b string) bool {
	ua, ub := utf16.Encode([]rune(a)), utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}

// Len returns the number of pairs, supplementing the spec's iterable
// surface for callers that want to range without a custom iterator type.
func (s *SearchParams) Len() int {
	return len(s.pairs)
}

// All returns every pair in insertion order. The returned slice is a copy;
// mutating it does not affect SearchParams.
func (s *SearchParams) All() []formurl.Pair {
	return append([]formurl.Pair(nil), s.pairs...)
}

// String implements the spec's toString: the
// application/x-www-form-urlencoded serialization of the pair list.
func (s *SearchParams) String() string {
	return formurl.Serialize(s.pairs)
}

// MarshalText implements encoding.TextMarshaler via String.
func (s *SearchParams) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by replacing the pair
// list with the result of parsing text.
func (s *SearchParams) UnmarshalText(text []byte) error {
	s.pairs = formurl.Parse(text)
	s.update()
	return nil
}
