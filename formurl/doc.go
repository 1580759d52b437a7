// Package formurl implements the application/x-www-form-urlencoded parser
// and serializer from the WHATWG URL Living Standard. Pairs are kept in an
// ordered slice rather than a map, since the format allows duplicate names
// and callers (e.g. weburl.SearchParams) depend on insertion order being
// preserved.
package formurl
