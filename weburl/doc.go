// Package weburl is the public adapter over package urlparser: a mutable
// URL object with getters and setters, and URLSearchParams-style query
// manipulation, matching the accessor surface the WHATWG URL standard
// specifies for the URL and URLSearchParams interfaces.
//
// Setters that parse their input re-enter urlparser.Parse with a state
// override against the held record rather than re-implementing parsing
// logic; package urlparser remains the single place the state machine is
// defined. SetUsername and SetPassword percent-encode their value directly,
// and clearing the port, search or hash sets the record field without
// re-entering the parser.
package weburl
