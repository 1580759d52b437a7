// Package urlparser implements the core of the WHATWG URL Living Standard:
// the basic URL parser state machine, host parsing and serialization,
// percent-encoding, and the URL record serializer.
//
// This package is the "hard engineering" layer. It has no notion of a
// public, mutable URL object with getters and setters — that surface lives
// in package weburl, which re-enters Parse at well-defined state overrides.
// Callers that only need a one-shot parse/serialize can use this package
// directly.
//
// # Records
//
// Parse produces a *URL, a plain record aggregating scheme, credentials,
// host, port, path, query, and fragment. Records are built fresh by Parse,
// or mutated in place when Parse is called with an existing record and a
// StateOverride (the mechanism the weburl adapter uses for its setters).
//
// # Failure vs. validation error
//
// Parse has two distinct failure channels. A validation error is
// non-fatal and reported through ErrorSink; parsing continues. A failure
// aborts parsing and Parse returns a non-nil error wrapping ErrInvalidURL,
// or ErrInvalidHost when the host parser rejects the host.
package urlparser
