package weburl

import "errors"

// ErrInvalidURL is returned by Parse and the href setter when the given
// string cannot be parsed as a URL. The returned error wraps both this
// sentinel and the urlparser failure (urlparser.ErrInvalidURL or
// urlparser.ErrInvalidHost), so callers can errors.Is against either.
var ErrInvalidURL = errors.New("weburl: invalid url")
