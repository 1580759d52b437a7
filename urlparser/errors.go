package urlparser

import (
	"errors"
	"fmt"
)

// Parse failures. These are returned wrapped via fmt.Errorf so callers can
// still errors.Is against the sentinel.
var (
	// ErrInvalidURL is returned when the basic URL parser reaches a
	// "return failure" step with no recoverable path.
	ErrInvalidURL = errors.New("urlparser: invalid url")

	// ErrInvalidHost is returned by the host parser on a malformed IPv6,
	// IPv4, opaque-host, or domain input.
	ErrInvalidHost = errors.New("urlparser: invalid host")

	// ErrCannotBeABase is returned when a state override or relative
	// resolution requires a base URL that is either absent or itself
	// cannot-be-a-base.
	ErrCannotBeABase = errors.New("urlparser: cannot-be-a-base url has no path segments")
)

// ErrorSink receives validation-error messages emitted during parsing.
// Messages are not prefixed here; callers that want the
// "Validation Error: " prefix from the WHATWG spec's reporting convention
// should add it themselves, e.g. via DefaultErrorSink.
type ErrorSink func(message string)

// DefaultErrorSink is used by Parse when no sink is supplied via
// Options.ErrorSink. It discards every message. Assigning a new function
// here is the package-global compatibility entry point referenced by the
// spec's "global validation sink" note; prefer passing Options.ErrorSink
// per call.
var DefaultErrorSink ErrorSink = func(string) {}

func invalidURLf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidURL}, args...)...)
}

func invalidHostf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidHost}, args...)...)
}
