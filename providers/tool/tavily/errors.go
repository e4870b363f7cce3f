package tavily

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned, before any request is made, when the
	// call has no credential.
	ErrMissingAPIKey = errors.New("TAVILY_API_KEY is required")

	// ErrInvalidAPIKey is returned for HTTP 401.
	ErrInvalidAPIKey = errors.New("Invalid API key")

	// ErrUsageLimitExceeded is returned for HTTP 429.
	ErrUsageLimitExceeded = errors.New("Usage limit exceeded")

	// ErrRequestFailed matches every *RequestError.
	ErrRequestFailed = errors.New("API request failed")

	// ErrUnknownOperation is returned for an operation outside search,
	// extract, crawl and map.
	ErrUnknownOperation = errors.New("unknown operation")
)

// RequestError is a non-2xx response other than 401 and 429.
type RequestError struct {
	Operation  Operation
	StatusCode int
	// StatusText is the HTTP reason phrase, e.g. "Bad Gateway".
	StatusText string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("tavily %s: %s: %s", e.Operation, ErrRequestFailed, e.StatusText)
}

// Is makes errors.Is(err, ErrRequestFailed) true for any RequestError.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// TransportError is a failure to obtain or decode a response: unreachable
// host, timeout, cancellation, truncated or malformed body.
type TransportError struct {
	Operation Operation
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tavily %s: transport failure: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorKind returns a short, stable label for err suitable for logs and
// metrics attributes. Unclassified errors yield "internal".
func ErrorKind(err error) string {
	var transportErr *TransportError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingAPIKey):
		return "missing_api_key"
	case errors.Is(err, ErrInvalidAPIKey):
		return "invalid_api_key"
	case errors.Is(err, ErrUsageLimitExceeded):
		return "usage_limit_exceeded"
	case errors.Is(err, ErrRequestFailed):
		return "request_failed"
	case errors.As(err, &transportErr):
		return "transport"
	default:
		return "internal"
	}
}

func classified(op Operation, sentinel error) error {
	return fmt.Errorf("tavily %s: %w", op, sentinel)
}
