package comic

import (
	"errors"
	"fmt"
)

// ErrInvalidID is returned for ids below 1 before any request is made.
var ErrInvalidID = errors.New("comic id must be >= 1")

// NetworkError reports a transport failure or a non-2xx response.
type NetworkError struct {
	URL        string
	StatusCode int // zero for transport failures
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("get %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("get %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a body that is not valid JSON or lacks required fields.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind classifies err for logging: "network", "parse", "invalid_id" or "other".
func Kind(err error) string {
	var netErr *NetworkError
	var parseErr *ParseError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.Is(err, ErrInvalidID):
		return "invalid_id"
	default:
		return "other"
	}
}
