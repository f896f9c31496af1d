package gecko

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is matched by errors.Is for 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrMalformedResponse reports a payload that does not have the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// NetworkError reports a failed request: either a transport failure
// (StatusCode 0) or a non-2xx response.
type NetworkError struct {
	Path       string
	StatusCode int
	// APIMessage is the "error" field of the response body, if any.
	APIMessage string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request %s: %v", e.Path, e.Err)
	}
	msg := e.APIMessage
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("request %s: status %d: %s", e.Path, e.StatusCode, msg)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is lets 404 responses match ErrNotFound.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// APIMessage extracts the server-provided error message from err, if any.
func APIMessage(err error) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.APIMessage
	}
	return ""
}
