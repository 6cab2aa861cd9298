package provider

import (
	"fmt"
	"net/http"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
)

// RequestError is returned by transports when a GET fails: network errors,
// non-2xx statuses, and undecodable payloads. StatusCode is 0 when no
// response was received.
type RequestError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// NotFound reports whether the upstream answered 404.
func (e *RequestError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Is makes errors.Is(err, domain.ErrNotFound) true for 404 responses.
func (e *RequestError) Is(target error) bool {
	return target == domain.ErrNotFound && e.NotFound()
}
