package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a classified failure from the upstream API.
//
// Status carries the HTTP status of the failed call; 0 means the request
// never produced a response (DNS failure, connection refused, timeout).
type Error struct {
	Status  int
	Message string
	Body    map[string]interface{}
	cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream: network error: %s", e.Message)
	}
	return fmt.Sprintf("upstream: %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsUnauthenticated reports whether err is a 401 rejection from upstream.
func IsUnauthenticated(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Status == http.StatusUnauthorized
}

// IsNetwork reports whether err is a transport-level failure (status 0).
func IsNetwork(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Status == 0
}

// AsError unwraps err into a classified *Error if it is one.
func AsError(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
