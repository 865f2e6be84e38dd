package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound marks a 404 from the backend. Cart lookups treat it as the
// expected "no cart yet" signal rather than a failure.
var ErrNotFound = errors.New("resource not found")

// Error carries the HTTP status and body of a failed backend call.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
