package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBaseURLEmpty is returned when the client is built without a
	// backend address.
	ErrBaseURLEmpty = errors.New("api base URL is empty")
)

// StatusError reports a non-success response from the backend.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var statusErr *StatusError

	return errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound
}
