package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("not found")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// APIError carries an unexpected status together with the message the
// backend sent in its body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return e.Message
}
