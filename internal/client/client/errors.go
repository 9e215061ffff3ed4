package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the request could not complete (network, timeout).
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the backend rejected the credentials or token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBackend means a reachable backend answered with a non-success status.
	ErrBackend = errors.New("backend error")
	// ErrLocalDataNotAvailable means the local store could not be opened or read.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// StatusError carries the HTTP status of a failed backend call.
// It matches ErrBackend with errors.Is.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrBackend
}
