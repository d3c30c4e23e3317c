package api

import (
	"errors"
	"fmt"
)

// ErrNotReady means the backend has no card ready yet (404 on /card);
// generation is still running in the background.
var ErrNotReady = errors.New("no card ready yet")

// UnavailableError is any fetch failure other than ErrNotReady.
type UnavailableError struct {
	Endpoint string
	Status   int // 0 when the request never got a response
	Err      error
}

func (e *UnavailableError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s unavailable (HTTP %d): %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Endpoint, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// SubmitError means a review could not be stored.
type SubmitError struct {
	Status int
	Err    error
}

func (e *SubmitError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("review not saved (HTTP %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("review not saved: %v", e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// StatusOf extracts the HTTP status carried by err: 200 for nil, 404 for
// ErrNotReady, the recorded status for typed errors and 0 otherwise.
func StatusOf(err error) int {
	if err == nil {
		return 200
	}
	if errors.Is(err, ErrNotReady) {
		return 404
	}
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue.Status
	}
	var se *SubmitError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
