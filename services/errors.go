package services

import (
	"errors"
	"fmt"
)

// ValidationError reports a precondition failure on a service operation.
// Callers surface the reason to the user and re-render the originating form.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

var (
	// ErrNotFound: the referenced application/room/allocation/fee does not exist.
	ErrNotFound = errors.New("not_found")
	// ErrNoAvailableRoom: auto-allocation found no candidate room.
	ErrNoAvailableRoom = errors.New("no_available_room")
	// ErrConflict: a concurrent operation took the capacity this one was
	// validated against; detected at write time, nothing was mutated durably.
	ErrConflict = errors.New("conflict")
)
