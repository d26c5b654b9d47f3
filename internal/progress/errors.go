package progress

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedStorage indicates persisted content does not match the Date,Challenge,Status schema.
	ErrMalformedStorage = errors.New("malformed progress storage")
	// ErrRecordNotFound indicates no record carries the requested date.
	ErrRecordNotFound = errors.New("progress record not found")
)

// MalformedError locates a schema violation in persisted storage.
type MalformedError struct {
	Source string
	Line   int
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s line %d: %s", ErrMalformedStorage, e.Source, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedStorage, e.Source, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedStorage
func (e *MalformedError) Unwrap() error {
	return ErrMalformedStorage
}
