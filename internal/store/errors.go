package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAmbiguousID   = errors.New("store: ambiguous id prefix")
	ErrProfileExists = errors.New("store: profile already exists")
)

// ValidationError rejects a create or update before any state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("store: invalid %s: %s", e.Field, e.Reason)
}
