package document

import (
	"errors"
	"fmt"
)

// ErrMissingCondition indicates a command without its gating condition.
var ErrMissingCondition = errors.New("command has no condition")

// UnknownKindError reports a kind name outside the command and condition
// vocabulary.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown kind %q", e.Name)
}

// UnsupportedKindError reports a declared kind that has no document
// representation yet.
type UnsupportedKindError struct {
	Name string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("kind %q is not supported", e.Name)
}
