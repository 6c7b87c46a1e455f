package vector

import (
	"errors"
	"fmt"

	"github.com/louisbranch/cordon/internal/sim/command"
	"github.com/louisbranch/cordon/internal/sim/condition"
	"github.com/louisbranch/cordon/internal/sim/population"
)

// ErrNoClock indicates a decode needed the simulation clock but the decoder
// was built without one.
var ErrNoClock = errors.New("no clock configured")

// InvalidLengthError reports a vector whose length is not a whole number of
// records.
type InvalidLengthError struct {
	Length int
	Width  int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("vector length %d is not a multiple of record width %d", e.Length, e.Width)
}

// UnknownUpcodeError reports a code absent from the upcode registry.
type UnknownUpcodeError struct {
	Code   Upcode
	Record int
}

func (e *UnknownUpcodeError) Error() string {
	return fmt.Sprintf("record %d: unknown upcode %d", e.Record, e.Code)
}

// UnsupportedConditionError reports a condition kind that is declared in the
// table but cannot be decoded yet.
type UnsupportedConditionError struct {
	Kind   condition.Kind
	Record int
}

func (e *UnsupportedConditionError) Error() string {
	return fmt.Sprintf("record %d: condition kind %s is not supported", e.Record, e.Kind)
}

// UnsupportedCommandError reports a command kind that is declared in the
// table but cannot be decoded yet.
type UnsupportedCommandError struct {
	Kind   command.Kind
	Record int
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("record %d: command kind %s is not supported", e.Record, e.Kind)
}

// UnknownCommandError reports an upcode that resolves to something other
// than a command in command position.
type UnknownCommandError struct {
	Code   Upcode
	Kind   condition.Kind
	Record int
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("record %d: upcode %d selects condition kind %s, not a command", e.Record, e.Code, e.Kind)
}

// UnresolvedEntityError reports a single-target command whose entity ID is
// absent from the population.
type UnresolvedEntityError struct {
	Entity population.Entity
	ID     int
	Record int
}

func (e *UnresolvedEntityError) Error() string {
	return fmt.Sprintf("record %d: no %s with id %d", e.Record, e.Entity, e.ID)
}
