package vector

import (
	"fmt"

	"github.com/louisbranch/cordon/internal/sim/command"
	"github.com/louisbranch/cordon/internal/sim/condition"
)

// Upcode is the integer operation code leading a record or a condition
// subrecord. Command codes and condition codes share one namespace.
type Upcode int

type opClass int

const (
	opCondition opClass = iota
	opCommand
)

type op struct {
	class     opClass
	condition condition.Kind
	command   command.Kind
}

// Registry is an immutable upcode table. It is built once, passed into the
// decoder explicitly, and only ever read afterwards.
type Registry struct {
	ops map[Upcode]op
}

// NewRegistry builds a registry from explicit condition and command
// mappings. Codes must be unique across both mappings and no kind may be
// reachable through two codes.
func NewRegistry(conditions map[Upcode]condition.Kind, commands map[Upcode]command.Kind) (*Registry, error) {
	r := &Registry{ops: make(map[Upcode]op, len(conditions)+len(commands))}

	seenConditions := make(map[condition.Kind]Upcode, len(conditions))
	for code, kind := range conditions {
		if prev, ok := seenConditions[kind]; ok {
			return nil, fmt.Errorf("condition kind %s mapped by both upcode %d and %d", kind, min(prev, code), max(prev, code))
		}
		seenConditions[kind] = code
		if _, ok := r.ops[code]; ok {
			return nil, fmt.Errorf("upcode %d registered twice", code)
		}
		r.ops[code] = op{class: opCondition, condition: kind}
	}

	seenCommands := make(map[command.Kind]Upcode, len(commands))
	for code, kind := range commands {
		if prev, ok := seenCommands[kind]; ok {
			return nil, fmt.Errorf("command kind %s mapped by both upcode %d and %d", kind, min(prev, code), max(prev, code))
		}
		seenCommands[kind] = code
		if _, ok := r.ops[code]; ok {
			return nil, fmt.Errorf("upcode %d registered twice", code)
		}
		r.ops[code] = op{class: opCommand, command: kind}
	}

	return r, nil
}

// ConditionKind resolves a condition upcode. It reports false when the code
// is unregistered or selects a command.
func (r *Registry) ConditionKind(code Upcode) (condition.Kind, bool) {
	o, ok := r.ops[code]
	if !ok || o.class != opCondition {
		return 0, false
	}
	return o.condition, true
}

// CommandKind resolves a command upcode. It reports false when the code is
// unregistered or selects a condition.
func (r *Registry) CommandKind(code Upcode) (command.Kind, bool) {
	o, ok := r.ops[code]
	if !ok || o.class != opCommand {
		return 0, false
	}
	return o.command, true
}

// Registered reports whether the code appears in the table at all.
func (r *Registry) Registered(code Upcode) bool {
	_, ok := r.ops[code]
	return ok
}

var defaultRegistry = mustRegistry(
	map[Upcode]condition.Kind{
		0: condition.KindTimePoint,
		1: condition.KindTimePeriod,
		2: condition.KindStatisticalFamily,
		3: condition.KindStatisticalRatio,
		4: condition.KindStatisticalRatioRole,
	},
	map[Upcode]command.Kind{
		10: command.KindQuarantineSingleCommunity,
		11: command.KindUnquarantineSingleCommunity,
		12: command.KindQuarantineMultipleCommunities,
		13: command.KindUnquarantineMultipleCommunities,
		14: command.KindQuarantineSinglePerson,
		15: command.KindUnquarantineSinglePerson,
		16: command.KindQuarantineMultiplePeople,
		17: command.KindUnquarantineMultiplePeople,
		18: command.KindRestrictCertainRoles,
		99: command.KindNope,
	},
)

// DefaultRegistry returns the fixed production upcode table. The table is
// shared; it cannot be mutated through the Registry API.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func mustRegistry(conditions map[Upcode]condition.Kind, commands map[Upcode]command.Kind) *Registry {
	r, err := NewRegistry(conditions, commands)
	if err != nil {
		panic(fmt.Sprintf("must registry: %v", err))
	}
	return r
}
