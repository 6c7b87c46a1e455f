package vector

import (
	"fmt"
	"slices"

	"github.com/louisbranch/cordon/internal/sim/command"
	"github.com/louisbranch/cordon/internal/sim/condition"
	"github.com/louisbranch/cordon/internal/sim/population"
	"github.com/louisbranch/cordon/internal/sim/simtime"
)

// Resolver resolves entity references against a population. Implementations
// must be read-only for the duration of a decode pass.
type Resolver interface {
	Person(id int) (population.Person, bool)
	Community(id int) (population.Community, bool)
}

var _ Resolver = (*population.Registry)(nil)

// Decoder turns command vectors into ordered command lists.
//
// # Determinism
//
// Decoding is a pure function of the vector, the registry, the population
// and the clock. Two decodes with identical inputs yield identical results.
//
// # Ordering
//
// Output order equals input record order, minus dropped no-op records.
// Multi-target commands list their targets in ascending entity ID order
// regardless of the order IDs appear on the wire.
//
// # Failure
//
// Decoding is all-or-nothing: the first invalid, unknown, unsupported or
// unresolvable record aborts the whole batch and no commands are returned.
type Decoder struct {
	// Registry is the upcode table. Nil selects DefaultRegistry.
	Registry *Registry

	// Clock supplies the current simulation instant for deadline
	// arithmetic. Decoding a time-point condition without a clock fails
	// with ErrNoClock.
	Clock simtime.Clock
}

// Decode translates vec into commands, resolving entity references through
// res. See the Decoder documentation for ordering and failure semantics.
func (d *Decoder) Decode(vec []int, res Resolver) ([]command.Command, error) {
	records, err := Slice(vec, RecordWidth)
	if err != nil {
		return nil, err
	}

	cmds := make([]command.Command, 0, len(records))
	for i, rec := range records {
		cmd, err := d.decodeRecord(rec, i, res)
		if err != nil {
			return nil, err
		}
		if cmd.Kind() == command.KindNope {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// DecodeCondition decodes a single condition subrecord of ConditionWidth
// elements. Errors report record index 0; batch decoding reports the true
// record position instead.
func (d *Decoder) DecodeCondition(sub []int) (condition.Condition, error) {
	if len(sub) != ConditionWidth {
		return nil, &InvalidLengthError{Length: len(sub), Width: ConditionWidth}
	}
	return d.decodeCondition(sub, 0)
}

func (d *Decoder) registry() *Registry {
	if d.Registry != nil {
		return d.Registry
	}
	return DefaultRegistry()
}

func (d *Decoder) decodeRecord(rec []int, index int, res Resolver) (command.Command, error) {
	code := Upcode(rec[0])

	kind, ok := d.registry().CommandKind(code)
	if !ok {
		if condKind, isCondition := d.registry().ConditionKind(code); isCondition {
			return nil, &UnknownCommandError{Code: code, Kind: condKind, Record: index}
		}
		return nil, &UnknownUpcodeError{Code: code, Record: index}
	}

	// No-op records carry no meaning beyond their upcode; the remaining
	// elements are padding and are never inspected.
	if kind == command.KindNope {
		return command.Nope{}, nil
	}

	cond, err := d.decodeCondition(rec[conditionStart:conditionEnd], index)
	if err != nil {
		return nil, err
	}

	data := rec[dataStart:dataEnd]

	switch kind {
	case command.KindQuarantineSingleCommunity, command.KindUnquarantineSingleCommunity:
		id := data[0]
		if _, ok := res.Community(id); !ok {
			return nil, &UnresolvedEntityError{Entity: population.EntityCommunity, ID: id, Record: index}
		}
		if kind == command.KindQuarantineSingleCommunity {
			return command.QuarantineSingleCommunity{Condition: cond, CommunityID: id}, nil
		}
		return command.UnquarantineSingleCommunity{Condition: cond, CommunityID: id}, nil

	case command.KindQuarantineSinglePerson, command.KindUnquarantineSinglePerson:
		id := data[0]
		if _, ok := res.Person(id); !ok {
			return nil, &UnresolvedEntityError{Entity: population.EntityPerson, ID: id, Record: index}
		}
		if kind == command.KindQuarantineSinglePerson {
			return command.QuarantineSinglePerson{Condition: cond, PersonID: id}, nil
		}
		return command.UnquarantineSinglePerson{Condition: cond, PersonID: id}, nil

	case command.KindQuarantineMultipleCommunities, command.KindUnquarantineMultipleCommunities:
		ids := memberIDs(data, func(id int) bool {
			_, ok := res.Community(id)
			return ok
		})
		if kind == command.KindQuarantineMultipleCommunities {
			return command.QuarantineMultipleCommunities{Condition: cond, CommunityIDs: ids}, nil
		}
		return command.UnquarantineMultipleCommunities{Condition: cond, CommunityIDs: ids}, nil

	case command.KindQuarantineMultiplePeople, command.KindUnquarantineMultiplePeople:
		ids := memberIDs(data, func(id int) bool {
			_, ok := res.Person(id)
			return ok
		})
		if kind == command.KindQuarantineMultiplePeople {
			return command.QuarantineMultiplePeople{Condition: cond, PersonIDs: ids}, nil
		}
		return command.UnquarantineMultiplePeople{Condition: cond, PersonIDs: ids}, nil

	default:
		return nil, &UnsupportedCommandError{Kind: kind, Record: index}
	}
}

func (d *Decoder) decodeCondition(sub []int, record int) (condition.Condition, error) {
	code := Upcode(sub[0])

	kind, ok := d.registry().ConditionKind(code)
	if !ok {
		return nil, &UnknownUpcodeError{Code: code, Record: record}
	}

	// Only the first data element is consumed today; the rest of the
	// subrecord is reserved for future condition parameters and ignored.
	switch kind {
	case condition.KindTimePoint:
		if d.Clock == nil {
			return nil, fmt.Errorf("record %d: decode time point: %w", record, ErrNoClock)
		}
		return condition.TimePoint{Deadline: d.Clock.Now().Add(simtime.Minutes(sub[1]))}, nil
	case condition.KindTimePeriod:
		return condition.TimePeriod{Period: simtime.Minutes(sub[1])}, nil
	default:
		return nil, &UnsupportedConditionError{Kind: kind, Record: record}
	}
}

// memberIDs interprets data as a membership set over entity IDs: zeros are
// fixed-width padding, duplicates collapse, and only IDs the population
// contains survive. The result is ascending.
func memberIDs(data []int, contains func(int) bool) []int {
	seen := make(map[int]struct{}, len(data))
	var ids []int
	for _, id := range data {
		if id == 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if contains(id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
