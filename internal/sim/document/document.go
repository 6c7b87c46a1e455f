// Package document renders command lists as the JSON command document the
// simulation engine consumes, and parses such documents back into typed
// commands.
//
// Serialization is format-stable: field order is fixed by struct layout, so
// identical documents always marshal to identical bytes. Every span of time
// is expressed in whole minutes and every instant in whole seconds since the
// Unix epoch; sub-minute remainders are truncated.
package document

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/louisbranch/cordon/internal/sim/command"
	"github.com/louisbranch/cordon/internal/sim/condition"
	"github.com/louisbranch/cordon/internal/sim/simtime"
)

// Document is an ordered list of commands, ready for the engine.
type Document []command.Command

type conditionRecord struct {
	Kind  string `json:"kind"`
	Value int64  `json:"value"`
}

type commandRecord struct {
	Kind             string           `json:"kind"`
	Condition        *conditionRecord `json:"condition"`
	Targets          []int            `json:"targets"`
	TypeName         *string          `json:"type_name,omitempty"`
	RoleName         *string          `json:"role_name,omitempty"`
	RestrictionRatio *float64         `json:"restriction_ratio,omitempty"`
	Probability      *float64         `json:"probability,omitempty"`
}

// Marshal renders the document as compact JSON. No-op commands are dropped,
// matching their absence from decoded documents. Marshaling fails when a
// command lacks its condition.
func Marshal(doc Document) ([]byte, error) {
	records := make([]commandRecord, 0, len(doc))
	for i, cmd := range doc {
		if cmd.Kind() == command.KindNope {
			continue
		}
		rec, err := encodeCommand(cmd)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return json.Marshal(records)
}

// Parse reads a serialized document back into typed commands. Unknown kinds
// are rejected, never skipped.
func Parse(data []byte) (Document, error) {
	var records []commandRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := make(Document, 0, len(records))
	for i, rec := range records {
		cmd, err := decodeRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		doc = append(doc, cmd)
	}
	return doc, nil
}

func encodeCommand(cmd command.Command) (commandRecord, error) {
	rec := commandRecord{
		Kind:    cmd.Kind().String(),
		Targets: []int{},
	}

	var cond condition.Condition
	switch c := cmd.(type) {
	case command.QuarantineSingleCommunity:
		cond = c.Condition
		rec.Targets = []int{c.CommunityID}
	case command.UnquarantineSingleCommunity:
		cond = c.Condition
		rec.Targets = []int{c.CommunityID}
	case command.QuarantineMultipleCommunities:
		cond = c.Condition
		rec.Targets = targetList(c.CommunityIDs)
	case command.UnquarantineMultipleCommunities:
		cond = c.Condition
		rec.Targets = targetList(c.CommunityIDs)
	case command.QuarantineSinglePerson:
		cond = c.Condition
		rec.Targets = []int{c.PersonID}
	case command.UnquarantineSinglePerson:
		cond = c.Condition
		rec.Targets = []int{c.PersonID}
	case command.QuarantineMultiplePeople:
		cond = c.Condition
		rec.Targets = targetList(c.PersonIDs)
	case command.UnquarantineMultiplePeople:
		cond = c.Condition
		rec.Targets = targetList(c.PersonIDs)
	case command.QuarantineSingleFamily:
		cond = c.Condition
		rec.Targets = []int{c.FamilyID}
	case command.UnquarantineSingleFamily:
		cond = c.Condition
		rec.Targets = []int{c.FamilyID}
	case command.QuarantineMultipleFamilies:
		cond = c.Condition
		rec.Targets = targetList(c.FamilyIDs)
	case command.UnquarantineMultipleFamilies:
		cond = c.Condition
		rec.Targets = targetList(c.FamilyIDs)
	case command.QuarantineCommunityType:
		cond = c.Condition
		rec.TypeName = &c.TypeName
	case command.UnquarantineCommunityType:
		cond = c.Condition
		rec.TypeName = &c.TypeName
	case command.QuarantineAllPeople:
		cond = c.Condition
	case command.UnquarantineAllPeople:
		cond = c.Condition
	case command.QuarantineDiseasedPeople:
		cond = c.Condition
	case command.UnquarantineDiseasedPeople:
		cond = c.Condition
	case command.QuarantineDiseasedPeopleNoisy:
		cond = c.Condition
		rec.Probability = &c.Probability
	case command.RestrictCertainRoles:
		cond = c.Condition
		rec.RoleName = &c.RoleName
		rec.RestrictionRatio = &c.RestrictionRatio
	default:
		return commandRecord{}, fmt.Errorf("unhandled command type %T", cmd)
	}

	condRec, err := encodeCondition(cond)
	if err != nil {
		return commandRecord{}, err
	}
	rec.Condition = condRec
	return rec, nil
}

func encodeCondition(cond condition.Condition) (*conditionRecord, error) {
	switch c := cond.(type) {
	case nil:
		return nil, ErrMissingCondition
	case condition.TimePoint:
		return &conditionRecord{Kind: c.Kind().String(), Value: c.Deadline.Unix()}, nil
	case condition.TimePeriod:
		return &conditionRecord{Kind: c.Kind().String(), Value: int64(c.Period / time.Minute)}, nil
	default:
		return nil, fmt.Errorf("unhandled condition type %T", cond)
	}
}

func decodeRecord(rec commandRecord) (command.Command, error) {
	kind, ok := command.ParseKind(rec.Kind)
	if !ok {
		return nil, &UnknownKindError{Name: rec.Kind}
	}
	if kind == command.KindNope {
		return nil, fmt.Errorf("%s records do not appear in documents", rec.Kind)
	}

	cond, err := decodeCondition(rec.Condition)
	if err != nil {
		return nil, err
	}

	switch kind {
	case command.KindQuarantineSingleCommunity, command.KindUnquarantineSingleCommunity,
		command.KindQuarantineSinglePerson, command.KindUnquarantineSinglePerson,
		command.KindQuarantineSingleFamily, command.KindUnquarantineSingleFamily:
		if len(rec.Targets) != 1 {
			return nil, fmt.Errorf("%s expects exactly one target, got %d", rec.Kind, len(rec.Targets))
		}
	}

	switch kind {
	case command.KindQuarantineSingleCommunity:
		return command.QuarantineSingleCommunity{Condition: cond, CommunityID: rec.Targets[0]}, nil
	case command.KindUnquarantineSingleCommunity:
		return command.UnquarantineSingleCommunity{Condition: cond, CommunityID: rec.Targets[0]}, nil
	case command.KindQuarantineMultipleCommunities:
		return command.QuarantineMultipleCommunities{Condition: cond, CommunityIDs: slices.Clone(rec.Targets)}, nil
	case command.KindUnquarantineMultipleCommunities:
		return command.UnquarantineMultipleCommunities{Condition: cond, CommunityIDs: slices.Clone(rec.Targets)}, nil
	case command.KindQuarantineSinglePerson:
		return command.QuarantineSinglePerson{Condition: cond, PersonID: rec.Targets[0]}, nil
	case command.KindUnquarantineSinglePerson:
		return command.UnquarantineSinglePerson{Condition: cond, PersonID: rec.Targets[0]}, nil
	case command.KindQuarantineMultiplePeople:
		return command.QuarantineMultiplePeople{Condition: cond, PersonIDs: slices.Clone(rec.Targets)}, nil
	case command.KindUnquarantineMultiplePeople:
		return command.UnquarantineMultiplePeople{Condition: cond, PersonIDs: slices.Clone(rec.Targets)}, nil
	case command.KindQuarantineSingleFamily:
		return command.QuarantineSingleFamily{Condition: cond, FamilyID: rec.Targets[0]}, nil
	case command.KindUnquarantineSingleFamily:
		return command.UnquarantineSingleFamily{Condition: cond, FamilyID: rec.Targets[0]}, nil
	case command.KindQuarantineMultipleFamilies:
		return command.QuarantineMultipleFamilies{Condition: cond, FamilyIDs: slices.Clone(rec.Targets)}, nil
	case command.KindUnquarantineMultipleFamilies:
		return command.UnquarantineMultipleFamilies{Condition: cond, FamilyIDs: slices.Clone(rec.Targets)}, nil
	case command.KindQuarantineCommunityType, command.KindUnquarantineCommunityType:
		if rec.TypeName == nil || *rec.TypeName == "" {
			return nil, fmt.Errorf("%s requires type_name", rec.Kind)
		}
		if kind == command.KindQuarantineCommunityType {
			return command.QuarantineCommunityType{Condition: cond, TypeName: *rec.TypeName}, nil
		}
		return command.UnquarantineCommunityType{Condition: cond, TypeName: *rec.TypeName}, nil
	case command.KindQuarantineAllPeople:
		return command.QuarantineAllPeople{Condition: cond}, nil
	case command.KindUnquarantineAllPeople:
		return command.UnquarantineAllPeople{Condition: cond}, nil
	case command.KindQuarantineDiseasedPeople:
		return command.QuarantineDiseasedPeople{Condition: cond}, nil
	case command.KindUnquarantineDiseasedPeople:
		return command.UnquarantineDiseasedPeople{Condition: cond}, nil
	case command.KindQuarantineDiseasedPeopleNoisy:
		if rec.Probability == nil {
			return nil, fmt.Errorf("%s requires probability", rec.Kind)
		}
		return command.QuarantineDiseasedPeopleNoisy{Condition: cond, Probability: *rec.Probability}, nil
	case command.KindRestrictCertainRoles:
		if rec.RoleName == nil || *rec.RoleName == "" {
			return nil, fmt.Errorf("%s requires role_name", rec.Kind)
		}
		if rec.RestrictionRatio == nil {
			return nil, fmt.Errorf("%s requires restriction_ratio", rec.Kind)
		}
		return command.RestrictCertainRoles{Condition: cond, RoleName: *rec.RoleName, RestrictionRatio: *rec.RestrictionRatio}, nil
	default:
		return nil, &UnknownKindError{Name: rec.Kind}
	}
}

func decodeCondition(rec *conditionRecord) (condition.Condition, error) {
	if rec == nil {
		return nil, ErrMissingCondition
	}

	kind, ok := condition.ParseKind(rec.Kind)
	if !ok {
		return nil, &UnknownKindError{Name: rec.Kind}
	}

	switch kind {
	case condition.KindTimePoint:
		return condition.TimePoint{Deadline: simtime.FromUnix(rec.Value)}, nil
	case condition.KindTimePeriod:
		return condition.TimePeriod{Period: simtime.Minutes(int(rec.Value))}, nil
	default:
		return nil, &UnsupportedKindError{Name: rec.Kind}
	}
}

// targetList normalizes a target slice for serialization: never nil, always
// a copy.
func targetList(ids []int) []int {
	if len(ids) == 0 {
		return []int{}
	}
	return slices.Clone(ids)
}
