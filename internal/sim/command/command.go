// Package command defines the intervention commands an epidemic simulation
// engine can execute.
//
// The variant set is closed: every command is one of the concrete types in
// this package, tagged by Kind, and consumers switch over the set
// exhaustively instead of dispatching on names. Commands are plain values.
// They describe an intervention and the condition gating it; applying them
// to simulation state is the engine's concern.
//
// Target-bearing commands reference population entities by ID and never own
// the entities themselves.
package command

import "github.com/louisbranch/cordon/internal/sim/condition"

// Kind tags a command variant.
type Kind int

const (
	KindNope Kind = iota
	KindQuarantineSingleCommunity
	KindUnquarantineSingleCommunity
	KindQuarantineMultipleCommunities
	KindUnquarantineMultipleCommunities
	KindQuarantineSinglePerson
	KindUnquarantineSinglePerson
	KindQuarantineMultiplePeople
	KindUnquarantineMultiplePeople
	KindQuarantineSingleFamily
	KindUnquarantineSingleFamily
	KindQuarantineMultipleFamilies
	KindUnquarantineMultipleFamilies
	KindQuarantineCommunityType
	KindUnquarantineCommunityType
	KindQuarantineAllPeople
	KindUnquarantineAllPeople
	KindQuarantineDiseasedPeople
	KindUnquarantineDiseasedPeople
	KindQuarantineDiseasedPeopleNoisy
	KindRestrictCertainRoles
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNope:
		return "nope"
	case KindQuarantineSingleCommunity:
		return "quarantine_single_community"
	case KindUnquarantineSingleCommunity:
		return "unquarantine_single_community"
	case KindQuarantineMultipleCommunities:
		return "quarantine_multiple_communities"
	case KindUnquarantineMultipleCommunities:
		return "unquarantine_multiple_communities"
	case KindQuarantineSinglePerson:
		return "quarantine_single_person"
	case KindUnquarantineSinglePerson:
		return "unquarantine_single_person"
	case KindQuarantineMultiplePeople:
		return "quarantine_multiple_people"
	case KindUnquarantineMultiplePeople:
		return "unquarantine_multiple_people"
	case KindQuarantineSingleFamily:
		return "quarantine_single_family"
	case KindUnquarantineSingleFamily:
		return "unquarantine_single_family"
	case KindQuarantineMultipleFamilies:
		return "quarantine_multiple_families"
	case KindUnquarantineMultipleFamilies:
		return "unquarantine_multiple_families"
	case KindQuarantineCommunityType:
		return "quarantine_community_type"
	case KindUnquarantineCommunityType:
		return "unquarantine_community_type"
	case KindQuarantineAllPeople:
		return "quarantine_all_people"
	case KindUnquarantineAllPeople:
		return "unquarantine_all_people"
	case KindQuarantineDiseasedPeople:
		return "quarantine_diseased_people"
	case KindUnquarantineDiseasedPeople:
		return "unquarantine_diseased_people"
	case KindQuarantineDiseasedPeopleNoisy:
		return "quarantine_diseased_people_noisy"
	case KindRestrictCertainRoles:
		return "restrict_certain_roles"
	default:
		return "unknown"
	}
}

// ParseKind maps a wire name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k := KindNope; k <= KindRestrictCertainRoles; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Command is a single intervention. The interface is sealed; the concrete
// types in this package are the only implementations.
type Command interface {
	Kind() Kind
	isCommand()
}

// Nope is the explicit no-op. Fixed-width vectors use it to encode "no
// operation" without shortening a record; it carries no condition and is
// dropped from decoded documents.
type Nope struct{}

func (Nope) Kind() Kind { return KindNope }

func (Nope) isCommand() {}

// QuarantineSingleCommunity isolates one community.
type QuarantineSingleCommunity struct {
	Condition   condition.Condition
	CommunityID int
}

func (QuarantineSingleCommunity) Kind() Kind { return KindQuarantineSingleCommunity }

func (QuarantineSingleCommunity) isCommand() {}

// UnquarantineSingleCommunity lifts the isolation of one community.
type UnquarantineSingleCommunity struct {
	Condition   condition.Condition
	CommunityID int
}

func (UnquarantineSingleCommunity) Kind() Kind { return KindUnquarantineSingleCommunity }

func (UnquarantineSingleCommunity) isCommand() {}

// QuarantineMultipleCommunities isolates a set of communities.
type QuarantineMultipleCommunities struct {
	Condition    condition.Condition
	CommunityIDs []int
}

func (QuarantineMultipleCommunities) Kind() Kind { return KindQuarantineMultipleCommunities }

func (QuarantineMultipleCommunities) isCommand() {}

// UnquarantineMultipleCommunities lifts the isolation of a set of
// communities.
type UnquarantineMultipleCommunities struct {
	Condition    condition.Condition
	CommunityIDs []int
}

func (UnquarantineMultipleCommunities) Kind() Kind { return KindUnquarantineMultipleCommunities }

func (UnquarantineMultipleCommunities) isCommand() {}

// QuarantineSinglePerson isolates one person.
type QuarantineSinglePerson struct {
	Condition condition.Condition
	PersonID  int
}

func (QuarantineSinglePerson) Kind() Kind { return KindQuarantineSinglePerson }

func (QuarantineSinglePerson) isCommand() {}

// UnquarantineSinglePerson lifts the isolation of one person.
type UnquarantineSinglePerson struct {
	Condition condition.Condition
	PersonID  int
}

func (UnquarantineSinglePerson) Kind() Kind { return KindUnquarantineSinglePerson }

func (UnquarantineSinglePerson) isCommand() {}

// QuarantineMultiplePeople isolates a set of people.
type QuarantineMultiplePeople struct {
	Condition condition.Condition
	PersonIDs []int
}

func (QuarantineMultiplePeople) Kind() Kind { return KindQuarantineMultiplePeople }

func (QuarantineMultiplePeople) isCommand() {}

// UnquarantineMultiplePeople lifts the isolation of a set of people.
type UnquarantineMultiplePeople struct {
	Condition condition.Condition
	PersonIDs []int
}

func (UnquarantineMultiplePeople) Kind() Kind { return KindUnquarantineMultiplePeople }

func (UnquarantineMultiplePeople) isCommand() {}

// QuarantineSingleFamily isolates one household.
type QuarantineSingleFamily struct {
	Condition condition.Condition
	FamilyID  int
}

func (QuarantineSingleFamily) Kind() Kind { return KindQuarantineSingleFamily }

func (QuarantineSingleFamily) isCommand() {}

// UnquarantineSingleFamily lifts the isolation of one household.
type UnquarantineSingleFamily struct {
	Condition condition.Condition
	FamilyID  int
}

func (UnquarantineSingleFamily) Kind() Kind { return KindUnquarantineSingleFamily }

func (UnquarantineSingleFamily) isCommand() {}

// QuarantineMultipleFamilies isolates a set of households.
type QuarantineMultipleFamilies struct {
	Condition condition.Condition
	FamilyIDs []int
}

func (QuarantineMultipleFamilies) Kind() Kind { return KindQuarantineMultipleFamilies }

func (QuarantineMultipleFamilies) isCommand() {}

// UnquarantineMultipleFamilies lifts the isolation of a set of households.
type UnquarantineMultipleFamilies struct {
	Condition condition.Condition
	FamilyIDs []int
}

func (UnquarantineMultipleFamilies) Kind() Kind { return KindUnquarantineMultipleFamilies }

func (UnquarantineMultipleFamilies) isCommand() {}

// QuarantineCommunityType isolates every community of a named type, such as
// all schools.
type QuarantineCommunityType struct {
	Condition condition.Condition
	TypeName  string
}

func (QuarantineCommunityType) Kind() Kind { return KindQuarantineCommunityType }

func (QuarantineCommunityType) isCommand() {}

// UnquarantineCommunityType lifts the isolation of every community of a
// named type.
type UnquarantineCommunityType struct {
	Condition condition.Condition
	TypeName  string
}

func (UnquarantineCommunityType) Kind() Kind { return KindUnquarantineCommunityType }

func (UnquarantineCommunityType) isCommand() {}

// QuarantineAllPeople isolates the entire population.
type QuarantineAllPeople struct {
	Condition condition.Condition
}

func (QuarantineAllPeople) Kind() Kind { return KindQuarantineAllPeople }

func (QuarantineAllPeople) isCommand() {}

// UnquarantineAllPeople lifts the isolation of the entire population.
type UnquarantineAllPeople struct {
	Condition condition.Condition
}

func (UnquarantineAllPeople) Kind() Kind { return KindUnquarantineAllPeople }

func (UnquarantineAllPeople) isCommand() {}

// QuarantineDiseasedPeople isolates everyone currently infected.
type QuarantineDiseasedPeople struct {
	Condition condition.Condition
}

func (QuarantineDiseasedPeople) Kind() Kind { return KindQuarantineDiseasedPeople }

func (QuarantineDiseasedPeople) isCommand() {}

// UnquarantineDiseasedPeople lifts the isolation of everyone currently
// infected.
type UnquarantineDiseasedPeople struct {
	Condition condition.Condition
}

func (UnquarantineDiseasedPeople) Kind() Kind { return KindUnquarantineDiseasedPeople }

func (UnquarantineDiseasedPeople) isCommand() {}

// QuarantineDiseasedPeopleNoisy isolates infected people with an imperfect
// detector. Probability is the chance an infected person is correctly
// detected, in [0, 1].
type QuarantineDiseasedPeopleNoisy struct {
	Condition   condition.Condition
	Probability float64
}

func (QuarantineDiseasedPeopleNoisy) Kind() Kind { return KindQuarantineDiseasedPeopleNoisy }

func (QuarantineDiseasedPeopleNoisy) isCommand() {}

// RestrictCertainRoles reduces attendance for a named role. The higher the
// ratio, the fewer people attend; 1 keeps everyone home.
type RestrictCertainRoles struct {
	Condition        condition.Condition
	RoleName         string
	RestrictionRatio float64
}

func (RestrictCertainRoles) Kind() Kind { return KindRestrictCertainRoles }

func (RestrictCertainRoles) isCommand() {}

var (
	_ Command = Nope{}
	_ Command = QuarantineSingleCommunity{}
	_ Command = UnquarantineSingleCommunity{}
	_ Command = QuarantineMultipleCommunities{}
	_ Command = UnquarantineMultipleCommunities{}
	_ Command = QuarantineSinglePerson{}
	_ Command = UnquarantineSinglePerson{}
	_ Command = QuarantineMultiplePeople{}
	_ Command = UnquarantineMultiplePeople{}
	_ Command = QuarantineSingleFamily{}
	_ Command = UnquarantineSingleFamily{}
	_ Command = QuarantineMultipleFamilies{}
	_ Command = UnquarantineMultipleFamilies{}
	_ Command = QuarantineCommunityType{}
	_ Command = UnquarantineCommunityType{}
	_ Command = QuarantineAllPeople{}
	_ Command = UnquarantineAllPeople{}
	_ Command = QuarantineDiseasedPeople{}
	_ Command = UnquarantineDiseasedPeople{}
	_ Command = QuarantineDiseasedPeopleNoisy{}
	_ Command = RestrictCertainRoles{}
)
