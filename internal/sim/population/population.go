// Package population defines the entities an intervention plan can target
// and the read-only registry used to resolve them.
//
// A population is owned by whoever produced it (the seed tooling, a stored
// snapshot, a fixture file). Decoding only ever reads it: commands reference
// entities by ID and never mutate them.
package population

// Entity identifies which registry an ID refers to.
type Entity int

const (
	EntityPerson Entity = iota
	EntityFamily
	EntityCommunity
)

// String returns the wire name of the entity kind.
func (e Entity) String() string {
	switch e {
	case EntityPerson:
		return "person"
	case EntityFamily:
		return "family"
	case EntityCommunity:
		return "community"
	default:
		return "unknown"
	}
}

// Gender is a person's modeled gender.
type Gender int

const (
	GenderFemale Gender = iota
	GenderMale
)

// String returns the wire name of the gender.
func (g Gender) String() string {
	switch g {
	case GenderFemale:
		return "female"
	case GenderMale:
		return "male"
	default:
		return "unknown"
	}
}

// Person is a single member of the population.
type Person struct {
	ID              int      `json:"id"`
	Age             int      `json:"age"`
	Gender          Gender   `json:"gender"`
	HealthCondition float64  `json:"health_condition"`
	FamilyID        int      `json:"family_id"`
	Roles           []string `json:"roles,omitempty"`
	IsQuarantined   bool     `json:"is_quarantined"`
}

// Family is a household grouping of people.
type Family struct {
	ID        int   `json:"id"`
	PeopleIDs []int `json:"people_ids"`
}

// Community is a social institution (workplace, school, gym) whose members
// can be targeted collectively.
type Community struct {
	ID        int    `json:"id"`
	TypeName  string `json:"type_name"`
	PeopleIDs []int  `json:"people_ids"`
}
