package population

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNegativeID indicates an entity was constructed with a negative ID.
// Entity IDs are non-negative; zero is a valid ID, not a sentinel.
var ErrNegativeID = errors.New("negative entity id")

// DuplicateIDError indicates two entities of the same kind share an ID.
type DuplicateIDError struct {
	Entity Entity
	ID     int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate %s id %d", e.Entity, e.ID)
}

// Registry is an immutable snapshot of a population, indexed for the ID
// lookups decoding performs. Construct one with NewRegistry; the zero value
// resolves nothing.
type Registry struct {
	people      map[int]Person
	families    map[int]Family
	communities map[int]Community

	personIDs    []int
	familyIDs    []int
	communityIDs []int
}

// NewRegistry indexes the given entities. IDs must be non-negative and
// unique within each entity kind.
func NewRegistry(people []Person, families []Family, communities []Community) (*Registry, error) {
	r := &Registry{
		people:      make(map[int]Person, len(people)),
		families:    make(map[int]Family, len(families)),
		communities: make(map[int]Community, len(communities)),
	}

	for _, p := range people {
		if p.ID < 0 {
			return nil, fmt.Errorf("person %d: %w", p.ID, ErrNegativeID)
		}
		if _, ok := r.people[p.ID]; ok {
			return nil, &DuplicateIDError{Entity: EntityPerson, ID: p.ID}
		}
		r.people[p.ID] = p
		r.personIDs = append(r.personIDs, p.ID)
	}
	for _, f := range families {
		if f.ID < 0 {
			return nil, fmt.Errorf("family %d: %w", f.ID, ErrNegativeID)
		}
		if _, ok := r.families[f.ID]; ok {
			return nil, &DuplicateIDError{Entity: EntityFamily, ID: f.ID}
		}
		r.families[f.ID] = f
		r.familyIDs = append(r.familyIDs, f.ID)
	}
	for _, c := range communities {
		if c.ID < 0 {
			return nil, fmt.Errorf("community %d: %w", c.ID, ErrNegativeID)
		}
		if _, ok := r.communities[c.ID]; ok {
			return nil, &DuplicateIDError{Entity: EntityCommunity, ID: c.ID}
		}
		r.communities[c.ID] = c
		r.communityIDs = append(r.communityIDs, c.ID)
	}

	slices.Sort(r.personIDs)
	slices.Sort(r.familyIDs)
	slices.Sort(r.communityIDs)

	return r, nil
}

// Person resolves a person by ID.
func (r *Registry) Person(id int) (Person, bool) {
	p, ok := r.people[id]
	return p, ok
}

// Family resolves a family by ID.
func (r *Registry) Family(id int) (Family, bool) {
	f, ok := r.families[id]
	return f, ok
}

// Community resolves a community by ID.
func (r *Registry) Community(id int) (Community, bool) {
	c, ok := r.communities[id]
	return c, ok
}

// PersonIDs returns every person ID in ascending order.
func (r *Registry) PersonIDs() []int {
	return slices.Clone(r.personIDs)
}

// FamilyIDs returns every family ID in ascending order.
func (r *Registry) FamilyIDs() []int {
	return slices.Clone(r.familyIDs)
}

// CommunityIDs returns every community ID in ascending order.
func (r *Registry) CommunityIDs() []int {
	return slices.Clone(r.communityIDs)
}

// NumPeople reports how many people the registry holds.
func (r *Registry) NumPeople() int {
	return len(r.people)
}

// NumFamilies reports how many families the registry holds.
func (r *Registry) NumFamilies() int {
	return len(r.families)
}

// NumCommunities reports how many communities the registry holds.
func (r *Registry) NumCommunities() int {
	return len(r.communities)
}
