package generator

import "github.com/louisbranch/cordon/internal/sim/population"

// generateHouseholds partitions numPeople dense person IDs into families and
// fills in each member's demographic fields. The first member of every
// family is an adult so workplaces always have candidates.
func (g *Generator) generateHouseholds(numPeople int, cfg PresetConfig) ([]population.Person, []population.Family) {
	people := make([]population.Person, 0, numPeople)
	var families []population.Family

	nextPerson := 0
	for nextPerson < numPeople {
		size := g.randomRange(cfg.FamilySizeMin, cfg.FamilySizeMax)
		if size < 1 {
			size = 1
		}
		if remaining := numPeople - nextPerson; size > remaining {
			size = remaining
		}

		familyID := len(families)
		family := population.Family{
			ID:        familyID,
			PeopleIDs: make([]int, 0, size),
		}
		for i := 0; i < size; i++ {
			age := g.randomRange(1, 90)
			if i == 0 {
				age = g.randomRange(21, 65)
			}
			person := population.Person{
				ID:              nextPerson,
				Age:             age,
				Gender:          population.Gender(g.rng.Intn(2)),
				HealthCondition: 0.5 + g.rng.Float64()/2,
				FamilyID:        familyID,
				Roles:           rolesForAge(age),
			}
			people = append(people, person)
			family.PeopleIDs = append(family.PeopleIDs, person.ID)
			nextPerson++
		}
		families = append(families, family)
	}

	return people, families
}

// rolesForAge assigns simulation roles from age bands.
func rolesForAge(age int) []string {
	switch {
	case age < 5:
		return nil
	case age < 18:
		return []string{"student"}
	case age <= 65:
		return []string{"worker"}
	default:
		return nil
	}
}
