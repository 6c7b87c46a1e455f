package generator

import (
	"slices"

	"github.com/louisbranch/cordon/internal/sim/population"
)

// generateCommunities groups role-compatible people into communities of each
// configured type. Community IDs are dense across all types; member IDs
// within a community are ascending.
func (g *Generator) generateCommunities(people []population.Person, cfg PresetConfig) []population.Community {
	var communities []population.Community

	for _, typeName := range cfg.CommunityTypes {
		candidates := candidateIDs(people, typeName)
		g.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})

		for len(candidates) > 0 {
			size := g.randomRange(cfg.CommunitySizeMin, cfg.CommunitySizeMax)
			if size < 1 {
				size = 1
			}
			if size > len(candidates) {
				size = len(candidates)
			}

			members := slices.Clone(candidates[:size])
			slices.Sort(members)
			candidates = candidates[size:]

			communities = append(communities, population.Community{
				ID:        len(communities),
				TypeName:  typeName,
				PeopleIDs: members,
			})
		}
	}

	return communities
}

// candidateIDs selects the people eligible for one community type. Schools
// take students, workplaces take workers, anything else takes people old
// enough to join on their own.
func candidateIDs(people []population.Person, typeName string) []int {
	var ids []int
	for _, person := range people {
		switch typeName {
		case "school":
			if slices.Contains(person.Roles, "student") {
				ids = append(ids, person.ID)
			}
		case "workplace":
			if slices.Contains(person.Roles, "worker") {
				ids = append(ids, person.ID)
			}
		default:
			if person.Age >= 16 {
				ids = append(ids, person.ID)
			}
		}
	}
	return ids
}
