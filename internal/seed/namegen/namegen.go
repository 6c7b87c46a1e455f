// Package namegen provides town name generation for labeling seeded
// population fixtures.
package namegen

import (
	"fmt"
	"math/rand"
)

// NameGen generates human-readable names for stored populations.
type NameGen struct {
	rng *rand.Rand
}

// New creates a NameGen with the given random source.
func New(rng *rand.Rand) *NameGen {
	return &NameGen{rng: rng}
}

// TownName generates a small-town name like "Cedar Hollow".
func (n *NameGen) TownName() string {
	first := townFirstWords[n.rng.Intn(len(townFirstWords))]
	second := townSecondWords[n.rng.Intn(len(townSecondWords))]
	return fmt.Sprintf("%s %s", first, second)
}
