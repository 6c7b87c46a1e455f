package generator

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/louisbranch/cordon/internal/platform/random"
)

// NewSeededRNG creates a seeded random number generator. If seed is 0, a
// crypto-derived seed is drawn instead and returned so runs can be replayed.
func NewSeededRNG(seed int64, verbose bool) (*rand.Rand, int64) {
	if seed == 0 {
		drawn, err := random.NewSeed()
		if err != nil {
			drawn = time.Now().UnixNano()
		}
		seed = drawn
		if verbose {
			fmt.Fprintf(os.Stderr, "Using seed: %d\n", seed)
		}
	}
	return rand.New(rand.NewSource(seed)), seed
}
