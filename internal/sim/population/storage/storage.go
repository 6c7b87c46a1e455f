// Package storage defines persistence contracts for population snapshots.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/cordon/internal/sim/population"
)

var (
	// ErrNotFound indicates a requested population record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained population already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Population stores metadata for one saved population snapshot.
type Population struct {
	ID             string
	Name           string
	Seed           int64
	NumPeople      int
	NumFamilies    int
	NumCommunities int
	CreatedAt      time.Time
}

// PopulationPage stores one page of population records.
type PopulationPage struct {
	Populations   []Population
	NextPageToken string
}

// Store persists population snapshots and rebuilds registries from them.
type Store interface {
	SavePopulation(ctx context.Context, pop Population, snapshot population.Snapshot) error
	GetPopulation(ctx context.Context, id string) (Population, error)
	ListPopulations(ctx context.Context, pageSize int, pageToken string) (PopulationPage, error)
	LoadRegistry(ctx context.Context, id string) (*population.Registry, error)
}
