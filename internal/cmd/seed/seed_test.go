package seed

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/cordon/internal/sim/population/storage"
	"github.com/louisbranch/cordon/internal/sim/population/storage/sqlite"
)

// readSeededPopulation returns the single population the run stored.
func readSeededPopulation(t *testing.T, storePath string) storage.Population {
	t.Helper()

	store, err := sqlite.Open(storePath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	page, err := store.ListPopulations(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("list populations: %v", err)
	}
	if len(page.Populations) != 1 {
		t.Fatalf("stored %d populations, want 1", len(page.Populations))
	}
	return page.Populations[0]
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.StorePath != "cordon.db" {
		t.Fatalf("expected default store path, got %q", cfg.StorePath)
	}
	if cfg.Preset != "village" {
		t.Fatalf("expected default preset village, got %q", cfg.Preset)
	}
	if cfg.Seed != 0 || cfg.People != 0 || cfg.Verbose {
		t.Fatalf("expected zero generation overrides, got %+v", cfg)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	args := []string{
		"-store", "fixtures.db",
		"-name", "Testville",
		"-preset", "town",
		"-seed", "42",
		"-people", "120",
		"-v",
	}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	want := Config{
		StorePath: "fixtures.db",
		Name:      "Testville",
		Preset:    "town",
		Seed:      42,
		People:    120,
		Verbose:   true,
	}
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestRunSeedsStore(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "cordon.db")
	cfg := Config{
		StorePath: storePath,
		Name:      "Testville",
		Preset:    "village",
		Seed:      7,
	}

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `Seeded population "Testville"`) {
		t.Fatalf("summary %q does not mention the population name", out.String())
	}
	if !strings.Contains(out.String(), "seed: 7") {
		t.Fatalf("summary %q does not mention the seed", out.String())
	}

	pop := readSeededPopulation(t, storePath)
	if pop.Name != "Testville" {
		t.Fatalf("stored name = %q, want Testville", pop.Name)
	}
	if pop.Seed != 7 {
		t.Fatalf("stored seed = %d, want 7", pop.Seed)
	}
	if pop.NumPeople == 0 || pop.NumFamilies == 0 || pop.NumCommunities == 0 {
		t.Fatalf("stored counts are empty: %+v", pop)
	}
}

func TestRunDrawsNameWhenUnset(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "cordon.db")
	cfg := Config{StorePath: storePath, Preset: "village", Seed: 11}

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	pop := readSeededPopulation(t, storePath)
	if strings.TrimSpace(pop.Name) == "" {
		t.Fatal("expected a generated population name")
	}
	if !strings.Contains(out.String(), pop.Name) {
		t.Fatalf("summary %q does not mention generated name %q", out.String(), pop.Name)
	}
}

func TestRunRejectsUnknownPreset(t *testing.T) {
	cfg := Config{
		StorePath: filepath.Join(t.TempDir(), "cordon.db"),
		Preset:    "metropolis",
	}
	err := Run(context.Background(), cfg, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Fatalf("expected preset error, got %v", err)
	}
}
