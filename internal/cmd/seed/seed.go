// Package seed parses seed command flags and writes generated populations
// into the development database.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/louisbranch/cordon/internal/platform/cmd"
	"github.com/louisbranch/cordon/internal/platform/id"
	"github.com/louisbranch/cordon/internal/seed/generator"
	"github.com/louisbranch/cordon/internal/sim/population/storage"
	"github.com/louisbranch/cordon/internal/sim/population/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	StorePath string `env:"CORDON_STORE_PATH"  envDefault:"cordon.db"`
	Name      string `env:"CORDON_SEED_NAME"`
	Preset    string `env:"CORDON_SEED_PRESET" envDefault:"village"`
	Seed      int64
	People    int
	Verbose   bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "population database path")
	fs.StringVar(&cfg.Name, "name", cfg.Name, "population name (empty draws a town name)")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "generation preset (village, town, city)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	fs.IntVar(&cfg.People, "people", cfg.People, "number of people to generate (0 = preset default)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates one population and saves it to the store, printing a
// summary to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	preset := generator.Preset(strings.TrimSpace(cfg.Preset))
	if err := validatePreset(preset); err != nil {
		return err
	}

	gen := generator.New(generator.Config{
		Preset:  preset,
		Seed:    cfg.Seed,
		People:  cfg.People,
		Verbose: cfg.Verbose,
	})
	snapshot, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("generate population: %w", err)
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = gen.TownName()
	}
	populationID, err := id.NewID()
	if err != nil {
		return fmt.Errorf("new population id: %w", err)
	}

	store, err := sqlite.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open population store %s: %w", cfg.StorePath, err)
	}
	defer store.Close()

	pop := storage.Population{ID: populationID, Name: name, Seed: gen.Seed()}
	if err := store.SavePopulation(ctx, pop, snapshot); err != nil {
		return fmt.Errorf("save population %q: %w", name, err)
	}

	fmt.Fprintf(out, "Seeded population %q (%s)\n", name, populationID)
	fmt.Fprintf(out, "  preset: %s, seed: %d\n", preset, gen.Seed())
	fmt.Fprintf(out, "  people: %d, families: %d, communities: %d\n",
		len(snapshot.People), len(snapshot.Families), len(snapshot.Communities))
	return nil
}

func validatePreset(preset generator.Preset) error {
	switch preset {
	case generator.PresetVillage, generator.PresetTown, generator.PresetCity:
		return nil
	}
	return fmt.Errorf("unknown preset %q (valid presets: village, town, city)", preset)
}
