// Package decoder parses decoder command flags and runs one decode pass.
package decoder

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	entrypoint "github.com/louisbranch/cordon/internal/platform/cmd"
	"github.com/louisbranch/cordon/internal/sim/document"
	"github.com/louisbranch/cordon/internal/sim/population"
	"github.com/louisbranch/cordon/internal/sim/population/storage/sqlite"
	"github.com/louisbranch/cordon/internal/sim/simtime"
	"github.com/louisbranch/cordon/internal/sim/vector"
)

// Config holds decoder command configuration.
type Config struct {
	In           string `env:"CORDON_DECODER_IN"         envDefault:"-"`
	Out          string `env:"CORDON_DECODER_OUT"`
	StorePath    string `env:"CORDON_STORE_PATH"`
	PopulationID string `env:"CORDON_DECODER_POPULATION"`
	SnapshotPath string `env:"CORDON_DECODER_SNAPSHOT"`
	SimTime      int64  `env:"CORDON_DECODER_SIM_TIME"   envDefault:"-1"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.In, "in", cfg.In, "vector file to decode (- reads stdin)")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "write the document here instead of stdout")
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "population database path")
	fs.StringVar(&cfg.PopulationID, "population", cfg.PopulationID, "population id inside the database")
	fs.StringVar(&cfg.SnapshotPath, "snapshot", cfg.SnapshotPath, "population snapshot JSON file (instead of a database)")
	fs.Int64Var(&cfg.SimTime, "sim-time", cfg.SimTime, "simulation time as unix seconds (negative uses the wall clock)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run decodes one vector against a population and writes the command
// document. Input is read from in when the config selects stdin; stdout
// output goes to out.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDecoder, func(context.Context) error {
		return run(ctx, cfg, in, out)
	})
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	vec, err := readVector(cfg.In, in)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	clock := simtime.System()
	if cfg.SimTime >= 0 {
		clock = simtime.Fixed(simtime.FromUnix(cfg.SimTime))
	}
	dec := &vector.Decoder{Clock: clock}
	commands, err := dec.Decode(vec, reg)
	if err != nil {
		return fmt.Errorf("decode vector: %w", err)
	}
	data, err := document.Marshal(commands)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return writeDocument(cfg.Out, out, data)
}

func readVector(path string, stdin io.Reader) ([]int, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read vector from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read vector %s: %w", path, err)
		}
	}
	return parseVector(data)
}

// parseVector accepts either a JSON array of integers or integers separated
// by whitespace or commas.
func parseVector(data []byte) ([]int, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var vec []int
		if err := json.Unmarshal([]byte(trimmed), &vec); err != nil {
			return nil, fmt.Errorf("parse vector JSON: %w", err)
		}
		return vec, nil
	}
	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	vec := make([]int, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("parse vector value %q: %w", field, err)
		}
		vec = append(vec, value)
	}
	return vec, nil
}

// loadRegistry resolves the population source. A snapshot file wins over the
// database; decoding without a population is an error because target
// resolution would have nothing to look IDs up in.
func loadRegistry(ctx context.Context, cfg Config) (*population.Registry, error) {
	snapshotPath := strings.TrimSpace(cfg.SnapshotPath)
	storePath := strings.TrimSpace(cfg.StorePath)
	switch {
	case snapshotPath != "":
		return registryFromSnapshot(snapshotPath)
	case storePath != "":
		populationID := strings.TrimSpace(cfg.PopulationID)
		if populationID == "" {
			return nil, fmt.Errorf("population id is required when decoding against a database")
		}
		store, err := sqlite.Open(storePath)
		if err != nil {
			return nil, fmt.Errorf("open population store %s: %w", storePath, err)
		}
		defer store.Close()
		reg, err := store.LoadRegistry(ctx, populationID)
		if err != nil {
			return nil, fmt.Errorf("load population %s: %w", populationID, err)
		}
		return reg, nil
	default:
		return nil, fmt.Errorf("a population source is required (set -snapshot, or -store and -population)")
	}
}

func registryFromSnapshot(path string) (*population.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	var snapshot population.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	reg, err := snapshot.Registry()
	if err != nil {
		return nil, fmt.Errorf("validate snapshot %s: %w", path, err)
	}
	return reg, nil
}

func writeDocument(path string, stdout io.Writer, data []byte) error {
	if strings.TrimSpace(path) == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(stdout)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}
