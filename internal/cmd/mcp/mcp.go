// Package mcp parses MCP command flags and starts the stdio server.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/cordon/internal/platform/cmd"
	"github.com/louisbranch/cordon/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	StorePath string `env:"CORDON_STORE_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "population database path (empty disables storage-backed tools)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(context.Context) error {
		return service.Run(ctx, service.Config{StorePath: cfg.StorePath})
	})
}
