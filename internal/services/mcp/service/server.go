package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/cordon/internal/platform/branding"
	"github.com/louisbranch/cordon/internal/sim/population/storage"
	"github.com/louisbranch/cordon/internal/sim/population/storage/sqlite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// Config configures the MCP server.
type Config struct {
	// StorePath locates the population database. Empty runs the server
	// without storage; tools that need a population then report the
	// missing store per call instead of failing startup, which keeps
	// inspect_vector usable on its own.
	StorePath string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	store     *sqlite.Store
}

// New creates a configured MCP server backed by the population store at
// cfg.StorePath, when one is configured.
func New(cfg Config) (*Server, error) {
	var store *sqlite.Store
	if cfg.StorePath != "" {
		var err error
		store, err = sqlite.Open(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open population store %s: %w", cfg.StorePath, err)
		}
	}
	return newServer(store), nil
}

// newServer creates MCP tool handler bindings once.
func newServer(store *sqlite.Store) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	// A nil *sqlite.Store must become a nil interface here, so handlers
	// report the missing store instead of calling through it.
	var reads storage.Store
	if store != nil {
		reads = store
	}
	registerVectorTools(mcpServer, reads)
	registerPopulationTools(mcpServer, reads)

	return &Server{mcpServer: mcpServer, store: store}
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation. The protocol runs over stdio; stdout carries nothing else
// while the server is up.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the population store held by the server.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return err
	}
	s.store = nil
	return nil
}

// serveWithTransport starts the MCP server using the provided transport.
// Serving and the store share a single exit path so cleanup behavior is the
// same however the server is driven.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close population store: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close population store: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
