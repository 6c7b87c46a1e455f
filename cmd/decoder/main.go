// Package main provides a CLI that decodes one command vector into a
// command document, resolving targets against a stored population.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	decodercmd "github.com/louisbranch/cordon/internal/cmd/decoder"
	"github.com/louisbranch/cordon/internal/platform/config"
)

func main() {
	cfg, err := decodercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[DECODER] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := decodercmd.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		config.Exitf("decode: %v", err)
	}
}
