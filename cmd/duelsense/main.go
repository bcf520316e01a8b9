// Package main provides a CLI for replaying Lua duel scenarios through the
// narration pipeline.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/quietpath/duelsense/internal/platform/config"

	duelsensecmd "github.com/quietpath/duelsense/internal/cmd/duelsense"
)

func main() {
	cfg, err := duelsensecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := duelsensecmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
