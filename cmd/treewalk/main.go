// Package main is the entry point for the treewalk application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joe/treewalk/internal/config"
	"github.com/joe/treewalk/internal/util"
)

func main() {
	// Parse configuration
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	util.InitializeLogger(logLevelFor(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, cfg, streams{out: os.Stdout, errOut: os.Stderr})

	stop()
	os.Exit(code)
}
