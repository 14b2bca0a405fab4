// Command userreconcile finds secondary user records that no longer match the
// authoritative user table and produces a review or removal directives.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/osse101/userreconcile/internal/config"
	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/logger"
	"github.com/osse101/userreconcile/internal/metrics"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}

	log := initLogger(cfg, stderr)
	defer log.Close()

	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	a := &app{
		cfg:     cfg,
		log:     log.Logger,
		metrics: metrics.New(),
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		prompt: func(label string) (string, error) {
			return promptPassword(os.Stdin, stderr, label)
		},
		details: make(map[string]interface{}),
		now:     time.Now,
	}
	registry := newRegistry(a)

	if len(args) < 1 {
		log.Error("No command given")
		registry.PrintHelp(stderr)
		return 1
	}

	cmd, ok := registry.Get(args[0])
	if !ok {
		log.Error("Unknown command", "command", args[0])
		registry.PrintHelp(stderr)
		return 1
	}

	runID := logger.GenerateRunID()
	ctx := logger.WithRunID(context.Background(), runID)
	a.log = log.With("command", cmd.Name())

	started := a.now()
	err = cmd.Run(ctx, args[1:])
	a.finish(ctx, runID, cmd.Name(), started, err)

	clog := logger.FromContext(ctx, a.log)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrUsage):
		clog.Error(err.Error())
		registry.PrintHelp(stderr)
	default:
		clog.Error("Command failed", "error", err)
	}
	return 1
}

func newRegistry(a *app) *Registry {
	r := NewRegistry()
	r.Register(&loadAuthoritativeCommand{app: a}, "loadlms")
	r.Register(&loadSecondaryCommand{app: a}, "loadcs")
	r.Register(&checkCommand{app: a})
	r.Register(&fixCommand{app: a})
	r.Register(&statusCommand{app: a})
	r.Register(&indexCommand{app: a})
	r.Register(&purgeCommand{app: a})
	return r
}
