package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/wscycle/internal/app"
	"github.com/1broseidon/wscycle/internal/config"
	"github.com/1broseidon/wscycle/internal/focus"
	"github.com/1broseidon/wscycle/internal/wm"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wscycle <next|prev>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Focus the next or previous window of the focused workspace, wrapping")
	fmt.Fprintln(w, "around at the ends. Windows are ordered depth-first as they appear in")
	fmt.Fprintln(w, "the layout tree.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Configuration: $XDG_CONFIG_HOME/wscycle/config.yaml")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 1 {
		switch args[0] {
		case "help", "-h", "--help":
			printUsage(stdout)
			return 0
		}
	}
	if len(args) != 1 {
		printUsage(stderr)
		return 2
	}
	dir, err := focus.ParseDirection(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "%v\n\n", err)
		printUsage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	log, err := app.NewLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer log.Close()
	log.Debug("Loaded config", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := wm.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to reach window manager: %v\n", err)
		return 1
	}
	defer backend.Close()

	repo, closeJournal := app.OpenJournal(cfg, log)
	defer closeJournal()

	runner := &app.Runner{
		Backend:   backend,
		Journal:   repo,
		Retention: app.Retention(cfg),
		Logger:    log,
	}

	// A broken tree invariant is a bug: record it, then crash.
	defer func() {
		if r := recover(); r != nil {
			if v, ok := r.(focus.InvariantViolation); ok {
				log.Error("Layout tree invariant violated", v)
			}
			panic(r)
		}
	}()

	if _, err := runner.Run(ctx, dir); err != nil {
		fmt.Fprintf(stderr, "wscycle %s: %v\n", dir, err)
		return 1
	}
	return 0
}
