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
	"github.com/1broseidon/wscycle/internal/mcp"
	"github.com/1broseidon/wscycle/internal/wm"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wscycle-mcp")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Start the wscycle MCP server on stdio. Designed to be invoked by MCP")
	fmt.Fprintln(w, "clients; it exposes the plan_focus, cycle_focus and recent_switches tools.")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "help", "-h", "--help":
			printUsage(stdout)
			return 0
		}
		fmt.Fprintln(stderr, "wscycle-mcp takes no arguments")
		fmt.Fprintln(stderr, "")
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
	server := mcp.NewServer(runner, repo, log)
	log.Info("MCP server starting", "backend", backend.Name())
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("MCP server error", err)
		fmt.Fprintf(stderr, "MCP server error: %v\n", err)
		return 1
	}
	return 0
}
