package app

import (
	"io"
	"os"
	"time"

	"github.com/1broseidon/wscycle/internal/config"
	"github.com/1broseidon/wscycle/internal/journal"
	"github.com/1broseidon/wscycle/internal/logging"
)

// NewLogger builds the logger described by cfg.Log. Console output goes to
// stderr; the real os.Stderr gets terminal detection, any other writer
// receives JSON lines.
func NewLogger(cfg *config.Config, stderr io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := []logging.Option{logging.WithLevel(level)}
	if f, ok := stderr.(*os.File); ok && f == os.Stderr {
		opts = append(opts, logging.WithConsole())
	} else {
		opts = append(opts, logging.WithWriter(stderr))
	}
	if cfg.Log.File != "" {
		opts = append(opts, logging.WithFile(cfg.Log.File))
	}
	return logging.New(opts...)
}

// OpenJournal opens the switch journal when cfg enables it. The journal is
// best-effort: on failure a warning is logged and nil is returned. The
// returned func closes the database and is always safe to call.
func OpenJournal(cfg *config.Config, log *logging.Logger) (*journal.Repository, func()) {
	noop := func() {}
	if !cfg.Journal.Enabled {
		return nil, noop
	}
	db, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		log.Warn("Journal unavailable", "path", cfg.Journal.Path, "error", err.Error())
		return nil, noop
	}
	if err := db.Initialize(); err != nil {
		log.Warn("Journal unavailable", "path", cfg.Journal.Path, "error", err.Error())
		db.Close()
		return nil, noop
	}
	return journal.NewRepository(db), func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close journal", "error", err.Error())
		}
	}
}

// Retention returns the pruning horizon for cfg.
func Retention(cfg *config.Config) time.Duration {
	if !cfg.Journal.Enabled {
		return 0
	}
	return cfg.Journal.Retention
}
