package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables that override the file.
const (
	EnvBackend   = "WSCYCLE_BACKEND"
	EnvTransport = "WSCYCLE_TRANSPORT"
	EnvSocket    = "WSCYCLE_SOCKET"
	EnvTimeout   = "WSCYCLE_TIMEOUT"
	EnvLogLevel  = "WSCYCLE_LOG_LEVEL"
	EnvJournal   = "WSCYCLE_JOURNAL"
)

// LoadFromEnv applies WSCYCLE_* overrides to cfg. Unset or empty variables
// leave the value alone.
func LoadFromEnv(cfg *Config) error {
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = Backend(strings.ToLower(v))
	}
	if v := os.Getenv(EnvTransport); v != "" {
		cfg.Transport = Transport(strings.ToLower(v))
	}
	if v := os.Getenv(EnvSocket); v != "" {
		cfg.SocketPath = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ValidationError{Path: EnvTimeout, Err: err}
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvJournal); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Path: EnvJournal, Err: fmt.Errorf("expected a boolean: %w", err)}
		}
		cfg.Journal.Enabled = enabled
	}
	return nil
}
