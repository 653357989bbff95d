package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Backend selects the window manager dialect.
type Backend string

const (
	BackendAuto Backend = "auto"
	BackendSway Backend = "sway"
	BackendI3   Backend = "i3"
)

// Transport selects how wscycle talks to the window manager.
type Transport string

const (
	TransportSocket Transport = "socket"
	TransportExec   Transport = "exec"
)

const (
	DefaultTimeout   = 2 * time.Second
	MinTimeout       = 100 * time.Millisecond
	MaxTimeout       = 30 * time.Second
	DefaultRetention = 30 * 24 * time.Hour
	DefaultLogLevel  = "warn"
)

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// JournalConfig controls the optional sqlite switch journal.
type JournalConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Path      string        `yaml:"path,omitempty"`
	Retention time.Duration `yaml:"retention"`
}

// Config holds the application configuration.
type Config struct {
	Backend    Backend       `yaml:"backend"`
	Transport  Transport     `yaml:"transport"`
	SocketPath string        `yaml:"socket_path,omitempty"`
	Timeout    time.Duration `yaml:"timeout"`
	Log        LogConfig     `yaml:"log"`
	Journal    JournalConfig `yaml:"journal"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:   BackendAuto,
		Transport: TransportSocket,
		Timeout:   DefaultTimeout,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Journal: JournalConfig{
			Enabled:   false,
			Retention: DefaultRetention,
		},
	}
}

// ValidationError points at the offending key.
type ValidationError struct {
	Path string
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalid, e.Err}
}

// Validate checks enum values and ranges.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendSway, BackendI3:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, sway, i3 (got %q)", c.Backend)}
	}
	switch c.Transport {
	case TransportSocket, TransportExec:
	default:
		return &ValidationError{Path: "transport", Err: fmt.Errorf("transport must be one of: socket, exec (got %q)", c.Transport)}
	}
	if c.Timeout < MinTimeout || c.Timeout > MaxTimeout {
		return &ValidationError{Path: "timeout", Err: fmt.Errorf("timeout must be between %s and %s (got %s)", MinTimeout, MaxTimeout, c.Timeout)}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log.level", Err: fmt.Errorf("log.level must be one of: debug, info, warn, error")}
	}
	if c.Journal.Retention < 0 {
		return &ValidationError{Path: "journal.retention", Err: fmt.Errorf("journal.retention must be >= 0")}
	}
	return nil
}

// String renders the effective settings on one line.
func (c *Config) String() string {
	socket := c.SocketPath
	if socket == "" {
		socket = "<discover>"
	}
	journal := "off"
	if c.Journal.Enabled {
		journal = fmt.Sprintf("%s (retention %s)", c.Journal.Path, c.Journal.Retention)
	}
	return fmt.Sprintf("backend=%s transport=%s socket=%s timeout=%s log.level=%s journal=%s",
		c.Backend, c.Transport, socket, c.Timeout, c.Log.Level, journal)
}
