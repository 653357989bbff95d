package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Backend != BackendAuto || cfg.Transport != TransportSocket {
		t.Fatalf("unexpected defaults: %s", cfg)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Fatalf("timeout = %s, want %s", cfg.Timeout, DefaultTimeout)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Fatalf("log.level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestLoadFromPath_AllKeys(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"backend: i3",
		"transport: exec",
		"socket_path: /run/user/1000/i3/ipc-socket.1",
		"timeout: 500ms",
		"log:",
		"  level: debug",
		"  file: /tmp/wscycle.log",
		"journal:",
		"  enabled: true",
		"  path: /tmp/journal.db",
		"  retention: 48h",
		"",
	}, "\n"))

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendI3 || cfg.Transport != TransportExec {
		t.Fatalf("backend/transport = %s/%s", cfg.Backend, cfg.Transport)
	}
	if cfg.SocketPath != "/run/user/1000/i3/ipc-socket.1" {
		t.Fatalf("socket_path = %q", cfg.SocketPath)
	}
	if cfg.Timeout != 500*time.Millisecond {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/wscycle.log" {
		t.Fatalf("log = %+v", cfg.Log)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Path != "/tmp/journal.db" || cfg.Journal.Retention != 48*time.Hour {
		t.Fatalf("journal = %+v", cfg.Journal)
	}
}

func TestLoadFromPath_UnknownKeyIncludesPath(t *testing.T) {
	path := writeConfig(t, "hotkey: Mod4-t\n")
	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), "hotkey") {
		t.Fatalf("error %q should mention file and key", err)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantKey string
	}{
		{"backend", "backend: hyprland\n", "backend"},
		{"transport", "transport: dbus\n", "transport"},
		{"timeout too small", "timeout: 10ms\n", "timeout"},
		{"timeout too large", "timeout: 5m\n", "timeout"},
		{"log level", "log:\n  level: verbose\n", "log.level"},
		{"negative retention", "journal:\n  retention: -1h\n", "journal.retention"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := LoadFromPath(path)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Path != tt.wantKey || ve.File != path {
				t.Fatalf("error at %s:%s, want %s:%s", ve.File, ve.Path, path, tt.wantKey)
			}
		})
	}
}

func TestLoadFromPath_JournalPathDefault(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg, err := LoadFromPath(writeConfig(t, "journal:\n  enabled: true\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := filepath.Join(data, "wscycle", "journal.db")
	if cfg.Journal.Path != want {
		t.Fatalf("journal.path = %q, want %q", cfg.Journal.Path, want)
	}
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if want := filepath.Join(dir, "wscycle", "config.yaml"); got != want {
		t.Fatalf("DefaultConfigPath() = %q, want %q", got, want)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "wscycle"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := "backend: i3\ntimeout: 1s\n"
	if err := os.WriteFile(filepath.Join(dir, "wscycle", "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvBackend, "SWAY")
	t.Setenv(EnvTimeout, "750ms")
	t.Setenv(EnvSocket, "/tmp/sway.sock")
	t.Setenv(EnvTransport, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != BackendSway {
		t.Fatalf("backend = %q, want sway", cfg.Backend)
	}
	if cfg.Timeout != 750*time.Millisecond {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if cfg.SocketPath != "/tmp/sway.sock" {
		t.Fatalf("socket_path = %q", cfg.SocketPath)
	}
	if cfg.Transport != TransportSocket {
		t.Fatalf("empty env var should not override transport, got %q", cfg.Transport)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"timeout": {EnvTimeout, "soon"},
		"journal": {EnvJournal, "maybe"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			err := LoadFromEnv(DefaultConfig())
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConfig_String(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.String()
	for _, want := range []string{"backend=auto", "transport=socket", "socket=<discover>", "timeout=2s", "journal=off"} {
		if !strings.Contains(s, want) {
			t.Fatalf("String() = %q, missing %q", s, want)
		}
	}
}
