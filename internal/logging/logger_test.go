package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{" error ", zerolog.ErrorLevel, false},
		{"trace", zerolog.NoLevel, true},
		{"", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_WritesFieldsAsJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(WithWriter(&buf), WithLevel(zerolog.DebugLevel))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer log.Close()

	log.Error("focus failed", errors.New("boom"), "target", int64(42), "dangling")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "error" || entry["message"] != "focus failed" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["error"] != "boom" {
		t.Fatalf("error field = %v, want boom", entry["error"])
	}
	if entry["target"] != float64(42) {
		t.Fatalf("target field = %v, want 42", entry["target"])
	}
	if _, ok := entry["dangling"]; ok {
		t.Fatalf("dangling key should be skipped")
	}
	if entry["file"] != "logger_test.go" {
		t.Fatalf("file field = %v, want logger_test.go", entry["file"])
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(WithWriter(&buf), WithLevel(zerolog.WarnLevel))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hidden")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn entry missing: %q", buf.String())
	}
}

func TestLogger_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wscycle.log")
	log, err := New(WithFile(path), WithLevel(zerolog.InfoLevel))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("switched", "to", 7)
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "switched") || !strings.Contains(string(data), "to=7") {
		t.Fatalf("unexpected log file contents: %q", data)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("ignored", errors.New("x"))
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
