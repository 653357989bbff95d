package wm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/1broseidon/wscycle/internal/config"
	"github.com/1broseidon/wscycle/internal/wm"
	"github.com/1broseidon/wscycle/internal/wm/wmtest"
)

func TestOpen_ExplicitSocketProbesFlavor(t *testing.T) {
	srv := wmtest.NewServer(t, fixture(t, "i3_tree.json"))
	srv.SetVersion(wm.VersionInfo{Major: 4, Minor: 23, HumanReadable: "4.23"})

	cfg := config.DefaultConfig()
	cfg.SocketPath = srv.Path

	b, err := wm.Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()
	if b.Name() != "i3 (socket)" {
		t.Fatalf("Name() = %q, want i3 (socket)", b.Name())
	}
	if n := srv.Connections(); n != 1 {
		t.Fatalf("probe connection should be reused, got %d connections", n)
	}
}

func TestOpen_ExplicitBackendSkipsProbe(t *testing.T) {
	srv := wmtest.NewServer(t, fixture(t, "sway_tree.json"))

	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendSway
	cfg.SocketPath = srv.Path

	b, err := wm.Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()
	if n := srv.Connections(); n != 0 {
		t.Fatalf("expected no probe, got %d connections", n)
	}
}

func TestOpen_AutoUsesSwaySock(t *testing.T) {
	srv := wmtest.NewServer(t, fixture(t, "sway_tree.json"))
	t.Setenv("SWAYSOCK", srv.Path)

	b, err := wm.Open(context.Background(), config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()
	sb, ok := b.(*wm.SocketBackend)
	if !ok || sb.SocketPath() != srv.Path {
		t.Fatalf("backend = %#v, want socket backend on %s", b, srv.Path)
	}
}

func TestOpen_AutoFallsBackToI3(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("SWAYSOCK", "")
	t.Setenv("I3SOCK", "")
	t.Setenv("DISPLAY", ":9")

	r := wm.Resolver{RootProperty: func(name string) (string, error) {
		return "/run/user/1000/i3/ipc-socket.77", nil
	}}
	b, err := r.Open(context.Background(), config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()
	if b.Name() != "i3 (socket)" {
		t.Fatalf("Name() = %q", b.Name())
	}
}

func TestOpen_NoSocket(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("SWAYSOCK", "")
	t.Setenv("I3SOCK", "")
	t.Setenv("DISPLAY", "")

	_, err := wm.Open(context.Background(), config.DefaultConfig(), nil)
	if !errors.Is(err, wm.ErrNoSocket) {
		t.Fatalf("expected ErrNoSocket, got %v", err)
	}
}
