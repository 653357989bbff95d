package wm

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/1broseidon/wscycle/internal/config"
	"github.com/1broseidon/wscycle/internal/logging"
	"github.com/1broseidon/wscycle/internal/runtimepath"
	"github.com/1broseidon/wscycle/internal/x11"
)

// Resolver holds the discovery hooks Open uses. The zero value reads the
// real environment.
type Resolver struct {
	// RootProperty reads an X11 root window property; nil uses x11.
	RootProperty runtimepath.RootPropertyFunc
}

// Open builds the backend described by cfg.
func Open(ctx context.Context, cfg *config.Config, log *logging.Logger) (Backend, error) {
	return Resolver{}.Open(ctx, cfg, log)
}

func (r Resolver) Open(ctx context.Context, cfg *config.Config, log *logging.Logger) (Backend, error) {
	if log == nil {
		log = logging.Nop()
	}
	rootProperty := r.RootProperty
	if rootProperty == nil {
		rootProperty = x11.RootPropertyStandalone
	}

	switch cfg.Transport {
	case config.TransportExec:
		flavor := execFlavor(cfg.Backend)
		b, err := NewExecBackend(flavor, cfg.SocketPath, cfg.Timeout)
		if err != nil {
			log.Error("Window manager client not available", err, "flavor", flavor)
			return nil, err
		}
		log.Debug("Using command line backend", "binary", b.binary)
		return b, nil
	case config.TransportSocket:
		return r.openSocket(ctx, cfg, rootProperty, log)
	default:
		return nil, fmt.Errorf("unsupported transport %q", cfg.Transport)
	}
}

func (r Resolver) openSocket(ctx context.Context, cfg *config.Config, rootProperty runtimepath.RootPropertyFunc, log *logging.Logger) (Backend, error) {
	if cfg.SocketPath != "" {
		flavor := Flavor(cfg.Backend)
		b := NewSocketBackend(cfg.SocketPath, FlavorSway, cfg.Timeout)
		if cfg.Backend == config.BackendAuto {
			info, err := b.Version(ctx)
			if err != nil {
				b.Close()
				return nil, fmt.Errorf("failed to probe %s: %w", cfg.SocketPath, err)
			}
			flavor = info.Flavor()
			log.Debug("Probed window manager", "version", info.HumanReadable, "flavor", flavor)
		}
		b.flavor = flavor
		return b, nil
	}

	switch cfg.Backend {
	case config.BackendSway:
		path, err := runtimepath.SwaySocket()
		if err != nil {
			return nil, err
		}
		return NewSocketBackend(path, FlavorSway, cfg.Timeout), nil
	case config.BackendI3:
		path, err := runtimepath.I3Socket(rootProperty)
		if err != nil {
			return nil, err
		}
		return NewSocketBackend(path, FlavorI3, cfg.Timeout), nil
	}

	// auto: sway first, then i3.
	if path, err := runtimepath.SwaySocket(); err == nil {
		log.Debug("Found sway socket", "path", path)
		return NewSocketBackend(path, FlavorSway, cfg.Timeout), nil
	}
	path, err := runtimepath.I3Socket(rootProperty)
	if err != nil {
		return nil, fmt.Errorf("%w: tried sway and i3", ErrNoSocket)
	}
	log.Debug("Found i3 socket", "path", path)
	return NewSocketBackend(path, FlavorI3, cfg.Timeout), nil
}

// execFlavor picks the command line client when the backend is auto: the
// session's socket variable wins, then whichever client is installed.
func execFlavor(backend config.Backend) Flavor {
	switch backend {
	case config.BackendSway:
		return FlavorSway
	case config.BackendI3:
		return FlavorI3
	}
	if os.Getenv("SWAYSOCK") != "" {
		return FlavorSway
	}
	if os.Getenv("I3SOCK") != "" {
		return FlavorI3
	}
	if _, err := exec.LookPath("swaymsg"); err == nil {
		return FlavorSway
	}
	return FlavorI3
}
