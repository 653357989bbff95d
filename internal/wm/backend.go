// Package wm talks to the tiling window manager: it fetches the layout tree
// and issues focus commands, either over the i3-ipc socket or through the
// swaymsg/i3-msg command line tools.
package wm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/wscycle/internal/runtimepath"
)

// Backend is the window manager as seen by the runner.
type Backend interface {
	Name() string
	// Tree returns the raw GET_TREE document, already normalised to the
	// sway node types.
	Tree(ctx context.Context) ([]byte, error)
	Focus(ctx context.Context, id int64) error
	Close() error
}

// Flavor is the window manager dialect.
type Flavor string

const (
	FlavorSway Flavor = "sway"
	FlavorI3   Flavor = "i3"
)

var (
	// ErrNoSocket means no IPC socket could be located.
	ErrNoSocket = runtimepath.ErrNoSocket
	// ErrCommandFailed means the window manager rejected a command.
	ErrCommandFailed = errors.New("window manager command failed")
)

// FocusCommand is the command that focuses the container with the given id.
func FocusCommand(id int64) string {
	return fmt.Sprintf("[con_id=%d] focus", id)
}

type commandOutcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// parseCommandReply checks a RUN_COMMAND reply. Every command in the reply
// must have succeeded.
func parseCommandReply(data []byte) error {
	var outcomes []commandOutcome
	if err := json.Unmarshal(data, &outcomes); err != nil {
		return fmt.Errorf("failed to parse command reply: %w", err)
	}
	if len(outcomes) == 0 {
		return fmt.Errorf("%w: empty reply", ErrCommandFailed)
	}
	var msgs []string
	for _, o := range outcomes {
		if o.Success {
			continue
		}
		msg := o.Error
		if msg == "" {
			msg = "unknown error"
		}
		msgs = append(msgs, msg)
	}
	if len(msgs) > 0 {
		return fmt.Errorf("%w: %s", ErrCommandFailed, strings.Join(msgs, "; "))
	}
	return nil
}

// postProcess adapts a raw tree to the sway shape the model expects.
func postProcess(flavor Flavor, data []byte) ([]byte, error) {
	if flavor != FlavorI3 {
		return data, nil
	}
	return NormalizeI3Tree(data)
}
