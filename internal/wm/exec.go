package wm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ExecBackend drives the window manager through swaymsg or i3-msg.
type ExecBackend struct {
	binary     string
	flavor     Flavor
	socketPath string
	timeout    time.Duration
}

// MsgBinary returns the command line client shipped with the flavor.
func MsgBinary(flavor Flavor) string {
	if flavor == FlavorI3 {
		return "i3-msg"
	}
	return "swaymsg"
}

// NewExecBackend locates the client for flavor on PATH. A non-empty
// socketPath is passed on with -s; otherwise the client finds the socket
// itself.
func NewExecBackend(flavor Flavor, socketPath string, timeout time.Duration) (*ExecBackend, error) {
	name := MsgBinary(flavor)
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return &ExecBackend{binary: path, flavor: flavor, socketPath: socketPath, timeout: timeout}, nil
}

func (b *ExecBackend) Name() string {
	return string(b.flavor) + " (exec)"
}

// Tree runs "<client> -t get_tree". stderr is discarded; only stdout is
// parsed.
func (b *ExecBackend) Tree(ctx context.Context) ([]byte, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.binary, b.args("-t", "get_tree")...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s get_tree failed: %w", b.binary, err)
	}
	return postProcess(b.flavor, out)
}

// Focus runs "<client> [con_id=N] focus". A non-zero exit with a parseable
// reply reports the manager's message.
func (b *ExecBackend) Focus(ctx context.Context, id int64) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.binary, b.args(fmt.Sprintf("[con_id=%d]", id), "focus")...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, runErr := cmd.Output()

	if reply := bytes.TrimSpace(out); len(reply) > 0 {
		if err := parseCommandReply(reply); err != nil {
			return err
		}
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = exitErr.Error()
			}
			return fmt.Errorf("%w: %s", ErrCommandFailed, msg)
		}
		return fmt.Errorf("%s focus failed: %w", b.binary, runErr)
	}
	return nil
}

func (b *ExecBackend) Close() error {
	return nil
}

// args builds the client arguments. swaymsg gets -r so it prints raw JSON
// even on a terminal.
func (b *ExecBackend) args(rest ...string) []string {
	var args []string
	if b.socketPath != "" {
		args = append(args, "-s", b.socketPath)
	}
	if b.flavor != FlavorI3 {
		args = append(args, "-r")
	}
	return append(args, rest...)
}

func (b *ExecBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}
