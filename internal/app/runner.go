// Package app ties the window manager backend, the layout model and the
// focus selector into one next/prev invocation.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/1broseidon/wscycle/internal/focus"
	"github.com/1broseidon/wscycle/internal/journal"
	"github.com/1broseidon/wscycle/internal/logging"
	"github.com/1broseidon/wscycle/internal/tree"
	"github.com/1broseidon/wscycle/internal/wm"
)

// Result describes what an invocation selected and did.
type Result struct {
	Direction focus.Direction
	// From is the window focused before the switch, 0 if none.
	From int64
	// Target is the selected window, 0 if none.
	Target  int64
	Found   bool
	Focused bool
}

// Outcome returns the journal outcome label.
func (r Result) Outcome() string {
	if r.Focused {
		return journal.OutcomeFocused
	}
	return journal.OutcomeNoTarget
}

// Runner executes invocations against one backend.
type Runner struct {
	Backend wm.Backend
	// Journal is optional; failures to write it are only logged.
	Journal *journal.Repository
	// Retention prunes journal rows older than this after each write; 0
	// keeps everything.
	Retention time.Duration
	Logger    *logging.Logger
}

func (r *Runner) log() *logging.Logger {
	if r.Logger == nil {
		return logging.Nop()
	}
	return r.Logger
}

// Plan fetches the tree and selects the target without focusing it.
func (r *Runner) Plan(ctx context.Context, dir focus.Direction) (Result, error) {
	res := Result{Direction: dir}

	data, err := r.Backend.Tree(ctx)
	if err != nil {
		r.recordError("tree", err)
		return res, fmt.Errorf("failed to get layout tree: %w", err)
	}
	root, err := tree.Decode(data)
	if err != nil {
		r.recordError("decode", err)
		return res, err
	}

	if cur := tree.FocusedWindow(root); cur != nil {
		res.From = cur.ID
	}
	target := focus.Select(root, dir)
	if target == nil {
		r.log().Debug("No window to focus", "direction", dir)
		return res, nil
	}
	res.Target = target.ID
	res.Found = true
	return res, nil
}

// Run selects the target and focuses it. A workspace without a focused
// window is not an error: nothing is sent and the result has Focused unset.
func (r *Runner) Run(ctx context.Context, dir focus.Direction) (Result, error) {
	res, err := r.Plan(ctx, dir)
	if err != nil {
		return res, err
	}
	if res.Found {
		if err := r.Backend.Focus(ctx, res.Target); err != nil {
			r.recordError("focus", err)
			return res, fmt.Errorf("failed to focus window %d: %w", res.Target, err)
		}
		res.Focused = true
		r.log().Debug("Focused window", "direction", dir, "from", res.From, "to", res.Target)
	}
	r.recordSwitch(res)
	return res, nil
}

func (r *Runner) recordSwitch(res Result) {
	if r.Journal == nil {
		return
	}
	ev := &journal.SwitchEvent{
		Direction: res.Direction.String(),
		FromID:    res.From,
		ToID:      res.Target,
		Backend:   r.Backend.Name(),
		Outcome:   res.Outcome(),
	}
	if err := r.Journal.RecordSwitch(ev); err != nil {
		r.log().Warn("Failed to record switch", "error", err.Error())
		return
	}
	if r.Retention > 0 {
		if _, err := r.Journal.Prune(time.Now().Add(-r.Retention)); err != nil {
			r.log().Warn("Failed to prune journal", "error", err.Error())
		}
	}
}

func (r *Runner) recordError(stage string, cause error) {
	r.log().Error("Invocation failed", cause, "stage", stage)
	if r.Journal == nil {
		return
	}
	if err := r.Journal.RecordError(stage, cause); err != nil {
		r.log().Warn("Failed to record error", "error", err.Error())
	}
}
