package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wscycle/internal/app"
	"github.com/1broseidon/wscycle/internal/focus"
	"github.com/1broseidon/wscycle/internal/journal"
	"github.com/1broseidon/wscycle/internal/logging"
)

const (
	ServerName    = "wscycle"
	ServerVersion = "0.1.0"

	defaultRecentLimit = 20
	maxRecentLimit     = 500
)

// ErrJournalDisabled is returned by recent_switches when no journal is
// configured.
var ErrJournalDisabled = errors.New("journal is disabled (set journal.enabled: true)")

// Server exposes focus cycling as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	runner    *app.Runner
	journal   *journal.Repository
	logger    *logging.Logger
}

// NewServer wires runner into an MCP server. repo may be nil.
func NewServer(runner *app.Runner, repo *journal.Repository, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{
		runner:  runner,
		journal: repo,
		logger:  log,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "plan_focus",
		Description: "Report which window would receive focus when cycling next or prev within the focused workspace, without changing focus.",
	}, s.handlePlanFocus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "cycle_focus",
		Description: "Move focus to the next or previous window of the focused workspace, wrapping at the ends. Does nothing when no window is focused.",
	}, s.handleCycleFocus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "recent_switches",
		Description: "List recent focus switches from the journal, newest first. Requires journal.enabled in the wscycle config.",
	}, s.handleRecentSwitches)
}

func (s *Server) handlePlanFocus(ctx context.Context, _ *mcpsdk.CallToolRequest, args FocusInput) (*mcpsdk.CallToolResult, PlanFocusOutput, error) {
	dir, err := focus.ParseDirection(args.Direction)
	if err != nil {
		return nil, PlanFocusOutput{}, err
	}
	res, err := s.guarded(func() (app.Result, error) { return s.runner.Plan(ctx, dir) })
	if err != nil {
		return nil, PlanFocusOutput{}, err
	}
	return nil, PlanFocusOutput{
		Direction: dir.String(),
		FromID:    res.From,
		TargetID:  res.Target,
		Found:     res.Found,
	}, nil
}

func (s *Server) handleCycleFocus(ctx context.Context, _ *mcpsdk.CallToolRequest, args FocusInput) (*mcpsdk.CallToolResult, CycleFocusOutput, error) {
	dir, err := focus.ParseDirection(args.Direction)
	if err != nil {
		return nil, CycleFocusOutput{}, err
	}
	res, err := s.guarded(func() (app.Result, error) { return s.runner.Run(ctx, dir) })
	if err != nil {
		return nil, CycleFocusOutput{}, err
	}
	return nil, CycleFocusOutput{
		Direction: dir.String(),
		FromID:    res.From,
		TargetID:  res.Target,
		Focused:   res.Focused,
	}, nil
}

func (s *Server) handleRecentSwitches(_ context.Context, _ *mcpsdk.CallToolRequest, args RecentSwitchesInput) (*mcpsdk.CallToolResult, RecentSwitchesOutput, error) {
	if s.journal == nil {
		return nil, RecentSwitchesOutput{}, ErrJournalDisabled
	}
	limit := args.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	events, err := s.journal.Recent(limit)
	if err != nil {
		return nil, RecentSwitchesOutput{}, err
	}
	out := RecentSwitchesOutput{Switches: make([]SwitchInfo, 0, len(events))}
	for _, ev := range events {
		out.Switches = append(out.Switches, SwitchInfo{
			Timestamp: ev.Timestamp.Format(time.RFC3339),
			Direction: ev.Direction,
			FromID:    ev.FromID,
			ToID:      ev.ToID,
			Backend:   ev.Backend,
			Outcome:   ev.Outcome,
		})
	}
	return nil, out, nil
}

// guarded turns a selector invariant panic into a tool error so one bad
// snapshot does not take the server down. Other panics propagate.
func (s *Server) guarded(fn func() (app.Result, error)) (res app.Result, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		v, ok := r.(focus.InvariantViolation)
		if !ok {
			panic(r)
		}
		s.logger.Error("Layout tree invariant violated", v)
		err = fmt.Errorf("unexpected layout tree: %w", v)
	}()
	return fn()
}
