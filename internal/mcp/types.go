package mcp

// FocusInput is the input for the plan_focus and cycle_focus tools.
type FocusInput struct {
	Direction string `json:"direction" jsonschema:"Either next or prev"`
}

// PlanFocusOutput is the output for the plan_focus tool.
type PlanFocusOutput struct {
	Direction string `json:"direction"`
	FromID    int64  `json:"from_id"`
	TargetID  int64  `json:"target_id"`
	Found     bool   `json:"found"`
}

// CycleFocusOutput is the output for the cycle_focus tool.
type CycleFocusOutput struct {
	Direction string `json:"direction"`
	FromID    int64  `json:"from_id"`
	TargetID  int64  `json:"target_id"`
	Focused   bool   `json:"focused"`
}

// RecentSwitchesInput is the input for the recent_switches tool.
type RecentSwitchesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of entries to return (default: 20)"`
}

// SwitchInfo describes one journaled invocation.
type SwitchInfo struct {
	Timestamp string `json:"timestamp"`
	Direction string `json:"direction"`
	FromID    int64  `json:"from_id"`
	ToID      int64  `json:"to_id"`
	Backend   string `json:"backend"`
	Outcome   string `json:"outcome"`
}

// RecentSwitchesOutput is the output for the recent_switches tool.
type RecentSwitchesOutput struct {
	Switches []SwitchInfo `json:"switches"`
}
