package journal

import "time"

// Outcome of one invocation.
const (
	OutcomeFocused  = "focused"
	OutcomeNoTarget = "no-target"
)

// SwitchEvent records one next/prev invocation.
type SwitchEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Direction string    `gorm:"not null" json:"direction"`
	FromID    int64     `gorm:"not null;default:0" json:"from_id"` // 0 when nothing was focused
	ToID      int64     `gorm:"not null;default:0" json:"to_id"`
	Backend   string    `gorm:"not null" json:"backend"`
	Outcome   string    `gorm:"not null;index" json:"outcome"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ErrorLog records a failed invocation.
type ErrorLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Stage     string    `gorm:"not null" json:"stage"`
	ErrorMsg  string    `gorm:"not null" json:"error_msg"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
