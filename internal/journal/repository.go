package journal

import (
	"time"

	"github.com/pkg/errors"
)

// Repository reads and writes journal rows.
type Repository struct {
	db  *DB
	now func() time.Time
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// RecordSwitch inserts event, stamping it with the current time when the
// timestamp is zero.
func (r *Repository) RecordSwitch(event *SwitchEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = r.now()
	}
	event.Timestamp = event.Timestamp.UTC()
	if result := r.db.Create(event); result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert switch event")
	}
	return nil
}

// RecordError logs a failure at stage.
func (r *Repository) RecordError(stage string, cause error) error {
	entry := &ErrorLog{
		Timestamp: r.now(),
		Stage:     stage,
		ErrorMsg:  cause.Error(),
	}
	if result := r.db.Create(entry); result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// Recent returns up to limit switch events, newest first.
func (r *Repository) Recent(limit int) ([]*SwitchEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	var events []*SwitchEvent
	result := r.db.Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&events)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query switch events")
	}
	return events, nil
}

// RecentErrors returns up to limit error entries, newest first.
func (r *Repository) RecentErrors(limit int) ([]*ErrorLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []*ErrorLog
	result := r.db.Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query error log")
	}
	return entries, nil
}

// Prune deletes rows older than before and returns how many were removed.
// Timestamps are stored in UTC, so before is converted first.
func (r *Repository) Prune(before time.Time) (int64, error) {
	before = before.UTC()
	events := r.db.Where("timestamp < ?", before).Delete(&SwitchEvent{})
	if events.Error != nil {
		return 0, errors.Wrap(events.Error, "failed to prune switch events")
	}
	logs := r.db.Where("timestamp < ?", before).Delete(&ErrorLog{})
	if logs.Error != nil {
		return events.RowsAffected, errors.Wrap(logs.Error, "failed to prune error log")
	}
	return events.RowsAffected + logs.RowsAffected, nil
}
