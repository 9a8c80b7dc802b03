package repository

import (
	"context"
	"time"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
)

// LogFilter narrows admin activity-log listings.
type LogFilter struct {
	Level  entity.LogLevel
	UserID string
	Route  string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

// LogRepository persists activity log entries. The collection is append-only.
type LogRepository interface {
	// InsertMany stores the batch atomically from the caller's point of
	// view: either the bulk insert is accepted or an error is returned and
	// no caller-visible partial state is assumed.
	InsertMany(ctx context.Context, entries []*entity.LogEntry) error
	List(ctx context.Context, filter LogFilter) ([]*entity.LogEntry, int64, error)
}
