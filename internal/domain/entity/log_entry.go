package entity

import "time"

// LogLevel is the severity of an activity log entry.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
	LogLevelDebug   LogLevel = "debug"
)

// IsValid reports whether the level is one of the known levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelDebug:
		return true
	}
	return false
}

// LogEntry is an append-only activity record. Entries are never mutated or
// deleted by the application, and logging is always best-effort: a malformed
// entry is stored as-is rather than rejected.
type LogEntry struct {
	ID        string                 `bson:"_id" json:"id"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
	Level     LogLevel               `bson:"level" json:"level"`
	Message   string                 `bson:"message" json:"message"`
	UserID    string                 `bson:"userId,omitempty" json:"userId,omitempty"`
	Route     string                 `bson:"route,omitempty" json:"route,omitempty"`
	Action    string                 `bson:"action,omitempty" json:"action,omitempty"`
	Data      map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"`
	IP        string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string                 `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
}
