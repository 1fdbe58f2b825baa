// Package store defines the conversation log storage interface and its
// SQLite implementation.
package store

import (
	"context"
	"time"
)

// LogEntry is one logged prompt/response pair. Entries are append-only.
type LogEntry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
}

// Store defines the interface for conversation log persistence.
type Store interface {
	AddLogEntry(ctx context.Context, userMessage, aiResponse string) error
	ListLogEntries(ctx context.Context) ([]LogEntry, error)
	Close() error
}
