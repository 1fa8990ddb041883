package audit

import (
	"context"
	"log/slog"
	"strings"
)

// Logger couples the append-only store with structured logging so every
// recorded attempt is also visible in the server's log stream.
type Logger struct {
	store  Store
	logger *slog.Logger
}

// NewLogger creates an audit logger writing to the given store.
func NewLogger(store Store, logger *slog.Logger) *Logger {
	return &Logger{
		store:  store,
		logger: logger,
	}
}

// Record appends an entry and emits a structured log line for it.
func (l *Logger) Record(ctx context.Context, e Entry) Entry {
	e = l.store.Append(ctx, e)

	attrs := []any{
		"audit_id", e.ID,
		"subject", e.Subject,
		"tool", e.Tool,
		"outcome", e.Outcome,
	}
	if e.Actor != "" {
		attrs = append(attrs, "actor", e.Actor)
	}
	if e.Detail != "" {
		attrs = append(attrs, "detail", e.Detail)
	}

	if e.Outcome == OutcomeOK {
		l.logger.InfoContext(ctx, "tool_call", attrs...)
	} else {
		l.logger.WarnContext(ctx, "tool_call", attrs...)
	}
	return e
}

// Entries returns all recorded entries, newest first.
func (l *Logger) Entries(ctx context.Context) []Entry {
	return l.store.List(ctx)
}

// Count returns how many entries have been recorded.
func (l *Logger) Count() int {
	return l.store.Len()
}

// Filter narrows entries by exact subject, exact tool name, and a free-text
// case-insensitive substring over tool, subject, actor, and detail. Empty
// arguments match everything. This is read-side presentation only.
func Filter(entries []Entry, subject, tool, substr string) []Entry {
	q := strings.ToLower(substr)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if subject != "" && e.Subject != subject {
			continue
		}
		if tool != "" && e.Tool != tool {
			continue
		}
		if q != "" && !entryContains(e, q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func entryContains(e Entry, q string) bool {
	for _, field := range []string{e.Tool, e.Subject, e.Actor, e.Detail, e.Outcome} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
