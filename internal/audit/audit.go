// Package audit provides the append-only invocation log kept by each tool
// server. Entries are created once per request that passes token validation
// and are never mutated or removed within a process lifetime.
package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Outcome values recorded per entry.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeForbidden = "forbidden"
)

// Entry is one recorded tool invocation attempt.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Subject   string         `json:"subject"`
	Actor     string         `json:"actor,omitempty"`
	Tool      string         `json:"tool,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Outcome   string         `json:"outcome"`
	Detail    string         `json:"detail,omitempty"`
}

// Store is the append-only log. Implementations must be safe for concurrent
// appends; ordering across concurrent writers is resolved at read time by
// timestamp, not by append order.
type Store interface {
	Append(ctx context.Context, e Entry) Entry
	// List returns a copy of all entries, newest first.
	List(ctx context.Context) []Entry
	// Len returns the number of entries appended so far.
	Len() int
}

// MemoryStore is the in-process Store implementation. State is reset on
// restart; entries do not outlive the process.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryStore creates an empty in-memory audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append records an entry, filling in ID and timestamp when unset, and
// returns the stored entry.
func (s *MemoryStore) Append(ctx context.Context, e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return e
}

// List returns all entries sorted by timestamp descending.
func (s *MemoryStore) List(ctx context.Context) []Entry {
	s.mu.Lock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Len returns the current entry count.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
