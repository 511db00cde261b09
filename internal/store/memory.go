// internal/store/memory.go
//
// Check-history persistence.
//
// Every command invocation that checks a word is recorded as a Check. Two
// implementations share the Store interface:
//   - memory (this file): bounded in-process history, lost on restart.
//   - sqlite (sqlite.go): durable history in a SQLite file.
//
// The history is write-only from the dictionary's point of view; nothing here
// feeds back into lookups.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Outcome values recorded for a check.
const (
	OutcomeValid    = "valid"
	OutcomeNotValid = "not_valid"
	OutcomeRejected = "rejected"
)

// Check is one recorded word check.
type Check struct {
	ID      string    `json:"id"`
	User    string    `json:"user"`
	Raw     string    `json:"raw"`     // word as typed
	Word    string    `json:"word"`    // normalized word
	Version string    `json:"version"` // requested version label
	Outcome string    `json:"outcome"`
	At      time.Time `json:"at"`
}

// Store defines the persistence interface for check history.
type Store interface {
	// Record saves c, filling ID and At when empty.
	Record(ctx context.Context, c Check) error

	// Recent returns up to limit checks, newest first.
	Recent(ctx context.Context, limit int) ([]Check, error)

	Close() error
}

// prepare fills the generated fields of c.
func prepare(c Check) Check {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	return c
}

// memory is a bounded in-memory Store.
type memory struct {
	mu     sync.RWMutex // guards checks
	checks []Check      // oldest first
	limit  int
}

// NewMemoryStore constructs an in-memory Store keeping the last limit checks.
// A non-positive limit keeps 1000.
func NewMemoryStore(limit int) Store {
	if limit <= 0 {
		limit = 1000
	}
	return &memory{limit: limit}
}

// Record appends c, dropping the oldest entry when full.
func (m *memory) Record(ctx context.Context, c Check) error {
	c = prepare(c)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks = append(m.checks, c)
	if over := len(m.checks) - m.limit; over > 0 {
		m.checks = append(m.checks[:0:0], m.checks[over:]...)
	}
	return nil
}

// Recent returns the newest checks first.
func (m *memory) Recent(ctx context.Context, limit int) ([]Check, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.checks) {
		limit = len(m.checks)
	}
	out := make([]Check, 0, limit)
	for i := len(m.checks) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.checks[i])
	}
	return out, nil
}

func (m *memory) Close() error { return nil }
