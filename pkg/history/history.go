// Package history records REPL evaluations across sessions.
//
// Each evaluated line becomes an [Entry] with a unique ID, the input as
// typed, and either the canonical normal form or the error it produced.
// Entries persist in a newline-delimited JSON file under the user's
// config directory, so a new REPL session can recall what earlier ones
// evaluated.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one evaluated REPL line.
type Entry struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Canonical string    `json:"canonical,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry builds an entry for an evaluated line. Exactly one of
// canonical and err is meaningful; err may be nil.
func NewEntry(input, canonical string, err error) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Input:     input,
		Canonical: canonical,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		e.Error = err.Error()
		e.Canonical = ""
	}
	return e
}

// Failed reports whether the entry recorded an error.
func (e Entry) Failed() bool { return e.Error != "" }

// Store is the interface for history storage backends.
type Store interface {
	// Append records an entry.
	Append(ctx context.Context, e Entry) error

	// List returns up to limit entries, oldest first. A non-positive
	// limit returns everything.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
