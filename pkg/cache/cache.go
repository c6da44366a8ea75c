// Package cache provides pluggable result caching for the evaluation
// pipeline and the HTTP API.
//
// Three backends are included: [FileCache] for CLI usage, [RedisCache]
// for the server, and [NullCache] to disable caching. Keys are derived
// from program text or canonical normal forms through a [Keyer], so two
// cache entries collide exactly when their results are interchangeable.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind. Evaluation results are pure functions of
// the program text, so the TTL mainly bounds disk growth; artifacts are
// larger and expire sooner.
const (
	TTLEval     = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys with optional
// expiration.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// EvalKeyOpts are the evaluation settings that affect a cached result.
// Two programs share an entry only when these match.
//
// MaxDepth is deliberately absent: the parser depth guard can only turn a
// success into an error, never change a successful normal form, and errors
// are not cached. Any new option that can alter a successful result must
// be added here or equal programs will alias each other's entries.
type EvalKeyOpts struct {
	AllowShadowing bool
	MaxMembers     int
}

// ArtifactKeyOpts are the rendering settings that affect a cached
// artifact.
type ArtifactKeyOpts struct {
	Format string
	Layout string
}

// Keyer derives cache keys for the two cacheable stages: evaluation
// (program text to normal form) and rendering (canonical form to artifact
// bytes).
type Keyer interface {
	EvalKey(program string, opts EvalKeyOpts) string
	ArtifactKey(canonical string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes inputs and options into fixed-width keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// EvalKey generates a key for a program's evaluation result. The whole
// program text participates, so any textual change invalidates the entry
// even when the normal form would not move.
func (k *DefaultKeyer) EvalKey(program string, opts EvalKeyOpts) string {
	return hashKey("eval", program, opts)
}

// ArtifactKey generates a key for a rendered artifact. The canonical
// normal form is the input, so equal expressions share artifacts no matter
// how they were written.
func (k *DefaultKeyer) ArtifactKey(canonical string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", canonical, opts)
}
