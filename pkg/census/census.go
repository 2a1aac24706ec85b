// Package census records the diagrams discovered by exploration runs.
//
// This package defines a Store interface with implementations for
// different backends:
//   - memory: In-memory storage for tests and one-shot runs
//   - file: Append-only JSONL files for CLI usage
//   - mongo: MongoDB-backed storage for long-running census builds
//
// Entries are keyed by canonical signature. Storing an already-known
// signature updates its metadata instead of duplicating it, so census
// builds are restartable: re-running an exploration against the same
// store is idempotent.
package census

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Sentinel errors for census operations.
var (
	// ErrNotFound is returned when a signature is not in the store.
	ErrNotFound = errors.New("not found")

	// ErrClosed is returned when operating on a closed store.
	ErrClosed = errors.New("store closed")
)

// Entry is one discovered diagram.
type Entry struct {
	// Signature is the canonical signature, the entry's identity.
	Signature string `bson:"signature" json:"signature"`
	// Crossings is the diagram's crossing count.
	Crossings int `bson:"crossings" json:"crossings"`
	// Writhe is the sum of crossing signs.
	Writhe int `bson:"writhe" json:"writhe"`
	// Components is the number of strands.
	Components int `bson:"components" json:"components"`
	// Origin is the signature the run started from.
	Origin string `bson:"origin" json:"origin"`
	// RunID identifies the run that found the entry.
	RunID string `bson:"run_id" json:"run_id"`
	// Found is the discovery time.
	Found time.Time `bson:"found" json:"found"`
}

// Store is the interface for census storage backends.
type Store interface {
	// Put stores an entry, replacing any entry with the same signature.
	Put(ctx context.Context, e Entry) error

	// Get retrieves an entry by signature. Returns ErrNotFound when the
	// signature is unknown.
	Get(ctx context.Context, sig string) (Entry, error)

	// Has reports whether the signature is in the store.
	Has(ctx context.Context, sig string) (bool, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory Store for tests and one-shot runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Put stores an entry.
func (s *MemoryStore) Put(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		return ErrClosed
	}
	s.entries[e.Signature] = e
	return nil
}

// Get retrieves an entry by signature.
func (s *MemoryStore) Get(ctx context.Context, sig string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entries == nil {
		return Entry{}, ErrClosed
	}
	e, ok := s.entries[sig]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Has reports whether the signature is stored.
func (s *MemoryStore) Has(ctx context.Context, sig string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entries == nil {
		return false, ErrClosed
	}
	_, ok := s.entries[sig]
	return ok, nil
}

// Count returns the number of stored entries.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entries == nil {
		return 0, ErrClosed
	}
	return int64(len(s.entries)), nil
}

// Close discards the store's contents.
func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
