package census

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
)

// FileStore is an append-only JSONL Store for CLI usage. Every Put
// appends one JSON line; the in-memory index keeps the latest entry per
// signature, so re-putting a signature shadows earlier lines on load.
type FileStore struct {
	mu      sync.Mutex
	f       *os.File
	w       *bufio.Writer
	entries map[string]Entry
}

// NewFileStore opens (or creates) a JSONL census file and loads its
// index.
func NewFileStore(path string) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]Entry)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue // ignore torn trailing writes
		}
		entries[e.Signature] = e
	}
	if err := sc.Err(); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, 2); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &FileStore{f: f, w: bufio.NewWriter(f), entries: entries}, nil
}

// Put appends the entry to the file and updates the index.
func (s *FileStore) Put(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return ErrClosed
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(data); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	s.entries[e.Signature] = e
	return nil
}

// Get retrieves an entry by signature.
func (s *FileStore) Get(ctx context.Context, sig string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return Entry{}, ErrClosed
	}
	e, ok := s.entries[sig]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Has reports whether the signature is stored.
func (s *FileStore) Has(ctx context.Context, sig string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return false, ErrClosed
	}
	_, ok := s.entries[sig]
	return ok, nil
}

// Count returns the number of distinct signatures stored.
func (s *FileStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return 0, ErrClosed
	}
	return int64(len(s.entries)), nil
}

// Close flushes and closes the file.
func (s *FileStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.w.Flush()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	s.f = nil
	s.entries = nil
	return err
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
