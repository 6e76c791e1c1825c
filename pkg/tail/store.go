package tail

import (
	"os"
	"sort"
	"sync"
)

// Cursor is the consumed position within one monitored file.
type Cursor struct {
	// Path is the file path as matched by the glob pattern.
	Path string

	// Offset is the byte offset of the first byte not yet consumed. It
	// always points at the start of a line.
	Offset int64

	// identity is the FileInfo of the generation Offset refers to. A
	// different file at the same path means rotation.
	identity os.FileInfo

	// discarding is set while the remainder of an oversized line is being
	// skipped.
	discarding bool
}

// Store tracks, per monitored file, the byte offset already consumed.
// It is in-memory only; its lifetime equals the process's.
type Store struct {
	mu      sync.Mutex
	cursors map[string]*Cursor
}

// NewStore creates an empty position store.
func NewStore() *Store {
	return &Store{cursors: make(map[string]*Cursor)}
}

// Get returns the consumed offset for path, or 0 for an unseen file.
func (s *Store) Get(path string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cursors[path]; ok {
		return c.Offset
	}
	return 0
}

// Set records the consumed offset for path.
func (s *Store) Set(path string, offset int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursor(path).Offset = offset
}

// Remove forgets path. A later match starts again from offset 0.
func (s *Store) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cursors, path)
}

// Paths returns the tracked paths in lexical order.
func (s *Store) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := make([]string, 0, len(s.cursors))
	for p := range s.cursors {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of tracked files.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.cursors)
}

// Snapshot returns a copy of every cursor keyed by path.
func (s *Store) Snapshot() map[string]Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Cursor, len(s.cursors))
	for p, c := range s.cursors {
		out[p] = Cursor{Path: c.Path, Offset: c.Offset}
	}
	return out
}

// load returns a copy of the cursor for path, creating it if needed.
func (s *Store) load(path string) Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.cursor(path)
}

// commit stores c as the cursor for its path.
func (s *Store) commit(c Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := c
	s.cursors[c.Path] = &stored
}

// retain drops every cursor whose path is not in keep.
func (s *Store) retain(keep map[string]struct{}) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for p := range s.cursors {
		if _, ok := keep[p]; !ok {
			delete(s.cursors, p)
			removed = append(removed, p)
		}
	}
	sort.Strings(removed)
	return removed
}

// cursor must be called with s.mu held.
func (s *Store) cursor(path string) *Cursor {
	c, ok := s.cursors[path]
	if !ok {
		c = &Cursor{Path: path}
		s.cursors[path] = c
	}
	return c
}
