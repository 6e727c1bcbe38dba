package history

import (
	"strings"
	"sync"
)

// Store keeps the ordered, deduplicated list of locations queried during
// the current session. Entries live for the life of the process only;
// there is deliberately no persistence and no removal.
//
// Safe for concurrent use: retrievals for different locations may record
// entries at the same time.
type Store struct {
	mu      sync.RWMutex
	entries []string
	seen    map[string]struct{}
}

// NewStore returns an empty history store.
func NewStore() *Store {
	return &Store{
		seen: make(map[string]struct{}),
	}
}

// normalizeKey is the equality policy for deduplication: trim whitespace
// and lowercase, matching the key policy used for upstream requests.
func normalizeKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Record appends query to the history unless an equal entry already
// exists. Returns true when an insertion occurred. Recording a duplicate
// is a no-op, not an error. The entry keeps the caller's original
// spelling; only the equality check is normalized.
func (s *Store) Record(query string) bool {
	key := normalizeKey(query)
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.entries = append(s.entries, strings.TrimSpace(query))
	return true
}

// Entries returns a copy of the history in insertion order. The copy is
// safe to iterate while further Record calls occur.
func (s *Store) Entries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of recorded entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
