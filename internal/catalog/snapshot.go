package catalog

import (
	"sync"

	"holdco-backend/internal/model"
)

// Snapshot holds the current per-kind listing arrays. The sync worker
// swaps whole slices in; readers filter over whatever slice is current.
// Slices are never mutated after Replace, so readers need no copy.
type Snapshot struct {
	mu    sync.RWMutex
	kinds map[model.Kind][]model.Listing
}

func NewSnapshot() *Snapshot {
	return &Snapshot{kinds: make(map[model.Kind][]model.Listing)}
}

// Replace installs a new listing slice for kind, replacing the previous
// one atomically.
func (s *Snapshot) Replace(kind model.Kind, items []model.Listing) {
	s.mu.Lock()
	s.kinds[kind] = items
	s.mu.Unlock()
}

// Kind returns the current slice for kind. The returned slice must be
// treated as read-only.
func (s *Snapshot) Kind(kind model.Kind) []model.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kinds[kind]
}

// Get returns a single listing by kind and id.
func (s *Snapshot) Get(kind model.Kind, id string) (model.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.kinds[kind] {
		if it.ID == id {
			return it, true
		}
	}
	return model.Listing{}, false
}

// Len reports the number of listings held for kind.
func (s *Snapshot) Len(kind model.Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.kinds[kind])
}
