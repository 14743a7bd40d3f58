// Package history provides the enquiry history store implementations.
package history

import (
	"context"
	"sort"
	"sync"

	"enquiries/internal/enquiry/models"
	id "enquiries/pkg/domain"
)

// MemoryStore is an in-memory history trail for tests and development.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[id.EnquiryID][]*models.HistoryEntry
}

// NewMemory constructs an empty in-memory history store.
func NewMemory() *MemoryStore {
	return &MemoryStore{entries: make(map[id.EnquiryID][]*models.HistoryEntry)}
}

func (s *MemoryStore) Append(_ context.Context, entry *models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.entries[entry.EnquiryID] = append(s.entries[entry.EnquiryID], &cp)
	return nil
}

func (s *MemoryStore) ForEnquiry(_ context.Context, enquiryID id.EnquiryID) ([]*models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.entries[enquiryID]
	out := make([]*models.HistoryEntry, 0, len(stored))
	for _, e := range stored {
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
