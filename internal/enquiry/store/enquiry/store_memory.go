// Package enquiry provides the enquiry store implementations.
package enquiry

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"enquiries/internal/enquiry/models"
	"enquiries/internal/enquiry/store"
	id "enquiries/pkg/domain"
	"enquiries/pkg/platform/sentinel"
)

// MemoryStore is an in-memory enquiry store for tests and development.
// It reports no indexed search capability, so phrase and prefix specs are
// served as substring matches, mirroring the substring fallback path.
type MemoryStore struct {
	mu        sync.RWMutex
	enquiries map[id.EnquiryID]*models.Enquiry
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{enquiries: make(map[id.EnquiryID]*models.Enquiry)}
}

// Capabilities reports no indexed search for the memory store.
func (s *MemoryStore) Capabilities() store.Capabilities {
	return store.Capabilities{IndexedSearch: false}
}

func (s *MemoryStore) Create(_ context.Context, e *models.Enquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.enquiries[e.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, other := range s.enquiries {
		if other.Reference == e.Reference {
			return sentinel.ErrConflict
		}
	}
	cp := *e
	s.enquiries[e.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, enquiryID id.EnquiryID) (*models.Enquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.enquiries[enquiryID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *MemoryStore) Update(_ context.Context, e *models.Enquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.enquiries[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *e
	s.enquiries[e.ID] = &cp
	return nil
}

func (s *MemoryStore) ReferenceExists(_ context.Context, reference string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.enquiries {
		if e.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CountAll(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.enquiries), nil
}

func (s *MemoryStore) Count(_ context.Context, q store.ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates(q)), nil
}

func (s *MemoryStore) List(_ context.Context, q store.ListQuery) ([]*models.Enquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.candidates(q)
	sortEnquiries(matched, q.Order)

	if q.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}

	out := make([]*models.Enquiry, 0, len(matched))
	for _, e := range matched {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// candidates applies every predicate except ordering and pagination, then
// the match cap. Callers hold the read lock.
func (s *MemoryStore) candidates(q store.ListQuery) []*models.Enquiry {
	if q.MatchNone {
		return nil
	}
	var matched []*models.Enquiry
	for _, e := range s.enquiries {
		if matches(e, q) {
			matched = append(matched, e)
		}
	}

	if q.MatchLimit > 0 && q.Search.Active() && len(matched) > q.MatchLimit {
		// Cap to the most recently created matches.
		sortEnquiries(matched, store.DefaultOrder)
		matched = matched[:q.MatchLimit]
	}
	return matched
}

func matches(e *models.Enquiry, q store.ListQuery) bool {
	if len(q.Statuses) > 0 {
		found := false
		for _, st := range q.Statuses {
			if e.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.ServiceType != "" && e.ServiceType != q.ServiceType {
		return false
	}
	if !q.OfficerID.IsNil() && e.OfficerID != q.OfficerID {
		return false
	}
	if !q.MemberID.IsNil() && e.MemberID != q.MemberID {
		return false
	}
	if !q.WardID.IsNil() && e.WardID != q.WardID {
		return false
	}
	if !q.ContactID.IsNil() && e.ContactID != q.ContactID {
		return false
	}
	if !q.JobTypeID.IsNil() && e.JobTypeID != q.JobTypeID {
		return false
	}
	if len(q.JobTypeIDs) > 0 {
		found := false
		for _, jt := range q.JobTypeIDs {
			if e.JobTypeID == jt {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.CreatedFrom != nil && e.CreatedAt.Before(*q.CreatedFrom) {
		return false
	}
	if q.CreatedBefore != nil && !e.CreatedAt.Before(*q.CreatedBefore) {
		return false
	}
	if q.Search.Active() && !matchesTerm(e, q.Search.Term) {
		return false
	}
	return true
}

func matchesTerm(e *models.Enquiry, term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Reference), needle) ||
		strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Description), needle)
}

func sortEnquiries(list []*models.Enquiry, order store.Order) {
	if order.Field == "" {
		order = store.DefaultOrder
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if order.Desc {
			a, b = b, a
		}
		switch order.Field {
		case store.SortReference:
			return a.Reference < b.Reference
		case store.SortTitle:
			return a.Title < b.Title
		case store.SortStatus:
			return a.Status < b.Status
		case store.SortServiceType:
			return a.ServiceType < b.ServiceType
		case store.SortUpdated:
			return a.UpdatedAt.Before(b.UpdatedAt)
		case store.SortClosed:
			return closedTime(a).Before(closedTime(b))
		// Entity columns order by identifier here; the SQL store orders by
		// the related display name.
		case store.SortMember:
			return a.MemberID.String() < b.MemberID.String()
		case store.SortSection, store.SortJobType:
			return a.JobTypeID.String() < b.JobTypeID.String()
		case store.SortContact:
			return a.ContactID.String() < b.ContactID.String()
		case store.SortOfficer:
			return a.OfficerID.String() < b.OfficerID.String()
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

func closedTime(e *models.Enquiry) time.Time {
	if e.ClosedAt != nil {
		return *e.ClosedAt
	}
	return time.Time{}
}
