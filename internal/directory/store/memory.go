// Package store provides directory lookups backed by memory or postgres.
package store

import (
	"context"
	"sync"

	"enquiries/internal/directory/models"
	id "enquiries/pkg/domain"
	"enquiries/pkg/platform/sentinel"
)

// MemoryStore is an in-memory directory for tests and development.
type MemoryStore struct {
	mu       sync.RWMutex
	officers map[id.OfficerID]*models.Officer
	members  map[id.MemberID]*models.Member
	wards    map[id.WardID]*models.Ward
	sections map[id.SectionID]*models.Section
	jobTypes map[id.JobTypeID]*models.JobType
	contacts map[id.ContactID]*models.Contact
}

// NewMemory constructs an empty in-memory directory.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		officers: make(map[id.OfficerID]*models.Officer),
		members:  make(map[id.MemberID]*models.Member),
		wards:    make(map[id.WardID]*models.Ward),
		sections: make(map[id.SectionID]*models.Section),
		jobTypes: make(map[id.JobTypeID]*models.JobType),
		contacts: make(map[id.ContactID]*models.Contact),
	}
}

// Seed helpers for tests.

func (s *MemoryStore) AddOfficer(o *models.Officer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.officers[o.ID] = o
}

func (s *MemoryStore) AddMember(m *models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m
}

func (s *MemoryStore) AddWard(w *models.Ward) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wards[w.ID] = w
}

func (s *MemoryStore) AddSection(sec *models.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[sec.ID] = sec
}

func (s *MemoryStore) AddJobType(j *models.JobType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobTypes[j.ID] = j
}

func (s *MemoryStore) AddContact(c *models.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[c.ID] = c
}

func (s *MemoryStore) Officer(_ context.Context, officerID id.OfficerID) (*models.Officer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.officers[officerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *MemoryStore) Member(_ context.Context, memberID id.MemberID) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[memberID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *MemoryStore) Ward(_ context.Context, wardID id.WardID) (*models.Ward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wards[wardID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (s *MemoryStore) Section(_ context.Context, sectionID id.SectionID) (*models.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.sections[sectionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *sec
	return &cp, nil
}

func (s *MemoryStore) JobType(_ context.Context, jobTypeID id.JobTypeID) (*models.JobType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobTypes[jobTypeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (s *MemoryStore) Contact(_ context.Context, contactID id.ContactID) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contacts[contactID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) JobTypesInSection(_ context.Context, sectionID id.SectionID) ([]*models.JobType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.JobType
	for _, j := range s.jobTypes {
		if j.SectionID == sectionID {
			cp := *j
			out = append(out, &cp)
		}
	}
	return out, nil
}
