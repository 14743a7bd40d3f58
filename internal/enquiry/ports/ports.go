// Package ports defines shared interfaces for the enquiry module.
// Interfaces are placed here when consumed by multiple services to avoid duplication.
package ports

import (
	"context"

	dirmodels "enquiries/internal/directory/models"
	"enquiries/internal/enquiry/models"
	"enquiries/internal/enquiry/store"
	id "enquiries/pkg/domain"
)

// EnquiryStore persists and queries enquiries.
type EnquiryStore interface {
	// Create inserts a new enquiry.
	Create(ctx context.Context, e *models.Enquiry) error

	// Get retrieves an enquiry by ID.
	Get(ctx context.Context, enquiryID id.EnquiryID) (*models.Enquiry, error)

	// Update saves changes to an existing enquiry.
	Update(ctx context.Context, e *models.Enquiry) error

	// List returns the enquiries matching the query, ordered and paginated.
	List(ctx context.Context, q store.ListQuery) ([]*models.Enquiry, error)

	// Count returns the number of enquiries matching the query, ignoring
	// offset and limit.
	Count(ctx context.Context, q store.ListQuery) (int, error)

	// CountAll returns the unfiltered total.
	CountAll(ctx context.Context) (int, error)

	// ReferenceExists reports whether a reference is already taken.
	ReferenceExists(ctx context.Context, reference string) (bool, error)

	// Capabilities reports what this store can do.
	Capabilities() store.Capabilities
}

// HistoryStore persists the append-only activity trail.
type HistoryStore interface {
	// Append records a history entry.
	Append(ctx context.Context, entry *models.HistoryEntry) error

	// ForEnquiry returns an enquiry's trail, oldest first.
	ForEnquiry(ctx context.Context, enquiryID id.EnquiryID) ([]*models.HistoryEntry, error)
}

// ReferenceAllocator hands out unique enquiry references.
type ReferenceAllocator interface {
	// Next allocates the next reference for the year of the request time.
	Next(ctx context.Context) (string, error)
}

// Directory resolves the entities an enquiry links to.
type Directory interface {
	Officer(ctx context.Context, officerID id.OfficerID) (*dirmodels.Officer, error)
	Member(ctx context.Context, memberID id.MemberID) (*dirmodels.Member, error)
	Ward(ctx context.Context, wardID id.WardID) (*dirmodels.Ward, error)
	Section(ctx context.Context, sectionID id.SectionID) (*dirmodels.Section, error)
	JobType(ctx context.Context, jobTypeID id.JobTypeID) (*dirmodels.JobType, error)
	Contact(ctx context.Context, contactID id.ContactID) (*dirmodels.Contact, error)

	// JobTypesInSection expands a section to its job types, for the section
	// listing filter.
	JobTypesInSection(ctx context.Context, sectionID id.SectionID) ([]*dirmodels.JobType, error)
}

// PopularRecorder tracks which form choices officers actually use.
type PopularRecorder interface {
	// BumpJobType and BumpContact increment usage counters. Failures are
	// soft; callers log and continue.
	BumpJobType(ctx context.Context, jobTypeID id.JobTypeID) error
	BumpContact(ctx context.Context, contactID id.ContactID) error
}
