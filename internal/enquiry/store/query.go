// Package store defines the query contract shared by the enquiry store
// implementations. The filter and search packages build a ListQuery; the
// stores execute it conjunctively.
package store

import (
	"time"

	"enquiries/internal/enquiry/models"
	id "enquiries/pkg/domain"
)

// Capabilities reports what the backing store can do. Probed at runtime so
// the same binary adapts to environments with and without the full-text
// index.
type Capabilities struct {
	// IndexedSearch is true when the store can serve index-backed
	// phrase/prefix search over reference, title and description.
	IndexedSearch bool
}

// SearchMode selects how a search term is matched.
type SearchMode string

const (
	// SearchNone means no search predicate.
	SearchNone SearchMode = ""
	// SearchPhrase matches the exact phrase via the full-text index.
	SearchPhrase SearchMode = "phrase"
	// SearchPrefix matches a single token with a trailing wildcard via the
	// full-text index.
	SearchPrefix SearchMode = "prefix"
	// SearchSubstring matches case-insensitively against reference, title
	// or description.
	SearchSubstring SearchMode = "substring"
)

// SearchSpec is a shaped search predicate.
type SearchSpec struct {
	Term string
	Mode SearchMode
}

// Active reports whether the spec carries a search predicate.
func (s SearchSpec) Active() bool {
	return s.Mode != SearchNone && s.Term != ""
}

// SortField names a sortable column.
type SortField string

const (
	SortReference   SortField = "reference"
	SortTitle       SortField = "title"
	SortMember      SortField = "member"
	SortSection     SortField = "section"
	SortJobType     SortField = "job_type"
	SortServiceType SortField = "service_type"
	SortContact     SortField = "contact"
	SortStatus      SortField = "status"
	SortOfficer     SortField = "officer"
	SortCreated     SortField = "created_at"
	SortUpdated     SortField = "updated_at"
	SortClosed      SortField = "closed_at"
)

// Order is a sort instruction. The zero value means the store default,
// newest first.
type Order struct {
	Field SortField
	Desc  bool
}

// DefaultOrder is newest-created first.
var DefaultOrder = Order{Field: SortCreated, Desc: true}

// ListQuery carries every predicate for listing, counting and streaming
// enquiries. All set fields combine conjunctively.
type ListQuery struct {
	// MatchNone short-circuits the query to an empty result. Set when a
	// filter expands to an empty candidate set (a section with no job
	// types must match nothing, not everything).
	MatchNone bool

	Statuses    []models.Status
	ServiceType models.ServiceType
	OfficerID   id.OfficerID
	MemberID    id.MemberID
	WardID      id.WardID
	ContactID   id.ContactID
	JobTypeID   id.JobTypeID
	// JobTypeIDs holds the expansion of a section filter. Combined with
	// JobTypeID conjunctively if both are set.
	JobTypeIDs []id.JobTypeID

	// CreatedFrom is inclusive, CreatedBefore exclusive.
	CreatedFrom   *time.Time
	CreatedBefore *time.Time

	Search SearchSpec
	// MatchLimit restricts the candidate set to the N most recently created
	// search matches before counting and pagination. Zero means uncapped.
	MatchLimit int

	Order  Order
	Offset int
	// Limit of 0 returns all remaining rows.
	Limit int
}
