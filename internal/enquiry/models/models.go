// Package models defines the enquiry aggregate and its value types.
package models

import (
	"time"

	"enquiries/pkg/businessdays"
	id "enquiries/pkg/domain"
	dErrors "enquiries/pkg/domain-errors"
)

// Status is the lifecycle state of an enquiry.
type Status string

const (
	StatusNew    Status = "new"
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusOpen, StatusClosed:
		return true
	}
	return false
}

// IsActive reports whether the enquiry still needs attention. Both new and
// open enquiries count as active; listing filters treat "open" as this pair.
func (s Status) IsActive() bool {
	return s == StatusNew || s == StatusOpen
}

// ServiceType records how a closed enquiry was resolved.
type ServiceType string

const (
	ServiceFailedService ServiceType = "failed_service"
	ServiceNewAddition   ServiceType = "new_addition"
	ServicePreProgrammed ServiceType = "pre_programmed"
	ServiceThirdParty    ServiceType = "3rd_party"
)

func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceFailedService, ServiceNewAddition, ServicePreProgrammed, ServiceThirdParty:
		return true
	}
	return false
}

// DueDays is the service standard for responding to an enquiry, counted in
// business days from creation. The overdue listing filter uses the same
// number as a calendar-day window.
const DueDays = 5

// Enquiry is the aggregate root for a member enquiry.
//
// Invariants:
//   - Reference is unique and immutable once allocated
//   - Status transitions: new -> open -> closed, closed -> open (reopen),
//     new -> closed (direct close)
//   - ServiceType is set if and only if the enquiry has been closed at least once
//   - CreatedAt is immutable after construction
type Enquiry struct {
	ID          id.EnquiryID `json:"id"`
	Reference   string       `json:"reference"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	ServiceType ServiceType  `json:"service_type,omitempty"`

	OfficerID id.OfficerID `json:"officer_id,omitempty"`
	MemberID  id.MemberID  `json:"member_id,omitempty"`
	WardID    id.WardID    `json:"ward_id,omitempty"`
	JobTypeID id.JobTypeID `json:"job_type_id,omitempty"`
	ContactID id.ContactID `json:"contact_id,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	DueDate   time.Time  `json:"due_date"`
}

// NewEnquiry constructs an enquiry in the new state with its due date
// derived from the creation time.
func NewEnquiry(enquiryID id.EnquiryID, reference, title, description string, now time.Time) (*Enquiry, error) {
	if reference == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "enquiry reference cannot be empty")
	}
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "enquiry title cannot be empty")
	}
	return &Enquiry{
		ID:          enquiryID,
		Reference:   reference,
		Title:       title,
		Description: description,
		Status:      StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     businessdays.DueDate(now, DueDays),
	}, nil
}

// IsPastDue reports whether the enquiry is active and its due date has
// passed. Dates are compared by calendar day, so a row created on a Monday
// becomes past due at the start of the Tuesday after its due Monday, never
// over the intervening weekend.
func (e *Enquiry) IsPastDue(now time.Time) bool {
	return e.Status.IsActive() && dateOf(e.DueDate).Before(dateOf(now))
}

// OverdueBusinessDays returns how many business days the enquiry has been
// past its due date. Zero when not past due.
func (e *Enquiry) OverdueBusinessDays(now time.Time) int {
	if !e.IsPastDue(now) {
		return 0
	}
	return businessdays.Between(e.DueDate, now)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolutionBusinessDays returns the business days taken to resolve the
// enquiry, or elapsed so far for active ones.
func (e *Enquiry) ResolutionBusinessDays(now time.Time) int {
	end := now
	if e.ClosedAt != nil {
		end = *e.ClosedAt
	}
	return businessdays.Between(e.CreatedAt, end)
}

// CanClose checks the close transition. ServiceType is mandatory at close so
// the resolution category is never lost.
func (e *Enquiry) CanClose(serviceType ServiceType) error {
	if e.Status == StatusClosed {
		return dErrors.New(dErrors.CodeInvariantViolation, "enquiry is already closed")
	}
	if !serviceType.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "a valid service type is required to close an enquiry")
	}
	return nil
}

// ApplyClose transitions the enquiry to closed.
func (e *Enquiry) ApplyClose(serviceType ServiceType, now time.Time) {
	e.Status = StatusClosed
	e.ServiceType = serviceType
	closedAt := now
	e.ClosedAt = &closedAt
	e.UpdatedAt = now
}

// CanReopen checks the reopen transition.
func (e *Enquiry) CanReopen() error {
	if e.Status != StatusClosed {
		return dErrors.New(dErrors.CodeInvariantViolation, "only closed enquiries can be reopened")
	}
	return nil
}

// ApplyReopen transitions the enquiry back to open. The previous service
// type and closed timestamp are cleared; history keeps the record.
func (e *Enquiry) ApplyReopen(now time.Time) {
	e.Status = StatusOpen
	e.ServiceType = ""
	e.ClosedAt = nil
	e.UpdatedAt = now
}

// ApplyProgress moves a new enquiry to open once work has started on it.
// Open and closed enquiries are left untouched.
func (e *Enquiry) ApplyProgress(now time.Time) {
	if e.Status == StatusNew {
		e.Status = StatusOpen
		e.UpdatedAt = now
	}
}
