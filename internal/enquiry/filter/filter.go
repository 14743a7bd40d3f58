// Package filter translates listing criteria into store queries. The field
// set is closed: every supported filter is an explicit struct field, and all
// active filters combine conjunctively.
package filter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"enquiries/internal/enquiry/daterange"
	"enquiries/internal/enquiry/models"
	"enquiries/internal/enquiry/ports"
	"enquiries/internal/enquiry/store"
	id "enquiries/pkg/domain"
	"enquiries/pkg/platform/sentinel"
)

// StatusAll is the explicit "no status filter" selection. An empty status
// means the same thing.
const StatusAll = "all"

// StatusOpen is the user-facing "open" selection, covering both new and
// open enquiries underneath.
const StatusOpen = "open"

// Criteria is the closed set of listing filters.
type Criteria struct {
	// Status is the user-facing selection: "", "all", "new", "open",
	// "closed". "open" covers {new, open}.
	Status      string
	ServiceType models.ServiceType
	OfficerID   id.OfficerID
	MemberID    id.MemberID
	WardID      id.WardID
	SectionID   id.SectionID
	JobTypeID   id.JobTypeID
	ContactID   id.ContactID
	OverdueOnly bool
	Range       daterange.Range
}

// StatusActive reports whether a status filter is in effect.
func (c Criteria) StatusActive() bool {
	return c.Status != "" && c.Status != StatusAll
}

// Narrowing reports whether any criterion besides a search term restricts
// the result set. The search cap only applies when nothing else narrows.
func (c Criteria) Narrowing() bool {
	return c.StatusActive() ||
		c.ServiceType != "" ||
		!c.OfficerID.IsNil() ||
		!c.MemberID.IsNil() ||
		!c.WardID.IsNil() ||
		!c.SectionID.IsNil() ||
		!c.JobTypeID.IsNil() ||
		!c.ContactID.IsNil() ||
		c.OverdueOnly ||
		c.Range.Kind != daterange.KindAll
}

// Pipeline builds store queries from criteria.
type Pipeline struct {
	directory   ports.Directory
	overdueDays int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOverdueDays overrides the calendar-day overdue window.
func WithOverdueDays(days int) Option {
	return func(p *Pipeline) {
		if days > 0 {
			p.overdueDays = days
		}
	}
}

// New constructs a Pipeline over the given directory.
func New(directory ports.Directory, opts ...Option) *Pipeline {
	p := &Pipeline{
		directory:   directory,
		overdueDays: models.DueDays,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build translates criteria into a ListQuery relative to now. A section
// filter expands to the section's job types; a section with none matches
// nothing.
func (p *Pipeline) Build(ctx context.Context, c Criteria, now time.Time) (store.ListQuery, error) {
	q := store.ListQuery{
		ServiceType: c.ServiceType,
		OfficerID:   c.OfficerID,
		MemberID:    c.MemberID,
		WardID:      c.WardID,
		ContactID:   c.ContactID,
		JobTypeID:   c.JobTypeID,
	}

	q.Statuses = statusesFor(c)
	if c.OverdueOnly && c.StatusActive() && len(q.Statuses) == 0 {
		// Overdue-only combined with a closed status filter can match
		// nothing: closed enquiries are never overdue.
		q.MatchNone = true
		return q, nil
	}

	if c.OverdueOnly {
		// Calendar days, deliberately distinct from the business-day due
		// date shown in listings.
		cutoff := now.AddDate(0, 0, -p.overdueDays)
		q.CreatedBefore = earlierOf(q.CreatedBefore, &cutoff)
	}

	if c.Range.From != nil {
		from := *c.Range.From
		q.CreatedFrom = &from
	}
	if c.Range.To != nil {
		// To is an inclusive date; the store bound is exclusive.
		before := c.Range.To.AddDate(0, 0, 1)
		q.CreatedBefore = earlierOf(q.CreatedBefore, &before)
	}

	if !c.SectionID.IsNil() {
		jobTypes, err := p.directory.JobTypesInSection(ctx, c.SectionID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return store.ListQuery{}, fmt.Errorf("expand section filter: %w", err)
		}
		if len(jobTypes) == 0 {
			q.MatchNone = true
			return q, nil
		}
		ids := make([]id.JobTypeID, 0, len(jobTypes))
		for _, jt := range jobTypes {
			ids = append(ids, jt.ID)
		}
		q.JobTypeIDs = ids
	}

	return q, nil
}

// statusesFor maps the user-facing status selection, folding in the overdue
// restriction to active statuses.
func statusesFor(c Criteria) []models.Status {
	var selected []models.Status
	switch {
	case !c.StatusActive():
		// no explicit filter
	case c.Status == StatusOpen:
		selected = []models.Status{models.StatusNew, models.StatusOpen}
	default:
		selected = []models.Status{models.Status(c.Status)}
	}

	if !c.OverdueOnly {
		return selected
	}

	active := []models.Status{models.StatusNew, models.StatusOpen}
	if selected == nil {
		return active
	}
	var both []models.Status
	for _, st := range selected {
		if st.IsActive() {
			both = append(both, st)
		}
	}
	return both
}

func earlierOf(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil || a.Before(*b) {
		return a
	}
	return b
}
