// Package listing adapts the enquiry store to the grid protocol the
// frontend speaks: echoed draw tokens, dual result counts, ordered display
// cells and a human-readable listing title.
package listing

import (
	"enquiries/internal/enquiry/filter"
	"enquiries/internal/enquiry/store"
)

const (
	// DefaultPageSize matches the grid's default page length.
	DefaultPageSize = 10
	// PageSizeAll is the client sentinel for "no paging".
	PageSizeAll = -1
	// MaxPageSize caps what "no paging" actually returns.
	MaxPageSize = 10000
)

// Request is one grid page request.
type Request struct {
	// DrawToken is echoed verbatim so the client can discard stale
	// responses.
	DrawToken string
	Offset    int
	PageSize  int
	// OrderColumn indexes Columns; out-of-range or non-orderable columns
	// fall back to the default order.
	OrderColumn int
	OrderDesc   bool
	Term        string
	Criteria    filter.Criteria
}

// normalize clamps the paging fields in place.
func (r *Request) normalize() {
	if r.Offset < 0 {
		r.Offset = 0
	}
	switch {
	case r.PageSize == PageSizeAll:
		r.PageSize = MaxPageSize
	case r.PageSize <= 0:
		r.PageSize = DefaultPageSize
	case r.PageSize > MaxPageSize:
		r.PageSize = MaxPageSize
	}
}

// Cell is one rendered display cell.
type Cell struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

// Row is one rendered grid row.
type Row struct {
	ID    string `json:"id"`
	Cells []Cell `json:"cells"`
	// Highlight marks the whole row; "overdue" for active enquiries past
	// their due date.
	Highlight string `json:"highlight,omitempty"`
}

// Result is one grid page response.
type Result struct {
	DrawToken string `json:"draw"`
	// TotalCount is the unfiltered table size; FilteredCount the size
	// after filters and search, before pagination.
	TotalCount    int    `json:"records_total"`
	FilteredCount int    `json:"records_filtered"`
	Rows          []Row  `json:"rows"`
	Title         string `json:"title"`
	// Hint suggests broadening the search when a status filter produced
	// nothing.
	Hint string `json:"hint,omitempty"`
}

// Column describes one grid column.
type Column struct {
	Name string
	// Sort is the store field this column orders by; empty means the
	// column is not orderable.
	Sort store.SortField
}

// Columns is the fixed column table, in display order. Computed columns
// (overdue days, resolution time, actions) are not orderable; ordering
// requests against them silently fall back to newest-first.
var Columns = []Column{
	{Name: "reference", Sort: store.SortReference},
	{Name: "title", Sort: store.SortTitle},
	{Name: "member", Sort: store.SortMember},
	{Name: "section", Sort: store.SortSection},
	{Name: "job_type", Sort: store.SortJobType},
	{Name: "service_type", Sort: store.SortServiceType},
	{Name: "contact", Sort: store.SortContact},
	{Name: "status", Sort: store.SortStatus},
	{Name: "officer", Sort: store.SortOfficer},
	{Name: "created", Sort: store.SortCreated},
	{Name: "updated", Sort: store.SortUpdated},
	// Due date is created plus a constant span, so created order is due
	// order.
	{Name: "due_date", Sort: store.SortCreated},
	{Name: "overdue_days"},
	{Name: "closed", Sort: store.SortClosed},
	{Name: "resolution_time"},
	{Name: "actions"},
}

// orderFor maps an order request to a store order, falling back to the
// default for anything not orderable.
func orderFor(column int, desc bool) store.Order {
	if column < 0 || column >= len(Columns) {
		return store.DefaultOrder
	}
	col := Columns[column]
	if col.Sort == "" {
		return store.DefaultOrder
	}
	return store.Order{Field: col.Sort, Desc: desc}
}
