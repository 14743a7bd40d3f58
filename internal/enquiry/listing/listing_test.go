package listing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"enquiries/internal/enquiry/filter"
	"enquiries/internal/enquiry/store"
	id "enquiries/pkg/domain"
)

func mustUUID(s string) uuid.UUID {
	return uuid.MustParse(s)
}

func TestColumnTable(t *testing.T) {
	assert.Len(t, Columns, 16)

	t.Run("computed columns are not orderable", func(t *testing.T) {
		for _, idx := range []int{12, 14, 15} {
			assert.Empty(t, Columns[idx].Sort, "column %d (%s)", idx, Columns[idx].Name)
		}
	})

	t.Run("due date orders by created", func(t *testing.T) {
		assert.Equal(t, store.SortCreated, Columns[11].Sort)
	})
}

func TestOrderFor(t *testing.T) {
	tests := []struct {
		name   string
		column int
		desc   bool
		want   store.Order
	}{
		{"orderable column honoured", 0, false, store.Order{Field: store.SortReference}},
		{"descending honoured", 1, true, store.Order{Field: store.SortTitle, Desc: true}},
		{"non-orderable falls back to default", 12, false, store.DefaultOrder},
		{"actions falls back to default", 15, true, store.DefaultOrder},
		{"out of range falls back to default", 99, false, store.DefaultOrder},
		{"negative falls back to default", -1, false, store.DefaultOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderFor(tt.column, tt.desc))
		})
	}
}

func TestRequestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		pageSize   int
		wantOffset int
		wantSize   int
	}{
		{"negative offset clamps to zero", -7, 25, 0, 25},
		{"all sentinel caps at max", 0, PageSizeAll, 0, MaxPageSize},
		{"zero gets the default", 0, 0, 0, DefaultPageSize},
		{"other negatives get the default", 0, -3, 0, DefaultPageSize},
		{"oversized caps at max", 0, 50000, 0, MaxPageSize},
		{"sane values pass through", 30, 10, 30, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Request{Offset: tt.offset, PageSize: tt.pageSize}
			r.normalize()
			assert.Equal(t, tt.wantOffset, r.Offset)
			assert.Equal(t, tt.wantSize, r.PageSize)
		})
	}
}

// The two grading scales look similar but mean different things; a swap
// would misreport performance, so pin both.
func TestTierTables(t *testing.T) {
	t.Run("resolution tiers", func(t *testing.T) {
		assert.Equal(t, "good", ResolutionStyle(0))
		assert.Equal(t, "good", ResolutionStyle(5))
		assert.Equal(t, "warning", ResolutionStyle(6))
		assert.Equal(t, "warning", ResolutionStyle(10))
		assert.Equal(t, "late", ResolutionStyle(11))
	})

	t.Run("overdue tiers", func(t *testing.T) {
		assert.Equal(t, "warning", OverdueStyle(1))
		assert.Equal(t, "warning", OverdueStyle(2))
		assert.Equal(t, "urgent", OverdueStyle(3))
		assert.Equal(t, "urgent", OverdueStyle(5))
		assert.Equal(t, "critical", OverdueStyle(6))
	})

	t.Run("scales diverge where they overlap", func(t *testing.T) {
		assert.NotEqual(t, ResolutionStyle(5), OverdueStyle(5))
		assert.NotEqual(t, ResolutionStyle(3), OverdueStyle(3))
	})
}

func TestDrillDown(t *testing.T) {
	officerID := id.OfficerID(mustUUID("11111111-1111-1111-1111-111111111111"))

	t.Run("inactive criteria contribute nothing", func(t *testing.T) {
		v := DrillDown(filter.Criteria{Status: "all"}, "", "")
		assert.Empty(t, v)
	})

	t.Run("active criteria become params", func(t *testing.T) {
		v := DrillDown(filter.Criteria{
			Status:      "open",
			OfficerID:   officerID,
			OverdueOnly: true,
		}, "", "")
		assert.Equal(t, "open", v.Get("status"))
		assert.Equal(t, officerID.String(), v.Get("officer"))
		assert.Equal(t, "on", v.Get("overdue"))
	})

	t.Run("false booleans are dropped", func(t *testing.T) {
		v := DrillDown(filter.Criteria{Status: "open"}, "", "")
		assert.False(t, v.Has("overdue"))
	})

	t.Run("extra pair is appended", func(t *testing.T) {
		v := DrillDown(filter.Criteria{}, "member", "abc")
		assert.Equal(t, "abc", v.Get("member"))
	})
}
