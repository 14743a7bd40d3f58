package filter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	dirmodels "enquiries/internal/directory/models"
	dirstore "enquiries/internal/directory/store"
	"enquiries/internal/enquiry/daterange"
	"enquiries/internal/enquiry/models"
	id "enquiries/pkg/domain"
)

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

var now = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func newPipeline() (*Pipeline, *dirstore.MemoryStore) {
	dir := dirstore.NewMemory()
	return New(dir), dir
}

func TestStatusMapping(t *testing.T) {
	p, _ := newPipeline()

	tests := []struct {
		name   string
		status string
		want   []models.Status
	}{
		{"open covers new and open", "open", []models.Status{models.StatusNew, models.StatusOpen}},
		{"closed is exact", "closed", []models.Status{models.StatusClosed}},
		{"new is exact", "new", []models.Status{models.StatusNew}},
		{"empty means no filter", "", nil},
		{"all means no filter", "all", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := p.Build(context.Background(), Criteria{Status: tt.status, Range: daterange.Range{Kind: daterange.KindAll}}, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Statuses)
		})
	}
}

func TestOverdueFilter(t *testing.T) {
	p, _ := newPipeline()

	t.Run("restricts to active statuses with calendar cutoff", func(t *testing.T) {
		q, err := p.Build(context.Background(), Criteria{OverdueOnly: true, Range: daterange.Range{Kind: daterange.KindAll}}, now)
		require.NoError(t, err)
		assert.Equal(t, []models.Status{models.StatusNew, models.StatusOpen}, q.Statuses)
		require.NotNil(t, q.CreatedBefore)
		assert.Equal(t, now.AddDate(0, 0, -5), *q.CreatedBefore)
	})

	t.Run("honours configured window", func(t *testing.T) {
		p := New(dirstore.NewMemory(), WithOverdueDays(10))
		q, err := p.Build(context.Background(), Criteria{OverdueOnly: true, Range: daterange.Range{Kind: daterange.KindAll}}, now)
		require.NoError(t, err)
		require.NotNil(t, q.CreatedBefore)
		assert.Equal(t, now.AddDate(0, 0, -10), *q.CreatedBefore)
	})

	t.Run("closed plus overdue matches nothing", func(t *testing.T) {
		q, err := p.Build(context.Background(), Criteria{Status: "closed", OverdueOnly: true, Range: daterange.Range{Kind: daterange.KindAll}}, now)
		require.NoError(t, err)
		assert.True(t, q.MatchNone)
	})
}

func TestDateWindow(t *testing.T) {
	p, _ := newPipeline()

	from := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)

	t.Run("upper bound is exclusive next day", func(t *testing.T) {
		q, err := p.Build(context.Background(), Criteria{
			Range: daterange.Range{From: &from, To: &to, Kind: daterange.KindCustom},
		}, now)
		require.NoError(t, err)
		require.NotNil(t, q.CreatedFrom)
		require.NotNil(t, q.CreatedBefore)
		assert.Equal(t, from, *q.CreatedFrom)
		assert.Equal(t, to.AddDate(0, 0, 1), *q.CreatedBefore)
	})

	t.Run("all time adds no date predicates", func(t *testing.T) {
		q, err := p.Build(context.Background(), Criteria{Range: daterange.Range{Kind: daterange.KindAll}}, now)
		require.NoError(t, err)
		assert.Nil(t, q.CreatedFrom)
		assert.Nil(t, q.CreatedBefore)
	})

	t.Run("overdue cutoff and range upper take the earlier", func(t *testing.T) {
		q, err := p.Build(context.Background(), Criteria{
			OverdueOnly: true,
			Range:       daterange.Range{From: &from, To: &to, Kind: daterange.KindCustom},
		}, now)
		require.NoError(t, err)
		require.NotNil(t, q.CreatedBefore)
		// June 1st (range bound) is earlier than June 10th (overdue cutoff).
		assert.Equal(t, to.AddDate(0, 0, 1), *q.CreatedBefore)
	})
}

func TestSectionExpansion(t *testing.T) {
	p, dir := newPipeline()

	section := dirmodels.Section{ID: id.SectionID(newUUID(t)), Name: "Highways"}
	dir.AddSection(&section)

	t.Run("section with no job types matches nothing", func(t *testing.T) {
		q, err := p.Build(context.Background(), Criteria{SectionID: section.ID, Range: daterange.Range{Kind: daterange.KindAll}}, now)
		require.NoError(t, err)
		assert.True(t, q.MatchNone)
	})

	t.Run("section expands to its job types", func(t *testing.T) {
		jt1 := dirmodels.JobType{ID: id.JobTypeID(newUUID(t)), Name: "Pothole", SectionID: section.ID}
		jt2 := dirmodels.JobType{ID: id.JobTypeID(newUUID(t)), Name: "Signage", SectionID: section.ID}
		dir.AddJobType(&jt1)
		dir.AddJobType(&jt2)

		q, err := p.Build(context.Background(), Criteria{SectionID: section.ID, Range: daterange.Range{Kind: daterange.KindAll}}, now)
		require.NoError(t, err)
		assert.False(t, q.MatchNone)
		assert.ElementsMatch(t, []id.JobTypeID{jt1.ID, jt2.ID}, q.JobTypeIDs)
	})
}

func TestNarrowing(t *testing.T) {
	assert.False(t, Criteria{Range: daterange.Range{Kind: daterange.KindAll}}.Narrowing())
	assert.False(t, Criteria{Status: "all", Range: daterange.Range{Kind: daterange.KindAll}}.Narrowing())
	assert.True(t, Criteria{Status: "open", Range: daterange.Range{Kind: daterange.KindAll}}.Narrowing())
	assert.True(t, Criteria{OverdueOnly: true, Range: daterange.Range{Kind: daterange.KindAll}}.Narrowing())
	assert.True(t, Criteria{Range: daterange.Range{Kind: daterange.KindPreset}}.Narrowing())
}
