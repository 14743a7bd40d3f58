package listing

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	dirmodels "enquiries/internal/directory/models"
	dirstore "enquiries/internal/directory/store"
	"enquiries/internal/enquiry/daterange"
	"enquiries/internal/enquiry/filter"
	"enquiries/internal/enquiry/models"
	enquirystore "enquiries/internal/enquiry/store/enquiry"
	id "enquiries/pkg/domain"
	"enquiries/pkg/requestcontext"
)

type ListingServiceSuite struct {
	suite.Suite
	store   *enquirystore.MemoryStore
	dir     *dirstore.MemoryStore
	service *Service
	now     time.Time
	ctx     context.Context

	officer dirmodels.Officer
	member  dirmodels.Member
	section dirmodels.Section
	jobType dirmodels.JobType
}

func TestListingServiceSuite(t *testing.T) {
	suite.Run(t, new(ListingServiceSuite))
}

func (s *ListingServiceSuite) SetupTest() {
	s.store = enquirystore.NewMemory()
	s.dir = dirstore.NewMemory()
	s.service = NewService(s.store, filter.New(s.dir), s.dir, slog.Default())
	s.now = time.Date(2025, time.June, 16, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	s.officer = dirmodels.Officer{ID: id.OfficerID(uuid.New()), Name: "Pat Reeve", Active: true}
	s.member = dirmodels.Member{ID: id.MemberID(uuid.New()), Name: "Cllr Dean", Active: true}
	s.section = dirmodels.Section{ID: id.SectionID(uuid.New()), Name: "Highways"}
	s.jobType = dirmodels.JobType{ID: id.JobTypeID(uuid.New()), Name: "Pothole", SectionID: s.section.ID}
	s.dir.AddOfficer(&s.officer)
	s.dir.AddMember(&s.member)
	s.dir.AddSection(&s.section)
	s.dir.AddJobType(&s.jobType)
}

// seed creates n enquiries a day apart, the oldest n-1 days ago.
func (s *ListingServiceSuite) seed(n int) []*models.Enquiry {
	out := make([]*models.Enquiry, 0, n)
	for i := 0; i < n; i++ {
		created := s.now.AddDate(0, 0, -(n - 1 - i))
		e, err := models.NewEnquiry(id.NewEnquiryID(),
			fmt.Sprintf("MEM-25-%04d", i+1),
			fmt.Sprintf("pothole report %d", i),
			"carriageway damage",
			created)
		s.Require().NoError(err)
		e.OfficerID = s.officer.ID
		e.MemberID = s.member.ID
		e.JobTypeID = s.jobType.ID
		s.Require().NoError(s.store.Create(s.ctx, e))
		out = append(out, e)
	}
	return out
}

func allTime() filter.Criteria {
	return filter.Criteria{Range: daterange.Range{Kind: daterange.KindAll}}
}

func (s *ListingServiceSuite) TestDrawTokenEchoedAndCounts() {
	s.seed(4)

	res, err := s.service.List(s.ctx, Request{
		DrawToken: "draw-7",
		PageSize:  2,
		Criteria:  allTime(),
	})
	s.Require().NoError(err)

	s.Equal("draw-7", res.DrawToken)
	s.Equal(4, res.TotalCount)
	s.Equal(4, res.FilteredCount, "filtered count ignores pagination")
	s.Len(res.Rows, 2)
}

func (s *ListingServiceSuite) TestCountsWithStatusFilter() {
	seeded := s.seed(4)
	seeded[0].ApplyClose(models.ServiceFailedService, s.now)
	s.Require().NoError(s.store.Update(s.ctx, seeded[0]))

	c := allTime()
	c.Status = "open"
	res, err := s.service.List(s.ctx, Request{Criteria: c})
	s.Require().NoError(err)

	s.Equal(4, res.TotalCount, "total ignores filters")
	s.Equal(3, res.FilteredCount)
}

func (s *ListingServiceSuite) TestRowRendering() {
	seeded := s.seed(1)
	e := seeded[0]

	res, err := s.service.List(s.ctx, Request{Criteria: allTime()})
	s.Require().NoError(err)
	s.Require().Len(res.Rows, 1)

	row := res.Rows[0]
	s.Equal(e.ID.String(), row.ID)
	s.Require().Len(row.Cells, len(Columns))
	s.Equal(e.Reference, row.Cells[0].Text)
	s.Equal("Cllr Dean", row.Cells[2].Text)
	s.Equal("Highways", row.Cells[3].Text)
	s.Equal("Pothole", row.Cells[4].Text)
	s.Equal("Pat Reeve", row.Cells[8].Text)
	s.Equal(e.CreatedAt.Format("02/01/2006"), row.Cells[9].Text)
}

func (s *ListingServiceSuite) TestOverdueRowHighlightAndStyle() {
	e, err := models.NewEnquiry(id.NewEnquiryID(), "MEM-25-0100", "old case", "",
		s.now.AddDate(0, 0, -20))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, e))

	res, err := s.service.List(s.ctx, Request{Criteria: allTime()})
	s.Require().NoError(err)
	s.Require().Len(res.Rows, 1)

	row := res.Rows[0]
	s.Equal("overdue", row.Highlight)
	s.Equal("overdue", row.Cells[11].Style, "due date cell styled once past due")
	s.NotEmpty(row.Cells[12].Text, "overdue days cell populated")
	s.Equal("critical", row.Cells[12].Style)
	s.Empty(row.Cells[14].Text, "no resolution time while open")
}

func (s *ListingServiceSuite) TestHighlightWaitsForDueDate() {
	// Created Monday 9 June; five business days put the due date on
	// Monday 16 June. The intervening weekend must not light the row up.
	e, err := models.NewEnquiry(id.NewEnquiryID(), "MEM-25-0102", "weekend case", "",
		time.Date(2025, time.June, 9, 9, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, e))

	listAt := func(now time.Time) Row {
		ctx := requestcontext.WithTime(context.Background(), now)
		res, err := s.service.List(ctx, Request{Criteria: allTime()})
		s.Require().NoError(err)
		s.Require().Len(res.Rows, 1)
		return res.Rows[0]
	}

	sunday := listAt(time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))
	s.Empty(sunday.Highlight, "due date has not passed yet")
	s.Empty(sunday.Cells[11].Style)
	s.Empty(sunday.Cells[12].Text)

	dueDay := listAt(time.Date(2025, time.June, 16, 12, 0, 0, 0, time.UTC))
	s.Empty(dueDay.Highlight, "the due day itself is still on time")

	tuesday := listAt(time.Date(2025, time.June, 17, 9, 0, 0, 0, time.UTC))
	s.Equal("overdue", tuesday.Highlight)
	s.Equal("overdue", tuesday.Cells[11].Style)
	s.Equal("1", tuesday.Cells[12].Text)
}

func (s *ListingServiceSuite) TestClosedRowResolutionStyle() {
	e, err := models.NewEnquiry(id.NewEnquiryID(), "MEM-25-0101", "quick fix", "",
		s.now.AddDate(0, 0, -3))
	s.Require().NoError(err)
	e.ApplyClose(models.ServiceNewAddition, s.now.AddDate(0, 0, -1))
	s.Require().NoError(s.store.Create(s.ctx, e))

	res, err := s.service.List(s.ctx, Request{Criteria: allTime()})
	s.Require().NoError(err)
	s.Require().Len(res.Rows, 1)

	row := res.Rows[0]
	s.Empty(row.Highlight, "closed rows are never highlighted")
	s.Equal("good", row.Cells[14].Style)
	s.NotEmpty(row.Cells[13].Text, "closed date rendered")
}

func (s *ListingServiceSuite) TestTitleClauses() {
	c := allTime()
	c.Status = "open"
	c.OfficerID = s.officer.ID
	c.MemberID = s.member.ID
	c.SectionID = s.section.ID
	c.OverdueOnly = true
	c.Range = daterange.Resolve(s.now, time.UTC, daterange.Selection3Months, "", "")

	res, err := s.service.List(s.ctx, Request{Term: "pothole", Criteria: c})
	s.Require().NoError(err)

	s.Equal("Enquiries open that contain 'pothole' in the last 3 months "+
		"created by Pat Reeve for Cllr Dean (Section: Highways) (overdue only)", res.Title)
}

func (s *ListingServiceSuite) TestTitleSkipsMissingEntities() {
	c := allTime()
	c.OfficerID = id.OfficerID(uuid.New()) // not in the directory

	res, err := s.service.List(s.ctx, Request{Criteria: c})
	s.Require().NoError(err)
	s.Equal("Enquiries in All Time", res.Title)
}

func (s *ListingServiceSuite) TestEmptyResultHint() {
	s.seed(2)

	c := allTime()
	c.Status = "closed"
	res, err := s.service.List(s.ctx, Request{Criteria: c})
	s.Require().NoError(err)
	s.Zero(res.FilteredCount)
	s.NotEmpty(res.Hint)

	// Without a status filter there is nothing to suggest.
	res, err = s.service.List(s.ctx, Request{Term: "zzz-no-match", Criteria: allTime()})
	s.Require().NoError(err)
	s.Zero(res.FilteredCount)
	s.Empty(res.Hint)
}

func (s *ListingServiceSuite) TestSearchCapOnlyWithoutNarrowing() {
	s.seed(6)

	// Bare search: capped (we use a tiny page size to observe the counts).
	res, err := s.service.List(s.ctx, Request{Term: "pothole", Criteria: allTime()})
	s.Require().NoError(err)
	s.Equal(6, res.FilteredCount, "cap is 500; six rows stay six")

	// Narrowed search still counts everything that matches.
	c := allTime()
	c.Status = "open"
	res, err = s.service.List(s.ctx, Request{Term: "pothole", Criteria: c})
	s.Require().NoError(err)
	s.Equal(6, res.FilteredCount)
}

func (s *ListingServiceSuite) TestStreamIsUnpaginatedDefaultOrder() {
	s.seed(5)

	got, err := s.service.Stream(s.ctx, Request{PageSize: 2, Criteria: allTime()})
	s.Require().NoError(err)
	s.Require().Len(got, 5, "stream ignores page size")
	s.True(got[0].CreatedAt.After(got[1].CreatedAt), "newest first")
}
