package listing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"enquiries/internal/enquiry/filter"
	"enquiries/internal/enquiry/metrics"
	"enquiries/internal/enquiry/models"
	"enquiries/internal/enquiry/ports"
	"enquiries/internal/enquiry/search"
	"enquiries/internal/enquiry/store"
	id "enquiries/pkg/domain"
	dErrors "enquiries/pkg/domain-errors"
	"enquiries/pkg/requestcontext"
)

const dateLayout = "02/01/2006"

// Service serves grid listing requests.
type Service struct {
	store   ports.EnquiryStore
	filters FilterBuilder
	dir     ports.Directory
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// FilterBuilder translates criteria into store queries. Implemented by
// filter.Pipeline.
type FilterBuilder interface {
	Build(ctx context.Context, c filter.Criteria, now time.Time) (store.ListQuery, error)
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics attaches domain metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs a listing service.
func NewService(st ports.EnquiryStore, filters FilterBuilder, dir ports.Directory, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:   st,
		filters: filters,
		dir:     dir,
		logger:  logger,
		tracer:  otel.Tracer("enquiries/listing"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List serves one grid page: counts, rendered rows and the listing title.
func (s *Service) List(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, "listing.List")
	defer span.End()

	req.normalize()
	now := requestcontext.Now(ctx)

	q, err := s.buildQuery(ctx, &req, now)
	if err != nil {
		return nil, err
	}
	q.Order = orderFor(req.OrderColumn, req.OrderDesc)
	q.Offset = req.Offset
	q.Limit = req.PageSize

	// Total and filtered counts are independent; fetch them concurrently.
	var total, filtered int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.store.CountAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		filtered, err = s.store.Count(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "count enquiries")
	}
	span.SetAttributes(
		attribute.Int("listing.total", total),
		attribute.Int("listing.filtered", filtered),
	)

	enquiries, err := s.store.List(ctx, q)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list enquiries")
	}

	rows, err := s.render(ctx, enquiries, now)
	if err != nil {
		return nil, err
	}

	result := &Result{
		DrawToken:     req.DrawToken,
		TotalCount:    total,
		FilteredCount: filtered,
		Rows:          rows,
		Title:         s.title(ctx, req),
	}
	if filtered == 0 && req.Criteria.StatusActive() {
		result.Hint = "No enquiries matched. Try widening the status filter."
	}

	if s.metrics != nil {
		s.metrics.ListingDuration.Observe(time.Since(started).Seconds())
	}
	return result, nil
}

// Stream returns the filtered and searched records in default order without
// pagination, for exporters.
func (s *Service) Stream(ctx context.Context, req Request) ([]*models.Enquiry, error) {
	ctx, span := s.tracer.Start(ctx, "listing.Stream")
	defer span.End()

	now := requestcontext.Now(ctx)
	q, err := s.buildQuery(ctx, &req, now)
	if err != nil {
		return nil, err
	}
	q.Order = store.DefaultOrder

	enquiries, err := s.store.List(ctx, q)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "stream enquiries")
	}
	return enquiries, nil
}

// buildQuery runs the filter pipeline and the search planner.
func (s *Service) buildQuery(ctx context.Context, req *Request, now time.Time) (store.ListQuery, error) {
	ctx, span := s.tracer.Start(ctx, "listing.buildQuery")
	defer span.End()

	q, err := s.filters.Build(ctx, req.Criteria, now)
	if err != nil {
		return store.ListQuery{}, dErrors.Wrap(err, dErrors.CodeInternal, "build filter query")
	}

	spec, matchLimit := search.Plan(req.Term, s.store.Capabilities(), req.Criteria.Narrowing())
	q.Search = spec
	q.MatchLimit = matchLimit
	if spec.Active() {
		span.SetAttributes(attribute.String("search.mode", string(spec.Mode)))
		if s.metrics != nil {
			s.metrics.ObserveSearchMode(string(spec.Mode))
		}
	}
	return q, nil
}

// render turns enquiries into display rows. Directory lookups are cached
// per call; a listing page touches few distinct entities.
func (s *Service) render(ctx context.Context, enquiries []*models.Enquiry, now time.Time) ([]Row, error) {
	names := newNameCache(s.dir)

	rows := make([]Row, 0, len(enquiries))
	for _, e := range enquiries {
		row := Row{ID: e.ID.String()}
		pastDue := e.IsPastDue(now)
		if pastDue {
			row.Highlight = "overdue"
		}

		sectionName, jobTypeName := names.jobTypeAndSection(ctx, e.JobTypeID)

		dueCell := Cell{Text: e.DueDate.Format(dateLayout)}
		if pastDue {
			dueCell.Style = "overdue"
		}

		overdueCell := Cell{}
		if days := e.OverdueBusinessDays(now); days > 0 {
			overdueCell = Cell{Text: fmt.Sprintf("%d", days), Style: OverdueStyle(days)}
		}

		resolutionCell := Cell{}
		if e.ClosedAt != nil {
			days := e.ResolutionBusinessDays(now)
			resolutionCell = Cell{Text: fmt.Sprintf("%d", days), Style: ResolutionStyle(days)}
		}

		row.Cells = []Cell{
			{Text: e.Reference},
			{Text: e.Title},
			{Text: names.member(ctx, e.MemberID)},
			{Text: sectionName},
			{Text: jobTypeName},
			{Text: serviceTypeLabel(e.ServiceType)},
			{Text: names.contact(ctx, e.ContactID)},
			{Text: string(e.Status)},
			{Text: names.officer(ctx, e.OfficerID)},
			{Text: e.CreatedAt.Format(dateLayout)},
			{Text: e.UpdatedAt.Format(dateLayout)},
			dueCell,
			overdueCell,
			{Text: formatClosed(e.ClosedAt)},
			resolutionCell,
			{},
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// title builds the human-readable description of what the listing shows.
// Clauses are strictly ordered; a missing related entity drops its clause.
func (s *Service) title(ctx context.Context, req Request) string {
	parts := []string{"Enquiries"}
	c := req.Criteria

	if c.StatusActive() {
		parts = append(parts, c.Status)
	}
	if term := strings.TrimSpace(req.Term); term != "" {
		parts = append(parts, fmt.Sprintf("that contain '%s'", term))
	}
	if c.Range.Label != "" {
		parts = append(parts, c.Range.Label)
	}
	if !c.OfficerID.IsNil() {
		if o, err := s.dir.Officer(ctx, c.OfficerID); err == nil {
			parts = append(parts, "created by "+o.Name)
		}
	}
	if !c.MemberID.IsNil() {
		if m, err := s.dir.Member(ctx, c.MemberID); err == nil {
			parts = append(parts, "for "+m.Name)
		}
	}
	if !c.WardID.IsNil() {
		if w, err := s.dir.Ward(ctx, c.WardID); err == nil {
			parts = append(parts, "in "+w.Name)
		}
	}
	if !c.JobTypeID.IsNil() {
		if jt, err := s.dir.JobType(ctx, c.JobTypeID); err == nil {
			parts = append(parts, "for "+jt.Name)
		}
	}
	if !c.SectionID.IsNil() {
		if sec, err := s.dir.Section(ctx, c.SectionID); err == nil {
			parts = append(parts, fmt.Sprintf("(Section: %s)", sec.Name))
		}
	}
	if !c.ContactID.IsNil() {
		if contact, err := s.dir.Contact(ctx, c.ContactID); err == nil {
			parts = append(parts, "assigned to "+contact.Name)
		}
	}
	if c.OverdueOnly {
		parts = append(parts, "(overdue only)")
	}

	return strings.Join(parts, " ")
}

func formatClosed(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

var serviceTypeLabels = map[models.ServiceType]string{
	models.ServiceFailedService: "Failed Service",
	models.ServiceNewAddition:   "New Addition",
	models.ServicePreProgrammed: "Pre-programmed",
	models.ServiceThirdParty:    "3rd Party",
}

func serviceTypeLabel(st models.ServiceType) string {
	if label, ok := serviceTypeLabels[st]; ok {
		return label
	}
	return ""
}

// nameCache memoizes directory lookups within a single render pass.
type nameCache struct {
	dir      ports.Directory
	officers map[string]string
	members  map[string]string
	contacts map[string]string
	jobTypes map[string][2]string
}

func newNameCache(dir ports.Directory) *nameCache {
	return &nameCache{
		dir:      dir,
		officers: make(map[string]string),
		members:  make(map[string]string),
		contacts: make(map[string]string),
		jobTypes: make(map[string][2]string),
	}
}

func (n *nameCache) officer(ctx context.Context, officerID id.OfficerID) string {
	if officerID.IsNil() {
		return ""
	}
	key := officerID.String()
	if name, ok := n.officers[key]; ok {
		return name
	}
	name := ""
	if o, err := n.dir.Officer(ctx, officerID); err == nil {
		name = o.Name
	}
	n.officers[key] = name
	return name
}

func (n *nameCache) member(ctx context.Context, memberID id.MemberID) string {
	if memberID.IsNil() {
		return ""
	}
	key := memberID.String()
	if name, ok := n.members[key]; ok {
		return name
	}
	name := ""
	if m, err := n.dir.Member(ctx, memberID); err == nil {
		name = m.Name
	}
	n.members[key] = name
	return name
}

func (n *nameCache) contact(ctx context.Context, contactID id.ContactID) string {
	if contactID.IsNil() {
		return ""
	}
	key := contactID.String()
	if name, ok := n.contacts[key]; ok {
		return name
	}
	name := ""
	if c, err := n.dir.Contact(ctx, contactID); err == nil {
		name = c.Name
	}
	n.contacts[key] = name
	return name
}

// jobTypeAndSection resolves the job type name and its section's name.
func (n *nameCache) jobTypeAndSection(ctx context.Context, jobTypeID id.JobTypeID) (section, jobType string) {
	if jobTypeID.IsNil() {
		return "", ""
	}
	key := jobTypeID.String()
	if pair, ok := n.jobTypes[key]; ok {
		return pair[0], pair[1]
	}
	jt, err := n.dir.JobType(ctx, jobTypeID)
	if err != nil {
		n.jobTypes[key] = [2]string{}
		return "", ""
	}
	sectionName := ""
	if !jt.SectionID.IsNil() {
		if sec, err := n.dir.Section(ctx, jt.SectionID); err == nil {
			sectionName = sec.Name
		}
	}
	n.jobTypes[key] = [2]string{sectionName, jt.Name}
	return sectionName, jt.Name
}
