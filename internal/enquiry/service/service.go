// Package service orchestrates the enquiry lifecycle: creation, progress
// notes, closing and reopening. It keeps orchestration out of handlers and
// domain logic thin.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"enquiries/internal/audit"
	"enquiries/internal/enquiry/metrics"
	"enquiries/internal/enquiry/models"
	"enquiries/internal/enquiry/ports"
	id "enquiries/pkg/domain"
	dErrors "enquiries/pkg/domain-errors"
	"enquiries/pkg/platform/sentinel"
	"enquiries/pkg/requestcontext"
)

const auditEntityEnquiry = "enquiry"

// Auditor records who did what. Implemented by audit.Publisher.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service owns the enquiry lifecycle.
type Service struct {
	store     ports.EnquiryStore
	history   ports.HistoryStore
	allocator ports.ReferenceAllocator
	dir       ports.Directory
	logger    *slog.Logger

	popular ports.PopularRecorder
	auditor Auditor
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithPopular enables usage tracking of form choices.
func WithPopular(p ports.PopularRecorder) Option {
	return func(s *Service) { s.popular = p }
}

// WithAuditor enables audit events.
func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.auditor = a }
}

// WithMetrics attaches domain metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store ports.EnquiryStore, history ports.HistoryStore, allocator ports.ReferenceAllocator, dir ports.Directory, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		history:   history,
		allocator: allocator,
		dir:       dir,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Detail is an enquiry with its activity trail.
type Detail struct {
	Enquiry *models.Enquiry        `json:"enquiry"`
	History []*models.HistoryEntry `json:"history"`
}

// Create logs a new enquiry. The reference is allocated server side; the
// creating officer is taken from the request context when the payload names
// nobody.
func (s *Service) Create(ctx context.Context, req *models.CreateEnquiryRequest) (*models.Enquiry, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateLinks(ctx, req); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)

	reference, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, err
	}

	e, err := models.NewEnquiry(id.NewEnquiryID(), reference, req.Title, req.Description, now)
	if err != nil {
		return nil, err
	}
	e.OfficerID = req.OfficerID
	if e.OfficerID.IsNil() {
		e.OfficerID = requestcontext.OfficerID(ctx)
	}
	e.MemberID = req.MemberID
	e.WardID = req.WardID
	e.JobTypeID = req.JobTypeID
	e.ContactID = req.ContactID

	if err := s.store.Create(ctx, e); err != nil {
		return nil, storeError(err, "create enquiry")
	}

	s.appendHistory(ctx, e.ID, models.NoteCreated, "Enquiry created", now)
	s.bumpPopular(ctx, e)
	s.emit(ctx, audit.ActionEnquiryCreated, e, map[string]any{"reference": e.Reference, "title": e.Title})
	if s.metrics != nil {
		s.metrics.EnquiriesCreated.Inc()
	}

	s.logger.InfoContext(ctx, "enquiry created",
		slog.String("enquiry_id", e.ID.String()),
		slog.String("reference", e.Reference))
	return e, nil
}

// Get returns an enquiry with its history, oldest entry first.
func (s *Service) Get(ctx context.Context, enquiryID id.EnquiryID) (*Detail, error) {
	e, err := s.store.Get(ctx, enquiryID)
	if err != nil {
		return nil, storeError(err, "get enquiry")
	}
	trail, err := s.history.ForEnquiry(ctx, enquiryID)
	if err != nil {
		return nil, storeError(err, "get enquiry history")
	}
	return &Detail{Enquiry: e, History: trail}, nil
}

// Close resolves an enquiry. The service type is mandatory so the resolution
// category is never lost.
func (s *Service) Close(ctx context.Context, enquiryID id.EnquiryID, req *models.CloseEnquiryRequest) (*models.Enquiry, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.store.Get(ctx, enquiryID)
	if err != nil {
		return nil, storeError(err, "get enquiry")
	}
	if err := e.CanClose(req.ServiceType); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	e.ApplyClose(req.ServiceType, now)
	if err := s.store.Update(ctx, e); err != nil {
		return nil, storeError(err, "close enquiry")
	}

	s.appendHistory(ctx, e.ID, models.NoteClosed, noteOr(req.Note, "Enquiry closed"), now)
	s.emit(ctx, audit.ActionEnquiryClosed, e, map[string]any{"service_type": string(e.ServiceType)})
	if s.metrics != nil {
		s.metrics.EnquiriesClosed.Inc()
	}
	return e, nil
}

// Reopen puts a closed enquiry back into the open state. The service type and
// closed timestamp are cleared; the trail keeps the record.
func (s *Service) Reopen(ctx context.Context, enquiryID id.EnquiryID, req *models.ReopenEnquiryRequest) (*models.Enquiry, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.store.Get(ctx, enquiryID)
	if err != nil {
		return nil, storeError(err, "get enquiry")
	}
	if err := e.CanReopen(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	e.ApplyReopen(now)
	if err := s.store.Update(ctx, e); err != nil {
		return nil, storeError(err, "reopen enquiry")
	}

	s.appendHistory(ctx, e.ID, models.NoteReopened, noteOr(req.Note, "Enquiry reopened"), now)
	s.emit(ctx, audit.ActionEnquiryReopened, e, nil)
	if s.metrics != nil {
		s.metrics.EnquiriesReopened.Inc()
	}
	return e, nil
}

// Annotate appends a progress note. Noting a new enquiry moves it to open,
// since someone has evidently started work; either way updated_at is bumped.
func (s *Service) Annotate(ctx context.Context, enquiryID id.EnquiryID, req *models.AnnotateEnquiryRequest) (*models.Enquiry, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.store.Get(ctx, enquiryID)
	if err != nil {
		return nil, storeError(err, "get enquiry")
	}

	now := requestcontext.Now(ctx)
	e.ApplyProgress(now)
	e.UpdatedAt = now
	if err := s.store.Update(ctx, e); err != nil {
		return nil, storeError(err, "annotate enquiry")
	}

	s.appendHistory(ctx, e.ID, models.NoteGeneral, req.Note, now)
	s.emit(ctx, audit.ActionEnquiryAnnotated, e, nil)
	return e, nil
}

// validateLinks checks that every referenced directory entity exists.
func (s *Service) validateLinks(ctx context.Context, req *models.CreateEnquiryRequest) error {
	if !req.OfficerID.IsNil() {
		if _, err := s.dir.Officer(ctx, req.OfficerID); err != nil {
			return linkError(err, "officer")
		}
	}
	if !req.MemberID.IsNil() {
		if _, err := s.dir.Member(ctx, req.MemberID); err != nil {
			return linkError(err, "member")
		}
	}
	if !req.WardID.IsNil() {
		if _, err := s.dir.Ward(ctx, req.WardID); err != nil {
			return linkError(err, "ward")
		}
	}
	if !req.JobTypeID.IsNil() {
		if _, err := s.dir.JobType(ctx, req.JobTypeID); err != nil {
			return linkError(err, "job type")
		}
	}
	if !req.ContactID.IsNil() {
		if _, err := s.dir.Contact(ctx, req.ContactID); err != nil {
			return linkError(err, "contact")
		}
	}
	return nil
}

func (s *Service) appendHistory(ctx context.Context, enquiryID id.EnquiryID, noteType models.NoteType, note string, now time.Time) {
	entry := &models.HistoryEntry{
		ID:        id.NewHistoryID(),
		EnquiryID: enquiryID,
		OfficerID: requestcontext.OfficerID(ctx),
		NoteType:  noteType,
		Note:      note,
		CreatedAt: now,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "append history entry",
			slog.String("enquiry_id", enquiryID.String()),
			slog.String("error", err.Error()))
	}
}

// bumpPopular is best effort; a Redis outage must not block casework.
func (s *Service) bumpPopular(ctx context.Context, e *models.Enquiry) {
	if s.popular == nil {
		return
	}
	if !e.JobTypeID.IsNil() {
		if err := s.popular.BumpJobType(ctx, e.JobTypeID); err != nil {
			s.logger.WarnContext(ctx, "bump job type usage", slog.String("error", err.Error()))
		}
	}
	if !e.ContactID.IsNil() {
		if err := s.popular.BumpContact(ctx, e.ContactID); err != nil {
			s.logger.WarnContext(ctx, "bump contact usage", slog.String("error", err.Error()))
		}
	}
}

func (s *Service) emit(ctx context.Context, action audit.Action, e *models.Enquiry, detail map[string]any) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, audit.Event{
		Action:     action,
		EntityType: auditEntityEnquiry,
		EntityID:   e.ID.String(),
		Detail:     detail,
	})
}

func noteOr(note, fallback string) string {
	if note != "" {
		return note
	}
	return fallback
}

func storeError(err error, op string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "enquiry not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "enquiry already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, op)
	}
}

func linkError(err error, entity string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeValidation, entity+" does not exist")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "look up "+entity)
}
