// Package handler exposes the enquiry HTTP surface: lifecycle operations,
// the listing grid, CSV export and the form quick-pick endpoint.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"enquiries/internal/enquiry/listing"
	"enquiries/internal/enquiry/models"
	"enquiries/internal/enquiry/popular"
	"enquiries/internal/enquiry/ports"
	"enquiries/internal/enquiry/service"
	id "enquiries/pkg/domain"
	dErrors "enquiries/pkg/domain-errors"
	"enquiries/pkg/platform/httputil"
	"enquiries/pkg/platform/middleware/auth"
	"enquiries/pkg/requestcontext"
)

// EnquiryService defines the lifecycle operations the handler needs.
type EnquiryService interface {
	Create(ctx context.Context, req *models.CreateEnquiryRequest) (*models.Enquiry, error)
	Get(ctx context.Context, enquiryID id.EnquiryID) (*service.Detail, error)
	Close(ctx context.Context, enquiryID id.EnquiryID, req *models.CloseEnquiryRequest) (*models.Enquiry, error)
	Reopen(ctx context.Context, enquiryID id.EnquiryID, req *models.ReopenEnquiryRequest) (*models.Enquiry, error)
	Annotate(ctx context.Context, enquiryID id.EnquiryID, req *models.AnnotateEnquiryRequest) (*models.Enquiry, error)
}

// Lister serves grid pages and export streams.
type Lister interface {
	List(ctx context.Context, req listing.Request) (*listing.Result, error)
	ExportCSV(ctx context.Context, req listing.Request, w io.Writer) error
}

// PopularReader returns ranked form choices.
type PopularReader interface {
	TopJobTypes(ctx context.Context, n int) ([]popular.Choice, error)
	TopContacts(ctx context.Context, n int) ([]popular.Choice, error)
}

// Handler handles enquiry endpoints.
type Handler struct {
	enquiries EnquiryService
	lister    Lister
	popular   PopularReader
	dir       ports.Directory
	validator auth.TokenValidator
	loc       *time.Location
	logger    *slog.Logger
}

func New(
	enquiries EnquiryService,
	lister Lister,
	pop PopularReader,
	dir ports.Directory,
	validator auth.TokenValidator,
	loc *time.Location,
	logger *slog.Logger,
) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		enquiries: enquiries,
		lister:    lister,
		popular:   pop,
		dir:       dir,
		validator: validator,
		loc:       loc,
		logger:    logger,
	}
}

// Register mounts the enquiry routes. Mutating routes require a valid token;
// the listing surfaces stay readable without one.
func (h *Handler) Register(r chi.Router) {
	r.Route("/enquiries", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(h.validator, h.logger))
			r.Post("/", h.handleCreate)
			r.Post("/{enquiryID}/close", h.handleClose)
			r.Post("/{enquiryID}/reopen", h.handleReopen)
			r.Post("/{enquiryID}/notes", h.handleAnnotate)
		})

		r.Post("/grid", h.handleGrid)
		r.Get("/export.csv", h.handleExport)
		r.Get("/popular-choices", h.handlePopularChoices)
		r.Get("/{enquiryID}", h.handleGet)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.CreateEnquiryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	e, err := h.enquiries.Create(ctx, req)
	if err != nil {
		h.logError(ctx, "create enquiry", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	enquiryID, ok := h.enquiryID(w, r)
	if !ok {
		return
	}

	detail, err := h.enquiries.Get(ctx, enquiryID)
	if err != nil {
		h.logError(ctx, "get enquiry", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	enquiryID, ok := h.enquiryID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.CloseEnquiryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	e, err := h.enquiries.Close(ctx, enquiryID, req)
	if err != nil {
		h.logError(ctx, "close enquiry", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleReopen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	enquiryID, ok := h.enquiryID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.ReopenEnquiryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	e, err := h.enquiries.Reopen(ctx, enquiryID, req)
	if err != nil {
		h.logError(ctx, "reopen enquiry", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	enquiryID, ok := h.enquiryID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AnnotateEnquiryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	e, err := h.enquiries.Annotate(ctx, enquiryID, req)
	if err != nil {
		h.logError(ctx, "annotate enquiry", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) enquiryID(w http.ResponseWriter, r *http.Request) (id.EnquiryID, bool) {
	enquiryID, err := id.ParseEnquiryID(chi.URLParam(r, "enquiryID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid enquiry id"))
		return id.EnquiryID{}, false
	}
	return enquiryID, true
}

func (h *Handler) logError(ctx context.Context, op string, err error) {
	log := h.logger.WarnContext
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		log = h.logger.ErrorContext
	}
	log(ctx, op,
		slog.String("request_id", requestcontext.RequestID(ctx)),
		slog.String("error", err.Error()))
}
