package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"enquiries/internal/enquiry/daterange"
	"enquiries/internal/enquiry/filter"
	"enquiries/internal/enquiry/listing"
	"enquiries/internal/enquiry/models"
	id "enquiries/pkg/domain"
	dErrors "enquiries/pkg/domain-errors"
	"enquiries/pkg/platform/httputil"
	"enquiries/pkg/requestcontext"
)

// handleGrid serves one grid page. The client POSTs the grid protocol as a
// form: draw token, paging, ordering, search term and the filter criteria.
func (h *Handler) handleGrid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed form body"))
		return
	}

	req, err := h.listingRequest(r.PostForm, requestcontext.Now(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.lister.List(ctx, *req)
	if err != nil {
		h.logError(ctx, "list enquiries", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// listingRequest maps form values onto a listing request. Numeric fields are
// lenient; the listing layer clamps them anyway. Entity IDs are strict: a
// malformed ID is a client bug, not an empty filter.
func (h *Handler) listingRequest(form url.Values, now time.Time) (*listing.Request, error) {
	criteria, err := h.criteria(form, now)
	if err != nil {
		return nil, err
	}

	return &listing.Request{
		DrawToken:   form.Get("draw"),
		Offset:      intOr(form.Get("start"), 0),
		PageSize:    intOr(form.Get("length"), 0),
		OrderColumn: intOr(form.Get("order_column"), -1),
		OrderDesc:   form.Get("order_dir") == "desc",
		Term:        form.Get("search"),
		Criteria:    *criteria,
	}, nil
}

// criteria parses the filter parameters shared by the grid and the export.
func (h *Handler) criteria(form url.Values, now time.Time) (*filter.Criteria, error) {
	c := filter.Criteria{
		Status:      form.Get("status"),
		OverdueOnly: boolParam(form.Get("overdue")),
		Range:       daterange.Resolve(now, h.loc, form.Get("date_range"), form.Get("from"), form.Get("to")),
	}

	if raw := form.Get("service_type"); raw != "" {
		st := models.ServiceType(raw)
		if !st.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, "unknown service_type")
		}
		c.ServiceType = st
	}

	var err error
	if raw := form.Get("officer"); raw != "" {
		if c.OfficerID, err = id.ParseOfficerID(raw); err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid officer id")
		}
	}
	if raw := form.Get("member"); raw != "" {
		if c.MemberID, err = id.ParseMemberID(raw); err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid member id")
		}
	}
	if raw := form.Get("ward"); raw != "" {
		if c.WardID, err = id.ParseWardID(raw); err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid ward id")
		}
	}
	if raw := form.Get("section"); raw != "" {
		if c.SectionID, err = id.ParseSectionID(raw); err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid section id")
		}
	}
	if raw := form.Get("job_type"); raw != "" {
		if c.JobTypeID, err = id.ParseJobTypeID(raw); err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid job type id")
		}
	}
	if raw := form.Get("contact"); raw != "" {
		if c.ContactID, err = id.ParseContactID(raw); err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid contact id")
		}
	}
	return &c, nil
}

func intOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// boolParam accepts the checkbox convention: "on" and "true" are set.
func boolParam(raw string) bool {
	return raw == "on" || raw == "true"
}
