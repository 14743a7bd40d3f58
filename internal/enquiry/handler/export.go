package handler

import (
	"net/http"

	"enquiries/internal/enquiry/listing"
	"enquiries/pkg/platform/httputil"
	"enquiries/pkg/requestcontext"
)

// handleExport streams the current listing as CSV. The same filter and
// search parameters as the grid apply, taken from the query string.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria, err := h.criteria(r.URL.Query(), requestcontext.Now(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="enquiries.csv"`)

	req := listing.Request{
		Term:     r.URL.Query().Get("search"),
		Criteria: *criteria,
	}
	if err := h.lister.ExportCSV(ctx, req, w); err != nil {
		// Headers are gone; all that is left is to log.
		h.logError(ctx, "export enquiries", err)
	}
}
