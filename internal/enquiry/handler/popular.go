package handler

import (
	"context"
	"net/http"

	"enquiries/internal/enquiry/popular"
	id "enquiries/pkg/domain"
	"enquiries/pkg/platform/httputil"
)

// defaultQuickPicks is how many choices the entry form shows per field.
const defaultQuickPicks = 5

type quickPick struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type popularChoicesResponse struct {
	JobTypes []quickPick `json:"job_types"`
	Contacts []quickPick `json:"contacts"`
}

// handlePopularChoices returns the most-used job types and contacts for the
// entry form. With no cache configured both lists are empty; the form just
// shows nothing to quick-pick.
func (h *Handler) handlePopularChoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n := intOr(r.URL.Query().Get("limit"), defaultQuickPicks)

	jobTypes, err := h.popular.TopJobTypes(ctx, n)
	if err != nil {
		h.logError(ctx, "read popular job types", err)
		httputil.WriteError(w, err)
		return
	}
	contacts, err := h.popular.TopContacts(ctx, n)
	if err != nil {
		h.logError(ctx, "read popular contacts", err)
		httputil.WriteError(w, err)
		return
	}

	resp := popularChoicesResponse{
		JobTypes: h.jobTypePicks(ctx, jobTypes),
		Contacts: h.contactPicks(ctx, contacts),
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// jobTypePicks resolves names, dropping choices whose entity has since been
// deleted from the directory.
func (h *Handler) jobTypePicks(ctx context.Context, choices []popular.Choice) []quickPick {
	out := make([]quickPick, 0, len(choices))
	for _, c := range choices {
		jobTypeID, err := id.ParseJobTypeID(c.ID)
		if err != nil {
			continue
		}
		jt, err := h.dir.JobType(ctx, jobTypeID)
		if err != nil {
			continue
		}
		out = append(out, quickPick{ID: c.ID, Name: jt.Name, Count: c.Count})
	}
	return out
}

func (h *Handler) contactPicks(ctx context.Context, choices []popular.Choice) []quickPick {
	out := make([]quickPick, 0, len(choices))
	for _, c := range choices {
		contactID, err := id.ParseContactID(c.ID)
		if err != nil {
			continue
		}
		contact, err := h.dir.Contact(ctx, contactID)
		if err != nil {
			continue
		}
		out = append(out, quickPick{ID: c.ID, Name: contact.Name, Count: c.Count})
	}
	return out
}
