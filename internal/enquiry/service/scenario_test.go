package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	dirmodels "enquiries/internal/directory/models"
	dirstore "enquiries/internal/directory/store"
	"enquiries/internal/enquiry/models"
	"enquiries/internal/enquiry/reference"
	enquirystore "enquiries/internal/enquiry/store/enquiry"
	historystore "enquiries/internal/enquiry/store/history"
	id "enquiries/pkg/domain"
	"enquiries/pkg/requestcontext"
	"enquiries/pkg/testutil"
)

// The full lifecycle as an officer would drive it: log, note, close, reopen.
func TestEnquiryLifecycleScenario(t *testing.T) {
	store := enquirystore.NewMemory()
	history := historystore.NewMemory()
	dir := dirstore.NewMemory()
	officer := dirmodels.Officer{ID: id.OfficerID(uuid.New()), Name: "Pat Reeve", Active: true}
	dir.AddOfficer(&officer)

	svc := NewService(store, history,
		reference.NewMemory(reference.DefaultPrefix, store.ReferenceExists), dir, slog.Default())

	now := time.Date(2025, time.June, 16, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithOfficerID(requestcontext.WithTime(context.Background(), now), officer.ID)

	var e *models.Enquiry

	testutil.Given(t, "an officer logs a new enquiry", func(t *testing.T) {
		var err error
		e, err = svc.Create(ctx, &models.CreateEnquiryRequest{Title: "Blocked gully on Station Road"})
		require.NoError(t, err)
		require.Equal(t, models.StatusNew, e.Status)
	})

	testutil.When(t, "work starts and a note is added", func(t *testing.T) {
		updated, err := svc.Annotate(ctx, e.ID, &models.AnnotateEnquiryRequest{Note: "Crew dispatched"})
		require.NoError(t, err)
		require.Equal(t, models.StatusOpen, updated.Status)
	})

	testutil.When(t, "the job is resolved", func(t *testing.T) {
		closed, err := svc.Close(ctx, e.ID, &models.CloseEnquiryRequest{ServiceType: models.ServiceFailedService})
		require.NoError(t, err)
		require.NotNil(t, closed.ClosedAt)
	})

	testutil.Then(t, "the trail tells the whole story", func(t *testing.T) {
		detail, err := svc.Get(ctx, e.ID)
		require.NoError(t, err)
		require.Len(t, detail.History, 3)
		require.Equal(t, models.NoteCreated, detail.History[0].NoteType)
		require.Equal(t, models.NoteGeneral, detail.History[1].NoteType)
		require.Equal(t, models.NoteClosed, detail.History[2].NoteType)
	})

	testutil.Then(t, "the member can have it reopened", func(t *testing.T) {
		reopened, err := svc.Reopen(ctx, e.ID, &models.ReopenEnquiryRequest{Note: "Still flooding"})
		require.NoError(t, err)
		require.Equal(t, models.StatusOpen, reopened.Status)
		require.Nil(t, reopened.ClosedAt)
	})
}
