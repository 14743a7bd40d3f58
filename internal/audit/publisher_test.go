package audit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "enquiries/pkg/domain"
	"enquiries/pkg/requestcontext"
)

func TestEmitStampsRequestMetadata(t *testing.T) {
	officerID := id.OfficerID(uuid.New())
	now := time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC)

	ctx := context.Background()
	ctx = requestcontext.WithTime(ctx, now)
	ctx = requestcontext.WithOfficerID(ctx, officerID)
	ctx = requestcontext.WithClientIP(ctx, "10.0.0.9")
	ctx = requestcontext.WithUserAgent(ctx, "Firefox (Linux)")
	ctx = requestcontext.WithRequestID(ctx, "req-42")

	p := NewPublisher(4, slog.Default())
	p.Emit(ctx, Event{
		Action:     ActionEnquiryCreated,
		EntityType: "enquiry",
		EntityID:   "abc",
	})

	event := <-p.Events()
	assert.False(t, event.ID.IsNil())
	assert.Equal(t, now, event.OccurredAt)
	assert.Equal(t, officerID, event.OfficerID)
	assert.Equal(t, "10.0.0.9", event.ClientIP)
	assert.Equal(t, "Firefox (Linux)", event.UserAgent)
	assert.Equal(t, "req-42", event.RequestID)
}

func TestEmitDropsWhenInboxFull(t *testing.T) {
	p := NewPublisher(1, slog.Default())
	p.Emit(context.Background(), Event{Action: ActionEnquiryCreated})
	p.Emit(context.Background(), Event{Action: ActionEnquiryClosed})

	first := <-p.Events()
	assert.Equal(t, ActionEnquiryCreated, first.Action)

	select {
	case event := <-p.Events():
		t.Fatalf("expected second event to be dropped, got %s", event.Action)
	default:
	}
}

func TestWorkerPersistsAndDrainsOnShutdown(t *testing.T) {
	store := NewMemory()
	p := NewPublisher(8, slog.Default())
	worker := NewWorker(store, p.Events(), slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	p.Emit(context.Background(), Event{Action: ActionEnquiryCreated, EntityType: "enquiry", EntityID: "e1"})

	require.Eventually(t, func() bool {
		events, err := store.Recent(context.Background(), 10)
		return err == nil && len(events) == 1
	}, time.Second, 5*time.Millisecond)

	// Queue one more, then cancel: shutdown must drain it.
	p.Emit(context.Background(), Event{Action: ActionEnquiryClosed, EntityType: "enquiry", EntityID: "e1"})
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	events, err := store.ForEntity(context.Background(), "enquiry", "e1")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
