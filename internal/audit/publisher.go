package audit

import (
	"context"
	"log/slog"
	"time"

	id "enquiries/pkg/domain"
	"enquiries/pkg/requestcontext"
)

// DefaultBuffer is the publisher inbox size. Sized for bursts of manual
// casework, not bulk imports.
const DefaultBuffer = 256

// Publisher accepts audit events from request handlers and hands them to a
// background worker. Emit never blocks a request: when the inbox is full the
// event is dropped and logged.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Emit stamps the event with request metadata and queues it. The caller only
// fills Action, EntityType, EntityID and Detail.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID.IsNil() {
		event.ID = id.NewAuditID()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = requestcontext.Now(ctx)
	}
	if event.OfficerID.IsNil() {
		event.OfficerID = requestcontext.OfficerID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, event dropped",
			slog.String("action", string(event.Action)),
			slog.String("entity_id", event.EntityID))
	}
}

// Events exposes the inbox for the worker.
func (p *Publisher) Events() <-chan Event {
	return p.inbox
}

// Worker consumes audit events from a channel and persists them. Append
// failures are logged, not fatal; losing an audit row must not take the
// service down.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run processes events until ctx is cancelled, then drains whatever is
// already buffered before returning.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.append(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	// The request contexts are gone by now; give persistence its own bound.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case event := <-w.inbox:
			w.append(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) append(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.Error("append audit event",
			slog.String("action", string(event.Action)),
			slog.String("entity_id", event.EntityID),
			slog.String("error", err.Error()))
	}
}
