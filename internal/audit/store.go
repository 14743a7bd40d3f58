package audit

import "context"

// Store persists audit events. Append-only; there is no update or delete.
type Store interface {
	Append(ctx context.Context, event Event) error
	ForEntity(ctx context.Context, entityType, entityID string) ([]Event, error)
	Recent(ctx context.Context, limit int) ([]Event, error)
}
