package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	id "enquiries/pkg/domain"
)

// PostgresStore persists audit events in the audit_log table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const auditColumns = `id, occurred_at, officer_id, action, entity_type, entity_id, detail, client_ip, user_agent, request_id`

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	detail, err := json.Marshal(detailOrEmpty(event.Detail))
	if err != nil {
		return fmt.Errorf("marshal audit detail: %w", err)
	}

	officerID := uuid.NullUUID{UUID: uuid.UUID(event.OfficerID), Valid: !event.OfficerID.IsNil()}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_log (`+auditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.UUID(event.ID), event.OccurredAt, officerID, string(event.Action),
		event.EntityType, event.EntityID, detail,
		event.ClientIP, event.UserAgent, event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ForEntity(ctx context.Context, entityType, entityID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+auditColumns+`
		FROM audit_log
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY occurred_at, id`,
		entityType, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+auditColumns+`
		FROM audit_log
		ORDER BY occurred_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		var (
			event     Event
			eventID   uuid.UUID
			officerID uuid.NullUUID
			action    string
			detail    []byte
		)
		if err := rows.Scan(&eventID, &event.OccurredAt, &officerID, &action,
			&event.EntityType, &event.EntityID, &detail,
			&event.ClientIP, &event.UserAgent, &event.RequestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.ID = id.AuditID(eventID)
		if officerID.Valid {
			event.OfficerID = id.OfficerID(officerID.UUID)
		}
		event.Action = Action(action)
		if err := json.Unmarshal(detail, &event.Detail); err != nil {
			return nil, fmt.Errorf("unmarshal audit detail: %w", err)
		}
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}

func detailOrEmpty(detail map[string]any) map[string]any {
	if detail == nil {
		return map[string]any{}
	}
	return detail
}
