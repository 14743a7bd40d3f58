package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"enquiries/internal/enquiry/models"
	id "enquiries/pkg/domain"
)

// PostgresStore persists history entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed history store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry *models.HistoryEntry) error {
	var officerID uuid.NullUUID
	if !entry.OfficerID.IsNil() {
		officerID = uuid.NullUUID{UUID: uuid.UUID(entry.OfficerID), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO enquiry_history (id, enquiry_id, officer_id, note_type, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(entry.ID), uuid.UUID(entry.EnquiryID), officerID,
		string(entry.NoteType), entry.Note, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ForEnquiry(ctx context.Context, enquiryID id.EnquiryID) ([]*models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, enquiry_id, officer_id, note_type, note, created_at
		FROM enquiry_history WHERE enquiry_id = $1 ORDER BY created_at, id`,
		uuid.UUID(enquiryID),
	)
	if err != nil {
		return nil, fmt.Errorf("list history entries: %w", err)
	}
	defer rows.Close()

	var out []*models.HistoryEntry
	for rows.Next() {
		var (
			entry     models.HistoryEntry
			rawID     uuid.UUID
			rawEnq    uuid.UUID
			officerID uuid.NullUUID
			noteType  string
		)
		if err := rows.Scan(&rawID, &rawEnq, &officerID, &noteType, &entry.Note, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.ID = id.HistoryID(rawID)
		entry.EnquiryID = id.EnquiryID(rawEnq)
		if officerID.Valid {
			entry.OfficerID = id.OfficerID(officerID.UUID)
		}
		entry.NoteType = models.NoteType(noteType)
		out = append(out, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history entries: %w", err)
	}
	return out, nil
}
