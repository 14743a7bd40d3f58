package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"enquiries/internal/directory/models"
	id "enquiries/pkg/domain"
	"enquiries/pkg/platform/sentinel"
)

// PostgresStore reads directory entities from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed directory.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Officer(ctx context.Context, officerID id.OfficerID) (*models.Officer, error) {
	var o models.Officer
	var rawID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, active FROM officers WHERE id = $1`,
		uuid.UUID(officerID),
	).Scan(&rawID, &o.Name, &o.Email, &o.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get officer: %w", err)
	}
	o.ID = id.OfficerID(rawID)
	return &o, nil
}

func (s *PostgresStore) Member(ctx context.Context, memberID id.MemberID) (*models.Member, error) {
	var m models.Member
	var rawID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, party, active FROM members WHERE id = $1`,
		uuid.UUID(memberID),
	).Scan(&rawID, &m.Name, &m.Party, &m.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	m.ID = id.MemberID(rawID)
	return &m, nil
}

func (s *PostgresStore) Ward(ctx context.Context, wardID id.WardID) (*models.Ward, error) {
	var w models.Ward
	var rawID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM wards WHERE id = $1`,
		uuid.UUID(wardID),
	).Scan(&rawID, &w.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ward: %w", err)
	}
	w.ID = id.WardID(rawID)
	return &w, nil
}

func (s *PostgresStore) Section(ctx context.Context, sectionID id.SectionID) (*models.Section, error) {
	var sec models.Section
	var rawID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM sections WHERE id = $1`,
		uuid.UUID(sectionID),
	).Scan(&rawID, &sec.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get section: %w", err)
	}
	sec.ID = id.SectionID(rawID)
	return &sec, nil
}

func (s *PostgresStore) JobType(ctx context.Context, jobTypeID id.JobTypeID) (*models.JobType, error) {
	var j models.JobType
	var rawID uuid.UUID
	var sectionID uuid.NullUUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, section_id FROM job_types WHERE id = $1`,
		uuid.UUID(jobTypeID),
	).Scan(&rawID, &j.Name, &sectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job type: %w", err)
	}
	j.ID = id.JobTypeID(rawID)
	if sectionID.Valid {
		j.SectionID = id.SectionID(sectionID.UUID)
	}
	return &j, nil
}

func (s *PostgresStore) Contact(ctx context.Context, contactID id.ContactID) (*models.Contact, error) {
	var c models.Contact
	var rawID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, address FROM contacts WHERE id = $1`,
		uuid.UUID(contactID),
	).Scan(&rawID, &c.Name, &c.Email, &c.Phone, &c.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	c.ID = id.ContactID(rawID)
	return &c, nil
}

func (s *PostgresStore) JobTypesInSection(ctx context.Context, sectionID id.SectionID) ([]*models.JobType, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, section_id FROM job_types WHERE section_id = $1 ORDER BY name`,
		uuid.UUID(sectionID),
	)
	if err != nil {
		return nil, fmt.Errorf("list job types in section: %w", err)
	}
	defer rows.Close()

	var out []*models.JobType
	for rows.Next() {
		var j models.JobType
		var rawID uuid.UUID
		var secID uuid.NullUUID
		if err := rows.Scan(&rawID, &j.Name, &secID); err != nil {
			return nil, fmt.Errorf("scan job type: %w", err)
		}
		j.ID = id.JobTypeID(rawID)
		if secID.Valid {
			j.SectionID = id.SectionID(secID.UUID)
		}
		out = append(out, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job types: %w", err)
	}
	return out, nil
}
