package enquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"enquiries/internal/enquiry/models"
	"enquiries/internal/enquiry/store"
	id "enquiries/pkg/domain"
	"enquiries/pkg/platform/sentinel"
)

// searchIndexName is the GIN index over the enquiry search document. Its
// presence at startup decides whether indexed search is offered.
const searchIndexName = "enquiries_search_idx"

// PostgresStore persists enquiries in PostgreSQL.
type PostgresStore struct {
	db   *sql.DB
	caps store.Capabilities
}

// NewPostgres constructs a PostgreSQL-backed enquiry store. The search
// capability is probed once at construction; environments without the
// full-text index get substring search.
func NewPostgres(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	var indexed bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE tablename = 'enquiries' AND indexname = $1
		)`, searchIndexName,
	).Scan(&indexed)
	if err != nil {
		return nil, fmt.Errorf("probe search index: %w", err)
	}

	return &PostgresStore{
		db:   db,
		caps: store.Capabilities{IndexedSearch: indexed},
	}, nil
}

// Capabilities reports the probed store capabilities.
func (s *PostgresStore) Capabilities() store.Capabilities {
	return s.caps
}

const enquiryColumns = `e.id, e.reference, e.title, e.description, e.status, e.service_type,
	e.officer_id, e.member_id, e.ward_id, e.job_type_id, e.contact_id,
	e.created_at, e.updated_at, e.closed_at, e.due_date`

func (s *PostgresStore) Create(ctx context.Context, e *models.Enquiry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO enquiries (
			id, reference, title, description, status, service_type,
			officer_id, member_id, ward_id, job_type_id, contact_id,
			created_at, updated_at, closed_at, due_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		uuid.UUID(e.ID), e.Reference, e.Title, e.Description, string(e.Status),
		nullString(string(e.ServiceType)),
		nullUUID(uuid.UUID(e.OfficerID)), nullUUID(uuid.UUID(e.MemberID)),
		nullUUID(uuid.UUID(e.WardID)), nullUUID(uuid.UUID(e.JobTypeID)),
		nullUUID(uuid.UUID(e.ContactID)),
		e.CreatedAt, e.UpdatedAt, nullTime(e.ClosedAt), e.DueDate,
	)
	if err != nil {
		return fmt.Errorf("create enquiry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, enquiryID id.EnquiryID) (*models.Enquiry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+enquiryColumns+` FROM enquiries e WHERE e.id = $1`,
		uuid.UUID(enquiryID),
	)
	e, err := scanEnquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get enquiry: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) Update(ctx context.Context, e *models.Enquiry) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE enquiries SET
			title = $2, description = $3, status = $4, service_type = $5,
			officer_id = $6, member_id = $7, ward_id = $8, job_type_id = $9,
			contact_id = $10, updated_at = $11, closed_at = $12
		WHERE id = $1`,
		uuid.UUID(e.ID), e.Title, e.Description, string(e.Status),
		nullString(string(e.ServiceType)),
		nullUUID(uuid.UUID(e.OfficerID)), nullUUID(uuid.UUID(e.MemberID)),
		nullUUID(uuid.UUID(e.WardID)), nullUUID(uuid.UUID(e.JobTypeID)),
		nullUUID(uuid.UUID(e.ContactID)),
		e.UpdatedAt, nullTime(e.ClosedAt),
	)
	if err != nil {
		return fmt.Errorf("update enquiry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update enquiry rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM enquiries WHERE reference = $1)`, reference,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check reference: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enquiries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count enquiries: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Count(ctx context.Context, q store.ListQuery) (int, error) {
	if q.MatchNone {
		return 0, nil
	}
	b := newQueryBuilder()
	where := b.predicates(q)

	var sqlText string
	if capped, limit := matchCap(q); capped {
		sqlText = fmt.Sprintf(
			`SELECT COUNT(*) FROM (
				SELECT e.id FROM enquiries e %s ORDER BY e.created_at DESC LIMIT %d
			) capped`, where, limit)
	} else {
		sqlText = `SELECT COUNT(*) FROM enquiries e ` + where
	}

	var n int
	if err := s.db.QueryRowContext(ctx, sqlText, b.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count filtered enquiries: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) List(ctx context.Context, q store.ListQuery) ([]*models.Enquiry, error) {
	if q.MatchNone {
		return nil, nil
	}
	b := newQueryBuilder()
	where := b.predicates(q)

	source := "enquiries e"
	if capped, limit := matchCap(q); capped {
		source = fmt.Sprintf(
			`(SELECT * FROM enquiries e %s ORDER BY e.created_at DESC LIMIT %d) e`,
			where, limit)
		where = ""
	}

	sqlText := fmt.Sprintf(
		`SELECT `+enquiryColumns+`
		FROM %s
		LEFT JOIN officers o ON e.officer_id = o.id
		LEFT JOIN members mem ON e.member_id = mem.id
		LEFT JOIN contacts c ON e.contact_id = c.id
		LEFT JOIN job_types jt ON e.job_type_id = jt.id
		LEFT JOIN sections sec ON jt.section_id = sec.id
		%s
		ORDER BY %s`,
		source, where, orderClause(q.Order))

	if q.Limit > 0 {
		sqlText += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	if q.Offset > 0 {
		sqlText += fmt.Sprintf(" OFFSET %d", q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlText, b.args...)
	if err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	defer rows.Close()

	var out []*models.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enquiry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enquiries: %w", err)
	}
	return out, nil
}

// matchCap reports whether the query restricts the candidate set to the most
// recent search matches.
func matchCap(q store.ListQuery) (bool, int) {
	return q.MatchLimit > 0 && q.Search.Active(), q.MatchLimit
}

// queryBuilder accumulates numbered predicates and their arguments.
type queryBuilder struct {
	conds []string
	args  []any
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{}
}

func (b *queryBuilder) add(format string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(format, len(b.args)))
}

// predicates renders the WHERE clause for the query. Every set field
// combines conjunctively.
func (b *queryBuilder) predicates(q store.ListQuery) string {
	if len(q.Statuses) > 0 {
		vals := make([]string, 0, len(q.Statuses))
		for _, st := range q.Statuses {
			b.args = append(b.args, string(st))
			vals = append(vals, fmt.Sprintf("$%d", len(b.args)))
		}
		b.conds = append(b.conds, fmt.Sprintf("e.status IN (%s)", strings.Join(vals, ", ")))
	}
	if q.ServiceType != "" {
		b.add("e.service_type = $%d", string(q.ServiceType))
	}
	if !q.OfficerID.IsNil() {
		b.add("e.officer_id = $%d", uuid.UUID(q.OfficerID))
	}
	if !q.MemberID.IsNil() {
		b.add("e.member_id = $%d", uuid.UUID(q.MemberID))
	}
	if !q.WardID.IsNil() {
		b.add("e.ward_id = $%d", uuid.UUID(q.WardID))
	}
	if !q.ContactID.IsNil() {
		b.add("e.contact_id = $%d", uuid.UUID(q.ContactID))
	}
	if !q.JobTypeID.IsNil() {
		b.add("e.job_type_id = $%d", uuid.UUID(q.JobTypeID))
	}
	if len(q.JobTypeIDs) > 0 {
		vals := make([]string, 0, len(q.JobTypeIDs))
		for _, jt := range q.JobTypeIDs {
			b.args = append(b.args, uuid.UUID(jt))
			vals = append(vals, fmt.Sprintf("$%d", len(b.args)))
		}
		b.conds = append(b.conds, fmt.Sprintf("e.job_type_id IN (%s)", strings.Join(vals, ", ")))
	}
	if q.CreatedFrom != nil {
		b.add("e.created_at >= $%d", *q.CreatedFrom)
	}
	if q.CreatedBefore != nil {
		b.add("e.created_at < $%d", *q.CreatedBefore)
	}

	if q.Search.Active() {
		switch q.Search.Mode {
		case store.SearchPhrase:
			b.add("e.search_doc @@ phraseto_tsquery('english', $%d)", q.Search.Term)
		case store.SearchPrefix:
			b.add("e.search_doc @@ to_tsquery('english', $%d)", prefixQuery(q.Search.Term))
		default:
			pattern := "%" + escapeLike(q.Search.Term) + "%"
			b.args = append(b.args, pattern)
			n := len(b.args)
			b.conds = append(b.conds, fmt.Sprintf(
				"(e.reference ILIKE $%d OR e.title ILIKE $%d OR e.description ILIKE $%d)", n, n, n))
		}
	}

	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// prefixQuery renders a single token as a prefix-match tsquery. Characters
// with meaning in tsquery syntax are stripped first.
func prefixQuery(term string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '&', '|', '!', '(', ')', ':', '*', '\'', '\\', '<', '>':
			return -1
		}
		return r
	}, term)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "dummy:*"
	}
	return cleaned + ":*"
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// orderClause maps a sort instruction to SQL. Entity columns order by the
// joined display name. Created-at descending tiebreaks every ordering so
// pagination stays stable.
func orderClause(o store.Order) string {
	col := "e.created_at"
	switch o.Field {
	case store.SortReference:
		col = "e.reference"
	case store.SortTitle:
		col = "e.title"
	case store.SortMember:
		col = "mem.name"
	case store.SortSection:
		col = "sec.name"
	case store.SortJobType:
		col = "jt.name"
	case store.SortServiceType:
		col = "e.service_type"
	case store.SortContact:
		col = "c.name"
	case store.SortStatus:
		col = "e.status"
	case store.SortOfficer:
		col = "o.name"
	case store.SortUpdated:
		col = "e.updated_at"
	case store.SortClosed:
		col = "e.closed_at"
	}

	dir := "ASC"
	if o.Desc || o.Field == "" {
		dir = "DESC"
	}
	if col == "e.created_at" {
		return fmt.Sprintf("e.created_at %s", dir)
	}
	return fmt.Sprintf("%s %s NULLS LAST, e.created_at DESC", col, dir)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnquiry(row rowScanner) (*models.Enquiry, error) {
	var (
		e           models.Enquiry
		rawID       uuid.UUID
		status      string
		serviceType sql.NullString
		officerID   uuid.NullUUID
		memberID    uuid.NullUUID
		wardID      uuid.NullUUID
		jobTypeID   uuid.NullUUID
		contactID   uuid.NullUUID
		closedAt    sql.NullTime
	)
	err := row.Scan(
		&rawID, &e.Reference, &e.Title, &e.Description, &status, &serviceType,
		&officerID, &memberID, &wardID, &jobTypeID, &contactID,
		&e.CreatedAt, &e.UpdatedAt, &closedAt, &e.DueDate,
	)
	if err != nil {
		return nil, err
	}

	e.ID = id.EnquiryID(rawID)
	e.Status = models.Status(status)
	if serviceType.Valid {
		e.ServiceType = models.ServiceType(serviceType.String)
	}
	if officerID.Valid {
		e.OfficerID = id.OfficerID(officerID.UUID)
	}
	if memberID.Valid {
		e.MemberID = id.MemberID(memberID.UUID)
	}
	if wardID.Valid {
		e.WardID = id.WardID(wardID.UUID)
	}
	if jobTypeID.Valid {
		e.JobTypeID = id.JobTypeID(jobTypeID.UUID)
	}
	if contactID.Valid {
		e.ContactID = id.ContactID(contactID.UUID)
	}
	if closedAt.Valid {
		t := closedAt.Time
		e.ClosedAt = &t
	}
	return &e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullUUID(u uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: u, Valid: u != uuid.Nil}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
