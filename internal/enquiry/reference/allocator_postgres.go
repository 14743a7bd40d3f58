package reference

import (
	"context"
	"database/sql"

	"enquiries/internal/enquiry/metrics"
	dErrors "enquiries/pkg/domain-errors"
	"enquiries/pkg/requestcontext"
)

// PostgresAllocator hands out references using a per-year counter row locked
// for the duration of the allocation. Concurrent allocations serialize on
// the row lock; a failed lock or commit is a hard error, never a duplicate.
type PostgresAllocator struct {
	db      *sql.DB
	prefix  string
	metrics *metrics.Metrics
}

// Option configures a PostgresAllocator.
type Option func(*PostgresAllocator)

// WithMetrics attaches domain metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *PostgresAllocator) { a.metrics = m }
}

// NewPostgres constructs a PostgreSQL-backed allocator.
func NewPostgres(db *sql.DB, prefix string, opts ...Option) *PostgresAllocator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	a := &PostgresAllocator{db: db, prefix: prefix}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Next allocates the next reference for the year of the request time.
func (a *PostgresAllocator) Next(ctx context.Context) (string, error) {
	year := requestcontext.Now(ctx).Year()
	suffix := YearSuffix(year)

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "begin allocation transaction")
	}
	defer func() { _ = tx.Rollback() }()

	// Ensure the partition row exists, then take the row lock. Every
	// concurrent allocator for this year queues here.
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reference_sequences (year_suffix, last_value)
		VALUES ($1, 0) ON CONFLICT (year_suffix) DO NOTHING`, suffix,
	); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "ensure sequence row")
	}

	var last int
	if err := tx.QueryRowContext(ctx,
		`SELECT last_value FROM reference_sequences WHERE year_suffix = $1 FOR UPDATE`, suffix,
	).Scan(&last); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "lock sequence row")
	}

	// The counter is authoritative, but recheck against issued references
	// in case the table was seeded or restored around the sequence.
	candidate := last + 1
	for {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM enquiries WHERE reference = $1)`,
			Format(a.prefix, year, candidate),
		).Scan(&exists); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "check reference uniqueness")
		}
		if !exists {
			break
		}
		a.metrics.ObserveReferenceCollision()
		candidate++
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE reference_sequences SET last_value = $2 WHERE year_suffix = $1`,
		suffix, candidate,
	); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "advance sequence")
	}

	if err := tx.Commit(); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "commit allocation")
	}

	return Format(a.prefix, year, candidate), nil
}
