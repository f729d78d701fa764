// Package subject implements the Subject repository using PostgreSQL.
// Subject names are unique case-insensitively; find-or-create is a single
// atomic upsert so concurrent creates of the same name resolve in the
// database instead of producing duplicates.
package subject

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/knowtify/backend/internal/adapter/postgres"
	"github.com/knowtify/backend/internal/domain"
)

// Repo provides subject persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new subject repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

const getByNameSQL = `
SELECT id, name, description, created_at
FROM subjects
WHERE lower(name) = lower($1)`

const getOrCreateSQL = `
INSERT INTO subjects (id, name, description)
VALUES ($1, $2, $3)
ON CONFLICT ((lower(name))) DO UPDATE SET name = subjects.name
RETURNING id, name, description, created_at`

const seedSQL = `
INSERT INTO subjects (id, name, description)
VALUES ($1, $2, $3)
ON CONFLICT ((lower(name))) DO NOTHING`

const listSQL = `
SELECT id, name, description, created_at
FROM subjects
ORDER BY name`

// GetByName returns a subject by case-insensitive name.
// Returns domain.ErrNotFound if no such subject exists.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Subject, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSubject(querier.QueryRow(ctx, getByNameSQL, name))
	if err != nil {
		return nil, postgres.MapError(err, "subject")
	}
	return s, nil
}

// GetOrCreate returns the subject with the given name, creating it with the
// given description if absent. The lookup is case-insensitive; on conflict
// the existing row is returned unchanged (original casing and description
// are kept). Idempotent under concurrent calls.
func (r *Repo) GetOrCreate(ctx context.Context, name string, description *string) (*domain.Subject, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getOrCreateSQL, uuid.New(), name, ptrTextArg(description))
	s, err := scanSubject(row)
	if err != nil {
		return nil, postgres.MapError(err, "subject")
	}
	return s, nil
}

// Seed inserts the given subjects if absent (case-insensitive). Re-running
// is safe; existing subjects are left untouched. Returns the number of
// subjects actually inserted.
func (r *Repo) Seed(ctx context.Context, names []string, describe func(name string) string) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	inserted := 0
	for _, name := range names {
		tag, err := querier.Exec(ctx, seedSQL, uuid.New(), name, describe(name))
		if err != nil {
			return inserted, postgres.MapError(err, "subject")
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// List returns all subjects ordered by name.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) List(ctx context.Context) ([]*domain.Subject, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	result := []*domain.Subject{}
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("list subjects: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	return result, nil
}

// scanTarget is the subset of pgx.Row/pgx.Rows needed for scanning.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanSubject(row scanTarget) (*domain.Subject, error) {
	var (
		id          uuid.UUID
		name        string
		description pgtype.Text
		createdAt   time.Time
	)
	if err := row.Scan(&id, &name, &description, &createdAt); err != nil {
		return nil, err
	}

	s := &domain.Subject{ID: id, Name: name, CreatedAt: createdAt}
	if description.Valid {
		s.Description = &description.String
	}
	return s, nil
}

// ptrTextArg converts a *string to a pgtype.Text insert argument (nil -> NULL).
func ptrTextArg(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
