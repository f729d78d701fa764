// Package topic implements the Topic repository using PostgreSQL.
package topic

import (
	"context"
	"time"

	"github.com/google/uuid"

	postgres "github.com/knowtify/backend/internal/adapter/postgres"
	"github.com/knowtify/backend/internal/domain"
)

// Repo provides topic persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new topic repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

const getOrCreateSQL = `
INSERT INTO topics (id, subject_id, name, confidence_score)
VALUES ($1, $2, $3, $4)
ON CONFLICT (subject_id, (lower(name))) DO UPDATE SET name = topics.name
RETURNING id, subject_id, name, confidence_score, created_at`

const getByIDSQL = `
SELECT id, subject_id, name, confidence_score, created_at
FROM topics
WHERE id = $1`

// GetOrCreate returns the topic with the given name under the subject,
// creating it with the given confidence score if absent. Names are unique
// case-insensitively per subject; on conflict the existing row wins and its
// confidence score is kept.
func (r *Repo) GetOrCreate(ctx context.Context, subjectID uuid.UUID, name string, confidence float64) (*domain.Topic, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getOrCreateSQL, uuid.New(), subjectID, name, confidence)
	t, err := scanTopic(row)
	if err != nil {
		return nil, postgres.MapError(err, "topic")
	}
	return t, nil
}

// GetByID returns a topic by id. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTopic(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "topic")
	}
	return t, nil
}

type scanTarget interface {
	Scan(dest ...any) error
}

func scanTopic(row scanTarget) (*domain.Topic, error) {
	var (
		id         uuid.UUID
		subjectID  uuid.UUID
		name       string
		confidence float64
		createdAt  time.Time
	)
	if err := row.Scan(&id, &subjectID, &name, &confidence, &createdAt); err != nil {
		return nil, err
	}
	return &domain.Topic{
		ID:              id,
		SubjectID:       subjectID,
		Name:            name,
		ConfidenceScore: confidence,
		CreatedAt:       createdAt,
	}, nil
}
