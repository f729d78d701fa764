// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	postgres "github.com/knowtify/backend/internal/adapter/postgres"
	"github.com/knowtify/backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new user repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO users (id, username, password_hash)
VALUES ($1, $2, $3)
RETURNING id, username, password_hash, created_at`

const getByIDSQL = `
SELECT id, username, password_hash, created_at
FROM users
WHERE id = $1`

const getByUsernameSQL = `
SELECT id, username, password_hash, created_at
FROM users
WHERE lower(username) = lower($1)`

// Create inserts a new user. Usernames are unique case-insensitively;
// a duplicate returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL, uuid.New(), username, passwordHash)
	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user")
	}
	return u, nil
}

// GetByID returns a user by id. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user")
	}
	return u, nil
}

// GetByUsername returns a user by case-insensitive username.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByUsernameSQL, username))
	if err != nil {
		return nil, postgres.MapError(err, "user")
	}
	return u, nil
}

type scanTarget interface {
	Scan(dest ...any) error
}

func scanUser(row scanTarget) (*domain.User, error) {
	var (
		id           uuid.UUID
		username     string
		passwordHash string
		createdAt    time.Time
	)
	if err := row.Scan(&id, &username, &passwordHash, &createdAt); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}, nil
}
