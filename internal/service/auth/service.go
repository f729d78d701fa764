// Package auth implements username/password authentication with bcrypt
// hashing and JWT access tokens.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/knowtify/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type jwtManager interface {
	GenerateToken(userID uuid.UUID, username string) (string, error)
	ValidateToken(tokenString string) (uuid.UUID, string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the auth business logic.
type Service struct {
	users      userRepo
	jwt        jwtManager
	bcryptCost int
	log        *slog.Logger
}

// NewService creates a new Auth service.
func NewService(log *slog.Logger, users userRepo, jwt jwtManager, bcryptCost int) *Service {
	return &Service{
		users:      users,
		jwt:        jwt,
		bcryptCost: bcryptCost,
		log:        log.With("service", "auth"),
	}
}
