package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/knowtify/backend/internal/domain"
)

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token string
	User  *domain.User
}

// Login verifies the credentials and issues a JWT access token.
// Unknown usernames and wrong passwords are indistinguishable to the caller:
// both return domain.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.Info("user logged in", "user_id", user.ID)

	return &LoginResult{Token: token, User: user}, nil
}

// ValidateToken checks an access token and returns the user id and username
// it was issued for. Invalid or expired tokens return domain.ErrUnauthorized.
func (s *Service) ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error) {
	userID, username, err := s.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", domain.ErrUnauthorized
	}
	return userID, username, nil
}
