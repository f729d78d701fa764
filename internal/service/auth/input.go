package auth

import (
	"strings"

	"github.com/knowtify/backend/internal/domain"
)

// RegisterInput holds the parameters for creating an account.
type RegisterInput struct {
	Username string
	Password string
}

// Validate checks all fields and collects all errors.
func (i *RegisterInput) Validate() error {
	var errs []domain.FieldError

	username := strings.TrimSpace(i.Username)
	if username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	} else if len(username) < 3 || len(username) > 50 {
		errs = append(errs, domain.FieldError{Field: "username", Message: "must be between 3 and 50 characters"})
	}

	// bcrypt truncates input beyond 72 bytes.
	if len(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	} else if len(i.Password) > 72 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "max 72 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LoginInput holds the credentials for logging in.
type LoginInput struct {
	Username string
	Password string
}

// Validate checks all fields and collects all errors.
func (i *LoginInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
