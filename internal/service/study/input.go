package study

import (
	"strings"
	"time"

	"github.com/knowtify/backend/internal/domain"
)

// CreateEntryInput holds the parameters for recording a study entry.
type CreateEntryInput struct {
	Sentence  string
	StudiedAt *time.Time
}

// Validate checks all fields and collects all errors.
func (i *CreateEntryInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Sentence) == "" {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: "required"})
	}
	if len(i.Sentence) > domain.MaxSentenceLength {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// ListRecentInput holds the parameters for listing recent entries.
// A non-positive Limit falls back to the default.
type ListRecentInput struct {
	Limit int
}

// clampedLimit returns the effective limit within [1, maxRecentLimit].
func (i *ListRecentInput) clampedLimit() int {
	switch {
	case i.Limit <= 0:
		return defaultRecentLimit
	case i.Limit > maxRecentLimit:
		return maxRecentLimit
	default:
		return i.Limit
	}
}
