// Package report builds the weekly report and knowledge map views by
// aggregating a user's study entries into subject and topic summaries.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/knowtify/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.StudyEntry, error)
	ListByUserAndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.StudyEntry, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the report business logic.
type Service struct {
	entries entryRepo
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new Report service.
func NewService(log *slog.Logger, entries entryRepo) *Service {
	return &Service{
		entries: entries,
		log:     log.With("service", "report"),
		now:     time.Now,
	}
}
