package study

import (
	"context"
	"fmt"

	"github.com/knowtify/backend/internal/domain"
	"github.com/knowtify/backend/pkg/ctxutil"
)

// ListRecent returns the user's most recent study entries, newest first,
// with their topic links loaded.
func (s *Service) ListRecent(ctx context.Context, input ListRecentInput) ([]*domain.StudyEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.entries.ListRecent(ctx, userID, input.clampedLimit())
	if err != nil {
		return nil, fmt.Errorf("list recent entries: %w", err)
	}

	return entries, nil
}
