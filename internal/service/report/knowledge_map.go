package report

import (
	"context"
	"fmt"

	"github.com/knowtify/backend/internal/domain"
	"github.com/knowtify/backend/pkg/ctxutil"
)

// KnowledgeMap aggregates the user's entries into the all-time (or
// date-filtered) subject/topic view. The range is inclusive by calendar day:
// the end date's full day counts.
func (s *Service) KnowledgeMap(ctx context.Context, input KnowledgeMapInput) (*KnowledgeMap, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		entries   []*domain.StudyEntry
		err       error
		dateRange *DateRange
	)

	if input.StartDate != nil && input.EndDate != nil {
		from := startOfDay(*input.StartDate)
		to := endOfDay(*input.EndDate)

		entries, err = s.entries.ListByUserAndRange(ctx, userID, from, to)
		dateRange = &DateRange{StartDate: from, EndDate: *input.EndDate}
	} else {
		entries, err = s.entries.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list entries for knowledge map: %w", err)
	}

	subjects := Aggregate(entries)

	s.log.Debug("knowledge map built",
		"user_id", userID,
		"filtered", dateRange != nil,
		"entries", len(entries),
		"subjects", len(subjects),
	)

	return &KnowledgeMap{
		DateRange: dateRange,
		Subjects:  subjects,
	}, nil
}
