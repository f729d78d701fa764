package report

import (
	"context"
	"fmt"

	"github.com/knowtify/backend/internal/domain"
	"github.com/knowtify/backend/pkg/ctxutil"
)

// WeeklyReport aggregates the user's entries for one ISO week (Monday to
// Sunday) and extracts the priority topics into a flattened urgent list.
// Without an explicit year+week the current ISO week is used.
func (s *Service) WeeklyReport(ctx context.Context, input WeeklyReportInput) (*WeeklyReport, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var year, week int
	if input.Year != nil && input.Week != nil {
		year, week = *input.Year, *input.Week
	} else {
		year, week = s.now().UTC().ISOWeek()
	}

	from, to := weekWindow(year, week)

	entries, err := s.entries.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list entries for week %d-W%02d: %w", year, week, err)
	}

	subjects := Aggregate(entries)

	s.log.Debug("weekly report built",
		"user_id", userID,
		"year", year,
		"week", week,
		"entries", len(entries),
		"subjects", len(subjects),
	)

	return &WeeklyReport{
		Week: ReportWeek{
			Year:      year,
			Week:      week,
			StartDate: from,
			EndDate:   from.AddDate(0, 0, 6),
		},
		Subjects:     subjects,
		UrgentTopics: urgentTopics(subjects),
	}, nil
}
