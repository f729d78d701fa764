package report

import (
	"time"

	"github.com/knowtify/backend/internal/domain"
)

// WeeklyReportInput holds the parameters for building a weekly report.
// Year and Week default to the current ISO week when both are nil.
type WeeklyReportInput struct {
	Year *int
	Week *int
}

// Validate checks all fields and collects all errors.
func (i *WeeklyReportInput) Validate() error {
	var errs []domain.FieldError

	if (i.Year == nil) != (i.Week == nil) {
		errs = append(errs, domain.FieldError{Field: "week", Message: "year and week must be provided together"})
	}
	if i.Year != nil && *i.Year < 1 {
		errs = append(errs, domain.FieldError{Field: "year", Message: "must be positive"})
	}
	if i.Week != nil && (*i.Week < 1 || *i.Week > 53) {
		errs = append(errs, domain.FieldError{Field: "week", Message: "must be between 1 and 53"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// KnowledgeMapInput holds the optional date range for the knowledge map.
// Both dates present filters to [StartDate, end of EndDate]; both absent
// aggregates everything.
type KnowledgeMapInput struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Validate checks all fields and collects all errors.
func (i *KnowledgeMapInput) Validate() error {
	var errs []domain.FieldError

	if (i.StartDate == nil) != (i.EndDate == nil) {
		errs = append(errs, domain.FieldError{Field: "date_range", Message: "startDate and endDate must be provided together"})
	}
	if i.StartDate != nil && i.EndDate != nil && i.EndDate.Before(*i.StartDate) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
