package report

import (
	"time"

	"github.com/knowtify/backend/internal/domain"
)

// ReportWeek echoes the ISO week a report covers.
type ReportWeek struct {
	Year      int
	Week      int
	StartDate time.Time
	EndDate   time.Time
}

// WeeklyReport is the result of the weekly report view.
type WeeklyReport struct {
	Week         ReportWeek
	Subjects     []domain.SubjectSummary
	UrgentTopics []domain.TopicSummary
}

// DateRange is the echoed knowledge map filter.
type DateRange struct {
	StartDate time.Time
	EndDate   time.Time
}

// KnowledgeMap is the result of the knowledge map view.
// DateRange is nil when the map was built without a filter.
type KnowledgeMap struct {
	DateRange *DateRange
	Subjects  []domain.SubjectSummary
}
