package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/knowtify/backend/internal/domain"
	"github.com/knowtify/backend/internal/service/report"
)

// reportService defines the minimal interface needed by ReportHandler.
type reportService interface {
	WeeklyReport(ctx context.Context, input report.WeeklyReportInput) (*report.WeeklyReport, error)
	KnowledgeMap(ctx context.Context, input report.KnowledgeMapInput) (*report.KnowledgeMap, error)
}

// ReportHandler serves the weekly report and knowledge map endpoints.
type ReportHandler struct {
	svc reportService
	log *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc reportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: logger.With("handler", "report")}
}

type weeklyReportResponse struct {
	Week         reportWeekResponse      `json:"week"`
	Subjects     []subjectSummaryPayload `json:"subjects"`
	UrgentTopics []topicSummaryPayload   `json:"urgentTopics"`
}

type reportWeekResponse struct {
	Year      int    `json:"year"`
	Week      int    `json:"weekNumber"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type knowledgeMapResponse struct {
	DateRange *dateRangePayload       `json:"dateRange,omitempty"`
	Subjects  []subjectSummaryPayload `json:"subjects"`
}

type dateRangePayload struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type subjectSummaryPayload struct {
	Subject      string                `json:"subject"`
	Topics       []topicSummaryPayload `json:"topics"`
	TotalStudies int                   `json:"totalStudies"`
}

type topicSummaryPayload struct {
	Name          string     `json:"name"`
	Count         int        `json:"count"`
	IsPriority    bool       `json:"isPriority"`
	LastStudiedAt *time.Time `json:"lastStudiedAt"`
}

// Weekly handles GET /api/v1/reports/weekly?year=&week=.
func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	var input report.WeeklyReportInput

	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		input.Year = &year
	}
	if v := r.URL.Query().Get("week"); v != "" {
		week, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "week must be an integer")
			return
		}
		input.Week = &week
	}

	result, err := h.svc.WeeklyReport(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, weeklyReportResponse{
		Week: reportWeekResponse{
			Year:      result.Week.Year,
			Week:      result.Week.Week,
			StartDate: result.Week.StartDate.Format(time.DateOnly),
			EndDate:   result.Week.EndDate.Format(time.DateOnly),
		},
		Subjects:     toSubjectPayloads(result.Subjects),
		UrgentTopics: toTopicPayloads(result.UrgentTopics),
	})
}

// KnowledgeMap handles GET /api/v1/knowledge-map?startDate=&endDate=.
// Dates use the YYYY-MM-DD format and are inclusive on both ends.
func (h *ReportHandler) KnowledgeMap(w http.ResponseWriter, r *http.Request) {
	var input report.KnowledgeMapInput

	if v := r.URL.Query().Get("startDate"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		input.StartDate = &t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		input.EndDate = &t
	}

	result, err := h.svc.KnowledgeMap(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := knowledgeMapResponse{Subjects: toSubjectPayloads(result.Subjects)}
	if result.DateRange != nil {
		resp.DateRange = &dateRangePayload{
			StartDate: result.DateRange.StartDate.Format(time.DateOnly),
			EndDate:   result.DateRange.EndDate.Format(time.DateOnly),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toSubjectPayloads(subjects []domain.SubjectSummary) []subjectSummaryPayload {
	out := make([]subjectSummaryPayload, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, subjectSummaryPayload{
			Subject:      s.Subject,
			Topics:       toTopicPayloads(s.Topics),
			TotalStudies: s.TotalStudies,
		})
	}
	return out
}

func toTopicPayloads(topics []domain.TopicSummary) []topicSummaryPayload {
	out := make([]topicSummaryPayload, 0, len(topics))
	for _, t := range topics {
		out = append(out, topicSummaryPayload{
			Name:          t.Name,
			Count:         t.Count,
			IsPriority:    t.IsPriority,
			LastStudiedAt: t.LastStudiedAt,
		})
	}
	return out
}
