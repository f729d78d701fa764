package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/knowtify/backend/internal/domain"
	"github.com/knowtify/backend/internal/service/study"
)

// studyService defines the minimal interface needed by EntryHandler.
type studyService interface {
	CreateEntry(ctx context.Context, input study.CreateEntryInput) (*domain.StudyEntry, error)
	ListRecent(ctx context.Context, input study.ListRecentInput) ([]*domain.StudyEntry, error)
}

// EntryHandler serves study entry REST endpoints.
type EntryHandler struct {
	svc studyService
	log *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(svc studyService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{svc: svc, log: logger.With("handler", "entry")}
}

type createEntryRequest struct {
	Sentence  string     `json:"sentence"`
	StudiedAt *time.Time `json:"studiedAt,omitempty"`
}

type entryResponse struct {
	ID        string              `json:"id"`
	Sentence  string              `json:"sentence"`
	StudiedAt *time.Time          `json:"studiedAt"`
	CreatedAt time.Time           `json:"createdAt"`
	Topics    []entryTopicSummary `json:"topics"`
}

type entryTopicSummary struct {
	Name       string  `json:"name"`
	Subject    string  `json:"subject"`
	IsPriority bool    `json:"isPriority"`
	Confidence float64 `json:"confidence"`
}

// Create handles POST /api/v1/entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.svc.CreateEntry(r.Context(), study.CreateEntryInput{
		Sentence:  req.Sentence,
		StudiedAt: req.StudiedAt,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// List handles GET /api/v1/entries?limit=.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	entries, err := h.svc.ListRecent(r.Context(), study.ListRecentInput{Limit: limit})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *EntryHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toEntryResponse(e *domain.StudyEntry) entryResponse {
	topics := make([]entryTopicSummary, 0, len(e.Topics))
	for _, link := range e.Topics {
		if link.Topic == nil {
			continue
		}
		summary := entryTopicSummary{
			Name:       link.Topic.Name,
			IsPriority: link.IsPriority,
			Confidence: link.Topic.ConfidenceScore,
		}
		if link.Topic.Subject != nil {
			summary.Subject = link.Topic.Subject.Name
		}
		topics = append(topics, summary)
	}

	return entryResponse{
		ID:        e.ID.String(),
		Sentence:  e.OriginalSentence,
		StudiedAt: e.StudiedAt,
		CreatedAt: e.CreatedAt,
		Topics:    topics,
	}
}
