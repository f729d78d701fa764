package rest

import (
	"encoding/json"
	"net/http"

	"github.com/knowtify/backend/internal/parsing"
)

// ParseHandler exposes the local sentence normalizer for debugging
// classifier input without creating entries.
type ParseHandler struct{}

// NewParseHandler creates a ParseHandler.
func NewParseHandler() *ParseHandler {
	return &ParseHandler{}
}

type parseRequest struct {
	Sentence string `json:"sentence"`
}

type parsedTopicResponse struct {
	Name       string `json:"name"`
	IsPriority bool   `json:"isPriority"`
}

// Parse handles POST /api/v1/dev/parse. It echoes the normalized topics
// without touching storage.
func (h *ParseHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	parsed := parsing.ParseSentence(req.Sentence)
	topics := make([]parsedTopicResponse, 0, len(parsed))
	for _, p := range parsed {
		topics = append(topics, parsedTopicResponse{Name: p.Name, IsPriority: p.IsPriority})
	}

	writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
}
