package rest

import (
	"net/http"

	"github.com/knowtify/backend/internal/transport/middleware"
)

// Handlers groups the handlers the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Entries *EntryHandler
	Reports *ReportHandler
	Parse   *ParseHandler
	Health  *HealthHandler
}

// NewRouter builds the route table. authLimit, when non-nil, is applied
// to the credential endpoints only; the caller wraps the returned handler
// in the global middleware chain.
func NewRouter(h Handlers, authLimit middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	register := http.HandlerFunc(h.Auth.Register)
	login := http.HandlerFunc(h.Auth.Login)
	if authLimit != nil {
		mux.Handle("POST /api/v1/auth/register", authLimit(register))
		mux.Handle("POST /api/v1/auth/login", authLimit(login))
	} else {
		mux.Handle("POST /api/v1/auth/register", register)
		mux.Handle("POST /api/v1/auth/login", login)
	}

	mux.HandleFunc("POST /api/v1/entries", h.Entries.Create)
	mux.HandleFunc("GET /api/v1/entries", h.Entries.List)

	mux.HandleFunc("GET /api/v1/reports/weekly", h.Reports.Weekly)
	mux.HandleFunc("GET /api/v1/knowledge-map", h.Reports.KnowledgeMap)

	mux.HandleFunc("POST /api/v1/dev/parse", h.Parse.Parse)

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	return mux
}
