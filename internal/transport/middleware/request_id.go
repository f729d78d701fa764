package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/knowtify/backend/pkg/ctxutil"
)

// RequestID tags every request with an id for log correlation. An
// incoming X-Request-Id is trusted and propagated; otherwise a fresh
// uuid is generated. The id is stored in the context and echoed in the
// response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
