//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/knowtify/backend/internal/adapter/postgres"
	entryrepo "github.com/knowtify/backend/internal/adapter/postgres/entry"
	subjectrepo "github.com/knowtify/backend/internal/adapter/postgres/subject"
	"github.com/knowtify/backend/internal/adapter/postgres/testhelper"
	topicrepo "github.com/knowtify/backend/internal/adapter/postgres/topic"
	userrepo "github.com/knowtify/backend/internal/adapter/postgres/user"
	authpkg "github.com/knowtify/backend/internal/auth"
	"github.com/knowtify/backend/internal/config"
	"github.com/knowtify/backend/internal/domain"
	authsvc "github.com/knowtify/backend/internal/service/auth"
	"github.com/knowtify/backend/internal/service/report"
	"github.com/knowtify/backend/internal/service/study"
	"github.com/knowtify/backend/internal/transport/middleware"
	"github.com/knowtify/backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// failingClassifier always errors, forcing the local fallback parser.
// E2E tests never talk to the real LLM API.
type failingClassifier struct{}

func (failingClassifier) Classify(_ context.Context, _ string) ([]domain.ClassifiedTopic, error) {
	return nil, fmt.Errorf("classifier disabled in tests")
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	subjects := subjectrepo.New(pool)
	topics := topicrepo.New(pool)
	users := userrepo.New(pool)
	entries := entryrepo.New(pool)

	_, err := subjects.Seed(context.Background(), domain.DefaultSubjects, func(name string) string {
		return "Subject: " + name
	})
	require.NoError(t, err)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	authService := authsvc.NewService(logger, users, jwtMgr, 4)
	studyService := study.NewService(logger, users, subjects, topics, entries, failingClassifier{}, txm)
	reportService := report.NewService(logger, entries)

	router := rest.NewRouter(rest.Handlers{
		Auth:    rest.NewAuthHandler(authService, logger),
		Entries: rest.NewEntryHandler(studyService, logger),
		Reports: rest.NewReportHandler(reportService, logger),
		Parse:   rest.NewParseHandler(),
		Health:  rest.NewHealthHandler(pool, "test-version"),
	}, nil)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(authService),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// doJSON issues a request with a JSON body and decodes the JSON response.
// token, when non-empty, is sent as a bearer token.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	}
	return resp.StatusCode, result
}

// doJSONList is doJSON for endpoints returning a top-level JSON array.
func (ts *testServer) doJSONList(t *testing.T, method, path string, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// registerAndLogin creates an account and returns its bearer token.
func (ts *testServer) registerAndLogin(t *testing.T, username, password string) string {
	t.Helper()

	status, _ := ts.doJSON(t, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusCreated, status)

	status, body := ts.doJSON(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, status)

	token, ok := body["token"].(string)
	require.True(t, ok, "expected token in login response")
	require.NotEmpty(t, token)
	return token
}
