//go:build e2e

package e2e_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_WeeklyReport creates entries in the current week and fetches
// the weekly report, checking aggregation and the urgent list.
func TestE2E_WeeklyReport(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "judy-"+uuid.NewString()[:8], "secret-pass")

	for _, sentence := range []string{"!sql joins", "sql joins", "goroutines"} {
		status, _ := ts.doJSON(t, http.MethodPost, "/api/v1/entries",
			map[string]string{"sentence": sentence}, token)
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := ts.doJSON(t, http.MethodGet, "/api/v1/reports/weekly", nil, token)
	require.Equal(t, http.StatusOK, status)

	week, ok := body["week"].(map[string]any)
	require.True(t, ok, "expected week object")
	year, isoWeek := time.Now().UTC().ISOWeek()
	assert.Equal(t, float64(year), week["year"])
	assert.Equal(t, float64(isoWeek), week["weekNumber"])

	subjects, ok := body["subjects"].([]any)
	require.True(t, ok, "expected subjects array")
	require.Len(t, subjects, 1)

	subject, ok := subjects[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Other", subject["subject"])
	assert.Equal(t, float64(3), subject["totalStudies"])

	urgent, ok := body["urgentTopics"].([]any)
	require.True(t, ok, "expected urgentTopics array")
	require.Len(t, urgent, 1)

	topic, ok := urgent[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sql joins", topic["name"])
	assert.Equal(t, float64(2), topic["count"])
}

// TestE2E_WeeklyReportExplicitWeek verifies an out-of-range week number
// is rejected and an empty past week returns empty aggregations.
func TestE2E_WeeklyReportExplicitWeek(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "karl-"+uuid.NewString()[:8], "secret-pass")

	status, _ := ts.doJSON(t, http.MethodGet, "/api/v1/reports/weekly?year=2024&week=99", nil, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := ts.doJSON(t, http.MethodGet, "/api/v1/reports/weekly?year=2020&week=3", nil, token)
	require.Equal(t, http.StatusOK, status)

	week, ok := body["week"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2020-01-13", week["startDate"])
	assert.Equal(t, "2020-01-19", week["endDate"])

	subjects, ok := body["subjects"].([]any)
	require.True(t, ok)
	assert.Empty(t, subjects)
}

// TestE2E_KnowledgeMap covers the unfiltered map, the filtered map, and
// the mixed-range rejection.
func TestE2E_KnowledgeMap(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "lena-"+uuid.NewString()[:8], "secret-pass")

	status, _ := ts.doJSON(t, http.MethodPost, "/api/v1/entries",
		map[string]string{"sentence": "indexes"}, token)
	require.Equal(t, http.StatusCreated, status)

	status, body := ts.doJSON(t, http.MethodGet, "/api/v1/knowledge-map", nil, token)
	require.Equal(t, http.StatusOK, status)
	_, hasRange := body["dateRange"]
	assert.False(t, hasRange, "unfiltered map must omit dateRange")

	subjects, ok := body["subjects"].([]any)
	require.True(t, ok)
	require.Len(t, subjects, 1)

	today := time.Now().UTC().Format(time.DateOnly)
	path := fmt.Sprintf("/api/v1/knowledge-map?startDate=%s&endDate=%s", today, today)
	status, body = ts.doJSON(t, http.MethodGet, path, nil, token)
	require.Equal(t, http.StatusOK, status)

	dateRange, ok := body["dateRange"].(map[string]any)
	require.True(t, ok, "filtered map must echo dateRange")
	assert.Equal(t, today, dateRange["startDate"])
	assert.Equal(t, today, dateRange["endDate"])

	subjects, ok = body["subjects"].([]any)
	require.True(t, ok)
	assert.Len(t, subjects, 1)

	status, _ = ts.doJSON(t, http.MethodGet, "/api/v1/knowledge-map?startDate="+today, nil, token)
	assert.Equal(t, http.StatusBadRequest, status)
}
