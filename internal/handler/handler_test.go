package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/github-activity/internal/activity"
	"github.com/KOFI-GYIMAH/github-activity/internal/github"
	"github.com/KOFI-GYIMAH/github-activity/internal/models"
	"github.com/KOFI-GYIMAH/github-activity/internal/service"
	"github.com/KOFI-GYIMAH/github-activity/pkg/errors"
	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.SetOutput(io.Discard)
}

// * newGitHubServer fakes the two GitHub endpoints the dashboard calls.
// * octocat owns hello-world (with activity) and spoon-knife (204), ghost does not exist.
func newGitHubServer(t *testing.T) *httptest.Server {
	t.Helper()

	week := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC).Unix()
	router := mux.NewRouter()
	router.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "hello-world", "description": "My first repo", "language": "Go", "stargazers_count": 42, "html_url": "https://github.com/octocat/hello-world"},
			{"id": 2, "name": "spoon-knife", "description": null, "language": null, "stargazers_count": 0, "html_url": "https://github.com/octocat/spoon-knife"}
		]`))
	})
	router.HandleFunc("/users/ghost/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	})
	router.HandleFunc("/repos/octocat/hello-world/stats/commit_activity", func(w http.ResponseWriter, r *http.Request) {
		weeks := []github.WeeklyCommitActivity{
			{Total: 3, Week: week, Days: []int{0, 1, 2, 0, 0, 0, 0}},
			{Total: 7, Week: week + 7*24*3600, Days: []int{1, 1, 1, 1, 1, 1, 1}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(weeks)
	})
	router.HandleFunc("/repos/octocat/spoon-knife/stats/commit_activity", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func newTestController(t *testing.T) *service.Controller {
	t.Helper()
	server := newGitHubServer(t)
	client := github.NewClient("", github.WithBaseURL(server.URL), github.WithRetryDelay(10*time.Millisecond))
	return service.NewController(client, github.DefaultMaxRetries)
}

func newAPIRouter(controller *service.Controller) *mux.Router {
	router := mux.NewRouter()
	NewDashboardHandler(controller, nil).RegisterRoutes(router.PathPrefix("/v1").Subrouter())
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) APIResponse {
	t.Helper()

	var raw struct {
		Status  string          `json:"status"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if v != nil {
		require.NoError(t, json.Unmarshal(raw.Data, v))
	}
	return APIResponse{Status: raw.Status, Message: raw.Message}
}

func TestDashboardHandler_GetStateIdle(t *testing.T) {
	router := newAPIRouter(newTestController(t))

	rec := doJSON(t, router, http.MethodGet, "/v1/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var state models.ViewState
	resp := decodeData(t, rec, &state)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, models.StatusIdle, state.Status)
	assert.Empty(t, state.Repositories)
	assert.False(t, state.Authenticated)
}

func TestDashboardHandler_Search(t *testing.T) {
	router := newAPIRouter(newTestController(t))

	rec := doJSON(t, router, http.MethodPost, "/v1/search", SearchRequest{Username: "octocat"})
	require.Equal(t, http.StatusOK, rec.Code)

	var state models.ViewState
	resp := decodeData(t, rec, &state)
	assert.Equal(t, "Successfully loaded repositories", resp.Message)
	assert.Equal(t, models.StatusLoaded, state.Status)
	assert.Equal(t, "octocat", state.Username)
	require.Len(t, state.Repositories, 2)
	assert.Equal(t, "hello-world", state.Selection)
	assert.Len(t, state.Activity, 2)
	assert.Equal(t, 10, activity.Summarize(state.Activity).TotalCommits)
}

func TestDashboardHandler_SearchErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantRef    string
	}{
		{name: "malformed body", body: `{"username":`, wantStatus: http.StatusBadRequest, wantRef: errors.RefValidation},
		{name: "empty username", body: `{"username": "  "}`, wantStatus: http.StatusBadRequest, wantRef: errors.RefValidation},
		{name: "unknown user", body: `{"username": "ghost"}`, wantStatus: http.StatusNotFound, wantRef: errors.RefNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAPIRouter(newTestController(t))

			req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp errors.HTTPErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantRef, resp.ErrorRef)
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}
}

func TestDashboardHandler_SearchUnknownUserLeavesErrorState(t *testing.T) {
	controller := newTestController(t)
	router := newAPIRouter(controller)

	doJSON(t, router, http.MethodPost, "/v1/search", SearchRequest{Username: "ghost"})

	state := controller.State()
	assert.Equal(t, models.StatusError, state.Status)
	assert.Equal(t, "User not found", state.Error)
	assert.Empty(t, state.Repositories)
}

func TestDashboardHandler_Selection(t *testing.T) {
	controller := newTestController(t)
	router := newAPIRouter(controller)

	doJSON(t, router, http.MethodPost, "/v1/search", SearchRequest{Username: "octocat"})

	rec := doJSON(t, router, http.MethodPost, "/v1/selection", SelectRequest{Name: "spoon-knife"})
	require.Equal(t, http.StatusOK, rec.Code)

	var state models.ViewState
	decodeData(t, rec, &state)
	assert.Equal(t, "spoon-knife", state.Selection)
	assert.Equal(t, models.StatusLoaded, state.Status)
	assert.Empty(t, state.Activity)
	assert.Len(t, state.Repositories, 2)

	rec = doJSON(t, router, http.MethodGet, "/v1/views/weekly", nil)
	var view activity.View
	decodeData(t, rec, &view)
	assert.True(t, view.NoData)
	assert.Equal(t, activity.NoDataMessage, view.Message)
}

func TestDashboardHandler_SelectionUnknownRepository(t *testing.T) {
	controller := newTestController(t)
	router := newAPIRouter(controller)

	doJSON(t, router, http.MethodPost, "/v1/search", SearchRequest{Username: "octocat"})
	before := controller.State()

	rec := doJSON(t, router, http.MethodPost, "/v1/selection", SelectRequest{Name: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	after := controller.State()
	assert.Equal(t, before.Generation, after.Generation)
	assert.Equal(t, "hello-world", after.Selection)
}

func TestDashboardHandler_Views(t *testing.T) {
	router := newAPIRouter(newTestController(t))
	doJSON(t, router, http.MethodPost, "/v1/search", SearchRequest{Username: "octocat"})

	t.Run("weekly", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/v1/views/weekly", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var view activity.View
		decodeData(t, rec, &view)
		require.Len(t, view.Bars, 2)
		assert.Equal(t, 7, view.Max)
		assert.Equal(t, "1/7", view.Bars[0].Label)
		assert.InDelta(t, 100.0, view.Bars[1].Height, 0.001)
	})

	t.Run("monthly", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/v1/views/monthly", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var view activity.View
		decodeData(t, rec, &view)
		require.Len(t, view.Bars, 1)
		assert.Equal(t, "Jan 2024", view.Bars[0].Label)
		assert.Equal(t, 10, view.Bars[0].Value)
	})

	t.Run("yearly", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/v1/views/yearly", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var heat activity.HeatMap
		decodeData(t, rec, &heat)
		assert.False(t, heat.NoData)
		assert.Len(t, heat.Days, 14)
		assert.Equal(t, 2, heat.Max)
	})

	t.Run("unknown granularity", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/v1/views/daily", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDashboardHandler_Summary(t *testing.T) {
	router := newAPIRouter(newTestController(t))

	rec := doJSON(t, router, http.MethodGet, "/v1/summary", nil)
	var empty activity.Summary
	decodeData(t, rec, &empty)
	assert.True(t, empty.NoData)

	doJSON(t, router, http.MethodPost, "/v1/search", SearchRequest{Username: "octocat"})

	rec = doJSON(t, router, http.MethodGet, "/v1/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary activity.Summary
	decodeData(t, rec, &summary)
	assert.False(t, summary.NoData)
	assert.Equal(t, 10, summary.TotalCommits)
	assert.Equal(t, 2, summary.Weeks)
	assert.Equal(t, 7, summary.BusiestWeekTotal)
}

func TestDashboardHandler_NoWebSocketRouteWithoutHub(t *testing.T) {
	router := newAPIRouter(newTestController(t))

	rec := doJSON(t, router, http.MethodGet, "/v1/ws", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
