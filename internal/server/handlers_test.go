package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/graphdb"
	"github.com/vanshika/sixdegrees/internal/logging"
	"github.com/vanshika/sixdegrees/internal/metrics"
	"github.com/vanshika/sixdegrees/internal/service"
)

func newTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for id, name := range map[string]string{"P1": "Alice", "P2": "Bob", "P3": "Carol", "P4": "Dave"} {
		require.NoError(t, g.AddPerson(id, name))
	}
	require.NoError(t, g.AddTitle("T1", "Movie A"))
	require.NoError(t, g.AddTitle("T2", "Movie B"))
	require.NoError(t, g.AddCredit("P1", "T1"))
	require.NoError(t, g.AddCredit("P2", "T1"))
	require.NoError(t, g.AddCredit("P2", "T2"))
	require.NoError(t, g.AddCredit("P3", "T2"))
	g.Freeze()
	return g
}

func newTestRouter(t *testing.T, g *graph.Graph, mirror graphdb.Client) (http.Handler, *metrics.Recorder) {
	t.Helper()
	recorder := metrics.New()
	svc, err := service.NewPathService(g, graph.MatchSubstring)
	require.NoError(t, err)
	svc.WithObserver(recorder)

	handler := NewRouter(logging.Discard(), RouterDependencies{
		Health:  GraphHealthService{Graph: g, Mirror: mirror},
		API:     NewAPIHandlers(logging.Discard(), svc),
		Metrics: recorder.Handler(),
	})
	return handler, recorder
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleShortestPath(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), nil)

	rec := do(t, h, http.MethodGet, "/paths?source=P1&target=P3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload pathResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Found)
	assert.Equal(t, 4, payload.Hops)
	assert.Equal(t, "Alice, Movie A, Bob, Movie B, Carol", payload.Path)
	require.Len(t, payload.Nodes, 5)
	assert.Equal(t, "title", payload.Nodes[1].Kind)
	assert.Equal(t, "T1", payload.Nodes[1].ID)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestHandleShortestPath_NoPath(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), nil)

	rec := do(t, h, http.MethodGet, "/paths?source=P1&target=P4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload pathResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.False(t, payload.Found)
	assert.Empty(t, payload.Nodes)
	assert.Empty(t, payload.Path)
}

func TestHandleShortestPath_Errors(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), nil)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "missing target", target: "/paths?source=P1", status: http.StatusBadRequest},
		{name: "unknown person", target: "/paths?source=P1&target=P404", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleShortestPath_ConsistencyDefect(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddPerson("P1", "Alice"))
	require.NoError(t, g.AddPerson("P2", "Bob"))
	require.NoError(t, g.AddCredit("P1", "T-gone"))
	require.NoError(t, g.AddCredit("P2", "T-gone"))
	g.Freeze()
	h, _ := newTestRouter(t, g, nil)

	rec := do(t, h, http.MethodGet, "/paths?source=P1&target=P2", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleFindPersons(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), nil)

	rec := do(t, h, http.MethodGet, "/persons?name=a", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload findPersonsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	ids := make([]string, 0, len(payload.Candidates))
	for _, c := range payload.Candidates {
		ids = append(ids, c.ID)
	}
	// Case-sensitive substring: "a" appears in Carol and Dave, not Alice.
	assert.Equal(t, []string{"P3", "P4"}, ids)
	assert.Equal(t, []string{"Movie B"}, payload.Candidates[0].Titles)
	assert.Equal(t, []string{}, payload.Candidates[1].Titles)

	rec = do(t, h, http.MethodGet, "/persons", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePerson(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), nil)

	rec := do(t, h, http.MethodGet, "/persons/P2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var payload personResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Bob", payload.Name)
	assert.ElementsMatch(t, []string{"Movie A", "Movie B"}, payload.Titles)

	rec = do(t, h, http.MethodGet, "/persons/P404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleBatchPaths(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), nil)

	body := `{"queries":[{"source":"P1","target":"P3"},{"source":"P1","target":"P404"},{"source":"P4","target":"P4"}]}`
	rec := do(t, h, http.MethodPost, "/paths/batch", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload batchPathResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Results, 3)
	assert.Equal(t, 4, payload.Results[0].Hops)
	assert.Empty(t, payload.Results[0].Error)
	assert.Equal(t, "P404", payload.Results[1].Target)
	assert.NotEmpty(t, payload.Results[1].Error)
	assert.True(t, payload.Results[2].Found)
	assert.Equal(t, "Dave", payload.Results[2].Path)
}

func TestHandleBatchPaths_Validation(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty list", body: `{"queries":[]}`},
		{name: "missing target", body: `{"queries":[{"source":"P1"}]}`},
		{name: "unknown field", body: `{"queries":[{"source":"P1","target":"P2"}],"limit":3}`},
		{name: "malformed", body: `{"queries":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/paths/batch", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := do(t, h, http.MethodGet, "/paths/batch", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), graphdb.NewMemoryClient())

	rec := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.EqualValues(t, 4, payload["persons"])
	assert.EqualValues(t, 2, payload["titles"])
}

func TestHealthz_MirrorDown(t *testing.T) {
	mirror := graphdb.NewMemoryClient().WithConnectivityError(errors.New("bolt unreachable"))
	h, _ := newTestRouter(t, newTestGraph(t), mirror)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "bolt unreachable")
}

func TestGraphHealthService_NotLoaded(t *testing.T) {
	err := GraphHealthService{Graph: graph.New()}.Probe(context.Background())
	assert.ErrorIs(t, err, ErrGraphNotLoaded)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), nil)

	do(t, h, http.MethodGet, "/paths?source=P1&target=P3", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `degrees_path_searches_total{outcome="found"} 1`)
}

func TestRequestIDPropagation(t *testing.T) {
	h, _ := newTestRouter(t, newTestGraph(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	handler := NewRouter(logging.Discard(), RouterDependencies{AllowedOrigins: []string{"https://ui.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/paths", nil)
	req.Header.Set("Origin", "https://ui.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://ui.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/paths", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
