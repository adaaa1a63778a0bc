package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vanshika/sixdegrees/internal/domain"
	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/service"
)

const maxBatchQueries = 100

// PathFinder is the query surface the handlers need.
type PathFinder interface {
	Stats() graph.Stats
	FindPersons(ctx context.Context, query string) ([]domain.PersonCandidate, error)
	Person(ctx context.Context, id string) (domain.PersonCandidate, error)
	ShortestPath(ctx context.Context, sourceID, targetID string) (domain.ShortestPath, error)
	BatchShortestPaths(ctx context.Context, queries []service.PathQuery) ([]service.PathResult, error)
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger   *slog.Logger
	paths    PathFinder
	validate *validator.Validate
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, paths PathFinder) *APIHandlers {
	return &APIHandlers{
		logger:   logger,
		paths:    paths,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *APIHandlers) handleFindPersons(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	candidates, err := h.paths.FindPersons(r.Context(), name)
	if err != nil {
		h.fail(w, r, err, "failed to look up persons", "name", name)
		return
	}

	resp := findPersonsResponse{Query: name, Candidates: []personResponse{}}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, toPersonResponse(c))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handlePerson(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "person ID is required")
		return
	}

	person, err := h.paths.Person(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "failed to fetch person", "personId", id)
		return
	}
	respondJSON(w, http.StatusOK, toPersonResponse(person))
}

func (h *APIHandlers) handleShortestPath(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sourceID := strings.TrimSpace(query.Get("source"))
	targetID := strings.TrimSpace(query.Get("target"))
	if sourceID == "" || targetID == "" {
		writeError(w, http.StatusBadRequest, "source and target are required")
		return
	}

	path, err := h.paths.ShortestPath(r.Context(), sourceID, targetID)
	if err != nil {
		h.fail(w, r, err, "failed to compute shortest path", "source", sourceID, "target", targetID)
		return
	}
	respondJSON(w, http.StatusOK, toPathResponse(path))
}

func (h *APIHandlers) handleBatchPaths(w http.ResponseWriter, r *http.Request) {
	var payload batchPathRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	queries := make([]service.PathQuery, len(payload.Queries))
	for i, q := range payload.Queries {
		queries[i] = service.PathQuery{SourceID: q.Source, TargetID: q.Target}
	}

	results, err := h.paths.BatchShortestPaths(r.Context(), queries)
	if err != nil {
		h.fail(w, r, err, "failed to compute batch paths", "queries", len(queries))
		return
	}

	resp := batchPathResponse{Results: make([]batchPathResult, len(results))}
	for i, res := range results {
		item := batchPathResult{pathResponse: toPathResponse(res.Path)}
		item.Source = res.Query.SourceID
		item.Target = res.Query.TargetID
		if res.Err != nil {
			item.Error = res.Err.Error()
		}
		resp.Results[i] = item
	}
	respondJSON(w, http.StatusOK, resp)
}

// fail maps service errors onto status codes. Unknown ids are the caller's
// problem; a broken parent chain is ours.
func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error, msg string, attrs ...any) {
	switch {
	case errors.Is(err, graph.ErrInvalidQuery), errors.Is(err, service.ErrPersonNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		attrs = append(attrs, "error", err, "request_id", RequestID(r.Context()))
		h.logger.Error(msg, attrs...)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

// --- Request & Response DTOs ---

type pathQueryRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

type batchPathRequest struct {
	Queries []pathQueryRequest `json:"queries" validate:"required,min=1,max=100,dive"`
}

type personResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Titles []string `json:"titles"`
}

type findPersonsResponse struct {
	Query      string           `json:"query"`
	Candidates []personResponse `json:"candidates"`
}

type pathNodeResponse struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type pathResponse struct {
	Source string             `json:"source"`
	Target string             `json:"target"`
	Found  bool               `json:"found"`
	Hops   int                `json:"hops"`
	Nodes  []pathNodeResponse `json:"nodes"`
	Path   string             `json:"path,omitempty"`
}

type batchPathResult struct {
	pathResponse
	Error string `json:"error,omitempty"`
}

type batchPathResponse struct {
	Results []batchPathResult `json:"results"`
}

func toPersonResponse(c domain.PersonCandidate) personResponse {
	titles := c.Titles
	if titles == nil {
		titles = []string{}
	}
	return personResponse{ID: c.ID, Name: c.Name, Titles: titles}
}

func toPathResponse(p domain.ShortestPath) pathResponse {
	resp := pathResponse{
		Source: p.SourceID,
		Target: p.TargetID,
		Found:  p.Found,
		Hops:   p.Hops,
		Nodes:  make([]pathNodeResponse, 0, len(p.Nodes)),
	}
	for _, n := range p.Nodes {
		resp.Nodes = append(resp.Nodes, pathNodeResponse{ID: n.ID, Kind: n.Kind, Name: n.Name})
	}
	if p.Found {
		resp.Path = graph.FormatPath(p.Names())
	}
	return resp
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Namespace()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s accepts at most %d entries", fe.Namespace(), maxBatchQueries))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}
