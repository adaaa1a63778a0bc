package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/sixdegrees/internal/domain"
	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/metrics"
	"github.com/vanshika/sixdegrees/internal/selection"
)

const defaultBatchConcurrency = 4

var (
	// ErrGraphNotFrozen is returned when a service is built over a graph
	// that is still being ingested.
	ErrGraphNotFrozen = errors.New("credit graph must be frozen before querying")

	// ErrPersonNotFound is returned when a person id is unknown.
	ErrPersonNotFound = errors.New("person not found")
)

// PathService answers name lookups and shortest path queries over a frozen
// credit graph. It is safe for concurrent use.
type PathService struct {
	graph       CreditGraph
	policy      graph.MatchPolicy
	observer    Observer
	nowFn       func() time.Time
	concurrency int
}

// NewPathService constructs a PathService. The graph must already be frozen.
func NewPathService(g CreditGraph, policy graph.MatchPolicy) (*PathService, error) {
	if !g.Frozen() {
		return nil, ErrGraphNotFrozen
	}
	return &PathService{
		graph:       g,
		policy:      policy,
		observer:    noopObserver{},
		nowFn:       time.Now,
		concurrency: defaultBatchConcurrency,
	}, nil
}

// WithObserver routes measurements to o.
func (s *PathService) WithObserver(o Observer) *PathService {
	if o != nil {
		s.observer = o
	}
	return s
}

// WithClock overrides the time provider (used primarily in tests).
func (s *PathService) WithClock(nowFn func() time.Time) *PathService {
	if nowFn != nil {
		s.nowFn = nowFn
	}
	return s
}

// WithConcurrency bounds the number of queries a batch runs at once.
func (s *PathService) WithConcurrency(n int) *PathService {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// Stats reports the size of the underlying graph.
func (s *PathService) Stats() graph.Stats {
	return s.graph.Stats()
}

// FindPersons resolves a free-text name to candidate persons.
func (s *PathService) FindPersons(ctx context.Context, query string) ([]domain.PersonCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Only the ends are trimmed; inner spacing is part of the name under
	// MatchExact, the same as in interactive selection.
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	ids := s.graph.FindPersons(query, s.policy)
	s.observer.ObserveLookup(len(ids))
	return selection.Candidates(s.graph, ids)
}

// Person returns one person with their credited titles.
func (s *PathService) Person(ctx context.Context, id string) (domain.PersonCandidate, error) {
	if err := ctx.Err(); err != nil {
		return domain.PersonCandidate{}, err
	}
	id = sanitizeString(id)
	if !s.graph.HasPerson(id) {
		return domain.PersonCandidate{}, fmt.Errorf("%w: %q", ErrPersonNotFound, id)
	}
	candidates, err := selection.Candidates(s.graph, []string{id})
	if err != nil {
		return domain.PersonCandidate{}, err
	}
	return candidates[0], nil
}

// ShortestPath finds and renders the shortest chain between two persons. A
// missing connection is reported through Found, not as an error. Unknown ids
// fail with graph.ErrInvalidQuery; graph.ErrNotFound signals a consistency
// defect in the loaded graph.
func (s *PathService) ShortestPath(ctx context.Context, sourceID, targetID string) (domain.ShortestPath, error) {
	if err := ctx.Err(); err != nil {
		return domain.ShortestPath{}, err
	}
	sourceID = sanitizeString(sourceID)
	targetID = sanitizeString(targetID)
	if sourceID == "" || targetID == "" {
		return domain.ShortestPath{}, fmt.Errorf("%w: source and target person IDs are required", graph.ErrInvalidQuery)
	}

	start := s.nowFn()
	path, err := s.shortestPath(sourceID, targetID)
	elapsed := s.nowFn().Sub(start)

	switch {
	case errors.Is(err, graph.ErrInvalidQuery):
		s.observer.ObserveSearch(metrics.OutcomeInvalid, 0, elapsed)
	case err != nil:
		s.observer.ObserveSearch(metrics.OutcomeError, 0, elapsed)
	case !path.Found:
		s.observer.ObserveSearch(metrics.OutcomeNoPath, 0, elapsed)
	default:
		s.observer.ObserveSearch(metrics.OutcomeFound, path.Hops, elapsed)
	}
	return path, err
}

func (s *PathService) shortestPath(sourceID, targetID string) (domain.ShortestPath, error) {
	trace, found, err := s.graph.ShortestPath(sourceID, targetID)
	if err != nil {
		return domain.ShortestPath{}, err
	}
	path := domain.ShortestPath{
		SourceID: sourceID,
		TargetID: targetID,
	}
	if !found {
		return path, nil
	}

	vertices, err := trace.Vertices()
	if err != nil {
		return domain.ShortestPath{}, err
	}
	names, err := s.graph.Render(trace)
	if err != nil {
		return domain.ShortestPath{}, err
	}

	path.Found = true
	path.Hops = len(vertices) - 1
	path.Nodes = make([]domain.PathNode, len(vertices))
	for i, v := range vertices {
		path.Nodes[i] = domain.PathNode{ID: v.ID, Kind: kindName(v.Kind), Name: names[i]}
	}
	return path, nil
}

// BatchShortestPaths runs queries concurrently and returns results in input
// order. Per-query failures land in PathResult.Err; a consistency defect or
// cancellation aborts the whole batch.
func (s *PathService) BatchShortestPaths(ctx context.Context, queries []PathQuery) ([]PathResult, error) {
	results := make([]PathResult, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, q := range queries {
		g.Go(func() error {
			path, err := s.ShortestPath(gctx, q.SourceID, q.TargetID)
			results[i] = PathResult{Query: q, Path: path}
			if err == nil {
				return nil
			}
			if errors.Is(err, graph.ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			results[i].Err = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Verify runs the query locally and against the mirror and reports whether
// both agree on reachability and hop count.
func (s *PathService) Verify(ctx context.Context, remote RemotePathFinder, sourceID, targetID string) (Verification, error) {
	local, err := s.ShortestPath(ctx, sourceID, targetID)
	if err != nil {
		return Verification{}, err
	}
	mirrored, err := remote.ShortestPathBetweenPersons(ctx, local.SourceID, local.TargetID)
	if err != nil {
		return Verification{}, fmt.Errorf("mirror shortest path: %w", err)
	}
	agree := local.Found == mirrored.Found && (!local.Found || local.Hops == mirrored.Hops)
	return Verification{Local: local, Remote: mirrored, Agree: agree}, nil
}

func kindName(k graph.Kind) string {
	if k == graph.KindTitle {
		return domain.KindTitle
	}
	return domain.KindPerson
}
