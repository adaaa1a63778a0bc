package service

import (
	"context"
	"time"

	"github.com/vanshika/sixdegrees/internal/domain"
	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/selection"
)

// CreditGraph is the read side of the frozen credit graph.
type CreditGraph interface {
	selection.Lookup
	HasPerson(id string) bool
	ShortestPath(sourceID, destinationID string) (*graph.PathTrace, bool, error)
	Render(trace *graph.PathTrace) ([]string, error)
	Stats() graph.Stats
	Frozen() bool
}

// Observer receives query measurements.
type Observer interface {
	ObserveSearch(outcome string, hops int, elapsed time.Duration)
	ObserveLookup(matches int)
}

// RemotePathFinder answers path queries from a graph database mirror.
type RemotePathFinder interface {
	ShortestPathBetweenPersons(ctx context.Context, sourceID, targetID string) (domain.ShortestPath, error)
}

// PathQuery names the two persons of one path request.
type PathQuery struct {
	SourceID string
	TargetID string
}

// PathResult is the outcome of one query in a batch. Err holds per-query
// failures such as unknown ids.
type PathResult struct {
	Query PathQuery
	Path  domain.ShortestPath
	Err   error
}

// Verification compares the in-process path with the mirror's.
type Verification struct {
	Local  domain.ShortestPath
	Remote domain.ShortestPath
	Agree  bool
}

type noopObserver struct{}

func (noopObserver) ObserveSearch(string, int, time.Duration) {}
func (noopObserver) ObserveLookup(int)                        {}
