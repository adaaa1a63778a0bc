package server

import (
	"context"
	"errors"

	"github.com/vanshika/sixdegrees/internal/graphdb"
)

// ErrGraphNotLoaded is reported while the credit graph is still being built.
var ErrGraphNotLoaded = errors.New("credit graph not loaded")

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// GraphHealthService reports ready once the credit graph is frozen and, when
// a mirror is configured, the graph database answers.
type GraphHealthService struct {
	Graph  interface{ Frozen() bool }
	Mirror graphdb.Client
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Graph == nil || !s.Graph.Frozen() {
		return ErrGraphNotLoaded
	}
	if s.Mirror == nil {
		return nil
	}
	return s.Mirror.VerifyConnectivity(ctx)
}
