package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/ingest"
)

// LoadCreditGraph ingests the titles and persons datasets into a new graph,
// logs the diagnostics and freezes the graph.
func LoadCreditGraph(ctx context.Context, logger *slog.Logger, titlesPath, personsPath string) (*graph.Graph, ingest.Report, error) {
	start := time.Now()
	g := graph.New()
	report, err := ingest.Load(ctx, g, titlesPath, personsPath)
	if err != nil {
		return nil, report, fmt.Errorf("load credit graph: %w", err)
	}
	g.Freeze()

	stats := g.Stats()
	logger.Info("credit graph loaded",
		"titles", stats.Titles,
		"persons", stats.Persons,
		"credits", stats.Credits,
		"invalid_titles", report.Titles.InvalidRecords,
		"non_movies", report.Titles.NonMovies,
		"invalid_persons", report.Persons.InvalidRecords,
		"non_actors", report.Persons.NonActors,
		"unknown_title_refs", report.Persons.UnknownTitleRefs,
		"duration", time.Since(start).String(),
	)
	return g, report, nil
}
