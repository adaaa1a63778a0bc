package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vanshika/sixdegrees/internal/config"
	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/graphdb"
	"github.com/vanshika/sixdegrees/internal/logging"
	"github.com/vanshika/sixdegrees/internal/metrics"
	"github.com/vanshika/sixdegrees/internal/server"
	"github.com/vanshika/sixdegrees/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "server")

	policy, err := graph.ParseMatchPolicy(cfg.Data.MatchPolicy)
	if err != nil {
		logger.Error("invalid match policy", "error", err)
		os.Exit(1)
	}

	g, _, err := service.LoadCreditGraph(ctx, logger, cfg.Data.TitlesPath, cfg.Data.PersonsPath)
	if err != nil {
		logger.Error("failed to load credit graph", "error", err)
		os.Exit(1)
	}

	recorder := metrics.New()
	stats := g.Stats()
	recorder.SetGraphSize(stats.Persons, stats.Titles, stats.Credits)

	pathService, err := service.NewPathService(g, policy)
	if err != nil {
		logger.Error("failed to create path service", "error", err)
		os.Exit(1)
	}
	pathService.WithObserver(recorder).WithConcurrency(cfg.HTTP.BatchConcurrency)

	mirror := buildMirrorClient(ctx, logger, cfg)
	defer func() {
		if mirror != nil {
			if err := mirror.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	deps := server.RouterDependencies{
		Health:           server.GraphHealthService{Graph: g, Mirror: mirror},
		API:              server.NewAPIHandlers(logger, pathService),
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	}
	if cfg.HTTP.MetricsEnabled {
		deps.Metrics = recorder.Handler()
	}

	srv := server.New(logger, cfg.HTTP, server.NewRouter(logger, deps))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
}

// buildMirrorClient connects to the optional Neo4j mirror. The API serves
// from memory, so a missing or unreachable mirror only degrades /healthz.
func buildMirrorClient(ctx context.Context, logger *slog.Logger, cfg config.Config) graphdb.Client {
	if cfg.Graph.URI == "" {
		return nil
	}
	client, err := graphdb.NewNeo4jClient(ctx, graphdb.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	})
	if err != nil {
		logger.Warn("graph database unavailable", "error", err)
		return nil
	}
	return client
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
