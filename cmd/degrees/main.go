package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vanshika/sixdegrees/internal/config"
	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/graphdb"
	"github.com/vanshika/sixdegrees/internal/logging"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	policy graph.MatchPolicy

	configPath  string
	titlesPath  string
	personsPath string
	matchPolicy string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "degrees",
		Short:         "Find how two actors are connected through the movies they appeared in",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file (overrides "+config.ConfigFileEnv+")")
	flags.StringVar(&a.titlesPath, "titles", "", "titles TSV file (overrides DATA_TITLES_PATH)")
	flags.StringVar(&a.personsPath, "persons", "", "persons TSV file (overrides DATA_PERSONS_PATH)")
	flags.StringVar(&a.matchPolicy, "match", "", "name match policy: substring or exact")

	root.AddCommand(newQueryCmd(a), newPathCmd(a), newExportCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if a.configPath != "" {
		if err := os.Setenv(config.ConfigFileEnv, a.configPath); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.titlesPath != "" {
		cfg.Data.TitlesPath = a.titlesPath
	}
	if a.personsPath != "" {
		cfg.Data.PersonsPath = a.personsPath
	}
	if a.matchPolicy != "" {
		cfg.Data.MatchPolicy = a.matchPolicy
	}

	policy, err := graph.ParseMatchPolicy(cfg.Data.MatchPolicy)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.policy = policy
	a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging).With("component", cmd.Name())
	return nil
}

// openMirror connects to the Neo4j mirror described by the graph config.
func (a *app) openMirror(ctx context.Context) (graphdb.Client, error) {
	if a.cfg.Graph.URI == "" {
		return nil, errors.New("GRAPH_URI is required to reach the graph database")
	}
	client, err := graphdb.NewNeo4jClient(ctx, graphdb.Options{
		URI:            a.cfg.Graph.URI,
		Database:       a.cfg.Graph.Database,
		Username:       a.cfg.Graph.Username,
		Password:       a.cfg.Graph.Password,
		MaxConnections: a.cfg.Graph.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	a.logger.Info("connected to graph", "uri", a.cfg.Graph.URI, "database", a.cfg.Graph.Database)
	return client, nil
}

func (a *app) closeMirror(client graphdb.Client) {
	if err := client.Close(context.Background()); err != nil {
		a.logger.Warn("closing graph client failed", "error", err)
	}
}
