package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vanshika/sixdegrees/internal/config"
	"github.com/vanshika/sixdegrees/internal/graph"
	"github.com/vanshika/sixdegrees/internal/ingest"
	"github.com/vanshika/sixdegrees/internal/selection"
	"github.com/vanshika/sixdegrees/internal/service"
)

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "Pick two actors by name and print the chain of movies between them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			g, err := loadStaged(ctx, out, a.cfg.Data)
			if err != nil {
				return err
			}
			svc, err := service.NewPathService(g, a.policy)
			if err != nil {
				return err
			}

			selector := selection.New(g, selection.NewPrompter(cmd.InOrStdin(), out), a.policy, a.cfg.Data.MaxPromptAttempts)
			sourceID, targetID, err := selector.SelectPair(ctx)
			if errors.Is(err, selection.ErrCancelled) {
				fmt.Fprintln(out, mutedStyle.Render("Selection cancelled."))
				return nil
			}
			if err != nil {
				return err
			}

			path, err := svc.ShortestPath(ctx, sourceID, targetID)
			if err != nil {
				return err
			}
			printRoute(out, path, displayName(g, sourceID), displayName(g, targetID))
			return nil
		},
	}
}

// loadStaged ingests titles and then persons, reporting each stage on w.
func loadStaged(ctx context.Context, w io.Writer, data config.DataConfig) (*graph.Graph, error) {
	g := graph.New()

	fmt.Fprintln(w, "Processing titles")
	titles, err := loadOne(data.TitlesPath, func(r io.Reader) (ingest.TitleReport, error) {
		return ingest.LoadTitles(ctx, g, r)
	})
	if err != nil {
		return nil, fmt.Errorf("load titles: %w", err)
	}
	printTitleReport(w, titles)

	fmt.Fprintln(w, "Processing actors")
	persons, err := loadOne(data.PersonsPath, func(r io.Reader) (ingest.PersonReport, error) {
		return ingest.LoadPersons(ctx, g, r)
	})
	if err != nil {
		return nil, fmt.Errorf("load persons: %w", err)
	}
	printPersonReport(w, persons)

	g.Freeze()
	printParsed(w, g.Stats())
	return g, nil
}

func loadOne[R any](path string, load func(io.Reader) (R, error)) (R, error) {
	var zero R
	f, err := ingest.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return load(f)
}

func displayName(g *graph.Graph, id string) string {
	name, err := g.PersonName(id)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%s (%s)", name, id)
}
