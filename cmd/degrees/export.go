package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanshika/sixdegrees/internal/repository"
	"github.com/vanshika/sixdegrees/internal/service"
)

func newExportCmd(a *app) *cobra.Command {
	var workers, batch int
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Mirror the credit graph into Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			g, _, err := service.LoadCreditGraph(ctx, a.logger, a.cfg.Data.TitlesPath, a.cfg.Data.PersonsPath)
			if err != nil {
				return err
			}

			client, err := a.openMirror(ctx)
			if err != nil {
				return err
			}
			defer a.closeMirror(client)

			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Graph.ExportWorkers
			}
			if !cmd.Flags().Changed("batch") {
				batch = a.cfg.Graph.ExportBatch
			}

			start := time.Now()
			exporter := service.NewBulkExporter(repository.New(client), a.logger, workers, batch)
			summary, err := exporter.Export(ctx, g)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d titles, %d persons and %d credits in %d batches (%s)\n",
				summary.Titles, summary.Persons, summary.Credits, summary.Batches, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent writers (overrides GRAPH_EXPORT_WORKERS)")
	cmd.Flags().IntVar(&batch, "batch", 0, "rows per write (overrides GRAPH_EXPORT_BATCH)")
	return cmd
}
