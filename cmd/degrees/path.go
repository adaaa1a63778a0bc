package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanshika/sixdegrees/internal/repository"
	"github.com/vanshika/sixdegrees/internal/service"
)

var errMirrorDisagrees = errors.New("graph database disagrees with the in-process search")

func newPathCmd(a *app) *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "path SOURCE_ID TARGET_ID",
		Short: "Print the shortest chain between two person ids",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			g, _, err := service.LoadCreditGraph(ctx, a.logger, a.cfg.Data.TitlesPath, a.cfg.Data.PersonsPath)
			if err != nil {
				return err
			}
			svc, err := service.NewPathService(g, a.policy)
			if err != nil {
				return err
			}

			path, err := svc.ShortestPath(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			printRoute(out, path, displayName(g, path.SourceID), displayName(g, path.TargetID))
			if !verify {
				return nil
			}

			client, err := a.openMirror(ctx)
			if err != nil {
				return err
			}
			defer a.closeMirror(client)

			v, err := svc.Verify(ctx, repository.New(client), path.SourceID, path.TargetID)
			if err != nil {
				return err
			}
			if !v.Agree {
				return fmt.Errorf("%w: local found=%t hops=%d, mirror found=%t hops=%d",
					errMirrorDisagrees, v.Local.Found, v.Local.Hops, v.Remote.Found, v.Remote.Hops)
			}
			fmt.Fprintln(out, mutedStyle.Render("Graph database agrees."))
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "cross-check the result against the Neo4j mirror")
	return cmd
}
