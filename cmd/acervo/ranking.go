package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/ranking"
)

func newRankingCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show contributor points and progress towards the goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			portal, err := openPortal(cmd, g, false)
			if err != nil {
				return err
			}
			defer portal.Close()

			board := ranking.Summarize(portal.Store.Records())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), board)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: %d / %d pts (%.1f%%)\n", board.Total, board.Goal, board.Percent)
			for i, e := range board.Entries {
				fmt.Fprintf(out, "%2d. %-30s %6d pts %4d registro(s)\n", i+1, e.Name, e.Points, e.Count)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
