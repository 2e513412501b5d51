package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

func newListCmd(g *globalFlags) *cobra.Command {
	var (
		kind   string
		search string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			portal, err := openPortal(cmd, g, false)
			if err != nil {
				return err
			}
			defer portal.Close()

			var records []core.Record
			if kind != "" {
				k, err := core.ParseKind(kind)
				if err != nil {
					return err
				}
				records = portal.Store.Filter(k, search)
			} else {
				records = portal.Store.Search(search)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Nenhum registro encontrado.")
				return nil
			}
			for _, r := range records {
				printLine(out, r)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only records of this kind (innovation or lesson)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive match on idea, project or author")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func printLine(out io.Writer, r core.Record) {
	fmt.Fprintf(out, "#%03d  %-16s %-36s %s | %s | %s\n",
		r.RegistrationNumber, r.Kind.Label(), r.ID, r.Idea, r.Author, r.Project)
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
