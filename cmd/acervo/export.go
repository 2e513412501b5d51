package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(g *globalFlags) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole collection as JSON or YAML",
		Long: `Export writes the collection in the persisted layout. The JSON output can be
loaded back as the storage blob.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			portal, err := openPortal(cmd, g, false)
			if err != nil {
				return err
			}
			defer portal.Close()

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer file.Close()
				out = file
			}

			records := portal.Store.Records()
			switch format {
			case "json":
				return writeJSON(out, records)
			case "yaml", "yml":
				encoder := yaml.NewEncoder(out)
				encoder.SetIndent(2)
				if err := encoder.Encode(records); err != nil {
					return fmt.Errorf("failed to encode YAML: %w", err)
				}
				return encoder.Close()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
