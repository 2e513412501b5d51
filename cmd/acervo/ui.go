package main

import (
	"github.com/spf13/cobra"

	acervo "github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/ui"
)

func newUICmd(g *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive portal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []acervo.Option
			if cmd.Flags().Changed("watch") {
				extra = append(extra, acervo.WithWatch(watch))
			}
			portal, err := openPortal(cmd, g, true, extra...)
			if err != nil {
				return err
			}
			defer portal.Close()

			return ui.Run(cmd.Context(), portal.Store, portal.Navigator, portal.Capturer)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload when another session changes the vault (default from config)")
	return cmd
}
