package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/navigator"
)

func newDeleteCmd(g *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a record permanently",
		Long:  `Delete asks for confirmation on stdin unless --yes is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			portal, err := openPortal(cmd, g, false)
			if err != nil {
				return err
			}
			defer portal.Close()

			id := args[0]
			if _, ok := portal.Store.Get(id); !ok {
				return fmt.Errorf("%w: %s", core.ErrNotFound, id)
			}

			var confirm navigator.Confirmer
			if yes {
				confirm = navigator.Answer(true)
			}
			deleted, err := portal.Navigator.Delete(cmd.Context(), id, confirm)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "Exclusão cancelada.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registro excluído: %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
