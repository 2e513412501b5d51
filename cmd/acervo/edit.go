package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

func newEditCmd(g *globalFlags) *cobra.Command {
	var (
		status      string
		removeMedia []string
		rf          recordFlags
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Update fields of an existing record",
		Long: `Edit merges the given flags into the record. Identity, kind, registration
number and points never change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			portal, err := openPortal(cmd, g, false)
			if err != nil {
				return err
			}
			defer portal.Close()

			rec, ok := portal.Store.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", core.ErrNotFound, args[0])
			}

			nav := portal.Navigator
			nav.OpenDetail(rec)
			if err := nav.StartEdit(); err != nil {
				return err
			}
			f, err := nav.Form()
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, f); err != nil {
				return err
			}
			if cmd.Flags().Changed("status") {
				f.Status = core.Status(status)
			}
			for _, id := range removeMedia {
				f.RemoveMedia(id)
			}
			if err := rf.attachMedia(cmd, f, portal.Capturer); err != nil {
				return err
			}

			updated, err := nav.Submit(cmd.Context(), f)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registro #%03d atualizado: %s\n", updated.RegistrationNumber, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status, from the kind's workflow")
	cmd.Flags().StringArrayVar(&removeMedia, "remove-media", nil, "Id of an attachment to remove, repeatable")
	rf.bind(cmd)
	return cmd
}
