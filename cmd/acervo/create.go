package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/form"
)

func newCreateCmd(g *globalFlags) *cobra.Command {
	var (
		kind string
		rf   recordFlags
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new innovation or lesson learned",
		Long: `Create validates the required fields, attaches any --attach files and
prepends the record to the collection with status "Enviado".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := core.ParseKind(kind)
			if err != nil {
				return err
			}

			portal, err := openPortal(cmd, g, false)
			if err != nil {
				return err
			}
			defer portal.Close()

			nav := portal.Navigator
			if err := nav.StartCreate(k); err != nil {
				return err
			}
			f, err := nav.Form()
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, f); err != nil {
				return err
			}
			// Fail on missing fields before spending time on attachments.
			if err := f.Validate(); err != nil {
				return describe(err)
			}
			if err := rf.attachMedia(cmd, f, portal.Capturer); err != nil {
				return err
			}

			rec, err := nav.Submit(cmd.Context(), f)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registro #%03d criado: %s (%s, +%d pts)\n",
				rec.RegistrationNumber, rec.ID, rec.Kind.Label(), rec.Points)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Record kind: innovation or lesson (required)")
	_ = cmd.MarkFlagRequired("kind")
	rf.bind(cmd)
	return cmd
}

// describe turns a validation error into a message naming the flags.
func describe(err error) error {
	var vErr *form.ValidationError
	if !errors.As(err, &vErr) {
		return err
	}
	names := make([]string, len(vErr.Missing))
	for i, field := range vErr.Missing {
		names[i] = "--" + flagFor(field)
	}
	return fmt.Errorf("%w: missing %v", core.ErrValidation, names)
}

func flagFor(field string) string {
	switch field {
	case form.FieldLessonInOneSentence:
		return "lesson"
	case form.FieldPreventiveActions:
		return "actions"
	}
	return field
}
