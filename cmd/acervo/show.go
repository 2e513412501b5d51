package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

func newShowCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print every field of a record",
		Args:  cobra.ExactArgs(1),
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
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func printRecord(out io.Writer, r core.Record) {
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(out, "%-22s %s\n", label+":", value)
		}
	}

	fmt.Fprintf(out, "%s #%03d (+%d pts)\n", r.Kind.Label(), r.RegistrationNumber, r.Points)
	field("ID", r.ID)
	field("Título", r.Idea)
	field("Obra", r.Project)
	field("Autor", r.Author)
	field("Data", r.Date.Local().Format("02/01/2006 15:04"))
	field("Status", string(r.Status))
	field("Explicação", r.Explanation)

	if inn := r.Innovation; inn != nil {
		field("Setor", inn.Sector)
		field("Categoria", inn.Category)
		field("Tipo de impacto", inn.ImpactEstimate)
		field("Problema", inn.Problem)
		field("Solução", inn.Solution)
		field("Reprodutibilidade", inn.Reproducibility)
	}
	if l := r.Lesson; l != nil {
		field("Contexto", l.Context)
		for i, why := range l.FiveWhys {
			field(fmt.Sprintf("%dº porquê", i+1), why)
		}
		field("Causa raiz", l.RootCause)
		field("Lição", l.LessonInOneSentence)
		field("Ações preventivas", l.PreventiveActions)
		fmt.Fprintf(out, "%-22s procedimento=%t treinamento=%t comunicação=%t\n", "Padronização:",
			l.Checklist.Procedure, l.Checklist.Training, l.Checklist.Communication)
	}
	for _, m := range r.Media {
		fmt.Fprintf(out, "%-22s %s %s (%d bytes)\n", "Evidência:", m.ID, m.Kind, len(m.Data))
	}
}
