package ui

import (
	"fmt"
	"strings"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

// DetailPageModel renders every field of one record.
type DetailPageModel struct {
	styles Styles
	width  int
}

// NewDetailPageModel creates the detail screen.
func NewDetailPageModel(styles Styles) DetailPageModel {
	return DetailPageModel{styles: styles, width: 80}
}

// SetSize updates the layout width.
func (m *DetailPageModel) SetSize(w, _ int) {
	m.width = w
}

// View renders r.
func (m DetailPageModel) View(r core.Record) string {
	var sb strings.Builder
	field := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(m.styles.Label.Render(label))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Body.Render(value))
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("%s %s %s\n",
		m.styles.Badge.Render(r.Kind.Label()),
		m.styles.Muted.Render(fmt.Sprintf("Registro #%03d", r.RegistrationNumber)),
		m.styles.Points.Render(fmt.Sprintf("+%d pts", r.Points)),
	))
	sb.WriteString(m.styles.Title.Render(r.Idea))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s · %s · %s · %s",
		r.Author, r.Project, r.Date.Local().Format("02/01/2006"), r.Status)))
	sb.WriteString("\n\n")

	field("Explicação", r.Explanation)

	switch {
	case r.Innovation != nil:
		inn := r.Innovation
		field("Setor / Disciplina", inn.Sector)
		field("Categoria", inn.Category)
		field("Tipo de Impacto", inn.ImpactEstimate)
		field("Problema Identificado", inn.Problem)
		field("Solução e Resultados", inn.Solution)
		field("Reprodutibilidade", inn.Reproducibility)
	case r.Lesson != nil:
		l := r.Lesson
		field("Contexto", l.Context)
		for i, why := range l.FiveWhys {
			field(fmt.Sprintf("%dº Porquê", i+1), why)
		}
		field("Causa Raiz", l.RootCause)
		field("Lição em Uma Frase", l.LessonInOneSentence)
		field("Ações Preventivas", l.PreventiveActions)
		sb.WriteString(m.styles.Label.Render("Padronização"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s Procedimento  %s Treinamento  %s Comunicação\n\n",
			check(l.Checklist.Procedure), check(l.Checklist.Training), check(l.Checklist.Communication)))
	}

	if len(r.Media) > 0 {
		sb.WriteString(m.styles.Section.Render(fmt.Sprintf("Evidências (%d)", len(r.Media))))
		sb.WriteString("\n")
		for _, item := range r.Media {
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", item.Kind, truncate(item.Data, 48)))
		}
	}
	return sb.String()
}

func check(b bool) string {
	if b {
		return "[x]"
	}
	return "[ ]"
}
