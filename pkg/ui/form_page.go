package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/form"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/media"
)

type rowKind int

const (
	rowText rowKind = iota
	rowToggle
	rowAttach
	rowMedia
)

type formRow struct {
	kind    rowKind
	label   string
	section string
	input   textinput.Model
	text    *string
	toggle  *bool
	mediaID string
}

// mediaCapturedMsg delivers a finished media batch to the form it was
// started from.
type mediaCapturedMsg struct {
	form  *form.Form
	items []core.MediaItem
	err   error
}

// FormPageModel edits a form.Form field by field.
type FormPageModel struct {
	form     *form.Form
	capturer *media.Capturer
	styles   Styles

	rows   []formRow
	cursor int
	status string

	width int
}

// NewFormPageModel creates a form screen for f.
func NewFormPageModel(f *form.Form, capturer *media.Capturer, styles Styles) FormPageModel {
	m := FormPageModel{form: f, capturer: capturer, styles: styles, width: 80}
	m.buildRows()
	m.focus()
	return m
}

// Form returns the form being edited.
func (m FormPageModel) Form() *form.Form {
	return m.form
}

// SetSize updates the layout width.
func (m *FormPageModel) SetSize(w, _ int) {
	m.width = w
	for i := range m.rows {
		m.rows[i].input.Width = min(max(w-30, 10), 70)
	}
}

// SetStatus shows a one-line message under the form.
func (m *FormPageModel) SetStatus(s string) {
	m.status = s
}

func (m *FormPageModel) buildRows() {
	f := m.form
	m.rows = nil
	text := func(section, label string, target *string, suggestions ...string) {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		ti.Width = 50
		ti.SetValue(*target)
		ti.CursorEnd()
		if len(suggestions) > 0 {
			ti.ShowSuggestions = true
			ti.SetSuggestions(suggestions)
			ti.Placeholder = strings.Join(suggestions, " / ")
		}
		m.rows = append(m.rows, formRow{kind: rowText, section: section, label: label, input: ti, text: target})
	}
	toggle := func(section, label string, target *bool) {
		m.rows = append(m.rows, formRow{kind: rowToggle, section: section, label: label, toggle: target})
	}

	const header = "01. Cabeçalho Técnico"
	text(header, "Obra / Projeto *", &f.Project)
	text(header, "Título da Ideia *", &f.Idea)
	text(header, "Autor *", &f.Author)
	text(header, "Explicação", &f.Explanation)

	const details = "02. Detalhamento"
	switch f.Kind {
	case core.KindLesson:
		text(details, "Contexto *", &f.Context)
		for i := range f.FiveWhys {
			text(details, fmt.Sprintf("%dº Porquê", i+1), &f.FiveWhys[i])
		}
		text(details, "Causa Raiz", &f.RootCause)
		text(details, "Lição em Uma Frase *", &f.LessonInOneSentence)
		text(details, "Ações Preventivas *", &f.PreventiveActions)
		toggle(details, "Procedimento", &f.Checklist.Procedure)
		toggle(details, "Treinamento", &f.Checklist.Training)
		toggle(details, "Comunicação", &f.Checklist.Communication)
	case core.KindInnovation:
		text(details, "Setor / Disciplina", &f.Sector, form.SectorOptions...)
		text(details, "Categoria", &f.Category)
		text(details, "Tipo de Impacto", &f.ImpactEstimate, form.ImpactOptions...)
		text(details, "Problema Identificado *", &f.Problem)
		text(details, "Solução e Resultados *", &f.Solution)
		text(details, "Reprodutibilidade", &f.Reproducibility)
	}

	const evidence = "03. Documentação Fotográfica"
	attach := textinput.New()
	attach.Prompt = ""
	attach.Placeholder = "caminho ou padrão, ex: fotos/**/*.jpg"
	attach.Width = 50
	m.rows = append(m.rows, formRow{kind: rowAttach, section: evidence, label: "Anexar", input: attach})
	for _, item := range f.Media {
		m.rows = append(m.rows, formRow{kind: rowMedia, section: evidence, label: string(item.Kind), mediaID: item.ID})
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *FormPageModel) focus() {
	for i := range m.rows {
		if i == m.cursor {
			m.rows[i].input.Focus()
		} else {
			m.rows[i].input.Blur()
		}
	}
}

func (m *FormPageModel) move(delta int) {
	m.cursor = (m.cursor + delta + len(m.rows)) % len(m.rows)
	m.focus()
}

// Update handles messages. Submission and cancellation are left to the
// caller.
func (m FormPageModel) Update(msg tea.Msg) (FormPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case mediaCapturedMsg:
		if msg.form != m.form {
			return m, nil
		}
		m.form.Uploading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.form.AddMedia(msg.items...)
		m.status = fmt.Sprintf("%d evidência(s) anexada(s)", len(msg.items))
		m.buildRows()
		m.focus()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "down", "tab":
			m.move(1)
			return m, nil
		case "up", "shift+tab":
			m.move(-1)
			return m, nil
		}

		row := &m.rows[m.cursor]
		switch row.kind {
		case rowToggle:
			if msg.String() == " " || msg.String() == "enter" {
				*row.toggle = !*row.toggle
			}
			return m, nil
		case rowMedia:
			if msg.String() == "x" || msg.String() == "delete" || msg.String() == "backspace" {
				m.form.RemoveMedia(row.mediaID)
				m.buildRows()
				m.focus()
			}
			return m, nil
		case rowAttach:
			if msg.String() == "enter" {
				return m.startAttach()
			}
		case rowText:
			if msg.String() == "enter" {
				m.move(1)
				return m, nil
			}
		}

		var cmd tea.Cmd
		row.input, cmd = row.input.Update(msg)
		if row.text != nil {
			*row.text = row.input.Value()
		}
		return m, cmd
	}
	return m, nil
}

func (m FormPageModel) startAttach() (FormPageModel, tea.Cmd) {
	row := &m.rows[m.cursor]
	pattern := strings.TrimSpace(row.input.Value())
	if pattern == "" || m.form.Uploading {
		return m, nil
	}
	row.input.SetValue("")
	m.form.Uploading = true
	m.status = "Processando evidências..."

	f, capturer := m.form, m.capturer
	return m, func() tea.Msg {
		sources, err := media.FromPatterns(pattern)
		if err != nil {
			return mediaCapturedMsg{form: f, err: err}
		}
		return mediaCapturedMsg{form: f, items: capturer.Capture(context.Background(), sources)}
	}
}

// View renders the form.
func (m FormPageModel) View() string {
	var sb strings.Builder

	verb := "Novo Registro de"
	if m.form.Editing() {
		verb = "Editar"
	}
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("%s %s", verb, m.form.Kind.Label())))
	sb.WriteString("\n")

	section := ""
	for i, row := range m.rows {
		if row.section != section {
			section = row.section
			sb.WriteString("\n")
			sb.WriteString(m.styles.Section.Render(section))
			sb.WriteString("\n")
		}
		marker := "  "
		if i == m.cursor {
			marker = m.styles.Selected.Render("> ")
		}
		label := m.styles.Label.Render(fmt.Sprintf("%-26s", row.label))
		switch row.kind {
		case rowToggle:
			sb.WriteString(fmt.Sprintf("%s%s %s\n", marker, check(*row.toggle), row.label))
		case rowMedia:
			sb.WriteString(fmt.Sprintf("%s%s %s\n", marker, label, m.styles.Muted.Render(row.mediaID+" (x remove)")))
		default:
			sb.WriteString(fmt.Sprintf("%s%s %s\n", marker, label, row.input.View()))
		}
	}

	if m.form.Uploading {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("Processando evidências..."))
		sb.WriteString("\n")
	} else if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.status))
		sb.WriteString("\n")
	}
	return sb.String()
}
