package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/navigator"
)

// ListPageModel renders a filtered list of records. It serves both the
// per-kind lists and the cross-kind search.
type ListPageModel struct {
	nav    *navigator.Navigator
	styles Styles

	filterInput   textinput.Model
	filterFocused bool
	cursor        int
	records       []core.Record

	width  int
	height int
}

// NewListPageModel creates a list screen bound to nav.
func NewListPageModel(nav *navigator.Navigator, styles Styles) ListPageModel {
	fi := textinput.New()
	fi.Placeholder = "Filtrar por título, obra ou autor..."
	fi.CharLimit = 80
	fi.Width = 40
	fi.Prompt = "/ "
	return ListPageModel{
		nav:         nav,
		styles:      styles,
		filterInput: fi,
		records:     []core.Record{},
		width:       80,
		height:      20,
	}
}

// SetSize updates the layout.
func (m *ListPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.filterInput.Width = min(max(w-10, 10), 60)
}

// Reset syncs the filter with the active screen and reloads the rows.
func (m *ListPageModel) Reset(query string) {
	m.filterInput.SetValue(query)
	m.filterInput.CursorEnd()
	m.filterFocused = false
	m.filterInput.Blur()
	m.cursor = 0
	m.Refresh()
}

// Refresh reloads the visible rows from the navigator.
func (m *ListPageModel) Refresh() {
	m.records = m.nav.Visible()
	if m.cursor >= len(m.records) {
		m.cursor = max(len(m.records)-1, 0)
	}
}

// Capturing reports whether key presses go to the filter input.
func (m ListPageModel) Capturing() bool {
	return m.filterFocused
}

// Selected returns the record under the cursor.
func (m ListPageModel) Selected() (core.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return core.Record{}, false
	}
	return m.records[m.cursor], true
}

// Update handles messages.
func (m ListPageModel) Update(msg tea.Msg) (ListPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filterFocused {
		switch key.String() {
		case "enter", "esc":
			m.filterFocused = false
			m.filterInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		_ = m.nav.SetQuery(m.filterInput.Value())
		m.cursor = 0
		m.Refresh()
		return m, cmd
	}

	switch key.String() {
	case "/":
		m.filterFocused = true
		return m, m.filterInput.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "enter":
		if r, ok := m.Selected(); ok {
			m.nav.OpenDetail(r)
		}
	case "n":
		if l, ok := m.nav.Current().(navigator.List); ok {
			_ = m.nav.StartCreate(l.Kind)
		}
	}
	return m, nil
}

// View renders the list.
func (m ListPageModel) View() string {
	var sb strings.Builder

	title := "Busca no Acervo"
	if l, ok := m.nav.Current().(navigator.List); ok {
		title = kindTitle(l.Kind)
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(m.filterInput.View())
	sb.WriteString("\n\n")

	if len(m.records) == 0 {
		sb.WriteString(m.styles.Muted.Render("Nenhum registro encontrado."))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, r := range m.records {
		sb.WriteString(recordLine(m.styles, r, i == m.cursor, m.width))
		sb.WriteString("\n")
		if summary := r.Summary(); summary != "" {
			sb.WriteString("       ")
			sb.WriteString(m.styles.Muted.Render(truncate(summary, max(m.width-10, 20))))
			sb.WriteString("\n")
		}
	}
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d registro(s)", len(m.records))))
	sb.WriteString("\n")
	return sb.String()
}

func kindTitle(k core.Kind) string {
	if k == core.KindInnovation {
		return "Inovações"
	}
	return "Lições Aprendidas"
}
