package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/ranking"
)

// RecentCount is the number of records in the home activity feed.
const RecentCount = 4

// HomePageModel renders the landing screen: goal progress, counters per
// kind and the most recent records.
type HomePageModel struct {
	progress progress.Model
	styles   Styles
	width    int
}

// NewHomePageModel creates the home screen.
func NewHomePageModel(styles Styles) HomePageModel {
	return HomePageModel{
		progress: newProgress(),
		styles:   styles,
		width:    80,
	}
}

func newProgress() progress.Model {
	return progress.New(progress.WithSolidFill(string(Accent)), progress.WithWidth(40))
}

// SetSize updates the layout width.
func (m *HomePageModel) SetSize(w, _ int) {
	m.width = w
	m.progress.Width = min(max(w-20, 10), 60)
}

// View renders the home screen from a snapshot of the collection.
func (m HomePageModel) View(records []core.Record) string {
	var sb strings.Builder
	board := ranking.Summarize(records)

	sb.WriteString(m.styles.Title.Render("Acervo BDG de Inovação e Lições Aprendidas"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Section.Render("Impacto Global"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %s\n",
		m.progress.ViewAs(board.Percent/100),
		m.styles.Points.Render(fmt.Sprintf("%d / %d pts", board.Total, board.Goal)),
	))
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%.1f%% da meta", board.Percent)))
	sb.WriteString("\n\n")

	counts := map[core.Kind]int{}
	for _, r := range records {
		counts[r.Kind]++
	}
	for _, k := range core.Kinds {
		sb.WriteString(fmt.Sprintf("%s %d   ", m.styles.Label.Render(k.Label()+":"), counts[k]))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Section.Render("Atividade Recente"))
	sb.WriteString("\n")
	recent := records
	if len(recent) > RecentCount {
		recent = recent[:RecentCount]
	}
	if len(recent) == 0 {
		sb.WriteString(m.styles.Muted.Render("Nenhum registro ainda. Pressione i ou l para registrar."))
		sb.WriteString("\n")
	}
	for _, r := range recent {
		sb.WriteString(recordLine(m.styles, r, false, m.width))
		sb.WriteString("\n")
	}
	return sb.String()
}

func recordLine(s Styles, r core.Record, selected bool, width int) string {
	marker := "  "
	title := s.Body.Render(truncate(r.Idea, max(width-40, 20)))
	if selected {
		marker = s.Selected.Render("> ")
		title = s.Selected.Render(truncate(r.Idea, max(width-40, 20)))
	}
	return fmt.Sprintf("%s#%03d %s %s %s",
		marker,
		r.RegistrationNumber,
		s.Badge.Render(r.Kind.Label()),
		title,
		s.Muted.Render(r.Author+" · "+r.Project),
	)
}
