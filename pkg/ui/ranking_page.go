package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/ranking"
)

// RankingPageModel renders the leaderboard.
type RankingPageModel struct {
	progress progress.Model
	styles   Styles
	width    int
}

// NewRankingPageModel creates the ranking screen.
func NewRankingPageModel(styles Styles) RankingPageModel {
	return RankingPageModel{progress: newProgress(), styles: styles, width: 80}
}

// SetSize updates the layout width.
func (m *RankingPageModel) SetSize(w, _ int) {
	m.width = w
	m.progress.Width = min(max(w-20, 10), 60)
}

// View renders the ranking for a snapshot of the collection.
func (m RankingPageModel) View(records []core.Record) string {
	board := ranking.Summarize(records)

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Ranking de Colaboradores"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %s\n\n",
		m.progress.ViewAs(board.Percent/100),
		m.styles.Points.Render(fmt.Sprintf("%d / %d pts", board.Total, board.Goal)),
	))

	if len(board.Entries) == 0 {
		sb.WriteString(m.styles.Muted.Render("Nenhuma contribuição registrada."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(m.styles.Label.Render(fmt.Sprintf("%-4s %-30s %8s %10s", "#", "Colaborador", "Pontos", "Registros")))
	sb.WriteString("\n")
	sb.WriteString(m.styles.RenderDivider(56))
	sb.WriteString("\n")
	for i, e := range board.Entries {
		line := fmt.Sprintf("%-4d %-30s %8d %10d", i+1, truncate(e.Name, 30), e.Points, e.Count)
		if i == 0 {
			line = m.styles.Points.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
