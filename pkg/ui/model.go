package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/form"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/media"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/navigator"
	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/store"
)

// storeChangedMsg signals that the collection changed outside Update, e.g.
// after another session overwrote the durable store.
type storeChangedMsg struct{}

var tabs = []struct {
	key   string
	mode  navigator.Mode
	label string
}{
	{"1", navigator.ModeHome, "Início"},
	{"2", navigator.ModeInnovationList, "Inovações"},
	{"3", navigator.ModeLessonList, "Lições"},
	{"4", navigator.ModeSearch, "Busca"},
	{"5", navigator.ModeProfile, "Ranking"},
}

// Model is the root bubbletea model.
type Model struct {
	ctx      context.Context
	store    *store.Store
	nav      *navigator.Navigator
	capturer *media.Capturer
	styles   Styles

	home    HomePageModel
	list    ListPageModel
	detail  DetailPageModel
	form    FormPageModel
	ranking RankingPageModel

	// screenKey identifies the screen the pages were last synced to.
	screenKey string
	// confirming holds the id awaiting a delete confirmation.
	confirming string
	status     string
	changes    chan struct{}
	unsub      func()

	width  int
	height int
}

// New creates the root model. ctx bounds store writes issued from the UI.
func New(ctx context.Context, s *store.Store, nav *navigator.Navigator, capturer *media.Capturer) Model {
	styles := DefaultStyles()
	changes := make(chan struct{}, 1)
	unsub := s.Subscribe(func([]core.Record) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	m := Model{
		ctx:      ctx,
		store:    s,
		nav:      nav,
		capturer: capturer,
		styles:   styles,
		home:     NewHomePageModel(styles),
		list:     NewListPageModel(nav, styles),
		detail:   NewDetailPageModel(styles),
		ranking:  NewRankingPageModel(styles),
		changes:  changes,
		unsub:    unsub,
		width:    80,
		height:   24,
	}
	m.sync()
	return m
}

// Close stops listening to the store.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func keyOf(s navigator.Screen) string {
	switch s := s.(type) {
	case navigator.List:
		return "list:" + string(s.Kind)
	case navigator.Create:
		return "create:" + string(s.Kind)
	case navigator.Detail:
		return "detail:" + s.Record.ID
	case navigator.Edit:
		return "edit:" + s.Record.ID
	}
	return string(s.Mode())
}

// sync rebuilds page state when the navigator moved to another screen.
func (m *Model) sync() {
	current := m.nav.Current()
	key := keyOf(current)
	if key == m.screenKey {
		return
	}
	m.screenKey = key
	m.status = ""

	switch s := current.(type) {
	case navigator.List:
		m.list.Reset(s.Query)
	case navigator.Search:
		m.list.Reset(s.Query)
	case navigator.Create, navigator.Edit:
		f, err := m.nav.Form()
		if err != nil {
			m.status = err.Error()
			return
		}
		m.form = NewFormPageModel(f, m.capturer, m.styles)
		m.form.SetSize(m.width, m.height)
	}
}

func (m Model) capturing() bool {
	switch m.nav.Current().(type) {
	case navigator.Create, navigator.Edit:
		return true
	case navigator.List, navigator.Search:
		return m.list.Capturing()
	}
	return false
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.home.SetSize(msg.Width, msg.Height)
		m.list.SetSize(msg.Width, msg.Height)
		m.detail.SetSize(msg.Width, msg.Height)
		m.form.SetSize(msg.Width, msg.Height)
		m.ranking.SetSize(msg.Width, msg.Height)
		return m, nil

	case storeChangedMsg:
		m.followDetail()
		m.list.Refresh()
		return m, waitForChange(m.changes)

	case mediaCapturedMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Close()
			return m, tea.Quit
		}
		if m.confirming != "" {
			return m.updateConfirm(msg)
		}
		if !m.capturing() {
			if handled, cmd := m.globalKey(msg); handled {
				m.sync()
				return m, cmd
			}
		}
		cmd := m.updateScreen(msg)
		m.sync()
		return m, cmd
	}
	return m, nil
}

func (m *Model) globalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()
	for _, t := range tabs {
		if key == t.key {
			_ = m.nav.Tab(t.mode)
			return true, nil
		}
	}
	switch key {
	case "q":
		m.Close()
		return true, tea.Quit
	case "i":
		_ = m.nav.StartCreate(core.KindInnovation)
		return true, nil
	case "l":
		_ = m.nav.StartCreate(core.KindLesson)
		return true, nil
	case "r":
		m.nav.OpenRanking()
		return true, nil
	}
	return false, nil
}

func (m *Model) updateScreen(msg tea.KeyMsg) tea.Cmd {
	switch s := m.nav.Current().(type) {
	case navigator.List, navigator.Search:
		if !m.list.Capturing() {
			switch msg.String() {
			case "d", "delete":
				if r, ok := m.list.Selected(); ok {
					m.confirming = r.ID
				}
				return nil
			}
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return cmd

	case navigator.Detail:
		switch msg.String() {
		case "esc", "backspace", "left", "h":
			_ = m.nav.Back()
		case "e":
			_ = m.nav.StartEdit()
		case "d", "delete":
			m.confirming = s.Record.ID
		}
		return nil

	case navigator.Create, navigator.Edit:
		switch msg.String() {
		case "esc":
			m.nav.Cancel()
			return nil
		case "ctrl+s":
			m.submit()
			return nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return cmd

	case navigator.Home:
		if msg.String() == "enter" {
			if recent := m.store.Recent(1); len(recent) == 1 {
				m.nav.OpenDetail(recent[0])
			}
		}
	}
	return nil
}

func (m *Model) submit() {
	f := m.form.Form()
	if f.Uploading {
		m.form.SetStatus("Aguarde o processamento das evidências.")
		return
	}
	_, err := m.nav.Submit(m.ctx, f)
	if err == nil {
		return
	}
	var vErr *form.ValidationError
	if errors.As(err, &vErr) {
		m.form.SetStatus("Campos obrigatórios: " + strings.Join(vErr.Missing, ", "))
		return
	}
	// A failed write still routes away from the form.
	m.sync()
	m.status = "Falha ao salvar: " + err.Error()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirming
	m.confirming = ""
	switch msg.String() {
	case "y", "s", "enter":
		// The modal already asked the question.
		if _, err := m.nav.Delete(m.ctx, id, navigator.Answer(true)); err != nil {
			m.sync()
			m.list.Refresh()
			m.status = "Falha ao salvar: " + err.Error()
			return m, nil
		}
	}
	m.sync()
	m.list.Refresh()
	return m, nil
}

// followDetail keeps the detail screen on the stored version of its record
// after the collection changed underneath it.
func (m *Model) followDetail() {
	d, ok := m.nav.Current().(navigator.Detail)
	if !ok {
		return
	}
	if r, found := m.store.Get(d.Record.ID); found {
		m.nav.OpenDetail(r)
		return
	}
	m.confirming = ""
	m.nav.Cancel()
	m.sync()
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("BDG Inova+"))
	sb.WriteString(" ")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	records := m.store.Records()
	switch s := m.nav.Current().(type) {
	case navigator.Home:
		sb.WriteString(m.home.View(records))
	case navigator.List, navigator.Search:
		sb.WriteString(m.list.View())
	case navigator.Profile:
		sb.WriteString(m.ranking.View(records))
	case navigator.Detail:
		sb.WriteString(m.detail.View(s.Record))
	case navigator.Create, navigator.Edit:
		sb.WriteString(m.form.View())
	}

	if m.confirming != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Modal.Render(navigator.DeletePrompt + "\n\n[y] sim   [n] não"))
		sb.WriteString("\n")
	}
	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(m.help()))
	return sb.String()
}

func (m Model) renderTabs() string {
	current := m.nav.Mode()
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("%s %s", t.key, t.label)
		if t.mode == current {
			parts = append(parts, m.styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) help() string {
	switch m.nav.Current().(type) {
	case navigator.List:
		return "↑/↓ mover · enter abrir · / filtrar · n novo · d excluir · i/l registrar · q sair"
	case navigator.Search:
		return "↑/↓ mover · enter abrir · / buscar · d excluir · q sair"
	case navigator.Detail:
		return "esc voltar · e editar · d excluir · q sair"
	case navigator.Create, navigator.Edit:
		return "tab/↓ próximo campo · espaço marcar · ctrl+s enviar · esc cancelar"
	}
	return "1-5 abas · i nova inovação · l nova lição · r ranking · q sair"
}

// Run starts the interactive program and blocks until the user quits or
// ctx is done.
func Run(ctx context.Context, s *store.Store, nav *navigator.Navigator, capturer *media.Capturer, opts ...tea.ProgramOption) error {
	m := New(ctx, s, nav, capturer)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
