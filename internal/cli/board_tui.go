package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/cli/formatter"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type boardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Back        key.Binding
	Refresh     key.Binding
	ToggleFinal key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		ToggleFinal: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle final")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Refresh, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.Refresh, k.ToggleFinal, k.Help, k.Quit},
	}
}

type boardLoadedMsg struct {
	board *app.BoardResponse
	err   error
}

type detailLoadedMsg struct {
	projectID string
	text      string
	err       error
}

// boardModel is the interactive board: a ranked list with a scrollable
// detail pane for the selected project.
type boardModel struct {
	ctx      context.Context
	app      *App
	req      app.BoardRequest
	keys     boardKeyMap
	help     help.Model
	viewport viewport.Model

	board   *app.BoardResponse
	cursor  int
	loading bool
	detail  bool
	err     error
	width   int
	height  int
}

func newBoardModel(ctx context.Context, a *App, req app.BoardRequest) boardModel {
	return boardModel{
		ctx:      ctx,
		app:      a,
		req:      req,
		keys:     newBoardKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		loading:  true,
	}
}

func runBoardTUI(ctx context.Context, a *App, req app.BoardRequest) error {
	_, err := tea.NewProgram(newBoardModel(ctx, a, req), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m boardModel) Init() tea.Cmd {
	return m.load()
}

func (m boardModel) load() tea.Cmd {
	a, req, ctx := m.app, m.req, m.ctx
	return func() tea.Msg {
		board, err := a.Board.GetBoard(ctx, req)
		return boardLoadedMsg{board: board, err: err}
	}
}

func (m boardModel) loadDetail(v app.ProjectBoardView) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		tasks, err := a.Tasks.List(ctx, repository.TaskFilter{ProjectID: v.ProjectID})
		if err != nil {
			return detailLoadedMsg{projectID: v.ProjectID, err: err}
		}
		return detailLoadedMsg{projectID: v.ProjectID, text: formatter.FormatProjectDetail(v, tasks)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-3, 1)
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.board = msg.board
			m.cursor = min(m.cursor, max(len(msg.board.Projects)-1, 0))
		}
		return m, nil

	case detailLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.detail = false
			return m, nil
		}
		m.viewport.SetContent(msg.text)
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m boardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.board != nil && m.cursor < len(m.board.Projects)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if v, ok := m.selected(); ok {
			m.detail = true
			m.viewport.SetContent("Loading…")
			return m, m.loadDetail(v)
		}
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.load()
	case key.Matches(msg, m.keys.ToggleFinal):
		m.req.IncludeFinal = !m.req.IncludeFinal
		m.loading = true
		return m, m.load()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m boardModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.detail = false
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m boardModel) selected() (app.ProjectBoardView, bool) {
	if m.board == nil || m.cursor >= len(m.board.Projects) {
		return app.ProjectBoardView{}, false
	}
	return m.board.Projects[m.cursor], true
}

func (m boardModel) View() string {
	if m.detail {
		return m.viewport.View() + "\n" + m.help.View(m.keys)
	}

	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.loading && m.board == nil:
		b.WriteString(formatter.Dim("Loading board…") + "\n")
	case m.board != nil:
		b.WriteString(formatter.FormatBoardSummary(m.board.Summary) + "\n\n")
		if len(m.board.Projects) == 0 {
			b.WriteString(formatter.Dim("No projects to show.") + "\n")
		} else {
			b.WriteString(m.renderRows())
		}
		for _, w := range m.board.Warnings {
			b.WriteString(formatter.StyleYellow.Render("! "+w) + "\n")
		}
	}

	scope := "active projects"
	if m.req.IncludeFinal {
		scope = "all projects"
	}
	b.WriteString("\n" + formatter.Dim(scope) + "  " + m.help.View(m.keys))
	return b.String()
}

// renderRows marks the cursor row of the board table. The table starts with
// a header line and a separator line.
func (m boardModel) renderRows() string {
	lines := strings.Split(strings.TrimRight(formatter.FormatBoardTable(m.board.Projects), "\n"), "\n")
	var b strings.Builder
	for i, line := range lines {
		marker := "  "
		if i-2 == m.cursor {
			marker = formatter.StyleHeader.Render("› ")
		}
		fmt.Fprintf(&b, "%s%s\n", marker, line)
	}
	return b.String()
}
