package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cocoon/internal/board"
	"github.com/alexanderramin/cocoon/internal/cli/formatter"
	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/kpi"
	"github.com/alexanderramin/cocoon/internal/repository"
	"github.com/alexanderramin/cocoon/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type boardKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Advance key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev stage")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next stage")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Advance: key.NewBinding(key.WithKeys("enter", "m"), key.WithHelp("enter/m", "move forward")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Refresh, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Advance, k.Refresh, k.Help, k.Quit},
	}
}

// boardLoadedMsg carries a fresh item list.
type boardLoadedMsg struct {
	items []*domain.Item
	err   error
}

// stageMovedMsg reports the outcome of moving the selected card.
type stageMovedMsg struct {
	item *domain.Item
	from domain.Stage
	err  error
}

// boardModel is the interactive kanban: four columns, a card cursor, and a
// key to move the selected card one stage forward.
type boardModel struct {
	app    *App
	filter board.Filter

	items []*domain.Item
	cols  []board.Column
	col   int
	row   int
	width int

	keys    boardKeyMap
	help    help.Model
	loading bool
	status  string
	err     error
}

func newBoardModel(app *App, f board.Filter) *boardModel {
	return &boardModel{
		app:     app,
		filter:  f,
		keys:    defaultBoardKeys(),
		help:    help.New(),
		loading: true,
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		items, err := app.Items.List(context.Background(), repository.ItemQuery{})
		return boardLoadedMsg{items: items, err: err}
	}
}

func (m *boardModel) advance(it *domain.Item) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		next, ok := it.Status.Next()
		if !ok {
			return stageMovedMsg{item: it, from: it.Status, err: fmt.Errorf("%q is already done", it.Title)}
		}
		updated, err := app.Items.MoveStage(context.Background(), it.ID, next, app.userID())
		if errors.Is(err, service.ErrAuditNotRecorded) && updated != nil {
			return stageMovedMsg{item: updated, from: it.Status, err: nil}
		}
		return stageMovedMsg{item: updated, from: it.Status, err: err}
	}
}

// selected returns the card under the cursor, or nil.
func (m *boardModel) selected() *domain.Item {
	if m.col < 0 || m.col >= len(m.cols) {
		return nil
	}
	items := m.cols[m.col].Items
	if m.row < 0 || m.row >= len(items) {
		return nil
	}
	return items[m.row]
}

func (m *boardModel) clampRow() {
	if m.col >= len(m.cols) {
		m.row = 0
		return
	}
	n := len(m.cols[m.col].Items)
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.items = msg.items
			m.cols = board.Columns(m.items, m.filter, m.app.now())
			m.clampRow()
		}
		return m, nil

	case stageMovedMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.status = strings.TrimSuffix(formatter.FormatMoved(msg.item, msg.from), "\n")
		m.loading = true
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			if m.col > 0 {
				m.col--
				m.clampRow()
			}
		case key.Matches(msg, m.keys.Right):
			if m.col < len(domain.Stages)-1 {
				m.col++
				m.clampRow()
			}
		case key.Matches(msg, m.keys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, m.keys.Down):
			m.row++
			m.clampRow()
		case key.Matches(msg, m.keys.Advance):
			if it := m.selected(); it != nil {
				return m, m.advance(it)
			}
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.status = ""
			return m, m.load()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *boardModel) columnWidth() int {
	if m.width <= 0 {
		return formatter.DefaultColumnWidth
	}
	w := m.width/len(domain.Stages) - 4
	if w < 16 {
		w = 16
	}
	return w
}

func (m *boardModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("COCOON BOARD") + "\n")
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}
	if m.loading && m.cols == nil {
		b.WriteString(formatter.Dim("Loading…") + "\n")
		return b.String()
	}

	now := m.app.now()
	b.WriteString(formatter.FormatKPIBar(kpi.Calculate(m.items, now)) + "\n")
	b.WriteString(formatter.FormatFilter(m.filter) + "\n")
	b.WriteString(formatter.FormatBoard(m.cols, now, m.columnWidth(), formatter.BoardCursor{Column: m.col, Row: m.row}) + "\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
