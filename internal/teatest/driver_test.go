package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type loadedMsg struct{ n int }

// counter loads a starting value on Init and counts key presses.
type counter struct {
	n      int
	width  int
	quit   bool
	loaded bool
}

func (c *counter) Init() tea.Cmd {
	return func() tea.Msg { return loadedMsg{n: 10} }
}

func (c *counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case loadedMsg:
		c.n = msg.n
		c.loaded = true
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "+":
			c.n++
		case "down", "-":
			c.n--
		case "s":
			return c, func() tea.Msg {
				time.Sleep(time.Second)
				return loadedMsg{n: 0}
			}
		case "q":
			return c, tea.Quit
		}
	case tea.QuitMsg:
		c.quit = true
	}
	return c, nil
}

func (c *counter) View() string {
	return fmt.Sprintf("count=%d width=%d", c.n, c.width)
}

func TestDriver_InitSizeAndKeys(t *testing.T) {
	c := &counter{}
	d := New(t, c, WithSize(80, 24))
	d.DrainInit()

	assert.True(t, c.loaded)
	d.RequireView("count=10", "width=80")

	d.PressUp()
	d.Type("++")
	d.PressDown()
	d.RequireView("count=12")
}

func TestDriver_SkipsSlowCmds(t *testing.T) {
	c := &counter{n: 3}
	d := New(t, c)

	d.PressKey('s')
	d.RequireView("count=3")
}

func TestDriver_QuitStopsInput(t *testing.T) {
	c := &counter{}
	d := New(t, c)

	d.PressKey('q')
	assert.True(t, d.Quitting)
	assert.True(t, c.quit)

	d.PressUp()
	assert.Equal(t, 0, c.n)
}

func TestDriver_RecordsDeliveredMsgs(t *testing.T) {
	c := &counter{}
	d := New(t, c)
	d.DrainInit()
	d.PressKey('s')
	d.PressKey('q')

	// The slow Cmd is abandoned and never delivered.
	assert.Equal(t, []tea.Msg{loadedMsg{n: 10}, tea.QuitMsg{}}, d.Msgs)
}

// panes renders two labelled panes side by side with their entries below.
type panes struct{ left, right []string }

func (p panes) Init() tea.Cmd                       { return nil }
func (p panes) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }

func (p panes) View() string {
	rows := []string{fmt.Sprintf("%-12s%s", "Left", "Right")}
	for i := 0; i < len(p.left) || i < len(p.right); i++ {
		var l, r string
		if i < len(p.left) {
			l = p.left[i]
		}
		if i < len(p.right) {
			r = p.right[i]
		}
		rows = append(rows, fmt.Sprintf("%-12s%s", l, r))
	}
	return strings.Join(rows, "\n")
}

func TestDriver_ColumnOf(t *testing.T) {
	d := New(t, panes{left: []string{"alpha"}, right: []string{"", "beta"}})

	assert.Equal(t, 0, d.ColumnOf("alpha"))
	assert.Equal(t, 12, d.ColumnOf("Right"))
	assert.Equal(t, 12, d.ColumnOf("beta"))
	assert.Equal(t, -1, d.ColumnOf("gamma"))

	d.RequireColumn("Left", "Right", "alpha")
	d.RequireColumn("Right", "", "beta")
}
