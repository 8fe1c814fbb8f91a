// Package teatest drives bubbletea models in tests without a tea.Program.
//
// Update is called directly and every returned Cmd is run to completion
// before the next input, so views can be asserted right after a key press.
// Cmds that block on timers, such as cursor blinks, are abandoned after
// cmdTimeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MaxDrainDepth caps how many chained Cmds one input may produce.
const MaxDrainDepth = 100

// cmdTimeout bounds a single Cmd. Store reads against an in-memory SQLite
// database finish well inside it; cursor blinks wait ~530ms and do not.
const cmdTimeout = 200 * time.Millisecond

// Driver feeds input to a model and runs the Cmds it returns.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Msgs lists every message produced by a Cmd, in delivery order.
	Msgs []tea.Msg

	// Quitting records a tea.Quit. Input sent afterwards is dropped.
	Quitting bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init Cmd.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send delivers msg and runs whatever follows from it.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

func (d *Driver) key(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.key(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.key(tea.KeyEsc) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.key(tea.KeyCtrlC) }
func (d *Driver) PressLeft()  { d.T.Helper(); d.key(tea.KeyLeft) }
func (d *Driver) PressRight() { d.T.Helper(); d.key(tea.KeyRight) }
func (d *Driver) PressUp()    { d.T.Helper(); d.key(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.key(tea.KeyDown) }

// Type presses each rune of s in turn.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

// RequireView fails the test unless every want appears in the view.
func (d *Driver) RequireView(want ...string) {
	d.T.Helper()
	view := d.View()
	for _, w := range want {
		if !strings.Contains(view, w) {
			d.T.Fatalf("view does not contain %q:\n%s", w, view)
		}
	}
}

// ColumnOf returns the display column at which text first starts in the
// view, or -1. Styling escapes take no width, so side-by-side panes can be
// told apart by position.
func (d *Driver) ColumnOf(text string) int {
	for _, line := range strings.Split(d.View(), "\n") {
		if i := strings.Index(line, text); i >= 0 {
			return lipgloss.Width(line[:i])
		}
	}
	return -1
}

// RequireColumn fails unless card is rendered inside the pane headed by
// heading: at or right of the heading and left of next, the heading of the
// pane to its right. An empty next means heading is the last pane.
func (d *Driver) RequireColumn(heading, next, card string) {
	d.T.Helper()
	start, end, at := d.ColumnOf(heading), d.ColumnOf(next), d.ColumnOf(card)
	if next == "" {
		end = 1 << 30
	}
	if start < 0 || end < 0 || at < start || at >= end {
		d.T.Fatalf("%q is not under %q (heading at %d, next at %d, card at %d):\n%s",
			card, heading, start, end, at, d.View())
	}
}

// run executes cmd and delivers its message, following the chain of Cmds
// the model returns until one yields nothing.
func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: stopped after %d chained Cmds", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	if msg == nil || isBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.run(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Msgs = append(d.Msgs, msg)
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
		return
	}

	d.Msgs = append(d.Msgs, msg)
	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.run(next, depth+1)
}

// runWithTimeout returns nil when cmd does not finish within cmdTimeout.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages of bubbles.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
