// Package teatest runs bubbletea models synchronously in tests.
//
// A Driver feeds messages straight into Update and executes the returned
// commands inline, so a test can script a whole keyboard session without
// starting a tea.Program.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds command chains that keep producing new commands.
const maxDepth = 64

// cmdTimeout skips commands that block on timers, such as tick loops.
const cmdTimeout = 500 * time.Millisecond

// Driver holds the current model of a scripted session.
type Driver struct {
	t     *testing.T
	model tea.Model
	quit  bool
}

// New wraps model, applies a window size when width is positive and runs
// Init.
func New(t *testing.T, model tea.Model, width, height int) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	if width > 0 {
		d.Send(tea.WindowSizeMsg{Width: width, Height: height})
	}
	d.run(model.Init(), 0)
	return d
}

// Model returns the latest model.
func (d *Driver) Model() tea.Model { return d.model }

// View renders the latest model.
func (d *Driver) View() string { return d.model.View() }

// Quit reports whether the model asked the program to exit.
func (d *Driver) Quit() bool { return d.quit }

// Send delivers msg and runs every command it produces.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.quit {
		return
	}
	next, cmd := d.model.Update(msg)
	d.model = next
	d.run(cmd, 0)
}

// Keys sends each entry as a key press. Named keys ("enter", "esc", "up",
// "down", "ctrl+c") map to their key types; anything else is sent as runes.
func (d *Driver) Keys(keys ...string) {
	d.t.Helper()
	for _, k := range keys {
		d.Send(KeyMsg(k))
	}
}

// KeyMsg builds the tea.KeyMsg for a key name.
func KeyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}

	msg := execWithTimeout(cmd)
	switch m := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, sub := range m {
			d.run(sub, depth+1)
		}
	case tea.QuitMsg:
		d.quit = true
	default:
		next, nextCmd := d.model.Update(m)
		d.model = next
		d.run(nextCmd, depth+1)
	}
}

func execWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
