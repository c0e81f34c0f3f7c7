package teatest

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type addMsg int

type counter struct {
	total  int
	width  int
	events []string
}

func (c counter) Init() tea.Cmd {
	return func() tea.Msg { return addMsg(10) }
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case addMsg:
		c.total += int(msg)
	case tea.KeyMsg:
		c.events = append(c.events, msg.String())
		switch msg.String() {
		case "+":
			return c, tea.Batch(
				func() tea.Msg { return addMsg(1) },
				func() tea.Msg { return addMsg(2) },
			)
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string { return fmt.Sprintf("total=%d", c.total) }

func TestDriver_InitAndBatches(t *testing.T) {
	d := New(t, counter{}, 80, 24)
	assert.Equal(t, "total=10", d.View())
	assert.Equal(t, 80, d.Model().(counter).width)

	d.Keys("+", "down")
	assert.Equal(t, "total=13", d.View())
	assert.Equal(t, []string{"+", "down"}, d.Model().(counter).events)
}

func TestDriver_QuitStopsDelivery(t *testing.T) {
	d := New(t, counter{}, 0, 0)
	d.Keys("q", "+")
	assert.True(t, d.Quit())
	assert.Equal(t, "total=10", d.View())
}

func TestKeyMsg(t *testing.T) {
	assert.Equal(t, tea.KeyEnter, KeyMsg("enter").Type)
	assert.Equal(t, "j", KeyMsg("j").String())
}
