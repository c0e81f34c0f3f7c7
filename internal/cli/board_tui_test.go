package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedBoardModel returns a model with its initial load already applied.
func loadedBoardModel(t *testing.T, a *App, req app.BoardRequest) boardModel {
	t.Helper()
	m := newBoardModel(context.Background(), a, req)
	msg := m.Init()()
	model, _ := m.Update(msg)
	return model.(boardModel)
}

func TestBoardModel_LoadsAndNavigates(t *testing.T) {
	a := testApp(t)
	seedPortfolio(t, a)
	now := cliNow
	m := loadedBoardModel(t, a, app.BoardRequest{Now: &now})

	require.NotNil(t, m.board)
	require.Len(t, m.board.Projects, 2)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "› ")
	assert.Contains(t, m.View(), "active projects")

	model, _ := m.Update(keyRunes("j"))
	m = model.(boardModel)
	assert.Equal(t, 1, m.cursor)

	model, _ = m.Update(keyRunes("j"))
	m = model.(boardModel)
	assert.Equal(t, 1, m.cursor, "cursor stops at the last row")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(boardModel)
	assert.Equal(t, 0, m.cursor)
}

func TestBoardModel_DetailPane(t *testing.T) {
	a := testApp(t)
	seedPortfolio(t, a)
	now := cliNow
	m := loadedBoardModel(t, a, app.BoardRequest{Now: &now})

	// Tall enough that the whole detail pane fits without scrolling.
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	m = model.(boardModel)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(boardModel)
	require.NotNil(t, cmd)
	assert.True(t, m.detail)

	model, _ = m.Update(cmd())
	m = model.(boardModel)
	view := m.View()
	assert.Contains(t, view, "Portal do Cliente")
	assert.Contains(t, view, "ISSUES")
	assert.Contains(t, view, "Projeto atrasado (2 dias)")
	assert.Contains(t, view, "1 tarefas atrasadas")
	assert.Contains(t, view, "1 tarefas bloqueadas")
	assert.Contains(t, view, "Integração SSO")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(boardModel)
	assert.False(t, m.detail)
}

func TestBoardModel_ToggleFinalReloads(t *testing.T) {
	a := testApp(t)
	seedPortfolio(t, a)
	now := cliNow
	m := loadedBoardModel(t, a, app.BoardRequest{Now: &now})

	model, cmd := m.Update(keyRunes("f"))
	m = model.(boardModel)
	require.NotNil(t, cmd)
	assert.True(t, m.req.IncludeFinal)

	model, _ = m.Update(cmd())
	m = model.(boardModel)
	assert.Len(t, m.board.Projects, 3)
	assert.Contains(t, m.View(), "all projects")
}

func TestBoardModel_ErrorAndQuit(t *testing.T) {
	a := testApp(t)
	m := newBoardModel(context.Background(), a, app.NewBoardRequest())

	model, _ := m.Update(boardLoadedMsg{err: errors.New("database is locked")})
	m = model.(boardModel)
	assert.Contains(t, m.View(), "Error: database is locked")

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBoardModel_WindowResize(t *testing.T) {
	a := testApp(t)
	m := newBoardModel(context.Background(), a, app.NewBoardRequest())

	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = model.(boardModel)
	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 37, m.viewport.Height)
}

func TestBoardModel_ScriptedSession(t *testing.T) {
	a := testApp(t)
	seedPortfolio(t, a)
	now := cliNow
	d := teatest.New(t, newBoardModel(context.Background(), a, app.BoardRequest{Now: &now}), 100, 30)

	assert.Contains(t, d.View(), "Portal do Cliente")

	d.Keys("down", "enter")
	m := d.Model().(boardModel)
	assert.True(t, m.detail)
	assert.Equal(t, 1, m.cursor)

	d.Keys("esc", "f")
	m = d.Model().(boardModel)
	assert.False(t, m.detail)
	assert.Len(t, m.board.Projects, 3)

	d.Keys("q")
	assert.True(t, d.Quit())
}
