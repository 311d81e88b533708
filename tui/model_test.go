package tui

import (
	"connectline/agent"
	"connectline/game"
	"connectline/searcher"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func rules() game.Rules {
	return game.Rules{Columns: 4, Line: 3, Playouts: 10, Threshold: 1}
}

// scripted answers every request with progress and then a fixed column.
func scripted(columns ...int) (Decider, *[]game.Side) {
	asked := []game.Side{}
	next := 0
	return func(pos *game.Position, side game.Side) (<-chan agent.Update, error) {
		asked = append(asked, side)
		updates := make(chan agent.Update, 2)
		updates <- agent.Update{Progress: searcher.Progress{Iteration: 1, Total: 1}}
		updates <- agent.Update{Decision: &agent.Decision{Column: columns[next], Tactic: agent.TacticMCTS}}
		close(updates)
		next++
		return updates, nil
	}, &asked
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and feeds its messages back until no command is left.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) model {
	t.Helper()
	for cmd != nil {
		m, cmd = m.Update(cmd())
	}
	return m.(model)
}

func TestCursor(t *testing.T) {
	decide, _ := scripted()
	var m tea.Model = newModel(rules(), game.PlayerA, game.PlayerA, decide)
	require.Equal(t, 2, m.(model).cursor)

	m, _ = m.Update(key("right"))
	m, _ = m.Update(key("right"))
	require.Equal(t, 3, m.(model).cursor, "The cursor stops at the last column")

	for i := 0; i < 5; i++ {
		m, _ = m.Update(key("h"))
	}
	require.Equal(t, 0, m.(model).cursor)
}

func TestTurns(t *testing.T) {
	decide, asked := scripted(1, 1)
	var m tea.Model = newModel(rules(), game.PlayerA, game.PlayerA, decide)
	m, _ = m.Update(key("left"))
	m, _ = m.Update(key("left"))

	m, cmd := m.Update(key("enter"))
	require.True(t, m.(model).thinking)
	require.NotNil(t, cmd)

	// Input is ignored while the engine thinks
	m, _ = m.Update(key("enter"))
	require.Equal(t, 1, m.(model).pos.NumMoves())

	got := drain(t, m, cmd)
	require.False(t, got.thinking)
	require.Equal(t, []int{0, 1}, got.pos.Moves())
	require.Equal(t, []game.Side{game.PlayerB}, *asked)
	require.Equal(t, 1, got.progress.Iteration)
	require.Contains(t, got.View(), "engine played 1 (mcts)")
}

func TestHumanWins(t *testing.T) {
	decide, _ := scripted(3, 3)
	m := newModel(rules(), game.PlayerA, game.PlayerA, decide)
	m.cursor = 0

	var tm tea.Model = m
	for i := 0; i < 2; i++ {
		var cmd tea.Cmd
		tm, cmd = tm.Update(key("enter"))
		tm = drain(t, tm, cmd)
	}
	tm, cmd := tm.Update(key("enter"))
	require.Nil(t, cmd, "The engine is not asked after the game ends")

	got := tm.(model)
	require.True(t, got.over)
	require.Equal(t, game.PlayerA, got.winner)
	require.Len(t, got.line, 3)
	require.Contains(t, got.View(), "You win!")

	// A new game resets the board
	tm, _ = tm.Update(key("n"))
	require.Zero(t, tm.(model).pos.NumMoves())
	require.False(t, tm.(model).over)
}

func TestDraw(t *testing.T) {
	decide, _ := scripted(1, 1, 0, 2)
	rules := game.Rules{Columns: 3, Line: 3, Playouts: 10, Threshold: 1}
	var tm tea.Model = newModel(rules, game.PlayerA, game.PlayerA, decide)
	for _, col := range []int{0, 2, 0, 2, 1} {
		m := tm.(model)
		m.cursor = col
		var cmd tea.Cmd
		tm, cmd = m.Update(key("enter"))
		tm = drain(t, tm, cmd)
	}

	got := tm.(model)
	require.True(t, got.over)
	require.Equal(t, game.Empty, got.winner)
	require.Equal(t, 9, got.pos.NumMoves())
}

func TestEngineMovesFirst(t *testing.T) {
	decide, asked := scripted(2)
	m := newModel(rules(), game.PlayerB, game.PlayerA, decide)
	got := drain(t, m, m.Init())
	require.Equal(t, []int{2}, got.pos.Moves())
	require.Equal(t, []game.Side{game.PlayerA}, *asked)
}

func TestEngineFailure(t *testing.T) {
	failing := func(pos *game.Position, side game.Side) (<-chan agent.Update, error) {
		return nil, errors.New("boom")
	}
	var m tea.Model = newModel(rules(), game.PlayerA, game.PlayerA, failing)
	m, _ = m.Update(key("enter"))
	require.False(t, m.(model).thinking)
	require.Contains(t, m.(model).View(), "boom")

	silent := func(pos *game.Position, side game.Side) (<-chan agent.Update, error) {
		updates := make(chan agent.Update)
		close(updates)
		return updates, nil
	}
	m = newModel(rules(), game.PlayerA, game.PlayerA, silent)
	m, cmd := m.Update(key("enter"))
	got := drain(t, m, cmd)
	require.False(t, got.thinking)
	require.Equal(t, "engine stopped without a decision", got.status)
}

func TestQuit(t *testing.T) {
	decide, _ := scripted()
	_, cmd := newModel(rules(), game.PlayerA, game.PlayerA, decide).Update(key("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
