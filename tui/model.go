// Package tui is a terminal client for playing against the engine.
package tui

import (
	"connectline/agent"
	"connectline/game"
	"connectline/searcher"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

type updateMsg agent.Update

// startMsg hands the first move to the engine.
type startMsg struct{}

// doneMsg reports that the engine closed its updates without a decision.
type doneMsg struct{}

type model struct {
	rules    game.Rules
	pos      *game.Position
	human    game.Side
	first    game.Side
	decide   Decider
	cursor   int
	thinking bool
	updates  <-chan agent.Update
	progress searcher.Progress
	last     *agent.Decision
	winner   game.Side
	line     []game.Cell
	over     bool
	status   string
}

// NewModel returns a game where human plays against the engine and first
// moves first.
func NewModel(rules game.Rules, human, first game.Side, decide Decider) tea.Model {
	return newModel(rules, human, first, decide)
}

func newModel(rules game.Rules, human, first game.Side, decide Decider) model {
	return model{
		rules:  rules,
		pos:    game.NewPosition(rules),
		human:  human,
		first:  first,
		decide: decide,
		cursor: rules.Columns / 2,
	}
}

func (m model) Init() tea.Cmd {
	if m.first != m.human {
		return func() tea.Msg { return startMsg{} }
	}
	return nil
}

func waitForUpdate(updates <-chan agent.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(u)
	}
}

func (m *model) startEngine() tea.Cmd {
	updates, err := m.decide(m.pos.Copy(), m.human.Opponent())
	if err != nil {
		m.status = fmt.Sprintf("engine error: %v", err)
		return nil
	}
	m.thinking = true
	m.updates = updates
	m.progress = searcher.Progress{}
	return waitForUpdate(updates)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case startMsg:
		cmd := m.startEngine()
		return m, cmd
	case updateMsg:
		if msg.Decision == nil {
			m.progress = msg.Progress
			return m, waitForUpdate(m.updates)
		}
		m.thinking = false
		m.last = msg.Decision
		if !slices.Contains(m.pos.Legal(), msg.Decision.Column) {
			m.status = fmt.Sprintf("engine chose illegal column %d", msg.Decision.Column)
			return m, nil
		}
		m.play(msg.Decision.Column, m.human.Opponent())
		return m, nil
	case doneMsg:
		if m.thinking {
			m.thinking = false
			m.status = "engine stopped without a decision"
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < m.rules.Columns-1 {
			m.cursor++
		}
	case "n":
		if m.over {
			next := newModel(m.rules, m.human, m.first, m.decide)
			return next, next.Init()
		}
	case "enter", " ":
		if m.thinking || m.over {
			return m, nil
		}
		if m.pos.IsColumnFull(m.cursor) {
			m.status = fmt.Sprintf("column %d is full", m.cursor)
			return m, nil
		}
		m.status = ""
		m.play(m.cursor, m.human)
		if !m.over {
			cmd := m.startEngine()
			return m, cmd
		}
	}
	return m, nil
}

// play drops a piece and ends the game on a line or a full board.
func (m *model) play(col int, side game.Side) {
	m.pos.Play(col, side)
	switch {
	case m.pos.Wins(col):
		m.over = true
		m.winner = side
		m.line = m.pos.CollectLine(col, m.pos.TopRow(col), side)
	case m.pos.IsDraw():
		m.over = true
	}
}
