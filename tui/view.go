package tui

import (
	"connectline/game"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleA      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleB      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleLine   = lipgloss.NewStyle().Background(lipgloss.Color("2"))
	styleCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleStatus = lipgloss.NewStyle().Italic(true)
	styleBoard  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func piece(side game.Side) string {
	switch side {
	case game.PlayerA:
		return styleA.Render("●")
	case game.PlayerB:
		return styleB.Render("●")
	}
	return styleEmpty.Render("·")
}

func (m model) View() string {
	w := m.rules.Columns
	var b strings.Builder

	for col := 0; col < w; col++ {
		if col == m.cursor && !m.over {
			b.WriteString(styleCursor.Render("▼"))
		} else {
			b.WriteString(" ")
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")
	for row := w - 1; row >= 0; row-- {
		for col := 0; col < w; col++ {
			cell := piece(m.pos.At(col, row))
			if slices.Contains(m.line, game.Cell{Col: col, Row: row}) {
				cell = styleLine.Render(cell)
			}
			b.WriteString(cell + " ")
		}
		b.WriteString("\n")
	}
	for col := 0; col < w; col++ {
		b.WriteString(fmt.Sprintf("%d ", col%10))
	}

	out := styleBoard.Render(b.String()) + "\n"
	out += styleStatus.Render(m.statusLine()) + "\n"
	if m.status != "" {
		out += m.status + "\n"
	}
	return out + "\n←/→ move  enter drop  n new game  q quit\n"
}

func (m model) statusLine() string {
	switch {
	case m.over && m.winner == m.human:
		return "You win!"
	case m.over && m.winner != game.Empty:
		return "The engine wins."
	case m.over:
		return "Draw."
	case m.thinking && m.progress.Total > 0:
		return fmt.Sprintf("Engine thinking... %d/%d", m.progress.Iteration, m.progress.Total)
	case m.thinking:
		return "Engine thinking..."
	}
	s := fmt.Sprintf("Your move (%s)", piece(m.human))
	if m.last != nil {
		s += fmt.Sprintf("  engine played %d (%s)", m.last.Column, m.last.Tactic)
	}
	return s
}
