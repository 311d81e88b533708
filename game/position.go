package game

import (
	"fmt"
	"strings"
)

// Position is a square board stored as column stacks. Cells are indexed
// [row][col] with row 0 at the bottom.
//
// Place and Remove mutate the board without touching the move history and are
// meant for transient look-ahead. Play and Undo also record the move. Every
// routine that mutates a Position must pair its calls so the Position is
// restored when it returns.
type Position struct {
	rules   Rules
	cells   [][]Side
	heights []int
	moves   []int
}

func NewPosition(rules Rules) *Position {
	w := rules.Columns
	cells := make([][]Side, w)
	for row := range cells {
		cells[row] = make([]Side, w)
	}
	return &Position{
		rules:   rules,
		cells:   cells,
		heights: make([]int, w),
		moves:   make([]int, 0, w*w),
	}
}

// FromMoves replays a move history starting with the given side.
func FromMoves(rules Rules, first Side, moves ...int) (*Position, error) {
	if err := first.Check(); err != nil {
		return nil, err
	}
	p := NewPosition(rules)
	side := first
	for i, col := range moves {
		if col < 0 || col >= rules.Columns {
			return nil, fmt.Errorf("move %d: %w: %d", i, ErrColumnRange, col)
		}
		if p.IsColumnFull(col) {
			return nil, fmt.Errorf("move %d: %w: %d", i, ErrColumnFull, col)
		}
		p.Play(col, side)
		side = side.Opponent()
	}
	return p, nil
}

func (p *Position) Rules() Rules { return p.rules }
func (p *Position) Columns() int { return p.rules.Columns }
func (p *Position) Line() int    { return p.rules.Line }

// Place drops a piece for side into col without recording it.
func (p *Position) Place(col int, side Side) {
	if p.heights[col] >= p.rules.Columns {
		panic(fmt.Sprintf("cannot place in full column %d", col))
	}
	p.cells[p.heights[col]][col] = side
	p.heights[col]++
}

// Remove takes the top piece out of col. It is the inverse of Place.
func (p *Position) Remove(col int) {
	if p.heights[col] == 0 {
		panic(fmt.Sprintf("cannot remove from empty column %d", col))
	}
	p.heights[col]--
	p.cells[p.heights[col]][col] = Empty
}

// Play places a piece and appends the column to the move history.
func (p *Position) Play(col int, side Side) {
	p.Place(col, side)
	p.moves = append(p.moves, col)
}

// Undo reverts the last played move and returns its column.
func (p *Position) Undo() int {
	if len(p.moves) == 0 {
		panic("cannot undo: no moves played")
	}
	col := p.moves[len(p.moves)-1]
	p.moves = p.moves[:len(p.moves)-1]
	p.Remove(col)
	return col
}

func (p *Position) IsColumnFull(col int) bool {
	return p.heights[col] == p.rules.Columns
}

func (p *Position) Height(col int) int {
	return p.heights[col]
}

// TopRow returns the row of the top piece in col.
func (p *Position) TopRow(col int) int {
	if p.heights[col] == 0 {
		panic(fmt.Sprintf("column %d is empty", col))
	}
	return p.heights[col] - 1
}

// At returns the owner of a cell, Empty for coordinates off the board.
func (p *Position) At(col, row int) Side {
	if col < 0 || col >= p.rules.Columns || row < 0 || row >= p.rules.Columns {
		return Empty
	}
	return p.cells[row][col]
}

// Moves returns a copy of the move history.
func (p *Position) Moves() []int {
	return append([]int(nil), p.moves...)
}

func (p *Position) NumMoves() int {
	return len(p.moves)
}

// Legal returns the columns that still have room.
func (p *Position) Legal() []int {
	cols := make([]int, 0, p.rules.Columns)
	for col, h := range p.heights {
		if h < p.rules.Columns {
			cols = append(cols, col)
		}
	}
	return cols
}

// IsFull reports whether no column has room.
func (p *Position) IsFull() bool {
	for _, h := range p.heights {
		if h < p.rules.Columns {
			return false
		}
	}
	return true
}

// IsDraw reports whether the move history has used up every cell.
func (p *Position) IsDraw() bool {
	return len(p.moves) >= p.rules.Cells()
}

// Copy returns an independent deep copy.
func (p *Position) Copy() *Position {
	cells := make([][]Side, len(p.cells))
	for row := range p.cells {
		cells[row] = append(make([]Side, 0, len(p.cells[row])), p.cells[row]...)
	}
	heights := make([]int, len(p.heights))
	copy(heights, p.heights)
	moves := make([]int, len(p.moves), p.rules.Cells())
	copy(moves, p.moves)
	return &Position{
		rules:   p.rules,
		cells:   cells,
		heights: heights,
		moves:   moves,
	}
}

func (p *Position) String() string {
	var b strings.Builder
	for row := p.rules.Columns - 1; row >= 0; row-- {
		for col := 0; col < p.rules.Columns; col++ {
			b.WriteString(p.cells[row][col].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
