package game

import "fmt"

// Snapshot is the wire form of a Position. Board is indexed [row][col] with
// row 0 at the bottom; Moves lists the played columns in order.
type Snapshot struct {
	Board [][]int `json:"board"`
	Moves []int   `json:"moves"`
}

func (p *Position) Snapshot() Snapshot {
	board := make([][]int, len(p.cells))
	for row := range p.cells {
		board[row] = make([]int, len(p.cells[row]))
		for col, side := range p.cells[row] {
			board[row][col] = int(side)
		}
	}
	return Snapshot{Board: board, Moves: p.Moves()}
}

// FromSnapshot rebuilds a Position, checking that the board is the right
// size, that no piece floats above an empty cell and that the move history
// accounts for every piece.
func FromSnapshot(rules Rules, s Snapshot) (*Position, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	w := rules.Columns
	if len(s.Board) != w {
		return nil, fmt.Errorf("%w: board has %d rows, want %d", ErrInvalidSnapshot, len(s.Board), w)
	}

	p := NewPosition(rules)
	for row, cells := range s.Board {
		if len(cells) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSnapshot, row, len(cells), w)
		}
		for col, v := range cells {
			side := Side(v)
			if side == Empty {
				continue
			}
			if !side.Valid() {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidSnapshot, col, row, v)
			}
			if p.heights[col] != row {
				return nil, fmt.Errorf("%w: piece at (%d,%d) is floating", ErrInvalidSnapshot, col, row)
			}
			p.Place(col, side)
		}
	}

	counts := make([]int, w)
	for i, col := range s.Moves {
		if col < 0 || col >= w {
			return nil, fmt.Errorf("%w: move %d: %w: %d", ErrInvalidSnapshot, i, ErrColumnRange, col)
		}
		counts[col]++
	}
	for col, n := range counts {
		if n != p.heights[col] {
			return nil, fmt.Errorf("%w: column %d has %d pieces but %d recorded moves", ErrInvalidSnapshot, col, p.heights[col], n)
		}
	}
	p.moves = append(p.moves, s.Moves...)
	return p, nil
}
