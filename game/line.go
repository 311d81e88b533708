package game

// HasLine reports whether the piece of side at (col, row) is part of a run of
// Line pieces. Rows and both diagonals are scanned through a window of Line-1
// cells on each side of the piece. Columns are only scanned downward since a
// freshly dropped piece is always the top of its stack.
func (p *Position) HasLine(col, row int, side Side) bool {
	w := p.rules.Columns
	need := p.rules.Line - 1
	horizontal, rising, falling := 0, 0, 0

	for i := -need; i <= need; i++ {
		x := col + i
		if x >= 0 && x < w {
			if p.cells[row][x] == side {
				if horizontal == need {
					return true
				}
				horizontal++
			} else {
				horizontal = 0
			}
			if y := row + i; y >= 0 && y < w && p.cells[y][x] == side {
				if rising == need {
					return true
				}
				rising++
			} else {
				rising = 0
			}
			if y := row - i; y >= 0 && y < w && p.cells[y][x] == side {
				if falling == need {
					return true
				}
				falling++
			} else {
				falling = 0
			}
		}
		// Past the piece with every run broken: no window can still reach it
		if i >= 0 && horizontal+rising+falling == 0 {
			break
		}
	}

	if row-need < 0 {
		return false
	}
	vertical := 0
	for i := 0; i <= need; i++ {
		if p.cells[row-i][col] != side {
			return false
		}
		if vertical == need {
			return true
		}
		vertical++
	}
	return false
}

// CollectLine returns the cells of the first completed run through (col, row),
// or nil if there is none.
func (p *Position) CollectLine(col, row int, side Side) []Cell {
	w := p.rules.Columns
	line := p.rules.Line
	var horizontal, rising, falling []Cell

	for i := -line + 1; i <= line-1; i++ {
		x := col + i
		if x < 0 || x >= w {
			continue
		}
		if p.cells[row][x] == side {
			horizontal = append(horizontal, Cell{Col: x, Row: row})
			if len(horizontal) == line {
				return horizontal
			}
		} else {
			horizontal = nil
		}
		if y := row + i; y >= 0 && y < w && p.cells[y][x] == side {
			rising = append(rising, Cell{Col: x, Row: y})
			if len(rising) == line {
				return rising
			}
		} else {
			rising = nil
		}
		if y := row - i; y >= 0 && y < w && p.cells[y][x] == side {
			falling = append(falling, Cell{Col: x, Row: y})
			if len(falling) == line {
				return falling
			}
		} else {
			falling = nil
		}
	}

	if row-line+1 < 0 {
		return nil
	}
	var vertical []Cell
	for i := 0; i < line; i++ {
		if p.cells[row-i][col] != side {
			return nil
		}
		vertical = append(vertical, Cell{Col: col, Row: row - i})
	}
	return vertical
}

// Wins reports whether the top piece of col completes a line for its owner.
func (p *Position) Wins(col int) bool {
	if p.heights[col] == 0 {
		return false
	}
	row := p.heights[col] - 1
	return p.HasLine(col, row, p.cells[row][col])
}
