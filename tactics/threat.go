// Package tactics finds forced sequences: immediate wins and blocks, double
// threats and chains of threats the opponent is obliged to answer.
//
// Every routine mutates the Position only through paired Place/Remove calls
// and returns it unchanged. Scans run from the lowest column of the range and
// stop at the first column that qualifies.
package tactics

import "connectline/game"

// None is returned when no column qualifies.
const None = -1

// completes reports whether dropping a piece for side into col makes a line.
func completes(p *game.Position, col int, side game.Side) bool {
	p.Place(col, side)
	defer p.Remove(col)
	return p.HasLine(col, p.TopRow(col), side)
}

// FindImmediateWin returns the lowest column in r where side completes a line
// with one drop. Called for the opponent it returns the column that must be
// blocked.
func FindImmediateWin(p *game.Position, r game.Range, side game.Side) int {
	for col := r.Start; col <= r.End; col++ {
		if p.IsColumnFull(col) {
			continue
		}
		if completes(p, col, side) {
			return col
		}
	}
	return None
}

// IsSafeDrop reports whether side can drop into col without handing the
// opponent a line on top of it. A column with a single free cell leaves no
// room for a reply and is always safe; a full column never is.
func IsSafeDrop(p *game.Position, col int, side game.Side) bool {
	switch p.Height(col) {
	case p.Columns() - 1:
		return true
	case p.Columns():
		return false
	}
	p.Place(col, side)
	defer p.Remove(col)
	return !completes(p, col, side.Opponent())
}

// IsPlayoutSafeDrop is IsSafeDrop without the single-free-cell exemption:
// columns with at most one free cell are rejected.
func IsPlayoutSafeDrop(p *game.Position, col int, side game.Side) bool {
	if p.Height(col) >= p.Columns()-1 {
		return false
	}
	p.Place(col, side)
	defer p.Remove(col)
	return !completes(p, col, side.Opponent())
}

// FindFork returns the first safe column in r after which side threatens a
// line that survives the opponent's forced block. Threats are looked for
// around the last two recorded moves.
func FindFork(p *game.Position, r game.Range, side game.Side) int {
	near := p.RecentRange()
	for col := r.Start; col <= r.End; col++ {
		if !IsSafeDrop(p, col, side) {
			continue
		}
		if forks(p, col, side, near) {
			return col
		}
	}
	return None
}

func forks(p *game.Position, col int, side game.Side, near game.Range) bool {
	p.Place(col, side)
	defer p.Remove(col)

	block := FindImmediateWin(p, near, side)
	if block == None {
		return false
	}
	p.Place(block, side.Opponent())
	defer p.Remove(block)

	return FindImmediateWin(p, near, side) != None
}

// FindForcingSequence returns the first safe column in r that starts a chain
// of threats ending in a won position, each threat leaving the opponent a
// single forced reply. The search is bounded by the free cells of the board.
func FindForcingSequence(p *game.Position, r game.Range, side game.Side) int {
	for col := r.Start; col <= r.End; col++ {
		if !IsSafeDrop(p, col, side) {
			continue
		}
		if forces(p, col, side) {
			return col
		}
	}
	return None
}

func forces(p *game.Position, col int, side game.Side) bool {
	p.Place(col, side)
	defer p.Remove(col)

	near := p.RangeAround(col)
	block := FindImmediateWin(p, near, side)
	if block == None {
		return false
	}

	opponent := side.Opponent()
	p.Place(block, opponent)
	defer p.Remove(block)

	// Still threatening after the block: two threats at once
	if FindImmediateWin(p, near, side) != None {
		return true
	}

	next := p.RangeAround(block)
	if FindFork(p, next, opponent) != None {
		return false
	}
	if reply := FindImmediateWin(p, next, opponent); reply != None {
		next = game.Single(reply)
	}
	return FindForcingSequence(p, next, side) != None
}
