package game

// Range is an inclusive window of columns scanned by a search routine.
type Range struct {
	Start int
	End   int
}

// Single returns the range holding only col.
func Single(col int) Range {
	return Range{Start: col, End: col}
}

// FullRange covers every column of the board.
func (p *Position) FullRange() Range {
	return Range{Start: 0, End: p.rules.Columns - 1}
}

// RangeAround covers the columns within Line-1 of col.
func (p *Position) RangeAround(col int) Range {
	return p.span(col, col)
}

// RecentRange covers the columns within Line-1 of the last two moves. With a
// single move it is centered on that move, with none it is the full board.
func (p *Position) RecentRange() Range {
	switch n := len(p.moves); n {
	case 0:
		return p.FullRange()
	case 1:
		return p.RangeAround(p.moves[0])
	default:
		a, b := p.moves[n-1], p.moves[n-2]
		return p.span(min(a, b), max(a, b))
	}
}

func (p *Position) span(lo, hi int) Range {
	reach := p.rules.Line - 1
	return Range{
		Start: max(lo-reach, 0),
		End:   min(hi+reach, p.rules.Columns-1),
	}
}
