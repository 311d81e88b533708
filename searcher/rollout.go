package searcher

import (
	"connectline/game"
	"connectline/tactics"
)

// playout continues the game from the current position with turn to move and
// returns the outcome for the searching side. Each move takes, in order: a win
// near the last moves, a block of the opponent's win, a proven forcing
// sequence anywhere on the board, or a random safe column.
func (s *search) playout(turn game.Side) float64 {
	p := s.pos
	if p.IsFull() {
		return DRAW
	}
	all := p.FullRange()
	for {
		near := p.RecentRange()
		if tactics.FindImmediateWin(p, near, turn) != tactics.None {
			return s.reward(turn)
		}

		col := tactics.FindImmediateWin(p, near, turn.Opponent())
		if col == tactics.None {
			if tactics.FindForcingSequence(p, all, turn) != tactics.None {
				return s.reward(turn)
			}
			col = s.randomColumn(turn)
		}

		p.Play(col, turn)
		if p.HasLine(col, p.TopRow(col), turn) {
			return s.reward(turn)
		}
		if p.IsFull() {
			return DRAW
		}
		turn = turn.Opponent()
	}
}

// randomColumn draws random columns until one is a safe drop for turn, and
// falls back to any open column after RandomDraws attempts.
func (s *search) randomColumn(turn game.Side) int {
	w := s.pos.Columns()
	for i := 0; i <= RandomDraws; i++ {
		col := s.rng.Intn(w)
		if tactics.IsSafeDrop(s.pos, col, turn) {
			return col
		}
	}
	return s.openColumn()
}
