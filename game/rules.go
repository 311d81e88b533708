package game

import (
	"connectline/meta"
	"fmt"
	"math"
)

// Rules are the parameters of a game and of the engine that plays it.
type Rules struct {
	Columns   int `json:"columns"`   // Board width, also its height
	Line      int `json:"line"`      // Pieces in a row needed to win
	Playouts  int `json:"playouts"`  // MCTS iterations per decision
	Threshold int `json:"threshold"` // Visits a leaf needs before it is expanded
}

// NewStandardRules returns the 8x8 connect-four rules.
func NewStandardRules() Rules {
	return Rules{
		Columns:   meta.COLUMNS,
		Line:      meta.LINE,
		Playouts:  meta.PLAYOUTS,
		Threshold: DefaultThreshold(meta.PLAYOUTS),
	}
}

// DefaultThreshold derives the expansion threshold from the playout count.
func DefaultThreshold(playouts int) int {
	return int(math.Ceil(float64(playouts) * meta.THRESHOLD_RATIO))
}

func (r Rules) Validate() error {
	if r.Columns < 2 {
		return fmt.Errorf("%w: need at least 2 columns, got %d", ErrInvalidRules, r.Columns)
	}
	if r.Line < 2 || r.Line > r.Columns {
		return fmt.Errorf("%w: line %d must be within [2, %d]", ErrInvalidRules, r.Line, r.Columns)
	}
	if r.Playouts < 1 {
		return fmt.Errorf("%w: playouts must be positive, got %d", ErrInvalidRules, r.Playouts)
	}
	if r.Threshold < 0 {
		return fmt.Errorf("%w: threshold must not be negative, got %d", ErrInvalidRules, r.Threshold)
	}
	return nil
}

// Cells returns the number of cells on the board.
func (r Rules) Cells() int {
	return r.Columns * r.Columns
}
