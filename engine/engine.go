package engine

import (
	"connectline/experiments/metrics"
	"connectline/game"
	"errors"
)

var ErrIllegalMove = errors.New("illegal move")

// Outcome is the end of a game. Winner is Empty for a draw.
type Outcome struct {
	Winner      game.Side
	Line        []game.Cell // Winning run, nil for a draw
	Moves       []int
	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}

type Engine interface {
	// Run plays a game till a side makes a line or the board fills up
	Run() (Outcome, error)
}
