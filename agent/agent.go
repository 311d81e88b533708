package agent

import (
	"connectline/experiments/metrics"
	"connectline/game"
	"connectline/searcher"
	"connectline/tactics"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrNoMoves = errors.New("no open column")

// Tactic names the step that decided a move.
type Tactic string

const (
	TacticWin     Tactic = "win"
	TacticBlock   Tactic = "block"
	TacticForcing Tactic = "forcing"
	TacticMCTS    Tactic = "mcts"
)

type Decision struct {
	Column int
	Tactic Tactic
	Policy []int // Root visits by column, nil unless MCTS decided
	Metric metrics.SearchMetric
}

type Agent interface {
	// Decide returns the column side should play in pos. pos is not modified.
	Decide(pos *game.Position, side game.Side) (Decision, error)
}

// check rejects requests no column can answer.
func check(pos *game.Position, side game.Side) error {
	if err := side.Check(); err != nil {
		return fmt.Errorf("cannot decide: %w", err)
	}
	if pos.IsFull() {
		return fmt.Errorf("cannot decide: %w", ErrNoMoves)
	}
	return nil
}

// tactical applies the forced steps in order: an own win near the last moves,
// a block of the opponent's win there, then a forcing sequence anywhere.
func tactical(pos *game.Position, side game.Side) (Decision, bool) {
	near := pos.RecentRange()
	if col := tactics.FindImmediateWin(pos, near, side); col != tactics.None {
		return Decision{Column: col, Tactic: TacticWin}, true
	}
	if col := tactics.FindImmediateWin(pos, near, side.Opponent()); col != tactics.None {
		return Decision{Column: col, Tactic: TacticBlock}, true
	}
	if col := tactics.FindForcingSequence(pos, pos.FullRange(), side); col != tactics.None {
		return Decision{Column: col, Tactic: TacticForcing}, true
	}
	return Decision{}, false
}

func fromResult(result searcher.Result, column int) Decision {
	return Decision{
		Column: column,
		Tactic: TacticMCTS,
		Policy: result.Policy,
		Metric: result.Metric,
	}
}

func logDecision(side game.Side, d Decision) {
	log.Info().Msgf("side %s plays column %d (%s)", side, d.Column, d.Tactic)
}
