package engine

import (
	"connectline/agent"
	"connectline/experiments/metrics"
	"connectline/game"
	"connectline/meta"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

type localEngine struct {
	rules  game.Rules
	first  game.Side
	agents map[game.Side]agent.Agent
}

// LocalEngine plays agentA as PlayerA against agentB as PlayerB on a fresh
// board, first moving first.
func LocalEngine(rules game.Rules, first game.Side, agentA, agentB agent.Agent) (Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if err := first.Check(); err != nil {
		return nil, err
	}
	return &localEngine{
		rules: rules,
		first: first,
		agents: map[game.Side]agent.Agent{
			game.PlayerA: agentA,
			game.PlayerB: agentB,
		},
	}, nil
}

// Run executes the entire game loop until a winner is found or the board is full.
func (e *localEngine) Run() (Outcome, error) {
	pos := game.NewPosition(e.rules)
	side := e.first
	outcome := Outcome{}
	start := time.Now()

	log.Info().Msgf("player %s is starting", side)

	for turn := 1; turn <= meta.MAX_TURNS && !pos.IsDraw(); turn++ {
		d, err := e.agents[side].Decide(pos, side)
		if err != nil {
			return Outcome{}, fmt.Errorf("turn %d: %w", turn, err)
		}
		if !slices.Contains(pos.Legal(), d.Column) {
			return Outcome{}, fmt.Errorf("turn %d: %w: side %s chose column %d", turn, ErrIllegalMove, side, d.Column)
		}

		pos.Play(d.Column, side)
		outcome.MoveMetrics = append(outcome.MoveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       int(side),
			Column:       d.Column,
			Tactic:       string(d.Tactic),
			SearchMetric: d.Metric,
		})
		log.Debug().Msgf("turn %d: side %s played column %d\n%s", turn, side, d.Column, pos)

		if pos.Wins(d.Column) {
			outcome.Winner = side
			outcome.Line = pos.CollectLine(d.Column, pos.TopRow(d.Column), side)
			break
		}
		side = side.Opponent()
	}

	end := time.Now()
	outcome.Moves = pos.Moves()
	outcome.GameMetric = metrics.GameMetric{
		StartingPlayer: int(e.first),
		Winner:         int(outcome.Winner),
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
		TotalMoves:     pos.NumMoves(),
	}

	if outcome.Winner != game.Empty {
		log.Info().Msgf("game ended with winner %s after %d moves", outcome.Winner, pos.NumMoves())
	} else {
		log.Info().Msgf("game ended in a draw after %d moves", pos.NumMoves())
	}
	return outcome, nil
}
