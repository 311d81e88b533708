package tui

import (
	"connectline/agent"
	"connectline/communication"
	"connectline/communication/client"
	"connectline/game"
	"connectline/searcher"
	"context"

	"github.com/rs/zerolog/log"
)

// Decider starts a decision for side and streams its progress. The channel
// is closed after the Decision, or without one if the decision failed.
type Decider func(pos *game.Position, side game.Side) (<-chan agent.Update, error)

// LocalDecider searches in this process.
func LocalDecider(mcts *searcher.MCTS) Decider {
	return func(pos *game.Position, side game.Side) (<-chan agent.Update, error) {
		return agent.DecideAsync(mcts, pos, side)
	}
}

// RemoteDecider asks a decision server over its streaming endpoint.
func RemoteDecider(c *client.Client) Decider {
	return func(pos *game.Position, side game.Side) (<-chan agent.Update, error) {
		if err := side.Check(); err != nil {
			return nil, err
		}
		request := communication.NewRequest(pos, side)
		updates := make(chan agent.Update, 16)
		go func() {
			defer close(updates)
			resp, err := c.Stream(context.Background(), request, func(p communication.Progress) {
				updates <- agent.Update{Progress: searcher.Progress{Iteration: p.Iteration, Total: p.Total}}
			})
			if err != nil {
				log.Error().Err(err).Msg("remote decision failed")
				return
			}
			updates <- agent.Update{Decision: &agent.Decision{
				Column: resp.Column,
				Tactic: agent.Tactic(resp.Tactic),
				Policy: resp.Policy,
			}}
		}()
		return updates, nil
	}
}
