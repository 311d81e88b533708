package agent

import (
	"connectline/game"
	"connectline/searcher"
)

// Update is one message of an asynchronous decision: MCTS progress, or the
// final Decision when it is set.
type Update struct {
	Progress searcher.Progress
	Decision *Decision
}

// DecideAsync decides like the evaluation agent but streams MCTS progress. A
// move settled by a tactic produces the Decision alone. The channel is closed
// after the Decision is sent.
func DecideAsync(mcts *searcher.MCTS, pos *game.Position, side game.Side) (<-chan Update, error) {
	if err := check(pos, side); err != nil {
		return nil, err
	}
	updates := make(chan Update, 1)
	if d, ok := tactical(pos, side); ok {
		logDecision(side, d)
		updates <- Update{Decision: &d}
		close(updates)
		return updates, nil
	}

	events, err := mcts.Start(pos, side)
	if err != nil {
		return nil, err
	}
	go func() {
		defer close(updates)
		for event := range events {
			if event.Result == nil {
				updates <- Update{Progress: event.Progress}
				continue
			}
			d := fromResult(*event.Result, event.Result.Column)
			logDecision(side, d)
			updates <- Update{Progress: event.Progress, Decision: &d}
		}
	}()
	return updates, nil
}
