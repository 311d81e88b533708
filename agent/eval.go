package agent

import (
	"connectline/game"
	"connectline/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that always plays the most visited
// column when no tactic applies.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) Decide(pos *game.Position, side game.Side) (Decision, error) {
	if err := check(pos, side); err != nil {
		return Decision{}, err
	}
	if d, ok := tactical(pos, side); ok {
		logDecision(side, d)
		return d, nil
	}
	result, err := a.mcts.Search(pos, side)
	if err != nil {
		return Decision{}, err
	}
	d := fromResult(result, result.Column)
	logDecision(side, d)
	return d, nil
}
