package agent

import (
	"connectline/game"
	"connectline/searcher"
	"math"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples its MCTS moves from the root
// visit counts sharpened or flattened by temperature. A temperature of zero or
// less plays the most visited column. Tactical moves are never sampled.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) Agent {
	return trainingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a trainingAgent) Decide(pos *game.Position, side game.Side) (Decision, error) {
	if err := check(pos, side); err != nil {
		return Decision{}, err
	}
	if d, ok := tactical(pos, side); ok {
		return d, nil
	}
	result, err := a.mcts.Search(pos, side)
	if err != nil {
		return Decision{}, err
	}
	column := result.Column
	if a.temperature > 0 {
		column = sample(adjustTemperature(result.Policy, a.temperature), a.rng.Float64())
	}
	return fromResult(result, column), nil
}

func adjustTemperature(visits []int, temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(visits))
	for col, v := range visits {
		policy[col] = math.Pow(float64(v), exponent)
		sum += policy[col]
	}
	if sum == 0 {
		return policy
	}
	// Normalize
	for col := range policy {
		policy[col] /= sum
	}
	return policy
}

// sample picks the column whose cumulative probability first exceeds u.
func sample(policy []float64, u float64) int {
	cumulative := 0.0
	last := 0
	for col, prob := range policy {
		if prob == 0 {
			continue
		}
		last = col
		cumulative += prob
		if u < cumulative {
			return col
		}
	}
	return last // Fallback in case of rounding errors
}
