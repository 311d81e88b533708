package experiments

import (
	"connectline/experiments/metrics"
	"connectline/game"
	"time"

	"github.com/rs/zerolog/log"
)

// Throughput is the search speed measured for one agent config.
type Throughput struct {
	Config              metrics.AgentConfig
	Searches            int
	IterationsPerSecond float64
}

// RunThroughputExperiment plays each iteration budget against itself, for the
// same playing strength and similar game length, and reports how many
// iterations per second the searches ran.
func RunThroughputExperiment(s Settings, budgets ...int) ([]Throughput, string, error) {
	configs := make([]metrics.AgentConfig, len(budgets))
	for i, iterations := range budgets {
		configs[i] = metrics.AgentConfig{ID: i + 1, Iterations: iterations, Threshold: game.DefaultThreshold(iterations)}
	}

	results := make([]Throughput, len(configs))
	moves := []metrics.MoveRecord{}
	games := []metrics.GameRecord{}
	count := 0
	for i, config := range configs {
		results[i].Config = config
		var searched time.Duration
		iterations := 0
		for g := 0; g < s.Games; g++ {
			count++
			outcome, err := runGame(s, game.PlayerA, config, config, s.Seed+uint64(count))
			if err != nil {
				return nil, "", err
			}
			games = append(games, metrics.GameRecord{ID: count, Agent1: config.ID, Agent2: config.ID, GameMetric: outcome.GameMetric})
			for _, mm := range outcome.MoveMetrics {
				moves = append(moves, metrics.MoveRecord{Game: count, MoveMetric: mm})
				if mm.Completed == 0 {
					continue // Decided by a tactic
				}
				results[i].Searches++
				iterations += mm.Completed
				searched += mm.Duration
			}
		}
		if searched > 0 {
			results[i].IterationsPerSecond = float64(iterations) / searched.Seconds()
		}
		log.Info().Msgf("agent %d: %.0f iterations/s over %d searches", config.ID, results[i].IterationsPerSecond, results[i].Searches)
	}

	dir, err := store(s.OutputDir, "throughput", configs, games, moves)
	return results, dir, err
}
