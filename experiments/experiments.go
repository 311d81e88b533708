package experiments

import (
	"connectline/agent"
	"connectline/engine"
	"connectline/experiments/metrics"
	"connectline/game"
	"connectline/searcher"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Settings are shared by every game of an experiment.
type Settings struct {
	Rules     game.Rules
	Games     int // Per match up
	OutputDir string
	Seed      uint64
}

// RunIterationsExperiment pairs agents with growing iteration budgets against
// a baseline that uses the configured rules.
func RunIterationsExperiment(s Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Iterations: s.Rules.Playouts, Threshold: s.Rules.Threshold}
	configs := []metrics.AgentConfig{}
	for i, factor := range []float64{0.25, 0.5, 1, 2} {
		iterations := max(1, int(float64(s.Rules.Playouts)*factor))
		configs = append(configs, metrics.AgentConfig{
			ID:         i + 1,
			Iterations: iterations,
			Threshold:  game.DefaultThreshold(iterations),
		})
	}

	// Each matchup pairs the baseline agent against a scaled agent
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return runExperiment(s, "iterations", append(configs, baseline), matchUps)
}

// RunThresholdExperiment varies the expansion threshold at a fixed iteration
// budget.
func RunThresholdExperiment(s Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Iterations: s.Rules.Playouts, Threshold: s.Rules.Threshold}
	configs := []metrics.AgentConfig{}
	for i, threshold := range []int{0, baseline.Threshold / 2, baseline.Threshold * 2} {
		configs = append(configs, metrics.AgentConfig{
			ID:         i + 1,
			Iterations: baseline.Iterations,
			Threshold:  threshold,
		})
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return runExperiment(s, "threshold", append(configs, baseline), matchUps)
}

// RunTemperatureExperiment plays sampling agents against the deterministic
// baseline.
func RunTemperatureExperiment(s Settings, temperature float64) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Iterations: s.Rules.Playouts, Threshold: s.Rules.Threshold}
	sampling := baseline
	sampling.ID = 1
	sampling.Temperature = temperature

	matchUps := [][2]metrics.AgentConfig{{baseline, sampling}}
	return runExperiment(s, "temperature", []metrics.AgentConfig{baseline, sampling}, matchUps)
}

// runExperiment plays every match up s.Games times, alternating the side that
// moves first, and writes the configs and records under s.OutputDir. It
// returns the directory the records were written to.
func runExperiment(s Settings, name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < s.Games; i++ {
			first := game.PlayerA
			if i%2 == 1 {
				first = game.PlayerB
			}
			count++
			outcome, err := runGame(s, first, config1, config2, s.Seed+uint64(count))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: outcome.GameMetric,
			})
			for _, mm := range outcome.MoveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, outcome.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)
	return store(s.OutputDir, name, configs, gameRecords, moveRecords)
}

func store(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", err
	}
	log.Info().Msgf("stored %d games and %d moves in %s", len(games), len(moves), writer.Dir())
	return writer.Dir(), nil
}

// runGame plays config1 as PlayerA against config2 as PlayerB.
func runGame(s Settings, first game.Side, config1, config2 metrics.AgentConfig, seed uint64) (engine.Outcome, error) {
	e, err := engine.LocalEngine(s.Rules, first, createAgent(config1, seed), createAgent(config2, seed+1))
	if err != nil {
		return engine.Outcome{}, err
	}
	return e.Run()
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	mcts := searcher.NewMCTS(
		searcher.WithIterations(config.Iterations),
		searcher.WithThreshold(config.Threshold),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)
	if config.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, config.Temperature, rand.New(rand.NewSource(seed)))
	}
	return agent.NewEvaluationAgent(mcts)
}
