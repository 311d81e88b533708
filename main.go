package main

import (
	"connectline/communication/client"
	"connectline/communication/server"
	"connectline/config"
	"connectline/engine"
	"connectline/experiments"
	"connectline/game"
	"connectline/searcher"
	"connectline/tui"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	mode := flag.String("mode", "play", "One of play, serve, match or experiment")
	columns := flag.Int("columns", cfg.Rules.Columns, "Board width and height")
	line := flag.Int("line", cfg.Rules.Line, "Pieces in a row needed to win")
	playouts := flag.Int("playouts", cfg.Rules.Playouts, "MCTS iterations per decision")
	threshold := flag.Int("threshold", cfg.Rules.Threshold, "Visits before a leaf is expanded, derived from -playouts when not set")
	addr := flag.String("addr", cfg.Server.Address, "Listen address in serve mode")
	serverURL := flag.String("server", cfg.Server.URL, "Decision server to ask in play mode, empty to search locally")
	human := flag.String("human", "A", "Side the human plays in play mode (A or B)")
	first := flag.String("first", "A", "Side that moves first (A or B)")
	opponent := flag.String("opponent", "", "Decision server playing B in match mode")
	experimentName := flag.String("experiment", "iterations", "One of iterations, threshold, temperature or throughput")
	games := flag.Int("games", cfg.Experiment.Games, "Games per experiment match up")
	out := flag.String("out", cfg.Experiment.OutputDir, "Experiment output directory")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Experiment seed")
	level := flag.String("log-level", cfg.Log.Level, "Log level")
	save := flag.Bool("save-config", false, "Write the effective config to the user config file")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg.Rules = game.Rules{Columns: *columns, Line: *line, Playouts: *playouts, Threshold: *threshold}
	if set["playouts"] && !set["threshold"] {
		cfg.Rules.Threshold = game.DefaultThreshold(*playouts)
	}
	cfg.Server.Address = *addr
	cfg.Server.URL = *serverURL
	cfg.Log.Level = *level
	cfg.Experiment.Games = *games
	cfg.Experiment.OutputDir = *out
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(cfg.LogLevel())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if *save {
		path, err := cfg.Save()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to save config")
		}
		log.Info().Msgf("saved config to %s", path)
	}

	switch *mode {
	case "play":
		err = play(cfg, *human, *first)
	case "serve":
		err = server.New(cfg.Rules).ListenAndServe(cfg.Server.Address)
	case "match":
		err = match(cfg, *first, *opponent)
	case "experiment":
		err = experiment(cfg, *experimentName, *seed)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func parseSide(s string) (game.Side, error) {
	switch s {
	case "A", "a":
		return game.PlayerA, nil
	case "B", "b":
		return game.PlayerB, nil
	}
	return game.Empty, fmt.Errorf("%w: %q", game.ErrInvalidSide, s)
}

// play runs the terminal client. Logs go to a file so they do not garble the
// board.
func play(cfg *config.Config, humanFlag, firstFlag string) error {
	human, err := parseSide(humanFlag)
	if err != nil {
		return err
	}
	first, err := parseSide(firstFlag)
	if err != nil {
		return err
	}

	logPath, err := xdg.StateFile("connectline/play.log")
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.Logger = log.Output(logFile)

	decide := tui.LocalDecider(searcher.NewMCTS(searcher.FromRules(cfg.Rules)))
	if cfg.Server.URL != "" {
		decide = tui.RemoteDecider(client.New(cfg.Server.URL))
	}
	_, err = tea.NewProgram(tui.NewModel(cfg.Rules, human, first, decide), tea.WithAltScreen()).Run()
	return err
}

// match plays the server configured for play mode as A against opponent as B.
func match(cfg *config.Config, firstFlag, opponent string) error {
	first, err := parseSide(firstFlag)
	if err != nil {
		return err
	}
	if cfg.Server.URL == "" || opponent == "" {
		return fmt.Errorf("match mode needs -server and -opponent")
	}
	e, err := engine.RemoteEngine(cfg.Rules, first, cfg.Server.URL, opponent)
	if err != nil {
		return err
	}
	outcome, err := e.Run()
	if err != nil {
		return err
	}
	log.Info().Msgf("winner %s, line %v, moves %v", outcome.Winner, outcome.Line, outcome.Moves)
	return nil
}

func experiment(cfg *config.Config, name string, seed uint64) error {
	s := experiments.Settings{
		Rules:     cfg.Rules,
		Games:     cfg.Experiment.Games,
		OutputDir: cfg.Experiment.OutputDir,
		Seed:      seed,
	}
	var err error
	switch name {
	case "iterations":
		_, err = experiments.RunIterationsExperiment(s)
	case "threshold":
		_, err = experiments.RunThresholdExperiment(s)
	case "temperature":
		_, err = experiments.RunTemperatureExperiment(s, cfg.Experiment.Temperature)
	case "throughput":
		_, _, err = experiments.RunThroughputExperiment(s, max(1, cfg.Rules.Playouts/4), max(1, cfg.Rules.Playouts/2), cfg.Rules.Playouts)
	default:
		err = fmt.Errorf("unknown experiment %q", name)
	}
	return err
}
