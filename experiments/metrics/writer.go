package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type AgentConfig struct {
	ID          int
	Iterations  int
	Threshold   int
	Temperature float64 // 0 plays the most visited column
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID, plays PlayerA
	Agent2 int // AgentConfig.ID, plays PlayerB
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type agentConfigRow struct {
	ID          int64   `parquet:"id"`
	Iterations  int64   `parquet:"iterations"`
	Threshold   int64   `parquet:"threshold"`
	Temperature float64 `parquet:"temperature"`
}

type gameRecordRow struct {
	ID             int64 `parquet:"id"`
	Agent1         int64 `parquet:"agent1"`
	Agent2         int64 `parquet:"agent2"`
	StartingPlayer int64 `parquet:"starting_player"`
	Winner         int64 `parquet:"winner"`
	StartUnixMs    int64 `parquet:"start_unix_ms"`
	EndUnixMs      int64 `parquet:"end_unix_ms"`
	DurationMs     int64 `parquet:"duration_ms"`
	TotalMoves     int64 `parquet:"total_moves"`
}

type moveRecordRow struct {
	Game         int64  `parquet:"game"`
	Step         int64  `parquet:"step"`
	Player       int64  `parquet:"player"`
	Column       int64  `parquet:"column"`
	Tactic       string `parquet:"tactic,dict"`
	Iterations   int64  `parquet:"iterations"`
	Completed    int64  `parquet:"completed"`
	FullPlayouts int64  `parquet:"full_playouts"`
	Expansions   int64  `parquet:"expansions"`
	DurationMs   int64  `parquet:"duration_ms"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for one experiment under root.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([]agentConfigRow, len(configs))
	for i, config := range configs {
		rows[i] = agentConfigRow{
			ID:          int64(config.ID),
			Iterations:  int64(config.Iterations),
			Threshold:   int64(config.Threshold),
			Temperature: config.Temperature,
		}
	}
	if err := writeParquet(filepath.Join(w.baseDir, "agent_configs.parquet"), rows); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([]gameRecordRow, len(records))
	for i, record := range records {
		rows[i] = gameRecordRow{
			ID:             int64(record.ID),
			Agent1:         int64(record.Agent1),
			Agent2:         int64(record.Agent2),
			StartingPlayer: int64(record.StartingPlayer),
			Winner:         int64(record.Winner),
			StartUnixMs:    record.StartTime.UnixMilli(),
			EndUnixMs:      record.EndTime.UnixMilli(),
			DurationMs:     record.Duration.Milliseconds(),
			TotalMoves:     int64(record.TotalMoves),
		}
	}
	if err := writeParquet(filepath.Join(w.baseDir, "game_records.parquet"), rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([]moveRecordRow, len(records))
	for i, record := range records {
		rows[i] = moveRecordRow{
			Game:         int64(record.Game),
			Step:         int64(record.Step),
			Player:       int64(record.Player),
			Column:       int64(record.Column),
			Tactic:       record.Tactic,
			Iterations:   int64(record.Iterations),
			Completed:    int64(record.Completed),
			FullPlayouts: int64(record.FullPlayouts),
			Expansions:   int64(record.Expansions),
			DurationMs:   record.Duration.Milliseconds(),
		}
	}
	if err := writeParquet(filepath.Join(w.baseDir, "move_records.parquet"), rows); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

func writeParquet[T any](path string, rows []T) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[T](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	if _, err := w.Write(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return f.Sync()
}
