package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(5, 2)
	for i := 0; i < 5; i++ {
		c.AddIteration()
	}
	c.AddFullPlayout()
	c.AddExpansion()
	c.AddExpansion()

	got := c.Complete()

	require.Equal(t, 5, got.Iterations)
	require.Equal(t, 2, got.Threshold)
	require.Equal(t, 5, got.Completed)
	require.Equal(t, 1, got.FullPlayouts)
	require.Equal(t, 2, got.Expansions)

	c.Start(3, 0)
	require.Equal(t, 0, c.Complete().Completed, "Start should reset counters")

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "strength")
	require.NoError(t, err)

	start := time.UnixMilli(1_700_000_000_000)
	games := []GameRecord{{
		ID:     1,
		Agent1: 0,
		Agent2: 2,
		GameMetric: GameMetric{
			StartingPlayer: 1,
			Winner:         -1,
			StartTime:      start,
			EndTime:        start.Add(1500 * time.Millisecond),
			Duration:       1500 * time.Millisecond,
			TotalMoves:     17,
		},
	}}
	moves := []MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: 1, Column: 3, Tactic: "mcts", SearchMetric: SearchMetric{Iterations: 100, Completed: 100}}},
		{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: -1, Column: 3, Tactic: "block"}},
	}

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 2, Iterations: 100, Threshold: 1}}))
	require.NoError(t, w.WriteGameRecords(games))
	require.NoError(t, w.WriteMoveRecords(moves))

	gotGames, err := parquet.ReadFile[gameRecordRow](filepath.Join(w.Dir(), "game_records.parquet"))
	require.NoError(t, err)
	require.Equal(t, []gameRecordRow{{
		ID:             1,
		Agent2:         2,
		StartingPlayer: 1,
		Winner:         -1,
		StartUnixMs:    1_700_000_000_000,
		EndUnixMs:      1_700_000_001_500,
		DurationMs:     1500,
		TotalMoves:     17,
	}}, gotGames)

	gotMoves, err := parquet.ReadFile[moveRecordRow](filepath.Join(w.Dir(), "move_records.parquet"))
	require.NoError(t, err)
	require.Len(t, gotMoves, 2)
	require.Equal(t, "mcts", gotMoves[0].Tactic)
	require.Equal(t, int64(100), gotMoves[0].Completed)
	require.Equal(t, "block", gotMoves[1].Tactic)
	require.Equal(t, int64(-1), gotMoves[1].Player)
}
