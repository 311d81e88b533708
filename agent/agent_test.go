package agent

import (
	"connectline/game"
	"connectline/searcher"
	"connectline/tactics"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func rules(columns, line int) game.Rules {
	return game.Rules{Columns: columns, Line: line, Playouts: 60, Threshold: 2}
}

func testMCTS(iterations int) *searcher.MCTS {
	return searcher.NewMCTS(searcher.WithIterations(iterations), searcher.WithThreshold(2), searcher.WithSeed(11))
}

// threatPosition has A on columns 0 and 1 of the bottom row and B on column 4.
func threatPosition(t *testing.T) *game.Position {
	t.Helper()
	p, err := game.FromMoves(rules(5, 3), game.PlayerA, 0, 4, 1)
	require.NoError(t, err)
	return p
}

// forkPosition gives neither side a line in one move, but A can force one.
func forkPosition() *game.Position {
	p := game.NewPosition(rules(5, 3))
	p.Place(0, game.PlayerB)
	p.Place(2, game.PlayerA)
	return p
}

func TestDecide(t *testing.T) {
	a := NewEvaluationAgent(testMCTS(60))

	t.Run("own win first", func(t *testing.T) {
		d, err := a.Decide(threatPosition(t), game.PlayerA)
		require.NoError(t, err)
		require.Equal(t, Decision{Column: 2, Tactic: TacticWin}, d)
	})

	t.Run("block the opponent", func(t *testing.T) {
		d, err := a.Decide(threatPosition(t), game.PlayerB)
		require.NoError(t, err)
		require.Equal(t, 2, d.Column)
		require.Equal(t, TacticBlock, d.Tactic)
	})

	t.Run("forcing sequence", func(t *testing.T) {
		p := forkPosition()
		expected := tactics.FindForcingSequence(p, p.FullRange(), game.PlayerA)
		require.NotEqual(t, tactics.None, expected)

		d, err := a.Decide(p, game.PlayerA)
		require.NoError(t, err)
		require.Equal(t, expected, d.Column)
		require.Equal(t, TacticForcing, d.Tactic)
	})

	t.Run("search when nothing is forced", func(t *testing.T) {
		p := game.NewPosition(rules(5, 3))
		d, err := a.Decide(p, game.PlayerA)
		require.NoError(t, err)
		require.Equal(t, TacticMCTS, d.Tactic)
		require.Len(t, d.Policy, 5)
		require.Equal(t, searcher.BestColumn(d.Policy), d.Column)
		require.Equal(t, 0, p.NumMoves(), "Decide must not modify the position")
	})

	t.Run("invalid side", func(t *testing.T) {
		_, err := a.Decide(threatPosition(t), game.Empty)
		require.ErrorIs(t, err, game.ErrInvalidSide)
	})

	t.Run("full board", func(t *testing.T) {
		p := game.NewPosition(rules(2, 2))
		p.Place(0, game.PlayerA)
		p.Place(0, game.PlayerB)
		p.Place(1, game.PlayerB)
		p.Place(1, game.PlayerA)
		_, err := a.Decide(p, game.PlayerA)
		require.ErrorIs(t, err, ErrNoMoves)
	})
}

func TestTrainingAgent(t *testing.T) {
	t.Run("zero temperature plays the most visited column", func(t *testing.T) {
		a := NewTrainingAgent(testMCTS(60), 0, rand.New(rand.NewSource(1)))
		d, err := a.Decide(game.NewPosition(rules(5, 3)), game.PlayerA)
		require.NoError(t, err)
		require.Equal(t, searcher.BestColumn(d.Policy), d.Column)
	})

	t.Run("sampled columns were visited", func(t *testing.T) {
		a := NewTrainingAgent(testMCTS(60), 1, rand.New(rand.NewSource(1)))
		d, err := a.Decide(game.NewPosition(rules(5, 3)), game.PlayerA)
		require.NoError(t, err)
		require.Equal(t, TacticMCTS, d.Tactic)
		require.Positive(t, d.Policy[d.Column])
	})

	t.Run("tactics are not sampled", func(t *testing.T) {
		a := NewTrainingAgent(testMCTS(60), 1, rand.New(rand.NewSource(1)))
		d, err := a.Decide(threatPosition(t), game.PlayerA)
		require.NoError(t, err)
		require.Equal(t, Decision{Column: 2, Tactic: TacticWin}, d)
	})
}

func TestAdjustTemperature(t *testing.T) {
	policy := adjustTemperature([]int{1, 3, 0, 0}, 1)
	require.InDeltaSlice(t, []float64{0.25, 0.75, 0, 0}, policy, 1e-9)

	policy = adjustTemperature([]int{1, 3}, 0.5)
	require.InDeltaSlice(t, []float64{0.1, 0.9}, policy, 1e-9)

	require.Equal(t, 0, sample([]float64{0.25, 0.75, 0, 0}, 0.1))
	require.Equal(t, 1, sample([]float64{0.25, 0.75, 0, 0}, 0.5))
	require.Equal(t, 1, sample([]float64{0.25, 0.75, 0, 0}, 0.99999999))
	require.Equal(t, 3, sample([]float64{0, 0, 0, 1}, 0))
}

func TestDecideAsync(t *testing.T) {
	t.Run("a tactic answers at once", func(t *testing.T) {
		updates, err := DecideAsync(testMCTS(60), threatPosition(t), game.PlayerB)
		require.NoError(t, err)

		var got []Update
		for u := range updates {
			got = append(got, u)
		}
		require.Len(t, got, 1)
		require.NotNil(t, got[0].Decision)
		require.Equal(t, TacticBlock, got[0].Decision.Tactic)
		require.Equal(t, 2, got[0].Decision.Column)
	})

	t.Run("search progress then the decision", func(t *testing.T) {
		updates, err := DecideAsync(testMCTS(40), game.NewPosition(rules(5, 3)), game.PlayerA)
		require.NoError(t, err)

		progress := 0
		var decision *Decision
		for u := range updates {
			if u.Decision != nil {
				decision = u.Decision
				continue
			}
			progress++
		}
		require.Equal(t, 40, progress)
		require.NotNil(t, decision)
		require.Equal(t, TacticMCTS, decision.Tactic)
	})

	t.Run("invalid side", func(t *testing.T) {
		_, err := DecideAsync(testMCTS(10), game.NewPosition(rules(5, 3)), game.Side(5))
		require.ErrorIs(t, err, game.ErrInvalidSide)
	})
}
