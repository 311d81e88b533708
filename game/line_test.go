package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// board builds a position from rows listed top to bottom, 'A' and 'B' for
// pieces and '.' for empty cells. Moves are left empty.
func board(t *testing.T, line int, rows ...string) *Position {
	t.Helper()
	p := NewPosition(testRules(len(rows), line))
	for i := len(rows) - 1; i >= 0; i-- {
		require.Len(t, rows[i], len(rows), "Board must be square")
		for col, c := range rows[i] {
			switch c {
			case 'A':
				p.Place(col, PlayerA)
			case 'B':
				p.Place(col, PlayerB)
			}
		}
	}
	return p
}

func TestHasLine(t *testing.T) {
	t.Run("horizontal run", func(t *testing.T) {
		p := board(t, 3,
			".....",
			".....",
			".....",
			".....",
			".AAAB",
		)
		require.True(t, p.HasLine(1, 0, PlayerA))
		require.True(t, p.HasLine(3, 0, PlayerA))
		require.False(t, p.HasLine(4, 0, PlayerB))
	})

	t.Run("vertical run only counts downward", func(t *testing.T) {
		p := board(t, 3,
			".....",
			"A....",
			"A....",
			"A....",
			"B....",
		)
		require.True(t, p.HasLine(0, 3, PlayerA), "Top of a vertical run should win")
		require.False(t, p.HasLine(0, 2, PlayerA), "Scanning down from the middle finds only two pieces")
	})

	t.Run("rising diagonal", func(t *testing.T) {
		p := board(t, 3,
			"....",
			"..A.",
			".AB.",
			"ABB.",
		)
		require.True(t, p.HasLine(0, 0, PlayerA))
		require.True(t, p.HasLine(2, 2, PlayerA))
	})

	t.Run("falling diagonal", func(t *testing.T) {
		p := board(t, 3,
			"....",
			"B...",
			"AB..",
			"AAB.",
		)
		require.True(t, p.HasLine(2, 0, PlayerB))
		require.True(t, p.HasLine(0, 2, PlayerB))
	})

	t.Run("broken runs do not count", func(t *testing.T) {
		p := board(t, 4,
			"......",
			"......",
			"......",
			"......",
			"......",
			"AA.AAB",
		)
		require.False(t, p.HasLine(1, 0, PlayerA))
		require.False(t, p.HasLine(3, 0, PlayerA))
	})

	t.Run("short column has no vertical line", func(t *testing.T) {
		p := board(t, 3,
			"...",
			"A..",
			"A..",
		)
		require.False(t, p.HasLine(0, 1, PlayerA))
	})
}

func TestCollectLine(t *testing.T) {
	t.Run("returns the cells of the run", func(t *testing.T) {
		p := board(t, 3,
			"....",
			"..A.",
			".AB.",
			"ABB.",
		)
		got := p.CollectLine(2, 2, PlayerA)
		require.Equal(t, []Cell{{Col: 0, Row: 0}, {Col: 1, Row: 1}, {Col: 2, Row: 2}}, got)
	})

	t.Run("vertical cells are listed top down", func(t *testing.T) {
		p := board(t, 3,
			"....",
			".B..",
			".B..",
			"AB..",
		)
		got := p.CollectLine(1, 2, PlayerB)
		require.Equal(t, []Cell{{Col: 1, Row: 2}, {Col: 1, Row: 1}, {Col: 1, Row: 0}}, got)
	})

	t.Run("no run", func(t *testing.T) {
		p := board(t, 3,
			"....",
			"....",
			"....",
			"AB..",
		)
		require.Nil(t, p.CollectLine(0, 0, PlayerA))
	})
}

func TestWins(t *testing.T) {
	// Column 0 holds A three times after A0 B1 A0 B1 A0 on a 4x4 board
	p, err := FromMoves(testRules(4, 3), PlayerA, 0, 1, 0, 1, 0)
	require.NoError(t, err)

	require.True(t, p.Wins(0), "Three stacked pieces complete a line of three")
	require.False(t, p.Wins(1))
	require.False(t, p.Wins(2), "Empty columns never win")
}
