package search_test

import (
	"testing"

	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/eval"
	"github.com/corvuschess/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTableProbeStore(t *testing.T) {
	tt := search.NewTranspositionTable()

	_, _, _, _, ok := tt.Probe(1)
	require.False(t, ok)

	m := board.Move{From: board.E2, To: board.E4}
	tt.Store(1, eval.Score(50), 4, search.Exact, m)

	score, depth, bound, move, ok := tt.Probe(1)
	require.True(t, ok)
	assert.Equal(t, eval.Score(50), score)
	assert.Equal(t, 4, depth)
	assert.Equal(t, search.Exact, bound)
	assert.True(t, move.Equals(m))
}

func TestTranspositionTableDepthPreferred(t *testing.T) {
	tt := search.NewTranspositionTable()

	tt.Store(1, eval.Score(10), 6, search.Exact, board.Move{From: board.E2, To: board.E4})
	tt.Store(1, eval.Score(99), 3, search.Exact, board.Move{From: board.D2, To: board.D4})

	score, depth, _, _, ok := tt.Probe(1)
	require.True(t, ok)
	assert.Equal(t, eval.Score(10), score, "shallower store must not overwrite a deeper entry")
	assert.Equal(t, 6, depth)
}

func TestTranspositionTableEvictsOlderHalf(t *testing.T) {
	tt := search.NewTranspositionTable()

	for i := 0; i < search.TTMax+100; i++ {
		tt.Store(board.ZobristHash(i), eval.Score(i), 1, search.Exact, board.Move{})
	}

	assert.LessOrEqual(t, tt.Len(), search.TTMax)

	// The most recently stored entries must have survived the sweep.
	_, _, _, _, ok := tt.Probe(board.ZobristHash(search.TTMax + 99))
	assert.True(t, ok)
}
