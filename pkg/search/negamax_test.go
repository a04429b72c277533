package search_test

import (
	"testing"

	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/board/fen"
	"github.com/corvuschess/kestrel/pkg/eval"
	"github.com/corvuschess/kestrel/pkg/search"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)
	zt := board.NewZobristTable(1)
	return board.NewBoard(zt, pos, turn, noprogress, fullmoves)
}

func TestSearchFindsMateInOne(t *testing.T) {
	// White to move: Ra1-a8 is a back-rank mate, the king boxed in by its own pawns.
	b := newTestBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	w := eval.DefaultWeights()
	s := search.NewSearcher(search.NewTranspositionTable(), &w)

	score := s.Search(b, 3, eval.NegInf, eval.Inf)
	require.True(t, score.IsMate(), "expected a mate score, got %v", score)
	require.Greater(t, score, eval.Score(0), "mate should be found in White's favor")
}

func TestSearchStalemateIsDraw(t *testing.T) {
	// Textbook stalemate: black king h8 has no legal moves and is not in check.
	b := newTestBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	w := eval.DefaultWeights()
	s := search.NewSearcher(search.NewTranspositionTable(), &w)

	score := s.Search(b, 2, eval.NegInf, eval.Inf)
	require.Equal(t, eval.DrawScore, score)
}

func TestRootReturnsAMoveWhenGivenAHint(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	w := eval.DefaultWeights()
	s := search.NewSearcher(search.NewTranspositionTable(), &w)

	moves := b.Position().PseudoLegalMoves(b.Turn())
	require.NotEmpty(t, moves)

	hint := board.Move{Type: board.Jump, From: board.E2, To: board.E4, Piece: board.Pawn}
	move, _ := s.Root(b, moves, hint, 2, eval.NegInf, eval.Inf)
	require.NotEqual(t, board.Move{}, move)
}

func TestNegInfAndInfNegateWithoutOverflow(t *testing.T) {
	require.Equal(t, eval.Inf, -eval.NegInf)
	require.Equal(t, eval.NegInf, -eval.Inf)
}
