package search

import (
	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/eval"
)

// QMax bounds how many plies a quiescence search may extend, to guard
// against runaway capture chains on contrived positions.
const QMax = 5

// quiesce extends the search through captures only, starting from a
// stand-pat evaluation, to avoid misjudging positions mid-capture.
func (s *Searcher) quiesce(b *board.Board, alpha, beta eval.Score, remaining int) eval.Score {
	s.Nodes++

	standPat := eval.Evaluate(b, s.Weights)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if remaining <= 0 {
		return alpha
	}

	turn := b.Turn()
	captures := filterSafeCaptures(b.Position(), turn, filterCaptures(b.Position().PseudoLegalMoves(turn)))
	list := board.NewMoveList(captures, capturePriorityFn)

	for {
		m, ok := list.Next()
		if !ok {
			break
		}
		if !b.PushMove(m) {
			continue
		}
		score := -s.quiesce(b, -beta, -alpha, remaining-1)
		b.PopMove()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func filterCaptures(moves []board.Move) []board.Move {
	ret := make([]board.Move, 0, len(moves))
	for _, m := range moves {
		if !isQuiet(m) {
			ret = append(ret, m)
		}
	}
	return ret
}

// filterSafeCaptures drops captures that lose material outright, so quiescence doesn't
// waste depth exploring exchanges no rational player would enter. A king recapture into
// check is still filtered out separately by PushMove, so skipping unsafe ones here is
// only ever a pruning decision, never a legality one.
func filterSafeCaptures(pos *board.Position, turn board.Color, moves []board.Move) []board.Move {
	ret := make([]board.Move, 0, len(moves))
	for _, m := range moves {
		if m.Type == board.CapturePromotion || eval.IsMoveSafe(pos, turn, m) {
			ret = append(ret, m)
		}
	}
	return ret
}
