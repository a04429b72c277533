package search

import (
	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/eval"
)

// nullMoveReduction is the depth reduction (R) applied to the shallow
// re-search after a null move.
const nullMoveReduction = 2

// Searcher holds the mutable state shared across one search call: the
// transposition table and the move-ordering heuristics it feeds into. A
// Searcher is reused across iterative-deepening iterations within a single
// move, but its killer/history tables are typically reset between moves.
type Searcher struct {
	TT      *TranspositionTable
	Killers *KillerTable
	History *HistoryTable
	Weights *eval.Weights

	Nodes uint64
}

func NewSearcher(tt *TranspositionTable, w *eval.Weights) *Searcher {
	return &Searcher{
		TT:      tt,
		Killers: NewKillerTable(),
		History: NewHistoryTable(),
		Weights: w,
	}
}

// Search runs a negamax search of the given depth from the board's current
// position and returns the score from the side-to-move's perspective. The
// best move found, if any, can be recovered from the transposition table
// after the call via TT.Probe(b.Hash()).
func (s *Searcher) Search(b *board.Board, depth int, alpha, beta eval.Score) eval.Score {
	return s.negamax(b, depth, 0, alpha, beta, true)
}

func (s *Searcher) negamax(b *board.Board, depth, ply int, alpha, beta eval.Score, nullOK bool) eval.Score {
	s.Nodes++

	if b.Result().Outcome == board.Draw {
		return eval.DrawScore
	}

	alphaOrig := alpha
	hash := b.Hash()

	var hint board.Move
	if score, d, bound, mv, ok := s.TT.Probe(hash); ok {
		hint = mv
		if d >= depth {
			switch bound {
			case Exact:
				return score
			case Lower:
				if score > alpha {
					alpha = score
				}
			case Upper:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	if depth <= 0 {
		return s.quiesce(b, alpha, beta, QMax)
	}

	turn := b.Turn()
	inCheck := b.Position().IsChecked(turn)

	if nullOK && !inCheck && depth > nullMoveReduction && hasMinorOrMajor(b.Position(), turn) {
		b.PushNull()
		score := -s.negamax(b, depth-1-nullMoveReduction, ply+1, -beta, -beta+1, false)
		b.PopNull()
		if score >= beta {
			return beta
		}
	}

	moves := board.NewMoveList(b.Position().PseudoLegalMoves(turn), board.First(hint, s.priorityFn(turn, ply)))

	bestScore := eval.NegInf
	var bestMove board.Move
	hasLegalMove := false

	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !b.PushMove(m) {
			continue
		}
		hasLegalMove = true

		child := s.negamax(b, depth-1, ply+1, -beta, -alpha, true)
		score := eval.IncrementMateDistance(-child)
		b.PopMove()

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			if isQuiet(m) {
				s.History.Add(turn, m.From, m.To, depth)
			}
		}
		if alpha >= beta {
			if isQuiet(m) {
				s.Killers.Add(ply, m)
			}
			break
		}
	}

	if !hasLegalMove {
		if inCheck {
			bestScore = -eval.MateScore
		} else {
			bestScore = eval.DrawScore
		}
	}

	bound := Exact
	switch {
	case bestScore <= alphaOrig:
		bound = Upper
	case bestScore >= beta:
		bound = Lower
	}
	s.TT.Store(hash, bestScore, depth, bound, bestMove)

	return bestScore
}

// Root runs one root-level search over the given legal moves at depth,
// within the given alpha-beta window, and returns the best move and its
// score. hint, if non-zero, is tried first, matching the previous
// iteration's best move. Used by the iterative-deepening driver, which
// owns the window and wide-vs-aspiration fallback policy.
func (s *Searcher) Root(b *board.Board, moves []board.Move, hint board.Move, depth int, alpha, beta eval.Score) (board.Move, eval.Score) {
	list := board.NewMoveList(moves, board.First(hint, s.priorityFn(b.Turn(), 0)))

	bestScore := eval.NegInf
	var bestMove board.Move
	first := true

	for {
		m, ok := list.Next()
		if !ok {
			break
		}
		if !b.PushMove(m) {
			continue
		}
		child := s.negamax(b, depth-1, 1, -beta, -alpha, true)
		score := eval.IncrementMateDistance(-child)
		b.PopMove()

		if first || score > bestScore {
			bestScore = score
			bestMove = m
			first = false
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return bestMove, bestScore
}

// hasMinorOrMajor reports whether side owns at least one knight, bishop,
// rook or queen, the standard zugzwang guard for null-move pruning.
func hasMinorOrMajor(pos *board.Position, side board.Color) bool {
	for _, p := range board.Officers {
		if pos.Piece(side, p) != 0 {
			return true
		}
	}
	return false
}
