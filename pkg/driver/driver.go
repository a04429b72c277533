// Package driver implements the iterative-deepening, aspiration-window
// search loop that turns the negamax core into a blocking best-move call:
// book probe, phase-aware depth/time budget, then iterative deepening.
package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/book"
	"github.com/corvuschess/kestrel/pkg/eval"
	"github.com/corvuschess/kestrel/pkg/phase"
	"github.com/corvuschess/kestrel/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options are per-call overrides of the phase-derived budget.
type Options struct {
	// DepthLimit, if set, replaces the phase budget's search depth, whether
	// it is lower or higher.
	DepthLimit lang.Optional[int]
	// TimeLimit, if set, overrides the phase's wall-clock time budget.
	TimeLimit lang.Optional[time.Duration]
}

// aspirationWindow is the half-width (in centipawns) of the root search
// window tried before falling back to a wide, unconstrained search.
const aspirationWindow = eval.Score(50)

// Driver drives a single blocking best-move computation. Not safe for
// concurrent use by multiple goroutines over the same Board.
type Driver struct {
	Searcher *search.Searcher
	Book     *book.Book

	// Budgets overrides phase.Budgets, e.g. when loaded from a weights file.
	Budgets [phase.NumPhases]phase.Budget
}

// New returns a Driver with the default phase budgets.
func New(tt *search.TranspositionTable, w *eval.Weights, bk *book.Book) *Driver {
	return &Driver{
		Searcher: search.NewSearcher(tt, w),
		Book:     bk,
		Budgets:  phase.Budgets,
	}
}

// Result is the outcome of a single BestMove call, for logging and PV display.
type Result struct {
	Move  board.Move
	Score eval.Score
	Depth int
	Nodes uint64
	Time  time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("{move=%v, score=%v, depth=%v, nodes=%v, time=%v}", r.Move, r.Score, r.Depth, r.Nodes, r.Time)
}

// BestMove returns the best move found for the board's current position
// within the phase's wall-clock budget, or ctx's deadline, whichever is
// tighter. The deadline is checked after each completed depth, so a depth
// already in progress runs to completion. Blocks until a move is ready.
// Panics if there is no legal move; callers must check the position is not
// already terminal.
func (d *Driver) BestMove(ctx context.Context, b *board.Board, opts ...Options) Result {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	start := time.Now()
	turn := b.Turn()

	if m, ok := d.Book.Probe(b.Position(), turn); ok {
		logw.Debugf(ctx, "Book move for %v: %v", b.Position(), m)
		return Result{Move: m, Time: time.Since(start)}
	}

	d.Searcher.Killers = search.NewKillerTable()
	d.Searcher.History = search.NewHistoryTable()

	ph := phase.Classify(eval.NonPawnMaterial(b.Position()))
	budget := d.Budgets[ph]
	if v, ok := opt.DepthLimit.V(); ok {
		budget.Depth = v
	}
	if v, ok := opt.TimeLimit.V(); ok {
		budget.Time = v
	}

	deadline := start.Add(budget.Time)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}

	legal := legalMoves(b, turn)
	if len(legal) == 0 {
		panic("driver: BestMove called on a position with no legal moves")
	}

	best := legal[0]
	var score eval.Score

	depth := 1
	for ; depth <= budget.Depth; depth++ {
		var move board.Move
		var s eval.Score

		if depth <= 2 {
			move, s = d.Searcher.Root(b, legal, best, depth, eval.NegInf, eval.Inf)
		} else {
			alpha, beta := score-aspirationWindow, score+aspirationWindow
			move, s = d.Searcher.Root(b, legal, best, depth, alpha, beta)
			if s <= alpha || s >= beta {
				move, s = d.Searcher.Root(b, legal, move, depth, eval.NegInf, eval.Inf)
			}
		}

		best, score = move, s
		logw.Debugf(ctx, "Searched %v: depth=%v score=%v move=%v nodes=%v", b.Position(), depth, score, best, d.Searcher.Nodes)

		if time.Now().After(deadline) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	return Result{Move: best, Score: score, Depth: depth, Nodes: d.Searcher.Nodes, Time: time.Since(start)}
}

// legalMoves filters the position's pseudo-legal moves down to legal ones,
// leaving the position itself unmodified.
func legalMoves(b *board.Board, turn board.Color) []board.Move {
	pseudo := b.Position().PseudoLegalMoves(turn)
	ret := make([]board.Move, 0, len(pseudo))
	for _, m := range pseudo {
		if b.PushMove(m) {
			b.PopMove()
			ret = append(ret, m)
		}
	}
	return ret
}
