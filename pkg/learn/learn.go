// Package learn implements the supervised weight-update procedure applied
// between games: a sigmoid-normalized gradient step toward the actual
// result, with a doubled step for moves judged "important".
package learn

import (
	"math"

	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/eval"
)

// DefaultLearningRate is the step size applied per update, absent an
// override.
const DefaultLearningRate = 0.01

// Result is the game outcome from the mover's perspective: +1 win, -1
// loss, 0 draw.
type Result int

const (
	Loss Result = -1
	Draw Result = 0
	Win  Result = 1
)

// sigmoid squashes a centipawn score to (-1, 1), matching the scale the
// learning rule compares raw results against.
func sigmoid(score eval.Score) float64 {
	return 2/(1+math.Exp(-float64(score)/400)) - 1
}

// Update applies one supervised learning step to w in place: for each
// enabled feature k, w.Feature[k] += lr * (result - sigmoid(score)) * f_k,
// where f_k is the feature's raw (pre-weight) contribution to pos,
// computed from the mover's perspective. If the move was a capture,
// promotion, gave check, or delivers mate, the step is applied twice.
func Update(w *eval.Weights, b *board.Board, move board.Move, result Result, lr float64) {
	if lr == 0 {
		lr = DefaultLearningRate
	}

	score := eval.Evaluate(b, w)
	err := float64(result) - sigmoid(score)

	steps := 1
	if isImportant(b, move) {
		steps = 2
	}

	raw := eval.RawFeatures(b, w)
	for k := eval.Feature(0); k < eval.NumFeatures; k++ {
		if !w.Enabled[k] {
			continue
		}
		delta := float32(lr * err * float64(raw[k]) * float64(steps))
		w.Feature[k] += delta
	}

	*w = w.Clamp()
}

// isImportant reports whether a move warrants a doubled learning step:
// a capture, a promotion, a move that gives check, or checkmate.
func isImportant(b *board.Board, move board.Move) bool {
	switch move.Type {
	case board.Capture, board.CapturePromotion, board.EnPassant, board.Promotion:
		return true
	}
	if b.Result().Reason == board.Checkmate {
		return true
	}
	next, ok := b.Position().Move(move)
	return ok && next.IsChecked(b.Turn().Opponent())
}
