package eval

import "github.com/corvuschess/kestrel/pkg/board"

// WMax is the absolute clamp on a single feature weight. A weight read in excess of
// this bound indicates a corrupted or foreign weights file; callers must reset the
// entire Weights value to DefaultWeights() rather than trust any part of it.
const WMax float32 = 50

// Weights is the full set of tunable evaluator parameters: per-feature multipliers,
// piece values and piece-square tables. It is the unit persisted by pkg/weights and
// mutated in place by pkg/learn.
type Weights struct {
	Feature [NumFeatures]float32
	Enabled [NumFeatures]bool

	Piece [board.NumPieces]Score
	PSQT  [board.NumPieces][64]Score
}

// DefaultWeights returns the compiled-in defaults: every feature enabled at unit
// weight, piece values and piece-square tables per the standard centipawn scale.
func DefaultWeights() Weights {
	w := Weights{
		Piece: defaultPieceValues,
		PSQT:  defaultPSQT,
	}
	for f := Feature(0); f < NumFeatures; f++ {
		w.Feature[f] = 1
		w.Enabled[f] = true
	}
	return w
}

// IsValid reports whether every feature weight satisfies |w| <= WMax.
func (w Weights) IsValid() bool {
	for f := Feature(0); f < NumFeatures; f++ {
		if w.Feature[f] > WMax || w.Feature[f] < -WMax {
			return false
		}
	}
	return true
}

// Clamp returns a copy of w with every feature weight clamped to [-WMax, WMax].
func (w Weights) Clamp() Weights {
	ret := w
	for f := Feature(0); f < NumFeatures; f++ {
		if ret.Feature[f] > WMax {
			ret.Feature[f] = WMax
		}
		if ret.Feature[f] < -WMax {
			ret.Feature[f] = -WMax
		}
	}
	return ret
}

var defaultPieceValues = [board.NumPieces]Score{
	board.NoPiece: 0,
	board.Pawn:    100,
	board.Bishop:  330,
	board.Knight:  320,
	board.Rook:    500,
	board.Queen:   900,
	board.King:    20000,
}
