// Package eval contains the static position evaluator: a weighted sum of features
// returning a centipawn score from the side-to-move perspective (negamax convention).
package eval

import (
	"fmt"
	"math"

	"github.com/corvuschess/kestrel/pkg/board"
)

// Score is a signed search/evaluation score in centipawns. Positive favors the side
// to move. Wide enough to carry mate-distance scores, unlike board.Score which is
// reserved for compact move-level hints.
type Score int32

const (
	// Inf and NegInf are exact negatives of each other so that negating either,
	// as every negamax recursion does, never overflows Score's int32 range.
	Inf      Score = math.MaxInt32
	NegInf   Score = -Inf
	MinScore Score = -1000000
	MaxScore Score = 1000000

	// MateScore is the magnitude returned for an immediate checkmate of the side to
	// move, per the evaluator's terminal-position rule.
	MateScore Score = 100000

	// DrawScore is returned for stalemate or insufficient material.
	DrawScore Score = 0
)

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}

// NominalValue returns the default centipawn value of a piece kind, used for capture
// ordering (MVV-LVA) and exchange safety independent of any loaded weights file.
func NominalValue(p board.Piece) Score {
	return defaultPieceValues[p]
}

// Negate returns the score from the opponent's point of view.
func (s Score) Negate() Score {
	return -s
}

// IsMate reports whether s represents a forced mate (for or against the side to move).
func (s Score) IsMate() bool {
	return s > MateScore-1000 || s < -(MateScore-1000)
}

// IncrementMateDistance lengthens a mate score by one ply as it is propagated up the
// search tree, so that a shorter forced mate is always preferred over a longer one.
func IncrementMateDistance(s Score) Score {
	switch {
	case s > MateScore-1000:
		return s - 1
	case s < -(MateScore - 1000):
		return s + 1
	default:
		return s
	}
}

// Crop crops a Score into [MinScore;MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
