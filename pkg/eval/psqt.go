package eval

import "github.com/corvuschess/kestrel/pkg/board"

// defaultPSQT holds one 64-entry piece-square bonus table per piece kind, authored so
// that indexing the table directly by board.Square reflects Black's viewpoint (Black
// advances toward low rank indices); White pieces look up sq XOR 56, which flips the
// rank bits only and so mirrors the table vertically. Generated once at package init
// from a small set of per-piece shaping rules rather than hand-transcribed, since the
// board package's square numbering (H1=0 .. A8=63) does not match the a1=0 convention
// most published tables assume.
var defaultPSQT [board.NumPieces][64]Score

func init() {
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		advance := 7 - int(sq.Rank()) // 0 at the mover's own back rank, 7 near promotion
		centrality := centerBonus(sq)

		defaultPSQT[board.Pawn][sq] = Score(advance*advance + centrality/2)
		defaultPSQT[board.Knight][sq] = Score(2*centrality - 10)
		defaultPSQT[board.Bishop][sq] = Score(centrality - 4)
		defaultPSQT[board.Rook][sq] = Score(advance * 2)
		defaultPSQT[board.Queen][sq] = Score(centrality / 2)
		defaultPSQT[board.King][sq] = Score(16 - 2*centrality) // shelter near edges, penalize center
	}
}

// centerBonus scores closeness to the center of the board, highest (48) on the four
// central squares, tapering to 3 in the corners.
func centerBonus(sq board.Square) int {
	return closeness(int(sq.File())) * closeness(int(sq.Rank())) * 3
}

// closeness maps a 0..7 file or rank index to a 1..4 closeness-to-center score.
func closeness(v int) int {
	if v >= 4 {
		v = 7 - v
	}
	return v + 1
}

// psqtValue returns the piece-square bonus for a piece of the given color and kind
// sitting on sq, applying the White-side vertical mirror.
func psqtValue(w *Weights, c board.Color, piece board.Piece, sq board.Square) Score {
	if c == board.White {
		return w.PSQT[piece][sq^56]
	}
	return w.PSQT[piece][sq]
}
