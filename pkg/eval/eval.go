package eval

import (
	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/phase"
)

// Evaluate returns the position score in centipawns from the side-to-move
// perspective (positive favors the side to move), per the negamax convention.
func Evaluate(b *board.Board, w *Weights) Score {
	pos := b.Position()
	turn := b.Turn()
	opp := turn.Opponent()

	if pos.HasInsufficientMaterial() {
		return DrawScore
	}
	if !hasLegalMove(pos, turn) {
		if pos.IsChecked(turn) {
			return -MateScore
		}
		return DrawScore // stalemate
	}

	ph := phase.Classify(NonPawnMaterial(pos))

	if b.RepetitionCount() >= 2 {
		return -Score(ph.RepetitionPenalty())
	}

	raw := rawFeatures(pos, w, turn, opp, ph)

	var total Score
	for k := Feature(0); k < NumFeatures; k++ {
		total += weighted(w, k, raw[k])
	}
	return Crop(total)
}

// RawFeatures returns each feature's unweighted, side-to-move-relative
// contribution for the board's current position, for use by the learning
// update (which needs f_k independent of the currently loaded weight).
func RawFeatures(b *board.Board, w *Weights) [NumFeatures]Score {
	pos := b.Position()
	turn := b.Turn()
	opp := turn.Opponent()
	ph := phase.Classify(NonPawnMaterial(pos))
	return rawFeatures(pos, w, turn, opp, ph)
}

func rawFeatures(pos *board.Position, w *Weights, turn, opp board.Color, ph phase.Phase) [NumFeatures]Score {
	var raw [NumFeatures]Score
	raw[Material] = materialValue(pos, w, turn) - materialValue(pos, w, opp)
	raw[PSQT] = psqtTotal(pos, w, turn) - psqtTotal(pos, w, opp)
	raw[Mobility] = Score(len(pos.PseudoLegalMoves(turn)) - len(pos.PseudoLegalMoves(opp)))
	raw[PawnStructure] = pawnStructure(pos, turn, ph) - pawnStructure(pos, opp, ph)
	raw[KingSafety] = kingSafety(pos, turn, opp, ph) - kingSafety(pos, opp, turn, ph)
	raw[RookOpenFile] = rookOpenFile(pos, turn) - rookOpenFile(pos, opp)
	raw[BishopPair] = bishopPair(pos, turn) - bishopPair(pos, opp)
	return raw
}

func weighted(w *Weights, f Feature, raw Score) Score {
	if !w.Enabled[f] {
		return 0
	}
	return Score(float32(raw) * w.Feature[f])
}

func hasLegalMove(pos *board.Position, turn board.Color) bool {
	for _, m := range pos.PseudoLegalMoves(turn) {
		if _, ok := pos.Move(m); ok {
			return true
		}
	}
	return false
}

// NonPawnMaterial sums the nominal value of every knight, bishop, rook and
// queen on the board, used to classify the game phase.
func NonPawnMaterial(pos *board.Position) int {
	total := 0
	for _, c := range []board.Color{board.White, board.Black} {
		for _, p := range board.Officers {
			total += pos.Piece(c, p).PopCount() * int(defaultPieceValues[p])
		}
	}
	return total
}

func materialValue(pos *board.Position, w *Weights, c board.Color) Score {
	var total Score
	for p := board.Pawn; p <= board.King; p++ {
		total += Score(pos.Piece(c, p).PopCount()) * w.Piece[p]
	}
	return total
}

func psqtTotal(pos *board.Position, w *Weights, c board.Color) Score {
	var total Score
	for p := board.Pawn; p <= board.King; p++ {
		for _, sq := range pos.Piece(c, p).ToSquares() {
			total += psqtValue(w, c, p, sq)
		}
	}
	return total
}

func pawnStructure(pos *board.Position, c board.Color, ph phase.Phase) Score {
	pawns := pos.Piece(c, board.Pawn)

	var fileCounts [8]int
	for _, sq := range pawns.ToSquares() {
		fileCounts[sq.File()]++
	}

	var total Score
	for f := 0; f < 8; f++ {
		if fileCounts[f] == 0 {
			continue
		}
		if fileCounts[f] > 1 {
			total -= Score(20 * (fileCounts[f] - 1))
		}
		isolated := (f == 0 || fileCounts[f-1] == 0) && (f == 7 || fileCounts[f+1] == 0)
		if isolated {
			total -= Score(15 * fileCounts[f])
		}
	}

	opp := pos.Piece(c.Opponent(), board.Pawn)
	for _, sq := range pawns.ToSquares() {
		if !isPassedPawn(sq, c, opp) {
			continue
		}
		advance := pawnAdvance(c, sq)
		if ph == phase.Endgame || ph == phase.LateEndgame {
			total += Score(20 + 20*advance)
		} else {
			total += Score(10 + 8*advance)
		}
	}
	return total
}

func isPassedPawn(sq board.Square, c board.Color, oppPawns board.Bitboard) bool {
	f, r := int(sq.File()), int(sq.Rank())
	for _, osq := range oppPawns.ToSquares() {
		of := int(osq.File())
		if of < f-1 || of > f+1 {
			continue
		}
		or := int(osq.Rank())
		if c == board.White && or > r {
			return false
		}
		if c == board.Black && or < r {
			return false
		}
	}
	return true
}

// pawnAdvance returns the pawn's distance (0..6) from its own starting rank.
func pawnAdvance(c board.Color, sq board.Square) int {
	if c == board.White {
		return int(sq.Rank()) - 1
	}
	return 6 - int(sq.Rank())
}

func kingSafety(pos *board.Position, c, opp board.Color, ph phase.Phase) Score {
	king := pos.Piece(c, board.King).LastPopSquare()

	if ph == phase.Opening || ph == phase.Middlegame {
		shield := 0
		for _, sq := range pos.Piece(c, board.Pawn).ToSquares() {
			if absInt(int(sq.File())-int(king.File())) > 1 {
				continue
			}
			if inShieldRanks(c, king, sq) {
				shield++
			}
		}
		if shield > 3 {
			shield = 3
		}
		return Score(-18 * (3 - shield))
	}

	centralization := Score((7 - centerManhattanDistance(king)) * 8)

	oppKing := pos.Piece(opp, board.King).LastPopSquare()
	kingDist := kingManhattanDistance(king, oppKing)

	var closeness Score
	if materialTotal(pos, c) >= materialTotal(pos, opp) {
		closeness = Score((14 - kingDist) * 5)
	} else {
		closeness = Score(kingDist * 3)
	}
	return centralization + closeness
}

func inShieldRanks(c board.Color, king, pawn board.Square) bool {
	kr, pr := int(king.Rank()), int(pawn.Rank())
	if c == board.White {
		return pr == kr+1 || pr == kr+2
	}
	return pr == kr-1 || pr == kr-2
}

func centerManhattanDistance(sq board.Square) int {
	return closeToCenter(int(sq.File())) + closeToCenter(int(sq.Rank()))
}

func closeToCenter(v int) int {
	d1, d2 := absInt(v-3), absInt(v-4)
	if d1 < d2 {
		return d1
	}
	return d2
}

func kingManhattanDistance(a, b board.Square) int {
	return absInt(int(a.File())-int(b.File())) + absInt(int(a.Rank())-int(b.Rank()))
}

func materialTotal(pos *board.Position, c board.Color) int {
	total := 0
	for p := board.Pawn; p <= board.Queen; p++ {
		total += pos.Piece(c, p).PopCount() * int(defaultPieceValues[p])
	}
	return total
}

func rookOpenFile(pos *board.Position, c board.Color) Score {
	ownPawns := pos.Piece(c, board.Pawn)
	oppPawns := pos.Piece(c.Opponent(), board.Pawn)

	var total Score
	for _, sq := range pos.Piece(c, board.Rook).ToSquares() {
		file := board.BitFile(sq.File())
		switch {
		case file&(ownPawns|oppPawns) == 0:
			total += 20
		case file&ownPawns == 0:
			total += 10
		}
	}
	return total
}

func bishopPair(pos *board.Position, c board.Color) Score {
	if pos.Piece(c, board.Bishop).PopCount() >= 2 {
		return 30
	}
	return 0
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
