package eval

import (
	"sort"

	"github.com/corvuschess/kestrel/pkg/board"
)

// FindCapture returns the pieces of the given color that directly target the square.
func FindCapture(pos *board.Position, side board.Color, sq board.Square) []board.Placement {
	var ret []board.Placement

	for _, piece := range board.KingQueenRookKnightBishop {
		bb := board.Attackboard(pos.Rotated(), sq, piece) & pos.Piece(side, piece)
		for _, from := range bb.ToSquares() {
			ret = append(ret, board.Placement{Piece: piece, Color: side, Square: from})
		}
	}
	bb := board.PawnCaptureboard(side.Opponent() /* reverse direction */, board.BitMask(sq)) & pos.Piece(side, board.Pawn)
	for _, from := range bb.ToSquares() {
		ret = append(ret, board.Placement{Piece: board.Pawn, Color: side, Square: from})
	}

	return ret
}

// SortByNominalValue orders the placement list by nominal material value, low to high.
func SortByNominalValue(pieces []board.Placement) []board.Placement {
	sort.SliceStable(pieces, func(i, j int) bool {
		return NominalValue(pieces[i].Piece) < NominalValue(pieces[j].Piece)
	})
	return pieces
}

// IsMoveSafe evaluates whether a capture or quiet move leaves the moved piece safe at
// its destination: not en prise, or only losable in an exchange that isn't a net loss.
// Assumes move is legal. A cheap stand-in for full static exchange evaluation, ignoring
// discovered attackers uncovered by the move itself.
func IsMoveSafe(pos *board.Position, side board.Color, move board.Move) bool {
	next, ok := pos.Move(move)
	if !ok {
		return false
	}
	return IsSafe(next, side, move.Piece, move.To)
}

// IsSafe evaluates whether the piece occupying sq is safe: either it has no attackers,
// or it is defended and the cheapest attacker isn't worth less than the piece itself.
func IsSafe(pos *board.Position, side board.Color, piece board.Piece, sq board.Square) bool {
	attackers := SortByNominalValue(FindCapture(pos, side.Opponent(), sq))
	if len(attackers) == 0 {
		return true
	}
	if !pos.IsAttacked(side.Opponent(), sq) {
		return false
	}
	return NominalValue(attackers[0].Piece) >= NominalValue(piece)
}
