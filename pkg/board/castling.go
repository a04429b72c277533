package board

import "strings"

// Castling represents the set of castling rights. 4 bits.
type Castling uint8

const (
	WhiteKingSideCastle Castling = 1 << iota
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle
)

const (
	FullCastingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
	NumCastling       = int(FullCastingRights) + 1
)

// castlingRightsBySquare maps a king/rook home square to the right it forfeits when
// it is vacated (moved from) or captured on (moved to).
var castlingRightsBySquare = map[Square]Castling{
	E1: WhiteKingSideCastle | WhiteQueenSideCastle,
	H1: WhiteKingSideCastle,
	A1: WhiteQueenSideCastle,
	E8: BlackKingSideCastle | BlackQueenSideCastle,
	H8: BlackKingSideCastle,
	A8: BlackQueenSideCastle,
}

// IsAllowed returns true iff all the given rights are allowed.
func (c Castling) IsAllowed(right Castling) bool {
	return c&right == right
}

func (c Castling) String() string {
	if c == 0 {
		return "-"
	}

	var sb strings.Builder
	if c.IsAllowed(WhiteKingSideCastle) {
		sb.WriteString("K")
	}
	if c.IsAllowed(WhiteQueenSideCastle) {
		sb.WriteString("Q")
	}
	if c.IsAllowed(BlackKingSideCastle) {
		sb.WriteString("k")
	}
	if c.IsAllowed(BlackQueenSideCastle) {
		sb.WriteString("q")
	}
	return sb.String()
}
