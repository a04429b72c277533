// Package polyglot computes a Polyglot-style Zobrist hash of a position, the
// key pkg/book indexes its entries by. It is independent of board.ZobristTable.
// The random keys are generated at init from a fixed xorshift64 seed, with
// pieces in the order listed on pieceKeys; they are not the published Polyglot
// Random64 table, so the keys computed here do not match the keys in books
// written by other Polyglot tools.
package polyglot

import "github.com/corvuschess/kestrel/pkg/board"

var (
	pieceKeys   [12][64]uint64 // polyglot order: bp,bN,bB,bR,bQ,bK,wp,wN,wB,wR,wQ,wK
	castleKeys  [4]uint64      // WK, WQ, BK, BQ
	enPassant   [8]uint64      // by file, a..h
	sideToMove  uint64
)

func init() {
	var s uint64 = 0x37b4a4b3f0d1c0d0
	next := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}
	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			pieceKeys[piece][sq] = next()
		}
	}
	for i := range castleKeys {
		castleKeys[i] = next()
	}
	for i := range enPassant {
		enPassant[i] = next()
	}
	sideToMove = next()
}

// pieceKindIndex maps a (color, piece) pair to Polyglot's fixed piece-kind index.
func pieceKindIndex(c board.Color, p board.Piece) int {
	base := map[board.Piece]int{
		board.Pawn: 0, board.Knight: 1, board.Bishop: 2, board.Rook: 3, board.Queen: 4, board.King: 5,
	}[p]
	if c == board.White {
		return base + 6
	}
	return base
}

// polyglotSquare converts a board.Square (H1=0..A8=63, file reversed) to the
// Polyglot square index (a1=0, file increasing a..h, rank increasing 1..8).
func polyglotSquare(sq board.Square) int {
	file := 7 - int(sq.File())
	rank := int(sq.Rank())
	return rank*8 + file
}

// Hash returns the Polyglot Zobrist hash for the given position and side to move.
func Hash(pos *board.Position, turn board.Color) uint64 {
	var hash uint64

	for c := board.ZeroColor; c < board.NumColors; c++ {
		for p := board.Pawn; p <= board.King; p++ {
			for _, sq := range pos.Piece(c, p).ToSquares() {
				hash ^= pieceKeys[pieceKindIndex(c, p)][polyglotSquare(sq)]
			}
		}
	}

	if pos.Castling().IsAllowed(board.WhiteKingSideCastle) {
		hash ^= castleKeys[0]
	}
	if pos.Castling().IsAllowed(board.WhiteQueenSideCastle) {
		hash ^= castleKeys[1]
	}
	if pos.Castling().IsAllowed(board.BlackKingSideCastle) {
		hash ^= castleKeys[2]
	}
	if pos.Castling().IsAllowed(board.BlackQueenSideCastle) {
		hash ^= castleKeys[3]
	}

	if ep, ok := pos.EnPassant(); ok && canCaptureEnPassant(pos, turn, ep) {
		hash ^= enPassant[7-int(ep.File())]
	}

	if turn == board.White {
		hash ^= sideToMove
	}

	return hash
}

// canCaptureEnPassant reports whether a pawn of the side to move actually
// sits adjacent to the en passant target, per the Polyglot spec's rule that
// the en passant key is only mixed in when a capture is truly available.
func canCaptureEnPassant(pos *board.Position, turn board.Color, ep board.Square) bool {
	rank := ep.Rank()
	var pawnRank board.Rank
	switch turn {
	case board.White:
		pawnRank = rank - 1
	case board.Black:
		pawnRank = rank + 1
	}

	pawns := pos.Piece(turn, board.Pawn)
	file := ep.File()
	if file != board.FileH {
		if pawns&board.BitMask(board.NewSquare(file-1, pawnRank)) != 0 {
			return true
		}
	}
	if file != board.FileA {
		if pawns&board.BitMask(board.NewSquare(file+1, pawnRank)) != 0 {
			return true
		}
	}
	return false
}
