package board

import "math/rand"

// ZobristHash is a position hash based on piece-squares, castling rights, en-passant
// file and side to move. It is intended for transposition-table keys and repetition
// detection, and hashes "identical" positions under chess rules to the same value.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// ZobristTable is a pseudo-randomized table for computing a position hash. Each
// castling right gets its own independent key, XORed in or out as that single right
// is granted or lost -- not one key per combined castling state.
type ZobristTable struct {
	pieces    [NumColors][NumPieces][NumSquares]ZobristHash
	castle    [4]ZobristHash // WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide
	enpassant [8]ZobristHash // by file
	side      ZobristHash    // XORed in iff black to move
}

func NewZobristTable(seed int64) *ZobristTable {
	ret := &ZobristTable{}

	r := rand.New(rand.NewSource(seed))

	for c := ZeroColor; c < NumColors; c++ {
		for p := ZeroPiece; p < NumPieces; p++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				ret.pieces[c][p][sq] = ZobristHash(r.Uint64())
			}
		}
	}
	for i := range ret.castle {
		ret.castle[i] = ZobristHash(r.Uint64())
	}
	for i := range ret.enpassant {
		ret.enpassant[i] = ZobristHash(r.Uint64())
	}
	ret.side = ZobristHash(r.Uint64())

	return ret
}

// castleKey returns the key for the single castling right in bit position i (0..3),
// matching the bit layout of WhiteKingSideCastle, WhiteQueenSideCastle,
// BlackKingSideCastle, BlackQueenSideCastle.
func (z *ZobristTable) castleKey(i int) ZobristHash {
	return z.castle[i]
}

// Hash computes the zobrist hash for the given position from scratch.
func (z *ZobristTable) Hash(pos *Position, turn Color) ZobristHash {
	var hash ZobristHash

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if c, p, ok := pos.Square(sq); ok {
			hash ^= z.pieces[c][p][sq]
		}
	}
	for i := 0; i < 4; i++ {
		if pos.Castling()&(Castling(1)<<uint(i)) != 0 {
			hash ^= z.castleKey(i)
		}
	}
	if ep, ok := pos.EnPassant(); ok {
		hash ^= z.enpassant[ep.File()]
	}
	if turn == Black {
		hash ^= z.side
	}

	return hash
}

// Move computes the hash of the position after playing the (legal) move m out of
// pos_before_move incrementally, without rescanning the board. Mirrors full_hash
// bit-for-bit: update_hash(full_hash(P), P, m) == full_hash(P.after(m)) for every
// move kind, including castling, en-passant and promotion.
func (z *ZobristTable) Move(h ZobristHash, pos *Position, m Move) ZobristHash {
	hash := h

	turn, _, _ := pos.Square(m.From)

	// (1) ep target existing before the move loses its file key.
	if ep, ok := pos.EnPassant(); ok {
		hash ^= z.enpassant[ep.File()]
	}

	// (2) moving piece leaves its from-square.
	hash ^= z.pieces[turn][m.Piece][m.From]

	// (3) captured piece leaves the square it actually occupied.
	switch m.Type {
	case Capture, CapturePromotion:
		hash ^= z.pieces[turn.Opponent()][m.Capture][m.To]
	case EnPassant:
		epc, _ := m.EnPassantCapture()
		hash ^= z.pieces[turn.Opponent()][Pawn][epc]
	}

	// (4) castling rook hop.
	if from, to, ok := m.CastlingRookMove(); ok {
		hash ^= z.pieces[turn][Rook][from]
		hash ^= z.pieces[turn][Rook][to]
	}

	// (5) arriving piece, promoted kind if this is a promotion.
	switch m.Type {
	case Promotion, CapturePromotion:
		hash ^= z.pieces[turn][m.Promotion][m.To]
	default:
		hash ^= z.pieces[turn][m.Piece][m.To]
	}

	// (6) every castling right forfeited by this move toggles its own key.
	lost := pos.Castling() & m.CastlingRightsLost()
	for i := 0; i < 4; i++ {
		if lost&(Castling(1)<<uint(i)) != 0 {
			hash ^= z.castleKey(i)
		}
	}

	// (7) a double pawn push exposes a new ep file.
	if ept, ok := m.EnPassantTarget(); ok {
		hash ^= z.enpassant[ept.File()]
	}

	// (8) side to move flips.
	hash ^= z.side

	return hash
}

// Null computes the hash after a null move (pass): the side key flips and any
// existing en-passant target is cleared.
func (z *ZobristTable) Null(h ZobristHash, pos *Position) ZobristHash {
	hash := h
	if ep, ok := pos.EnPassant(); ok {
		hash ^= z.enpassant[ep.File()]
	}
	hash ^= z.side
	return hash
}
