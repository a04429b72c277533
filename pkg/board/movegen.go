package board

// PseudoLegalMoves returns every move available to turn without regard to whether it
// leaves the mover's own king in check; callers filter that via Position.Move, which
// reports ok=false for moves that turn out to be illegal. Order is: pawn moves by
// origin square (captures, then pushes, then en passant), officer moves by piece kind
// and origin square (quiet moves, then captures), then castling.
func (p *Position) PseudoLegalMoves(turn Color) []Move {
	all := p.rotated.Mask()
	own := p.pieces[turn][NoPiece]
	opp := p.pieces[turn.Opponent()][NoPiece]

	var moves []Move
	moves = append(moves, p.pawnMoves(turn, all, opp)...)

	for _, piece := range KingQueenRookKnightBishop {
		for _, from := range p.pieces[turn][piece].ToSquares() {
			targets := Attackboard(p.rotated, from, piece) &^ own
			for _, to := range (targets &^ opp).ToSquares() {
				moves = append(moves, Move{Type: Normal, From: from, To: to, Piece: piece})
			}
			for _, to := range (targets & opp).ToSquares() {
				_, capture, _ := p.Square(to)
				moves = append(moves, Move{Type: Capture, From: from, To: to, Piece: piece, Capture: capture})
			}
		}
	}

	moves = append(moves, p.castlingMoves(turn, all)...)
	return moves
}

func (p *Position) pawnMoves(turn Color, all, opp Bitboard) []Move {
	promoRank := PawnPromotionRank(turn)

	var moves []Move
	for _, from := range p.pieces[turn][Pawn].ToSquares() {
		for _, to := range (PawnCaptureboard(turn, BitMask(from)) & opp).ToSquares() {
			_, capture, _ := p.Square(to)
			moves = append(moves, makePawnMoves(from, to, Capture, capture, promoRank)...)
		}

		if push := PawnMoveboard(all, turn, BitMask(from)); push != 0 {
			to := push.LastPopSquare()
			moves = append(moves, makePawnMoves(from, to, Push, ZeroPiece, promoRank)...)

			if isPawnStart(turn, from) {
				if jump := PawnMoveboard(all, turn, push); jump != 0 {
					moves = append(moves, Move{Type: Jump, From: from, To: jump.LastPopSquare(), Piece: Pawn})
				}
			}
		}

		if ep, ok := p.EnPassant(); ok && PawnCaptureboard(turn, BitMask(from))&BitMask(ep) != 0 {
			moves = append(moves, Move{Type: EnPassant, From: from, To: ep, Piece: Pawn, Capture: Pawn})
		}
	}
	return moves
}

// makePawnMoves expands a push or capture landing on the promotion rank into one move
// per promotable piece kind; otherwise it is a single Push/Capture move.
func makePawnMoves(from, to Square, base MoveType, capture Piece, promoRank Bitboard) []Move {
	if !promoRank.IsSet(to) {
		return []Move{{Type: base, From: from, To: to, Piece: Pawn, Capture: capture}}
	}

	kind := Promotion
	if base == Capture {
		kind = CapturePromotion
	}

	moves := make([]Move, 0, len(PromotionPieces))
	for _, promo := range PromotionPieces {
		moves = append(moves, Move{Type: kind, From: from, To: to, Piece: Pawn, Promotion: promo, Capture: capture})
	}
	return moves
}

func isPawnStart(turn Color, from Square) bool {
	if turn == White {
		return from.Rank() == Rank2
	}
	return from.Rank() == Rank7
}

func (p *Position) castlingMoves(turn Color, all Bitboard) []Move {
	var moves []Move
	opp := turn

	if turn == White {
		if p.castling.IsAllowed(WhiteKingSideCastle) && !all.IsSet(F1) && !all.IsSet(G1) &&
			!p.IsAttacked(opp, E1) && !p.IsAttacked(opp, F1) && !p.IsAttacked(opp, G1) {
			moves = append(moves, Move{Type: KingSideCastle, From: E1, To: G1, Piece: King})
		}
		if p.castling.IsAllowed(WhiteQueenSideCastle) && !all.IsSet(D1) && !all.IsSet(C1) && !all.IsSet(B1) &&
			!p.IsAttacked(opp, E1) && !p.IsAttacked(opp, D1) && !p.IsAttacked(opp, C1) {
			moves = append(moves, Move{Type: QueenSideCastle, From: E1, To: C1, Piece: King})
		}
		return moves
	}

	if p.castling.IsAllowed(BlackKingSideCastle) && !all.IsSet(F8) && !all.IsSet(G8) &&
		!p.IsAttacked(opp, E8) && !p.IsAttacked(opp, F8) && !p.IsAttacked(opp, G8) {
		moves = append(moves, Move{Type: KingSideCastle, From: E8, To: G8, Piece: King})
	}
	if p.castling.IsAllowed(BlackQueenSideCastle) && !all.IsSet(D8) && !all.IsSet(C8) && !all.IsSet(B8) &&
		!p.IsAttacked(opp, E8) && !p.IsAttacked(opp, D8) && !p.IsAttacked(opp, C8) {
		moves = append(moves, Move{Type: QueenSideCastle, From: E8, To: C8, Piece: King})
	}
	return moves
}
