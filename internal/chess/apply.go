package chess

// ApplyMove mutates pos by playing m, which the caller must already know
// to be legal (typically the result of ParseSAN or a member of
// pos.LegalMoves()) -- ApplyMove itself does not re-validate legality, to
// keep per-ply cost down across a corpus scan that applies millions of
// moves.
func (pos *Position) ApplyMove(m Move) {
	pos.applyMoveCore(m)
}

// applyMoveCore performs the actual board/state mutation shared by
// ApplyMove and the speculative trial moves used inside isLegal. It
// keeps pos.zobrist consistent via incremental XOR rather than
// recomputing the hash from scratch on every ply.
func (pos *Position) applyMoveCore(m Move) {
	mover := pos.turn
	movingPiece := pos.board.Piece(m.From)
	castle := pos.isCastle(m)

	oldEP := pos.enPassant
	pos.checkTransitFrom, pos.checkTransitTo = NoSquare, NoSquare

	var capturedSquare Square = NoSquare
	var capturedPiece Piece = NoPiece
	isEnPassantCapture := movingPiece.Type() == Pawn && m.To == oldEP && pos.board.Piece(m.To) == NoPiece

	switch {
	case castle:
		// no capture; m.To holds the mover's own rook.
	case isEnPassantCapture:
		capturedSquare = NewSquare(m.To.File(), m.From.Rank())
		capturedPiece = pos.board.Piece(capturedSquare)
	default:
		capturedSquare = m.To
		capturedPiece = pos.board.Piece(m.To)
	}

	pos.invalidateCastleRights(mover, movingPiece, m.From, capturedPiece, capturedSquare)

	if castle {
		rookPiece := pos.board.Piece(m.To)
		kingTo, rookTo := pos.castleDestinationsFor(m)
		pos.xorPiece(m.From, movingPiece)
		pos.xorPiece(m.To, rookPiece)
		pos.board.setPiece(m.From, NoPiece)
		pos.board.setPiece(m.To, NoPiece)
		pos.board.setPiece(kingTo, movingPiece)
		pos.board.setPiece(rookTo, rookPiece)
		pos.xorPiece(kingTo, movingPiece)
		pos.xorPiece(rookTo, rookPiece)
	} else {
		if capturedPiece != NoPiece {
			pos.xorPiece(capturedSquare, capturedPiece)
			pos.board.setPiece(capturedSquare, NoPiece)
		}
		placed := movingPiece
		if m.Promotion != NoPieceType {
			placed = NewPiece(m.Promotion, mover)
		}
		pos.xorPiece(m.From, movingPiece)
		pos.board.setPiece(m.From, NoPiece)
		pos.board.setPiece(m.To, placed)
		pos.xorPiece(m.To, placed)
	}

	pos.xorEnPassant(oldEP)
	pos.enPassant = NoSquare
	if !castle && movingPiece.Type() == Pawn {
		diff := int(m.To) - int(m.From)
		if diff == 16 || diff == -16 {
			pos.enPassant = NewSquare(m.From.File(), Rank((int(m.From.Rank())+int(m.To.Rank()))/2))
		}
	}
	pos.xorEnPassant(pos.enPassant)

	if castle {
		kingTo, _ := pos.castleDestinationsFor(m)
		lo, hi := m.From, kingTo
		if hi < lo {
			lo, hi = hi, lo
		}
		pos.checkTransitFrom, pos.checkTransitTo = lo, hi
	}

	if movingPiece.Type() == Pawn || capturedPiece != NoPiece {
		pos.halfMoveClock = 0
	} else {
		pos.halfMoveClock++
	}
	if mover == Black {
		pos.fullMoveNumber++
	}

	pos.xorSideToMove()
	pos.turn = mover.Other()
}

// castleDestinationsFor resolves the king/rook destination squares for a
// castling move, identifying the side by comparing the rook's file (held
// in m.To) against the king's file.
func (pos *Position) castleDestinationsFor(m Move) (kingTo, rookTo Square) {
	mover := pos.board.Piece(m.From).Color()
	side := QueenSide
	if m.To.File() > m.From.File() {
		side = KingSide
	}
	return castlingDestinations(mover, side)
}

// invalidateCastleRights clears any castling right whose defining rook
// has just moved, been captured, or whose king has just moved, keeping
// the zobrist hash in sync via xorCastleRight for each right actually
// cleared.
func (pos *Position) invalidateCastleRights(mover Color, movingPiece Piece, from Square, capturedPiece Piece, capturedSquare Square) {
	clear := func(c Color, s Side) {
		if pos.castleRights.CanCastle(c, s) {
			pos.xorCastleRight(c, s)
			pos.castleRights.clearSide(c, s)
		}
	}
	if movingPiece.Type() == King {
		clear(mover, KingSide)
		clear(mover, QueenSide)
	}
	if movingPiece.Type() == Rook {
		for _, s := range [2]Side{KingSide, QueenSide} {
			if f, ok := pos.castleRights.rookFileOf(mover, s); ok && NewSquare(f, from.Rank()) == from {
				clear(mover, s)
			}
		}
	}
	if capturedPiece != NoPiece && capturedPiece.Type() == Rook {
		opp := capturedPiece.Color()
		for _, s := range [2]Side{KingSide, QueenSide} {
			if f, ok := pos.castleRights.rookFileOf(opp, s); ok && NewSquare(f, capturedSquare.Rank()) == capturedSquare {
				clear(opp, s)
			}
		}
	}
}
