package chess

// step returns the square offset squares away from sq, or NoSquare if
// that lands off the board or wraps around a file edge. The file-delta
// bound (matching malbrecht-chess's walker) is what catches wraparound:
// a step that legitimately changes rank can still only shift file by at
// most 2 (a knight jump), so a larger file delta means the offset wrapped.
func step(sq Square, offset int) Square {
	to := int(sq) + offset
	if to < 0 || to > 63 {
		return NoSquare
	}
	toSq := Square(to)
	df := int(toSq.File()) - int(sq.File())
	if df < -2 || df > 2 {
		return NoSquare
	}
	return toSq
}

var knightOffsets = [8]int{17, 15, 10, 6, -6, -10, -15, -17}
var kingOffsets = [8]int{8, -8, 1, -1, 9, 7, -9, -7}
var bishopDirs = [4]int{9, 7, -9, -7}
var rookDirs = [4]int{8, -8, 1, -1}

// addMove appends a move to to from, if the destination isn't occupied
// by a piece of the mover's own color, and reports whether a sliding
// piece may continue past it (true only when the destination was empty).
func addMove(moves *[]Move, b *Board, from, to Square, mover Color) bool {
	if to == NoSquare {
		return false
	}
	occ := b.Piece(to)
	if occ != NoPiece && occ.Color() == mover {
		return false
	}
	*moves = append(*moves, Move{From: from, To: to})
	return occ == NoPiece
}

func addSliderMoves(moves *[]Move, b *Board, from Square, mover Color, dirs [4]int) {
	for _, d := range dirs {
		for sq := step(from, d); sq != NoSquare; sq = step(sq, d) {
			if !addMove(moves, b, from, sq, mover) {
				break
			}
		}
	}
}

func addPawnMoves(moves *[]Move, b *Board, from Square, mover Color, epTarget Square) {
	forward, startRank, promoRank := 8, Rank2, Rank8
	if mover == Black {
		forward, startRank, promoRank = -8, Rank7, Rank1
	}
	addPromoOrPlain := func(to Square) {
		if to.Rank() == promoRank {
			for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
				*moves = append(*moves, Move{From: from, To: to, Promotion: pt})
			}
			return
		}
		*moves = append(*moves, Move{From: from, To: to})
	}

	oneAhead := step(from, forward)
	if oneAhead != NoSquare && b.Piece(oneAhead) == NoPiece {
		addPromoOrPlain(oneAhead)
		if from.Rank() == startRank {
			twoAhead := step(oneAhead, forward)
			if twoAhead != NoSquare && b.Piece(twoAhead) == NoPiece {
				*moves = append(*moves, Move{From: from, To: twoAhead})
			}
		}
	}
	for _, capDir := range [2]int{forward - 1, forward + 1} {
		to := step(from, capDir)
		if to == NoSquare {
			continue
		}
		occ := b.Piece(to)
		if (occ != NoPiece && occ.Color() != mover) || to == epTarget {
			addPromoOrPlain(to)
		}
	}
}

// castlingDestinations returns the fixed king/rook destination squares
// for a color and side; these are the same regardless of the starting
// rook file, Chess960 included.
func castlingDestinations(c Color, s Side) (kingTo, rookTo Square) {
	rank := Rank1
	if c == Black {
		rank = Rank8
	}
	if s == KingSide {
		return NewSquare(FileG, rank), NewSquare(FileF, rank)
	}
	return NewSquare(FileC, rank), NewSquare(FileD, rank)
}

// canCastle reports whether color c may currently castle on side s: the
// right must still be held, and every square strictly between the king
// and rook's start squares (excluding the two of them) must be empty,
// and every square the king passes through (including start and end)
// other than its own start must be empty of anything but the castling
// rook itself.
func canCastle(pos *Position, c Color, s Side) (kingSq, rookSq Square, ok bool) {
	if !pos.castleRights.CanCastle(c, s) {
		return NoSquare, NoSquare, false
	}
	rank := Rank1
	if c == Black {
		rank = Rank8
	}
	kingSq = pos.board.find(NewPiece(King, c), NewSquare(FileA, rank), NewSquare(FileH, rank))
	rookFile, _ := pos.castleRights.rookFileOf(c, s)
	rookSq = NewSquare(rookFile, rank)
	if kingSq == NoSquare {
		return NoSquare, NoSquare, false
	}
	kingTo, rookTo := castlingDestinations(c, s)

	lo, hi := kingSq, kingTo
	if hi < lo {
		lo, hi = hi, lo
	}
	for sq := lo; sq <= hi; sq++ {
		if sq == kingSq || sq == rookSq {
			continue
		}
		if pos.board.Piece(sq) != NoPiece {
			return NoSquare, NoSquare, false
		}
	}
	lo, hi = rookSq, rookTo
	if hi < lo {
		lo, hi = hi, lo
	}
	for sq := lo; sq <= hi; sq++ {
		if sq == kingSq || sq == rookSq {
			continue
		}
		if pos.board.Piece(sq) != NoPiece {
			return NoSquare, NoSquare, false
		}
	}
	return kingSq, rookSq, true
}

// pseudoLegalMoves generates every move for pos.Turn() that observes
// piece movement rules and blocking, but without verifying that the
// mover's own king is left safe. Castling moves are encoded as the king
// "capturing" its own rook, per Move's doc comment.
func (pos *Position) pseudoLegalMoves() []Move {
	moves := make([]Move, 0, 48)
	b := pos.board
	mover := pos.turn

	for sq := Square(0); sq < 64; sq++ {
		p := b.Piece(sq)
		if p == NoPiece || p.Color() != mover {
			continue
		}
		switch p.Type() {
		case Pawn:
			addPawnMoves(&moves, b, sq, mover, pos.enPassant)
		case Knight:
			for _, d := range knightOffsets {
				addMove(&moves, b, sq, step(sq, d), mover)
			}
		case Bishop:
			addSliderMoves(&moves, b, sq, mover, bishopDirs)
		case Rook:
			addSliderMoves(&moves, b, sq, mover, rookDirs)
		case Queen:
			addSliderMoves(&moves, b, sq, mover, bishopDirs)
			addSliderMoves(&moves, b, sq, mover, rookDirs)
		case King:
			for _, d := range kingOffsets {
				addMove(&moves, b, sq, step(sq, d), mover)
			}
			for _, s := range [2]Side{KingSide, QueenSide} {
				if kingSq, rookSq, ok := canCastle(pos, mover, s); ok {
					moves = append(moves, Move{From: kingSq, To: rookSq})
				}
			}
		}
	}
	return moves
}

// isCastle reports whether m, played in pos, is a castling move: the
// king landing on a square occupied by its own rook is otherwise never a
// legal move, so that alone identifies it unambiguously.
func (pos *Position) isCastle(m Move) bool {
	mover := pos.board.Piece(m.From)
	if mover.Type() != King {
		return false
	}
	target := pos.board.Piece(m.To)
	return target != NoPiece && target.Type() == Rook && target.Color() == mover.Color()
}

// isLegal reports whether m is legal in pos: applying it must not leave
// the mover's own king attacked, including (for castling moves) every
// square the king transits through.
func (pos *Position) isLegal(m Move) bool {
	mover := pos.turn
	trial := pos.clone()
	trial.applyMoveCore(m)

	rangeFrom, rangeTo := trial.checkTransitFrom, trial.checkTransitTo
	if rangeFrom == NoSquare {
		kingSq := trial.board.find(NewPiece(King, mover), 0, 63)
		rangeFrom, rangeTo = kingSq, kingSq
	}
	if rangeFrom > rangeTo {
		rangeFrom, rangeTo = rangeTo, rangeFrom
	}

	for _, reply := range trial.pseudoLegalMoves() {
		if reply.To >= rangeFrom && reply.To <= rangeTo {
			return false
		}
	}
	// Pawn captures are only generated onto occupied squares, so pawn
	// attacks on the empty squares of a castling range are checked here.
	attacker := NewPiece(Pawn, mover.Other())
	pawnFrom := [2]int{7, 9}
	if mover == Black {
		pawnFrom = [2]int{-7, -9}
	}
	for sq := rangeFrom; sq <= rangeTo; sq++ {
		for _, d := range pawnFrom {
			if from := step(sq, d); from != NoSquare && trial.board.Piece(from) == attacker {
				return false
			}
		}
	}
	return true
}

// LegalMoves returns every legal move available to the side to move.
func (pos *Position) LegalMoves() []Move {
	pseudo := pos.pseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if pos.isLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMovesNonEmpty reports whether the side to move has at least one
// legal move, without allocating the full slice -- callers filtering out
// checkmate/stalemate positions only need the boolean.
func (pos *Position) LegalMovesNonEmpty() bool {
	for _, m := range pos.pseudoLegalMoves() {
		if pos.isLegal(m) {
			return true
		}
	}
	return false
}
