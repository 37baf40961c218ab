package chess

import (
	"strconv"
	"strings"
)

// SetFEN parses a FEN string and overwrites every field of pos, including
// resetting the incremental hash. It fails, leaving pos untouched, if fen
// is malformed. Visitors call this once per game (for the starting
// position) and reuse the same Position for every ply, per spec.md's
// "one Position per visitor, reset on every end-of-game" lifecycle.
func (pos *Position) SetFEN(fen string) error {
	fen = strings.TrimSpace(fen)
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return fenErrorf("chess: fen %q must have 6 fields", fen)
	}

	board, err := fenBoard(parts[0])
	if err != nil {
		return err
	}
	turn := ColorFromString(parts[1])
	if turn == NoColor {
		return fenErrorf("chess: fen invalid side to move %q", parts[1])
	}
	rights, err := formCastleRights(parts[2], board)
	if err != nil {
		return err
	}
	ep, err := formEnPassant(parts[3])
	if err != nil {
		return err
	}
	half, err := strconv.Atoi(parts[4])
	if err != nil || half < 0 {
		return fenErrorf("chess: fen invalid half move clock %q", parts[4])
	}
	full, err := strconv.Atoi(parts[5])
	if err != nil || full < 1 {
		return fenErrorf("chess: fen invalid full move number %q", parts[5])
	}

	chess960 := pos.chess960 // preserved across SetFEN; set_chess960 is a separate call
	*pos = Position{
		board:            board,
		turn:             turn,
		castleRights:     rights,
		enPassant:        ep,
		halfMoveClock:    half,
		fullMoveNumber:   full,
		chess960:         chess960,
		checkTransitFrom: NoSquare,
		checkTransitTo:   NoSquare,
	}
	pos.zobrist = pos.computeZobrist()
	return nil
}

// fenBoard decodes the placement field of a FEN string.
func fenBoard(field string) (*Board, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fenErrorf("chess: fen invalid board %q", field)
	}
	m := make(map[Square]Piece, 32)
	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := FileA
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += File(c - '0')
				continue
			}
			p := fenCharToPiece[c]
			if p == NoPiece || file > FileH {
				return nil, fenErrorf("chess: fen invalid rank %q", rankStr)
			}
			m[NewSquare(file, rank)] = p
			file++
		}
		if file != FileH+1 {
			return nil, fenErrorf("chess: fen invalid rank %q", rankStr)
		}
	}
	return NewBoard(m), nil
}

// formCastleRights parses the castling field, accepting both the
// conventional "KQkq" letters and Chess960 rook-file letters
// ("A"-"H"/"a"-"h"). The wing (king-side vs queen-side) for a file
// letter is derived by comparing the rook's file to its king's file,
// following the same technique as malbrecht-chess's setCanCastle.
func formCastleRights(field string, b *Board) (CastleRights, error) {
	rights := newCastleRights()
	if field == "-" {
		return rights, nil
	}
	for i := 0; i < len(field); i++ {
		c := field[i]
		var color Color
		switch {
		case c == 'K' || c == 'Q' || (c >= 'A' && c <= 'H'):
			color = White
		case c == 'k' || c == 'q' || (c >= 'a' && c <= 'h'):
			color = Black
		default:
			return rights, fenErrorf("chess: fen invalid castle rights %q", field)
		}
		kingSq := b.find(NewPiece(King, color), 0, 63)
		if kingSq == NoSquare {
			return rights, fenErrorf("chess: fen castle rights %q reference a missing king", field)
		}
		var rookFile File
		var side Side
		switch {
		case c == 'K' || c == 'k':
			rookFile, side = FileH, KingSide
		case c == 'Q' || c == 'q':
			rookFile, side = FileA, QueenSide
		default:
			letter := c - 'A'
			if color == Black {
				letter = c - 'a'
			}
			rookFile = File(letter)
			if rookFile > kingSq.File() {
				side = KingSide
			} else {
				side = QueenSide
			}
		}
		rights.set(color, side, rookFile)
	}
	return rights, nil
}

func formEnPassant(field string) (Square, error) {
	if field == "-" {
		return NoSquare, nil
	}
	sq := SquareFromString(field)
	if sq == NoSquare || (sq.Rank() != Rank3 && sq.Rank() != Rank6) {
		return NoSquare, fenErrorf("chess: fen invalid en passant square %q", field)
	}
	return sq, nil
}
