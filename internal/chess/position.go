package chess

import (
	"fmt"
)

// Side identifies a castling wing.
type Side int8

const (
	KingSide Side = iota
	QueenSide
)

// CastleRights tracks, per color and wing, which rook (by file) still
// holds the right to castle. Representing rights by rook file rather
// than a plain KQkq bitmask is what lets the same move generator serve
// both standard chess and Chess960/FRC starting positions uniformly.
type CastleRights struct {
	rookFile [2][2]int8 // [colorIndex][Side]; -1 means the right isn't held
}

func newCastleRights() CastleRights {
	return CastleRights{rookFile: [2][2]int8{{-1, -1}, {-1, -1}}}
}

func colorIndex(c Color) int {
	if c == Black {
		return 1
	}
	return 0
}

// CanCastle reports whether color c still holds the right to castle on
// the given side.
func (cr CastleRights) CanCastle(c Color, s Side) bool {
	return cr.rookFile[colorIndex(c)][s] >= 0
}

func (cr CastleRights) rookFileOf(c Color, s Side) (File, bool) {
	f := cr.rookFile[colorIndex(c)][s]
	if f < 0 {
		return 0, false
	}
	return File(f), true
}

func (cr *CastleRights) clearSide(c Color, s Side) {
	cr.rookFile[colorIndex(c)][s] = -1
}

func (cr *CastleRights) clearColor(c Color) {
	cr.clearSide(c, KingSide)
	cr.clearSide(c, QueenSide)
}

func (cr *CastleRights) set(c Color, s Side, f File) {
	cr.rookFile[colorIndex(c)][s] = int8(f)
}

// Position is a complete chess position: piece placement, side to move,
// castling rights, en passant target, and move counters. One Position is
// owned by a single goroutine at a time; it is not safe for concurrent
// use.
type Position struct {
	board          *Board
	turn           Color
	castleRights   CastleRights
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int
	chess960       bool

	zobrist uint64

	// checkTransitFrom/checkTransitTo describe the inclusive range of
	// squares a king passed through on the move that produced this
	// position, when that move was a castle. Legality checking treats
	// the opponent landing on any square in that range (not just the
	// king's final square) as leaving the king in check, which is how
	// "may not castle through check" is enforced. NoSquare for both
	// means "no special transit range -- check the real king square".
	checkTransitFrom Square
	checkTransitTo   Square
}

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// StartingPosition returns the standard chess starting position.
func StartingPosition() *Position {
	pos, err := NewPosition(startFEN)
	if err != nil {
		panic("chess: starting FEN must always parse: " + err.Error())
	}
	return pos
}

// NewPosition parses a FEN string into a new Position. It fails if the
// FEN is malformed; see SetFEN for the mutating equivalent used when a
// visitor resets an existing Position between games.
func NewPosition(fen string) (*Position, error) {
	pos := &Position{}
	if err := pos.SetFEN(fen); err != nil {
		return nil, err
	}
	return pos, nil
}

// SetChess960 switches the castling-rights interpretation: when true,
// FEN castling fields are read and rendered as rook-file letters
// (A-H/a-h); when false, the conventional KQkq letters are used.
func (pos *Position) SetChess960(on bool) {
	pos.chess960 = on
}

// Chess960 reports whether the position is using FRC castling notation.
func (pos *Position) Chess960() bool {
	return pos.chess960
}

// Turn returns the side to move.
func (pos *Position) Turn() Color {
	return pos.turn
}

// HalfMoveClock returns the half-move (50-move rule) counter.
func (pos *Position) HalfMoveClock() int {
	return pos.halfMoveClock
}

// FullMoveNumber returns the full-move counter.
func (pos *Position) FullMoveNumber() int {
	return pos.fullMoveNumber
}

// EnPassantSquare returns the en passant target square, or NoSquare.
func (pos *Position) EnPassantSquare() Square {
	return pos.enPassant
}

// Rights returns the position's castling rights.
func (pos *Position) Rights() CastleRights {
	return pos.castleRights
}

// PieceCount returns the number of pieces (of either color) on the
// board, i.e. the popcount of occupancy.
func (pos *Position) PieceCount() int {
	return pos.board.popcount()
}

// Hash returns the position's 64-bit Zobrist-style hash, covering piece
// placement, side to move, castling rights, and en passant target. It
// deliberately excludes the half-move and full-move counters.
func (pos *Position) Hash() uint64 {
	return pos.zobrist
}

// GetFEN renders the canonical six-field FEN-like text form. When
// includeCounters is false, the half-move and full-move fields are
// normalized to "0 1" instead of their true values, matching the
// "without counters" mode used for deduplicated EPD output.
func (pos *Position) GetFEN(includeCounters bool) string {
	half, full := 0, 1
	if includeCounters {
		half, full = pos.halfMoveClock, pos.fullMoveNumber
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		pos.board.String(), pos.turn.String(), pos.castlingFENField(), pos.epFENField(), half, full)
}

func (pos *Position) epFENField() string {
	if pos.enPassant == NoSquare {
		return "-"
	}
	return pos.enPassant.String()
}

// castlingFENField renders the castling-rights FEN field per the
// position's current Chess960 setting.
func (pos *Position) castlingFENField() string {
	var buf []byte
	add := func(c Color, s Side) {
		f, ok := pos.castleRights.rookFileOf(c, s)
		if !ok {
			return
		}
		if pos.chess960 {
			letter := byte('A' + int(f))
			if c == Black {
				letter = byte('a' + int(f))
			}
			buf = append(buf, letter)
			return
		}
		switch {
		case c == White && s == KingSide:
			buf = append(buf, 'K')
		case c == White && s == QueenSide:
			buf = append(buf, 'Q')
		case c == Black && s == KingSide:
			buf = append(buf, 'k')
		case c == Black && s == QueenSide:
			buf = append(buf, 'q')
		}
	}
	add(White, KingSide)
	add(White, QueenSide)
	add(Black, KingSide)
	add(Black, QueenSide)
	if len(buf) == 0 {
		return "-"
	}
	return string(buf)
}

// clone returns a deep copy suitable for speculative (trial) move
// application during legality checking; the copy shares no mutable
// state with the receiver.
func (pos *Position) clone() *Position {
	np := *pos
	np.board = pos.board.copy()
	return &np
}
