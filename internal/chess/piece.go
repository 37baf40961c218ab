// Package chess provides position representation and manipulation for
// chess games, including Chess960/FRC starting positions. The package
// implements complete position tracking -- piece placement, castling
// rights, en passant squares, and move counts -- along with a streaming
// FEN codec, SAN move resolution against the legal move list, and an
// incremental Zobrist-style position hash.
package chess

import "strings"

// Color represents the color of a chess piece or side to move.
type Color int8

const (
	// NoColor represents no color.
	NoColor Color = iota
	// White represents the color white.
	White
	// Black represents the color black.
	Black
)

// ColorFromString parses a FEN side-to-move character ("w"/"b").
func ColorFromString(s string) Color {
	switch strings.ToLower(s) {
	case "w":
		return White
	case "b":
		return Black
	}
	return NoColor
}

// Other returns the opposite color of the receiver.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String implements fmt.Stringer and returns the FEN-compatible notation.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// PieceType is the type of a piece, independent of color.
type PieceType int8

const (
	// NoPieceType represents a lack of piece type.
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PieceTypeFromByte parses a lowercase FEN piece letter into a PieceType.
func PieceTypeFromByte(b byte) PieceType {
	switch b {
	case 'k':
		return King
	case 'q':
		return Queen
	case 'r':
		return Rook
	case 'b':
		return Bishop
	case 'n':
		return Knight
	case 'p':
		return Pawn
	}
	return NoPieceType
}

func (p PieceType) String() string {
	switch p {
	case King:
		return "k"
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Pawn:
		return "p"
	}
	return ""
}

// Piece is a piece type bound to a color.
type Piece int8

const (
	// NoPiece represents an empty square.
	NoPiece Piece = iota
	WhiteKing
	WhiteQueen
	WhiteRook
	WhiteBishop
	WhiteKnight
	WhitePawn
	BlackKing
	BlackQueen
	BlackRook
	BlackBishop
	BlackKnight
	BlackPawn
)

var allPieces = []Piece{
	WhiteKing, WhiteQueen, WhiteRook, WhiteBishop, WhiteKnight, WhitePawn,
	BlackKing, BlackQueen, BlackRook, BlackBishop, BlackKnight, BlackPawn,
}

// NewPiece returns the piece matching the PieceType and Color, or
// NoPiece if the combination isn't valid.
func NewPiece(t PieceType, c Color) Piece {
	for _, p := range allPieces {
		if p.Color() == c && p.Type() == t {
			return p
		}
	}
	return NoPiece
}

// Type returns the type of the piece.
func (p Piece) Type() PieceType {
	switch p {
	case WhiteKing, BlackKing:
		return King
	case WhiteQueen, BlackQueen:
		return Queen
	case WhiteRook, BlackRook:
		return Rook
	case WhiteBishop, BlackBishop:
		return Bishop
	case WhiteKnight, BlackKnight:
		return Knight
	case WhitePawn, BlackPawn:
		return Pawn
	}
	return NoPieceType
}

// Color returns the color of the piece.
func (p Piece) Color() Color {
	switch p {
	case WhiteKing, WhiteQueen, WhiteRook, WhiteBishop, WhiteKnight, WhitePawn:
		return White
	case BlackKing, BlackQueen, BlackRook, BlackBishop, BlackKnight, BlackPawn:
		return Black
	}
	return NoColor
}

// fenChar returns the FEN character representation of a piece.
func (p Piece) fenChar() byte {
	t := p.Type()
	if t == NoPieceType {
		return 0
	}
	if p.Color() == White {
		return whitePiecesToFEN[t]
	}
	return blackPiecesToFEN[t]
}

var (
	whitePiecesToFEN = [7]byte{0, 'K', 'Q', 'R', 'B', 'N', 'P'}
	blackPiecesToFEN = [7]byte{0, 'k', 'q', 'r', 'b', 'n', 'p'}

	// fenCharToPiece is a direct lookup table for FEN board characters.
	fenCharToPiece = [128]Piece{
		'K': WhiteKing, 'Q': WhiteQueen, 'R': WhiteRook, 'B': WhiteBishop, 'N': WhiteKnight, 'P': WhitePawn,
		'k': BlackKing, 'q': BlackQueen, 'r': BlackRook, 'b': BlackBishop, 'n': BlackKnight, 'p': BlackPawn,
	}
)
