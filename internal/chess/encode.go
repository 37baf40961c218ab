package chess

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// encodedSize is the fixed length of an Encode output: 32 board bytes (a
// nibble per square), 1 half-move-clock byte, 2 full-move-number bytes,
// 1 en passant square byte, 4 castling rook-file bytes, and 1 flags byte
// (side to move plus the Chess960 bit).
const encodedSize = 32 + 1 + 2 + 1 + 4 + 1

const (
	flagBlackToMove uint8 = 1 << iota
	flagChess960
)

// Encode renders pos as a compact, fixed-size binary form suitable for
// storage or transmission -- distinct from Hash, which is a 64-bit
// digest with collisions; Encode/Decode round-trip the full canonical
// position, generalizing the bitset-plus-clocks layout of
// encoding.BinaryMarshaler implementations elsewhere in the ecosystem to
// also carry the Chess960 flag and rook-file castling rights.
func (pos *Position) Encode() []byte {
	var buf bytes.Buffer
	for sq := Square(0); sq < 64; sq += 2 {
		lo := byte(pos.board.Piece(sq))
		hi := byte(pos.board.Piece(sq + 1))
		buf.WriteByte(lo | hi<<4)
	}
	buf.WriteByte(byte(pos.halfMoveClock))
	binary.Write(&buf, binary.BigEndian, uint16(pos.fullMoveNumber))
	buf.WriteByte(byte(pos.enPassant + 1)) // NoSquare (-1) -> 0

	for _, c := range [2]Color{White, Black} {
		for _, s := range [2]Side{KingSide, QueenSide} {
			f, ok := pos.castleRights.rookFileOf(c, s)
			if !ok {
				buf.WriteByte(0xFF)
				continue
			}
			buf.WriteByte(byte(f))
		}
	}

	var flags uint8
	if pos.turn == Black {
		flags |= flagBlackToMove
	}
	if pos.chess960 {
		flags |= flagChess960
	}
	buf.WriteByte(flags)

	return buf.Bytes()
}

// Decode parses the output of Encode back into a Position, recomputing
// the zobrist hash from the decoded fields rather than trusting the wire
// form to carry a consistent one.
func Decode(data []byte) (*Position, error) {
	if len(data) != encodedSize {
		return nil, errors.New("chess: encoded position must be 41 bytes")
	}
	board := &Board{}
	for sq := Square(0); sq < 64; sq += 2 {
		b := data[sq/2]
		board.setPiece(sq, Piece(b&0x0F))
		board.setPiece(sq+1, Piece(b>>4))
	}
	off := 32
	halfMove := int(data[off])
	off++
	fullMove := int(binary.BigEndian.Uint16(data[off : off+2]))
	off += 2
	epByte := data[off]
	off++
	ep := NoSquare
	if epByte != 0 {
		ep = Square(epByte) - 1
	}

	rights := newCastleRights()
	order := [4]struct {
		c Color
		s Side
	}{{White, KingSide}, {White, QueenSide}, {Black, KingSide}, {Black, QueenSide}}
	for _, o := range order {
		f := data[off]
		off++
		if f != 0xFF {
			rights.set(o.c, o.s, File(f))
		}
	}

	flags := data[off]
	turn := White
	if flags&flagBlackToMove != 0 {
		turn = Black
	}

	pos := &Position{
		board:            board,
		turn:             turn,
		castleRights:     rights,
		enPassant:        ep,
		halfMoveClock:    halfMove,
		fullMoveNumber:   fullMove,
		chess960:         flags&flagChess960 != 0,
		checkTransitFrom: NoSquare,
		checkTransitTo:   NoSquare,
	}
	pos.zobrist = pos.computeZobrist()
	return pos, nil
}
