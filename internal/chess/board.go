package chess

import "math/bits"

// Board is the 64-square piece placement of a position. It carries no
// side-to-move, castling, or move-count state -- those live on Position.
type Board struct {
	squares [64]Piece
}

// NewBoard builds a Board from a sparse square->piece map, as produced by
// the FEN board-field decoder.
func NewBoard(m map[Square]Piece) *Board {
	b := &Board{}
	for sq, p := range m {
		b.squares[sq] = p
	}
	return b
}

// Piece returns the piece occupying sq, or NoPiece.
func (b *Board) Piece(sq Square) Piece {
	return b.squares[sq]
}

func (b *Board) setPiece(sq Square, p Piece) {
	b.squares[sq] = p
}

// copy returns an independent copy of the board.
func (b *Board) copy() *Board {
	nb := &Board{squares: b.squares}
	return nb
}

// find returns the first square in [from,to] (inclusive, in increasing
// square order) holding piece p, or NoSquare.
func (b *Board) find(p Piece, from, to Square) Square {
	for sq := from; sq <= to; sq++ {
		if b.squares[sq] == p {
			return sq
		}
	}
	return NoSquare
}

// PieceCount returns the number of occupied squares on the board.
func (b *Board) PieceCount() int {
	n := 0
	for _, p := range b.squares {
		if p != NoPiece {
			n++
		}
	}
	return n
}

// occupancyMask returns a 64-bit occupancy bitmap; used only internally
// to make PieceCount a single popcount when callers want that form.
func (b *Board) occupancyMask() uint64 {
	var mask uint64
	for sq, p := range b.squares {
		if p != NoPiece {
			mask |= 1 << uint(sq)
		}
	}
	return mask
}

// popcount exposes bits.OnesCount64 for the occupancy mask, matching
// spec.md's description of piece_count() as "popcount of occupancy".
func (b *Board) popcount() int {
	return bits.OnesCount64(b.occupancyMask())
}

// String renders the board field of a FEN string (rank 8 first).
func (b *Board) String() string {
	buf := make([]byte, 0, 72)
	for rank := Rank8; ; rank-- {
		empty := 0
		for file := FileA; file <= FileH; file++ {
			p := b.squares[NewSquare(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				buf = append(buf, byte('0'+empty))
				empty = 0
			}
			buf = append(buf, p.fenChar())
		}
		if empty > 0 {
			buf = append(buf, byte('0'+empty))
		}
		if rank == Rank1 {
			break
		}
		buf = append(buf, '/')
	}
	return string(buf)
}
