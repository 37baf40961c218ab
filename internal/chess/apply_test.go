package chess

import "testing"

func TestApplyMoveSimplePawnPush(t *testing.T) {
	pos := StartingPosition()
	pos.ApplyMove(ParseSAN(pos, "e4"))
	if pos.Turn() != Black {
		t.Error("turn must flip to Black after White's move")
	}
	if pos.board.Piece(SquareFromString("e4")) != WhitePawn {
		t.Error("pawn must land on e4")
	}
	if pos.board.Piece(SquareFromString("e2")) != NoPiece {
		t.Error("e2 must be vacated")
	}
	if pos.EnPassantSquare() != SquareFromString("e3") {
		t.Errorf("en passant target = %s, want e3", pos.EnPassantSquare())
	}
	if pos.HalfMoveClock() != 0 {
		t.Error("half-move clock must reset on a pawn move")
	}
}

func TestApplyMoveHalfMoveClockIncrementsOnQuietMove(t *testing.T) {
	pos := StartingPosition()
	pos.ApplyMove(ParseSAN(pos, "Nf3"))
	if pos.HalfMoveClock() != 1 {
		t.Errorf("half-move clock = %d, want 1", pos.HalfMoveClock())
	}
}

func TestApplyMoveFullMoveIncrementsAfterBlack(t *testing.T) {
	pos := StartingPosition()
	pos.ApplyMove(ParseSAN(pos, "e4"))
	if pos.FullMoveNumber() != 1 {
		t.Errorf("full move number = %d, want 1 after White's move", pos.FullMoveNumber())
	}
	pos.ApplyMove(ParseSAN(pos, "e5"))
	if pos.FullMoveNumber() != 2 {
		t.Errorf("full move number = %d, want 2 after Black's move", pos.FullMoveNumber())
	}
}

func TestApplyMoveCastlingRelocatesBoth(t *testing.T) {
	pos, err := NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	pos.ApplyMove(ParseSAN(pos, "O-O"))
	if pos.board.Piece(SquareFromString("g1")) != WhiteKing {
		t.Error("king must land on g1")
	}
	if pos.board.Piece(SquareFromString("f1")) != WhiteRook {
		t.Error("rook must land on f1")
	}
	if pos.board.Piece(SquareFromString("e1")) != NoPiece || pos.board.Piece(SquareFromString("h1")) != NoPiece {
		t.Error("e1 and h1 must be vacated after castling")
	}
	if pos.Rights().CanCastle(White, KingSide) || pos.Rights().CanCastle(White, QueenSide) {
		t.Error("White must lose all castling rights after castling")
	}
}

func TestApplyMoveRookMoveClearsOneSide(t *testing.T) {
	pos, err := NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	pos.ApplyMove(ParseSAN(pos, "Rb1"))
	if pos.Rights().CanCastle(White, QueenSide) {
		t.Error("moving the a1 rook must clear White's queenside right")
	}
	if !pos.Rights().CanCastle(White, KingSide) {
		t.Error("White's kingside right must survive")
	}
}

func TestApplyMoveRookCaptureClearsOpponentSide(t *testing.T) {
	pos, err := NewPosition("r3k2r/8/8/8/8/8/R7/4K2R w Kkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	pos.ApplyMove(ParseSAN(pos, "Rxa8"))
	if pos.Rights().CanCastle(Black, QueenSide) {
		t.Error("capturing the a8 rook must clear Black's queenside right")
	}
	if !pos.Rights().CanCastle(Black, KingSide) {
		t.Error("Black's kingside right must survive")
	}
}

func TestApplyMoveEnPassantRemovesCapturedPawn(t *testing.T) {
	pos, err := NewPosition("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatal(err)
	}
	pos.ApplyMove(ParseSAN(pos, "exd6"))
	if pos.board.Piece(SquareFromString("d5")) != NoPiece {
		t.Error("the captured pawn on d5 must be removed")
	}
	if pos.board.Piece(SquareFromString("d6")) != WhitePawn {
		t.Error("the capturing pawn must land on d6")
	}
}

func TestApplyMovePromotion(t *testing.T) {
	pos, err := NewPosition("8/P6k/8/8/8/8/7p/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	pos.ApplyMove(ParseSAN(pos, "a8=Q"))
	if pos.board.Piece(SquareFromString("a8")) != WhiteQueen {
		t.Error("promoted pawn must become a queen on a8")
	}
}
