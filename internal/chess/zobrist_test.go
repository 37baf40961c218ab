package chess

import "testing"

func TestHashMatchesFromScratchRecompute(t *testing.T) {
	pos := StartingPosition()
	if got, want := pos.Hash(), pos.computeZobrist(); got != want {
		t.Errorf("Hash() = %#x, computeZobrist() = %#x", got, want)
	}
}

func TestHashChangesAfterMove(t *testing.T) {
	pos := StartingPosition()
	before := pos.Hash()
	pos.ApplyMove(ParseSAN(pos, "e4"))
	after := pos.Hash()
	if before == after {
		t.Error("hash must change after a move")
	}
	if after != pos.computeZobrist() {
		t.Error("incremental hash diverged from a from-scratch recompute")
	}
}

func TestHashExcludesMoveCounters(t *testing.T) {
	a, err := NewPosition("5k2/ppp5/4P3/3R3p/6P1/1K2Nr2/PP3P2/8 b - - 1 32")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewPosition("5k2/ppp5/4P3/3R3p/6P1/1K2Nr2/PP3P2/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash() != b.Hash() {
		t.Error("hash must not depend on half-move clock or full-move number")
	}
}

func TestHashDiffersOnCastleRightsAndEnPassant(t *testing.T) {
	withRights, err := NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	withoutRights, err := NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if withRights.Hash() == withoutRights.Hash() {
		t.Error("castling rights must affect the hash")
	}

	withEP, err := NewPosition("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatal(err)
	}
	withoutEP, err := NewPosition("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
	if err != nil {
		t.Fatal(err)
	}
	if withEP.Hash() == withoutEP.Hash() {
		t.Error("en passant target must affect the hash")
	}
}

func TestIncrementalHashAfterCastle(t *testing.T) {
	pos, err := NewPosition("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	pos.ApplyMove(ParseSAN(pos, "O-O"))
	if pos.Hash() != pos.computeZobrist() {
		t.Error("incremental hash diverged from a from-scratch recompute after castling")
	}
}
