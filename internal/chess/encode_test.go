package chess

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, fen := range validFENs {
		pos, err := NewPosition(fen)
		if err != nil {
			t.Fatalf("NewPosition(%q): %v", fen, err)
		}
		data := pos.Encode()
		if len(data) != encodedSize {
			t.Fatalf("Encode(%q) length = %d, want %d", fen, len(data), encodedSize)
		}
		decoded, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if decoded.GetFEN(true) != fen {
			t.Errorf("round trip: got %q, want %q", decoded.GetFEN(true), fen)
		}
		if decoded.Hash() != pos.Hash() {
			t.Errorf("round trip hash mismatch for %q", fen)
		}
	}
}

func TestEncodeDecodeChess960RoundTrip(t *testing.T) {
	pos := StartingPosition()
	pos.SetChess960(true)
	decoded, err := Decode(pos.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Chess960() {
		t.Error("Encode/Decode must preserve the chess960 flag")
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	if _, err := Decode([]byte{1, 2, 3}); err == nil {
		t.Error("Decode must reject data of the wrong length")
	}
}
