package miner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fastpopular/internal/chess"
	"fastpopular/internal/corpus"
	"fastpopular/internal/pgn"
	"fastpopular/internal/shard"
)

func newTestRig(f *Filters) (*shard.CountTable, *shard.CanonicalTable, *Writer, *strings.Builder, *Totals) {
	counts := shard.NewCountTable()
	canon := shard.NewCanonicalTable()
	var sb strings.Builder
	w := NewWriter(&sb)
	return counts, canon, w, &sb, &Totals{}
}

func driveGame(t *testing.T, pgnText string, f *Filters) (*strings.Builder, *shard.CountTable) {
	t.Helper()
	counts, canon, w, sb, totals := newTestRig(f)
	v := NewVisitor(f, nil, "test.pgn", counts, canon, w, totals)
	if err := pgn.Drive(strings.NewReader(pgnText), v); err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	return sb, counts
}

const simpleGame = `[Event "Test"]
[Result "1-0"]
[White "a"]
[Black "b"]

1. e4 e5 2. Nf3 Nc6 1-0
`

func TestScenarioSingleGameNoFilters(t *testing.T) {
	f := &Filters{MaxPlies: 4, MinCount: 1, CountStopEarly: -1}
	sb, _ := driveGame(t, simpleGame, f)
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), sb.String())
	}
}

func TestScenarioDuplicateGameThresholdFilter(t *testing.T) {
	f := &Filters{MaxPlies: 10, MinCount: 2, CountStopEarly: -1}
	text := simpleGame + "\n" + simpleGame + "\n" + simpleGame
	sb, _ := driveGame(t, text, f)
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), sb.String())
	}
}

func TestScenarioEarlyStop(t *testing.T) {
	f := &Filters{MaxPlies: 10, MinCount: 1, StopEarly: true, CountStopEarly: 3}
	counts, canon, w, sb, totals := newTestRig(f)
	v := NewVisitor(f, nil, "test.pgn", counts, canon, w, totals)
	if err := pgn.Drive(strings.NewReader(simpleGame), v); err != nil {
		t.Fatal(err)
	}
	w.Flush()
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), sb.String())
	}
}

const bookGame = `[Event "Test"]
[Result "1-0"]
[White "a"]
[Black "b"]

1. e4 { book } e5 { book } 2. Nf3 Nc6 1-0
`

func TestScenarioBookCommentExcluded(t *testing.T) {
	f := &Filters{MaxPlies: 2, MinCount: 1, CountStopEarly: -1}
	sb, _ := driveGame(t, bookGame, f)
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines (book moves should not count against max_plies), want 2: %q", len(lines), sb.String())
	}
}

func TestNoResultGameIsSkipped(t *testing.T) {
	text := `[Event "Test"]
[White "a"]
[Black "b"]

1. e4 e5 *
`
	f := &Filters{MaxPlies: 10, MinCount: 1, CountStopEarly: -1}
	sb, _ := driveGame(t, text, f)
	if strings.TrimSpace(sb.String()) != "" {
		t.Errorf("expected no output for a game without a recognizable Result tag, got %q", sb.String())
	}
}

func TestMinEloFiltersGame(t *testing.T) {
	text := `[Event "Test"]
[Result "1-0"]
[White "a"]
[Black "b"]
[WhiteElo "2000"]
[BlackElo "1000"]

1. e4 e5 1-0
`
	f := &Filters{MaxPlies: 10, MinCount: 1, MinElo: 1500, CountStopEarly: -1}
	sb, _ := driveGame(t, text, f)
	if strings.TrimSpace(sb.String()) != "" {
		t.Errorf("expected no output when BlackElo is below --minElo, got %q", sb.String())
	}
}

// TestScenarioFixFEN drives spec.md §8 scenario 5 literally: a FEN tag
// ending in " 0 1" whose test's metadata carries book_depth="7" is
// parsed as if the FEN had ended in " 0 8" instead.
func TestScenarioFixFEN(t *testing.T) {
	dir := t.TempDir()
	sidecar := filepath.Join(dir, "game.json")
	if err := os.WriteFile(sidecar, []byte(`{"args":{"book_depth":"7"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "game-1.pgn")
	meta, err := corpus.GetMetadata([]string{file}, false)
	if err != nil {
		t.Fatal(err)
	}

	text := `[Event "Test"]
[FEN "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"]
[Result "1-0"]
[White "a"]
[Black "b"]

1. e4 1-0
`
	f := &Filters{MaxPlies: 10, MinCount: 1, FixFEN: true, CountStopEarly: -1}
	counts, canon, w, sb, totals := newTestRig(f)
	v := NewVisitor(f, meta, file, counts, canon, w, totals)
	if err := pgn.Drive(strings.NewReader(text), v); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	out := strings.TrimSpace(sb.String())
	if out == "" {
		t.Fatal("expected one emitted position")
	}
	if !strings.HasSuffix(out, " 0 8") {
		t.Errorf("fixFEN should rewrite the FEN's trailing \" 0 1\" to \" 0 8\" (book_depth 7 + 1); got %q", out)
	}
}

// chess960StartFEN is a non-standard Chess960 starting array (king on
// f-file, rooks on e- and h-files) with castling rights expressed by
// rook file rather than KQkq.
const chess960StartFEN = "nnbbrkqr/pppppppp/8/8/8/8/PPPPPPPP/NNBBRKQR w HEhe - 0 1"

const chess960Game = `[Event "Test"]
[Variant "fischerandom"]
[FEN "nnbbrkqr/pppppppp/8/8/8/8/PPPPPPPP/NNBBRKQR w HEhe - 0 1"]
[Result "1-0"]
[White "a"]
[Black "b"]

1. Nc3 1-0
`

// TestScenarioChess960HashMatchesFreshParse drives spec.md §8 scenario 6:
// a game tagged [Variant "fischerandom"] with a non-standard starting
// FEN parses and applies its move without error, and its hash matches a
// freshly-parsed position with the Chess960 flag set directly.
func TestScenarioChess960HashMatchesFreshParse(t *testing.T) {
	f := &Filters{MaxPlies: 10, MinCount: 1, CountStopEarly: -1}
	counts, canon, w, sb, totals := newTestRig(f)
	v := NewVisitor(f, nil, "test.pgn", counts, canon, w, totals)
	if err := pgn.Drive(strings.NewReader(chess960Game), v); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	if strings.TrimSpace(sb.String()) == "" {
		t.Fatal("expected the Chess960 move to parse and emit without error")
	}

	want, err := chess.NewPosition(chess960StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	want.SetChess960(true)
	mv := chess.ParseSAN(want, "Nc3")
	if mv.IsNoMove() {
		t.Fatal("Nc3 should resolve against the Chess960 starting position")
	}
	want.ApplyMove(mv)

	if n := counts.Len(); n != 1 {
		t.Fatalf("expected exactly one distinct position counted, got %d", n)
	}
	if _, ok := counts.Get(want.Hash()); !ok {
		t.Errorf("visitor's position hash does not match a freshly-parsed position built with the Chess960 flag set")
	}
}

// TestScenarioChess960NoFRCSkipsGame drives the --noFRC half of spec.md
// §8 scenario 6: with --noFRC active, a [Variant "fischerandom"] game
// is skipped entirely and contributes no counted positions.
func TestScenarioChess960NoFRCSkipsGame(t *testing.T) {
	f := &Filters{MaxPlies: 10, MinCount: 1, NoFRC: true, CountStopEarly: -1}
	sb, counts := driveGame(t, chess960Game, f)
	if strings.TrimSpace(sb.String()) != "" {
		t.Errorf("expected no output for a Chess960 game with --noFRC, got %q", sb.String())
	}
	if counts.Len() != 0 {
		t.Errorf("expected no positions counted for a Chess960 game with --noFRC, got %d", counts.Len())
	}
}
