// Package miner implements the per-game traversal policy (C5), the
// work planner and worker pool (C6), and the output writer that sit
// between the PGN parser and the sharded counting tables.
package miner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"fastpopular/internal/chess"
	"fastpopular/internal/corpus"
	"fastpopular/internal/shard"
)

// Filters bundles the run-wide options a Visitor applies to every game
// it sees; one Filters is shared read-only across all workers.
type Filters struct {
	EngineRegex      *regexp.Regexp
	MinElo           int
	NoFRC            bool
	MaxPlies         int
	// StopEarly is carried for callers that need to know the run's
	// configuration; the Visitor itself only ever consults
	// CountStopEarly, which the CLI layer sets to a value no
	// new_entry_count can reach (e.g. max int) when StopEarly is false.
	StopEarly      bool
	CountStopEarly int
	MinCount         uint64
	SaveCount        bool
	OmitMoveCounter  bool
	TBLimit          int
	OmitMates        bool
	FixFEN           bool
}

// filterSide identifies which side's moves a Visitor should count,
// derived from matching Filters.EngineRegex against player names.
type filterSide int8

const (
	filterNone filterSide = iota
	filterWhite
	filterBlack
)

// Totals holds the run-wide game and reported-position counters shared
// by every worker. Visitors update both fields with atomic adds; they
// are read once the run has finished. The processed-file count is kept
// on Run, not here.
type Totals struct {
	Games    uint64
	Reported uint64
}

// Visitor is the per-game policy machine (C5): one board, one set of
// cached header values, applied against the shared count/canonical
// tables and the shared output Writer.
type Visitor struct {
	filters *Filters
	meta    *corpus.TestMetadataSet
	file    string

	counts     *shard.CountTable
	canonical  *shard.CanonicalTable
	writer     *Writer
	totals     *Totals

	board *chess.Position

	hasResult     bool
	chess960      bool
	fenSeen       bool
	skipRemainder bool

	whiteName, blackName string
	whiteElo, blackElo   int

	retainedPlies  int
	newEntryCount  int
	filterSide     filterSide
}

// NewVisitor returns a fresh Visitor for one file, sharing the
// process-global tables, writer, and totals with every other worker.
func NewVisitor(filters *Filters, meta *corpus.TestMetadataSet, file string, counts *shard.CountTable, canonical *shard.CanonicalTable, writer *Writer, totals *Totals) *Visitor {
	v := &Visitor{
		filters:   filters,
		meta:      meta,
		file:      file,
		counts:    counts,
		canonical: canonical,
		writer:    writer,
		totals:    totals,
	}
	v.reset()
	return v
}

func (v *Visitor) reset() {
	v.board = chess.StartingPosition()
	v.hasResult = false
	v.chess960 = false
	v.fenSeen = false
	v.skipRemainder = false
	v.whiteName, v.blackName = "", ""
	v.whiteElo, v.blackElo = 0, 0
	v.retainedPlies = 0
	v.newEntryCount = 0
	v.filterSide = filterNone
}

func (v *Visitor) StartPGN() {}

// Header applies one tag pair's effect on the pending game, per
// spec.md §4.5's header table.
func (v *Visitor) Header(key, value string) {
	if v.skipRemainder {
		return
	}
	switch key {
	case "FEN":
		fen := value
		if v.filters.FixFEN && strings.HasSuffix(fen, " 0 1") {
			depth := v.bookDepthForFile()
			fen = strings.TrimSuffix(fen, " 0 1") + fmt.Sprintf(" 0 %d", depth+1)
		}
		if err := v.board.SetFEN(fen); err != nil {
			v.skipRemainder = true
			return
		}
		v.board.SetChess960(v.chess960)
		v.fenSeen = true
	case "Variant":
		if strings.EqualFold(value, "fischerandom") {
			v.chess960 = true
			if v.fenSeen {
				v.board.SetChess960(true)
			}
		}
	case "Result":
		if isRecognizableResult(value) {
			v.hasResult = true
		}
	case "White":
		v.whiteName = value
	case "Black":
		v.blackName = value
	case "WhiteElo":
		v.whiteElo = parseEloLocaleIndependent(value)
	case "BlackElo":
		v.blackElo = parseEloLocaleIndependent(value)
	}
}

func (v *Visitor) bookDepthForFile() int {
	if v.meta == nil {
		return 0
	}
	if m, ok := v.meta.Lookup(v.file); ok {
		return m.BookDepth
	}
	return 0
}

func isRecognizableResult(s string) bool {
	switch strings.TrimSpace(s) {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	default:
		return false
	}
}

// parseEloLocaleIndependent parses a decimal Elo tag value; any
// non-numeric or empty value is treated as 0 (below every --minElo
// threshold except the default).
func parseEloLocaleIndependent(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// StartMoves applies the start-of-moves gate: result/Elo requirements,
// engine-side filtering, and FRC exclusion.
func (v *Visitor) StartMoves() {
	if v.skipRemainder {
		return
	}
	if !v.hasResult {
		v.skipRemainder = true
		return
	}
	if v.whiteElo < v.filters.MinElo || v.blackElo < v.filters.MinElo {
		v.skipRemainder = true
		return
	}
	if v.filters.EngineRegex != nil {
		w := v.whiteName != "" && v.filters.EngineRegex.MatchString(v.whiteName)
		b := v.blackName != "" && v.filters.EngineRegex.MatchString(v.blackName)
		switch {
		case w && !b:
			v.filterSide = filterWhite
		case b && !w:
			v.filterSide = filterBlack
		default:
			v.filterSide = filterNone
		}
	}
	if v.filters.NoFRC && v.chess960 {
		v.skipRemainder = true
		return
	}
	atomic.AddUint64(&v.totals.Games, 1)
}

// Move implements the eleven-step per-ply algorithm.
func (v *Visitor) Move(san, comment string) bool {
	if v.skipRemainder {
		return true
	}

	if v.retainedPlies == v.filters.MaxPlies {
		v.skipRemainder = true
		return true
	}

	mv := chess.ParseSAN(v.board, san)
	if mv.IsNoMove() {
		v.skipRemainder = true
		return true
	}
	v.board.ApplyMove(mv)

	if v.filters.TBLimit > 1 && v.board.PieceCount() <= v.filters.TBLimit {
		v.skipRemainder = true
		return true
	}
	if v.filters.OmitMates && !v.board.LegalMovesNonEmpty() {
		v.skipRemainder = true
		return true
	}

	// spec: filtering checks the side to move *after* this move was
	// applied, not the side that made the move.
	if v.filterSide != filterNone && !sideMatches(v.filterSide, v.board.Turn()) {
		return false
	}
	if strings.TrimSpace(comment) == "book" {
		return false
	}

	key := v.board.Hash()
	isNew, valueAfter := v.counts.IncrementOrInsert(key)
	if valueAfter == v.filters.MinCount {
		atomic.AddUint64(&v.totals.Reported, 1)
		if v.filters.SaveCount {
			v.canonical.TryInsert(key, v.board.Encode())
		} else {
			v.writer.WriteLine(v.board.GetFEN(!v.filters.OmitMoveCounter))
		}
	}
	if isNew {
		v.newEntryCount++
		if v.newEntryCount == v.filters.CountStopEarly {
			v.skipRemainder = true
			return true
		}
	}
	v.retainedPlies++
	return false
}

func sideMatches(fs filterSide, c chess.Color) bool {
	if fs == filterWhite {
		return c == chess.White
	}
	return c == chess.Black
}

func (v *Visitor) EndPGN() {
	v.reset()
}
