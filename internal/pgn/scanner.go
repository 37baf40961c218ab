// Package pgn drives a Visitor over a stream of game records, one
// header/move/comment callback at a time, rather than building a parse
// tree for the whole stream up front -- the corpus miner never needs a
// game after it has been folded into the count table, so nothing is
// retained past the current game.
package pgn

import (
	"bufio"
	"bytes"
	"io"
)

// rawGame is one game's bytes, header block through game terminator.
type rawGame struct {
	raw string
}

// gameScanner splits a byte stream into whole games using bufio.Scanner,
// the same game-boundary heuristic (track bracket/brace nesting, then
// look for a result token followed by the next "[Event") used upstream
// for splitting PGN text.
type gameScanner struct {
	scanner *bufio.Scanner
}

func newGameScanner(r io.Reader) *gameScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	s.Split(splitGames)
	return &gameScanner{scanner: s}
}

func (gs *gameScanner) next() (rawGame, bool, error) {
	if gs.scanner.Scan() {
		return rawGame{raw: gs.scanner.Text()}, true, nil
	}
	if err := gs.scanner.Err(); err != nil {
		return rawGame{}, false, err
	}
	return rawGame{}, false, nil
}

func splitGames(data []byte, atEOF bool) (int, []byte, error) {
	start := skipLeadingWhitespace(data)
	if start == len(data) {
		if atEOF {
			return len(data), nil, nil
		}
		return 0, nil, nil
	}
	start = findGameStart(data, start)
	if start == -1 {
		if atEOF {
			return len(data), nil, nil
		}
		return 0, nil, nil
	}
	return scanGameBody(data, start, atEOF)
}

func skipLeadingWhitespace(data []byte) int {
	i := 0
	for ; i < len(data); i++ {
		if !isSpace(data[i]) {
			break
		}
	}
	return i
}

func findGameStart(data []byte, start int) int {
	if start < len(data) && data[start] == '[' {
		return start
	}
	idx := bytes.IndexByte(data[start:], '[')
	if idx == -1 {
		return -1
	}
	return start + idx
}

func scanGameBody(data []byte, start int, atEOF bool) (int, []byte, error) {
	var inBrackets, inComment, foundResult bool
	i := start
	for ; i < len(data); i++ {
		c := data[i]
		switch {
		case c == '[' && !inComment:
			inBrackets = true
		case c == ']' && !inComment:
			inBrackets = false
		}
		switch {
		case c == '{':
			inComment = true
		case c == '}' && inComment:
			inComment = false
		}
		if foundResult && !inBrackets && !inComment && c == '\n' {
			if next := bytes.Index(data[i:], []byte("[Event ")); next != -1 {
				return i + next, bytes.TrimSpace(data[start:i]), nil
			}
		}
		if !inBrackets && !inComment && !foundResult && isResultStart(data, i) {
			foundResult = true
		}
	}
	if atEOF {
		return len(data), bytes.TrimSpace(data[start:]), nil
	}
	return 0, nil, nil
}

func isResultStart(data []byte, i int) bool {
	rest := data[i:]
	switch {
	case bytes.HasPrefix(rest, []byte("1-0")):
		return true
	case bytes.HasPrefix(rest, []byte("0-1")):
		return true
	case bytes.HasPrefix(rest, []byte("1/2-1/2")):
		return true
	case len(rest) > 0 && rest[0] == '*':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
