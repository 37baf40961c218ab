package pgn

import "io"

// Drive reads a stream of games from r and pushes each one through v,
// in the order start_pgn/header*/start_moves/move*/end_pgn described by
// the Visitor interface. It returns an error only on an unrecoverable
// read error from r; a malformed individual game is reported to v via
// the ordinary callback sequence (an empty or partial game still gets
// its start_pgn/end_pgn pair) and does not abort the stream.
func Drive(r io.Reader, v Visitor) error {
	scanner := newGameScanner(r)
	for {
		game, ok, err := scanner.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		driveOneGame(game.raw, v)
	}
}

func driveOneGame(raw string, v Visitor) {
	v.StartPGN()
	l := newLexer(raw)

	for {
		tok := l.NextToken()
		if tok.Type != Header {
			driveMovetext(l, tok, v)
			break
		}
		if tok.Err == nil {
			v.Header(tok.Key, tok.Value)
		}
	}
	v.EndPGN()
}

// driveMovetext consumes the remainder of a game's tokens starting with
// first (already read off the lexer by the header loop), tracking
// variation depth so that moves and comments nested inside "(...)" are
// skipped rather than reported to the visitor -- the visitor's board
// represents the game's single mainline, not its side variations.
func driveMovetext(l *lexer, first Token, v Visitor) {
	v.StartMoves()

	var (
		pendingMove string
		hasPending  bool
		depth       int
		skipping    bool
	)
	flush := func(comment string) {
		if !hasPending {
			return
		}
		hasPending = false
		if skipping || depth > 0 {
			return
		}
		if v.Move(pendingMove, comment) {
			skipping = true
		}
	}

	tok := first
	for {
		switch tok.Type {
		case EOF:
			flush("")
			return
		case VariationStart:
			depth++
		case VariationEnd:
			if depth > 0 {
				depth--
			}
		case Comment:
			if depth == 0 {
				flush(tok.Value)
			}
		case SANMove:
			if depth == 0 {
				flush("")
				pendingMove, hasPending = tok.Value, true
			}
		case MoveNumber, NAG, Result:
			// carry no information the visitor needs.
		}
		tok = l.NextToken()
	}
}
