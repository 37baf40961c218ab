package pgn

import "errors"

var (
	errUnterminatedComment = errors.New("pgn: unterminated comment")
	errMalformedTag        = errors.New("pgn: malformed header tag")
)
