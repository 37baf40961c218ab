package pgn

// Visitor receives the parsed structure of a stream of games, one
// callback at a time: a start signal, each header tag, a start-of-moves
// signal, each ply (with its trailing comment, if any), and an
// end-of-game signal. Implementations own all position/filter state;
// the parser itself is stateless between games.
type Visitor interface {
	StartPGN()
	Header(key, value string)
	StartMoves()
	// Move reports one ply's SAN text and its trailing brace comment
	// (empty if none). It returns skip=true to request that the parser
	// stop delivering callbacks for the rest of the current game --
	// the parser still calls EndPGN once the game's text is consumed.
	Move(san, comment string) (skip bool)
	EndPGN()
}
