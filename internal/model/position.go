package model

// Position is everything the rules need to judge a move.
type Position struct {
	Board   Board
	History []Move
	Rights  CastlingRights
	ToMove  Side
}

func NewPosition() *Position {
	return &Position{
		Board:   NewBoard(),
		History: make([]Move, 0),
		Rights:  AllCastlingRights(),
		ToMove:  White,
	}
}

func (p *Position) Clone() *Position {
	c := *p
	c.History = make([]Move, len(p.History), len(p.History)+1)
	copy(c.History, p.History)
	return &c
}

func (p *Position) LastMove() (Move, bool) {
	if len(p.History) == 0 {
		return Move{}, false
	}
	return p.History[len(p.History)-1], true
}
