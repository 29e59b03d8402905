package model

import "encoding/json"

type StatusKind uint8

const (
	StatusOngoing StatusKind = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
	StatusInsufficientMaterial
)

func (k StatusKind) String() string {
	switch k {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusInsufficientMaterial:
		return "insufficientMaterial"
	}
	return "ongoing"
}

// GameStatus is the outcome of classifying a position. Side is the side in check
// for StatusCheck and the winner for StatusCheckmate; it is unused otherwise.
type GameStatus struct {
	Kind StatusKind
	Side Side
}

func Ongoing() GameStatus { return GameStatus{Kind: StatusOngoing} }
func SideInCheck(side Side) GameStatus { return GameStatus{Kind: StatusCheck, Side: side} }
func Checkmate(winner Side) GameStatus { return GameStatus{Kind: StatusCheckmate, Side: winner} }
func Stalemate() GameStatus { return GameStatus{Kind: StatusStalemate} }
func DrawInsufficientMaterial() GameStatus { return GameStatus{Kind: StatusInsufficientMaterial} }

// Over reports whether no further moves are possible.
func (s GameStatus) Over() bool {
	return s.Kind == StatusCheckmate || s.Kind == StatusStalemate
}

func (s GameStatus) String() string {
	switch s.Kind {
	case StatusCheck:
		return s.Side.String() + " in check"
	case StatusCheckmate:
		return "checkmate, " + s.Side.String() + " wins"
	}
	return s.Kind.String()
}

type statusJSON struct {
	Kind string `json:"kind"`
	Side *Side  `json:"side,omitempty"`
}

func (s GameStatus) MarshalJSON() ([]byte, error) {
	out := statusJSON{Kind: s.Kind.String()}
	if s.Kind == StatusCheck || s.Kind == StatusCheckmate {
		side := s.Side
		out.Side = &side
	}
	return json.Marshal(out)
}
