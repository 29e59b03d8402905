package model

import (
	"fmt"
	"strings"
)

type Side uint8

const (
	White Side = iota
	Black
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// homeRank is the back rank of the side, where its king and rooks start.
func (s Side) homeRank() int {
	if s == White {
		return 0
	}
	return 7
}

// forward is the rank direction pawns of the side advance in.
func (s Side) forward() int {
	if s == White {
		return 1
	}
	return -1
}

// LastRank is the promotion rank for pawns of the side.
func (s Side) LastRank() int {
	return s.Opponent().homeRank()
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "white", "w":
		*s = White
	case "black", "b":
		*s = Black
	default:
		return fmt.Errorf("invalid side %q", text)
	}
	return nil
}

type Kind uint8

const (
	None Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	t := strings.ToLower(string(text))
	for kind := Pawn; kind <= King; kind++ {
		if t == kind.String() {
			*k = kind
			return nil
		}
	}
	if len(t) == 1 {
		if kind := KindFromLetter(t[0]); kind != None {
			*k = kind
			return nil
		}
	}
	if t == "" || t == "none" {
		*k = None
		return nil
	}
	return fmt.Errorf("invalid piece kind %q", text)
}

// IsPromotion reports whether a pawn may be replaced by this kind.
func (k Kind) IsPromotion() bool {
	return k == Knight || k == Bishop || k == Rook || k == Queen
}

func (k Kind) getPieceNotation() byte {
	switch k {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return '?'
}

// KindFromLetter maps a piece letter in either case to its kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	}
	return None
}

// Piece is an occupant value. The zero Piece is an empty cell.
type Piece struct {
	Kind Kind `json:"type"`
	Side Side `json:"color"`
}

func NewPiece(kind Kind, side Side) Piece {
	return Piece{Kind: kind, Side: side}
}

func (p Piece) IsEmpty() bool {
	return p.Kind == None
}

// Letter returns the board notation letter, uppercase for White.
func (p Piece) Letter() byte {
	c := p.Kind.getPieceNotation()
	if p.Side == Black {
		c += 'a' - 'A'
	}
	return c
}

// PieceFromLetter is the inverse of Letter.
func PieceFromLetter(c byte) (Piece, bool) {
	kind := KindFromLetter(c)
	if kind == None {
		return Piece{}, false
	}
	side := White
	if c >= 'a' && c <= 'z' {
		side = Black
	}
	return Piece{Kind: kind, Side: side}, true
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Side.String() + " " + p.Kind.String()
}
