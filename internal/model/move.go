package model

import (
	"fmt"
	"strings"
)

// Move is an immutable description of a proposed transition. Promotion is None
// when no promotion piece was chosen.
type Move struct {
	From      Square `json:"from"`
	To        Square `json:"to"`
	Mover     Side   `json:"mover"`
	Promotion Kind   `json:"promotion,omitempty"`
}

func NewMove(from, to Square, mover Side) Move {
	return Move{From: from, To: to, Mover: mover}
}

func (m Move) WithPromotion(kind Kind) Move {
	m.Promotion = kind
	return m
}

func (m Move) DeltaFile() int { return m.To.File - m.From.File }
func (m Move) DeltaRank() int { return m.To.Rank - m.From.Rank }
func (m Move) AbsFile() int { return abs(m.DeltaFile()) }
func (m Move) AbsRank() int { return abs(m.DeltaRank()) }

// String returns coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != None {
		s += string(NewPiece(m.Promotion, Black).Letter())
	}
	return s
}

// ParseMove reads the coordinate notation produced by Move.String.
func ParseMove(text string, mover Side) (Move, error) {
	text = strings.TrimSpace(text)
	if len(text) != 4 && len(text) != 5 {
		return Move{}, fmt.Errorf("invalid move %q", text)
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return Move{}, err
	}
	m := NewMove(from, to, mover)
	if len(text) == 5 {
		kind := KindFromLetter(text[4])
		if !kind.IsPromotion() {
			return Move{}, fmt.Errorf("invalid promotion in move %q", text)
		}
		m.Promotion = kind
	}
	return m, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
