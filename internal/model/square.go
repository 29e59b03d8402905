package model

import (
	"fmt"
	"strings"
)

// Square is a board coordinate. File 0 is the a-file and Rank 0 is rank 1.
type Square struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

const boardSize = 8

func NewSquare(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < boardSize && s.Rank >= 0 && s.Rank < boardSize
}

// IsLight reports the square colour used by the insufficient material rule.
func (s Square) IsLight() bool {
	return (s.File+s.Rank)%2 == 1
}

func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

func (s Square) index() int {
	return s.Rank*boardSize + s.File
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+s.File, s.Rank+1)
}

// ParseSquare reads coordinate notation such as "e4".
func ParseSquare(text string) (Square, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", text)
	}
	sq := Square{File: int(text[0] - 'a'), Rank: int(text[1] - '1')}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("invalid square %q", text)
	}
	return sq, nil
}

func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
