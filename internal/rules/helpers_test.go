package rules

import (
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

func sq(t testing.TB, text string) model.Square {
	t.Helper()
	s, err := model.ParseSquare(text)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error = %v", text, err)
	}
	return s
}

func mv(t testing.TB, pos *model.Position, text string) model.Move {
	t.Helper()
	m, err := model.ParseMove(text, pos.ToMove)
	if err != nil {
		t.Fatalf("ParseMove(%q) error = %v", text, err)
	}
	return m
}

// play applies each move in order and fails the test on the first one that is
// not accepted.
func play(t testing.TB, pos *model.Position, moves ...string) {
	t.Helper()
	for _, text := range moves {
		ok, err := Apply(pos, mv(t, pos, text), false)
		if err != nil {
			t.Fatalf("Apply(%s) error = %v", text, err)
		}
		if !ok {
			t.Fatalf("Apply(%s) rejected in %s", text, fen.Format(pos))
		}
	}
}

func pieceAt(t testing.TB, pos *model.Position, text string) model.Piece {
	t.Helper()
	p, _ := pos.Board.Get(sq(t, text))
	return p
}
