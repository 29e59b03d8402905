package rules

import (
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

func TestIsLegal(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want bool
	}{
		{"pawn single push", fen.InitialFEN, "e2e3", true},
		{"pawn double push", fen.InitialFEN, "e2e4", true},
		{"pawn triple push", fen.InitialFEN, "e2e5", false},
		{"pawn diagonal onto empty", fen.InitialFEN, "e2d3", false},
		{"knight jump", fen.InitialFEN, "g1f3", true},
		{"bishop through pawn", fen.InitialFEN, "f1c4", false},
		{"capture own piece", fen.InitialFEN, "d1d2", false},
		{"wrong side to move", fen.InitialFEN, "e7e5", false},
		{"empty source", fen.InitialFEN, "e4e5", false},
		{"pawn push blocked", "4k3/8/8/8/4p3/4P3/8/4K3 w - - 0 1", "e3e4", false},
		{"double push blocked halfway", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "e2e4", false},
		{"pawn captures diagonally", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", true},
		{"pinned bishop", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", "e2d3", false},
		{"pinned bishop stays on line", "4k3/8/8/7b/8/8/4B3/3K4 w - - 0 1", "e2f3", true},
		{"king steps into attack", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1", "e1e2", false},
		{"king captures undefended", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1", "e1d2", true},
		{"must resolve check", "4k3/4r3/8/8/8/8/8/R3K3 w - - 0 1", "a1a2", false},
		{"king sidesteps check", "4k3/4r3/8/8/8/8/8/R3K3 w - - 0 1", "e1d1", true},
		{"kings never touch", "8/8/8/4k3/8/4K3/8/8 w - - 0 1", "e3e4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := fen.MustParse(tt.fen)
			m, err := model.ParseMove(tt.move, pos.ToMove)
			if err != nil {
				t.Fatalf("ParseMove(%q) error = %v", tt.move, err)
			}
			if got := IsLegal(pos, m); got != tt.want {
				t.Errorf("IsLegal(%s) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}
}

func TestIsLegal_WrongMover(t *testing.T) {
	pos := model.NewPosition()
	m := model.NewMove(sq(t, "e2"), sq(t, "e4"), model.Black)
	if IsLegal(pos, m) {
		t.Error("IsLegal() accepted a white pawn move labelled as Black")
	}
}

func TestIsLegal_OffBoard(t *testing.T) {
	pos := model.NewPosition()
	m := model.NewMove(model.NewSquare(4, 1), model.NewSquare(4, 9), model.White)
	if IsLegal(pos, m) {
		t.Error("IsLegal() accepted a move off the board")
	}
}

func TestIsLegal_EnPassant(t *testing.T) {
	pos := model.NewPosition()
	play(t, pos, "e2e4", "a7a6", "e4e5", "d7d5")

	if !IsLegal(pos, mv(t, pos, "e5d6")) {
		t.Fatal("IsLegal(e5d6) = false straight after d7d5")
	}
	if IsLegal(pos, mv(t, pos, "e5f6")) {
		t.Error("IsLegal(e5f6) = true with no pawn beside e5 on f5")
	}

	play(t, pos, "h2h3", "h7h6")
	if IsLegal(pos, mv(t, pos, "e5d6")) {
		t.Error("IsLegal(e5d6) = true after the double step was answered")
	}
}

func TestIsLegal_EnPassantNeedsDoubleStep(t *testing.T) {
	pos := fen.MustParse("4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	play(t, pos, "d7d6", "e1e2", "d6d5")
	if IsLegal(pos, mv(t, pos, "e5d6")) {
		t.Error("IsLegal(e5d6) = true after two single steps")
	}
}

func TestIsLegal_EnPassantWithoutHistory(t *testing.T) {
	pos := fen.MustParse("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	if IsLegal(pos, mv(t, pos, "e5d6")) {
		t.Error("IsLegal(e5d6) = true with no recorded double step")
	}
}

func TestEnPassantVictim(t *testing.T) {
	m := model.NewMove(sq(t, "e5"), sq(t, "d6"), model.White)
	if got := EnPassantVictim(nil, m); got != sq(t, "d5") {
		t.Errorf("EnPassantVictim(nil) = %s, want d5", got)
	}

	history := []model.Move{model.NewMove(sq(t, "d7"), sq(t, "d5"), model.Black)}
	if got := EnPassantVictim(history, m); got != sq(t, "d5") {
		t.Errorf("EnPassantVictim(history) = %s, want d5", got)
	}
}

func TestWouldLeaveMoverInCheck_DoesNotMutate(t *testing.T) {
	pos := fen.MustParse("4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	before := fen.Format(pos)

	if !WouldLeaveMoverInCheck(pos, mv(t, pos, "e2d3")) {
		t.Error("WouldLeaveMoverInCheck(e2d3) = false for a pinned bishop")
	}
	if got := fen.Format(pos); got != before {
		t.Errorf("position changed to %s, want %s", got, before)
	}
}

func TestIsSquareAttacked(t *testing.T) {
	pos := model.NewPosition()
	tests := []struct {
		sq   string
		by   model.Side
		want bool
	}{
		{"f3", model.White, true},
		{"e4", model.White, false},
		{"d6", model.Black, true},
		{"e5", model.White, false},
		{"e1", model.Black, false},
	}

	for _, tt := range tests {
		if got := IsSquareAttacked(&pos.Board, sq(t, tt.sq), tt.by); got != tt.want {
			t.Errorf("IsSquareAttacked(%s, %s) = %v, want %v", tt.sq, tt.by, got, tt.want)
		}
	}
}

func TestIsKingAttacked_NoKing(t *testing.T) {
	pos := fen.MustParse("8/8/8/8/8/8/8/R7 w - - 0 1")
	if IsKingAttacked(&pos.Board, model.Black) {
		t.Error("IsKingAttacked() = true for a side without a king")
	}
}
