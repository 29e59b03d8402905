package rules

import (
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/testutil"
)

func TestApply_OpeningPawnPush(t *testing.T) {
	pos := model.NewPosition()
	ok, err := Apply(pos, mv(t, pos, "e2e4"), false)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok, "Apply(e2e4)")

	if !pieceAt(t, pos, "e2").IsEmpty() {
		t.Errorf("e2 = %v, want empty", pieceAt(t, pos, "e2"))
	}
	if got := pieceAt(t, pos, "e4"); got != model.NewPiece(model.Pawn, model.White) {
		t.Errorf("e4 = %v, want white pawn", got)
	}
	if pos.ToMove != model.Black {
		t.Errorf("ToMove = %s, want black", pos.ToMove)
	}
	if len(pos.History) != 1 || pos.History[0].String() != "e2e4" {
		t.Errorf("History = %v, want [e2e4]", pos.History)
	}
	if got := Classify(pos); got != model.Ongoing() {
		t.Errorf("Classify() = %v, want ongoing", got)
	}
}

func TestApply_RejectedMoveLeavesPosition(t *testing.T) {
	pos := model.NewPosition()
	before := pos.Clone()

	ok, err := Apply(pos, mv(t, pos, "e2e5"), false)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, ok, "Apply(e2e5)")
	testutil.AssertEqual(t, pos, before, "position after rejected move")
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move model.Move
		want error
	}{
		{
			name: "destination off the board",
			fen:  fen.InitialFEN,
			move: model.NewMove(model.NewSquare(4, 1), model.NewSquare(4, 8), model.White),
			want: errors.ErrInvalidArgument,
		},
		{
			name: "source off the board",
			fen:  fen.InitialFEN,
			move: model.NewMove(model.NewSquare(-1, 1), model.NewSquare(0, 2), model.White),
			want: errors.ErrInvalidArgument,
		},
		{
			name: "empty source",
			fen:  fen.InitialFEN,
			move: model.NewMove(model.NewSquare(4, 3), model.NewSquare(4, 4), model.White),
			want: errors.ErrIllegalState,
		},
		{
			name: "promotion without a piece",
			fen:  "k7/4P3/8/8/8/8/8/4K3 w - - 0 1",
			move: model.NewMove(model.NewSquare(4, 6), model.NewSquare(4, 7), model.White),
			want: errors.ErrInvalidArgument,
		},
		{
			name: "promotion to a king",
			fen:  "k7/4P3/8/8/8/8/8/4K3 w - - 0 1",
			move: model.NewMove(model.NewSquare(4, 6), model.NewSquare(4, 7), model.White).WithPromotion(model.King),
			want: errors.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := fen.MustParse(tt.fen)
			before := pos.Clone()

			ok, err := Apply(pos, tt.move, false)
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertFalse(t, ok)
			testutil.AssertEqual(t, pos, before, "position after failed move")
		})
	}
}

func TestApply_EnPassant(t *testing.T) {
	pos := model.NewPosition()
	play(t, pos, "e2e4", "a7a6", "e4e5", "d7d5")
	if got := pos.Board.Count(); got != 32 {
		t.Fatalf("Count() = %d before the capture, want 32", got)
	}

	play(t, pos, "e5d6")

	if !pieceAt(t, pos, "d5").IsEmpty() {
		t.Errorf("d5 = %v, want the captured pawn removed", pieceAt(t, pos, "d5"))
	}
	if got := pieceAt(t, pos, "d6"); got != model.NewPiece(model.Pawn, model.White) {
		t.Errorf("d6 = %v, want white pawn", got)
	}
	if got := pos.Board.Count(); got != 31 {
		t.Errorf("Count() = %d after en passant, want 31", got)
	}
}

func TestApply_Castling(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		move     string
		king     string
		rookFrom string
		rookTo   string
	}{
		{"white kingside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "g1", "h1", "f1"},
		{"white queenside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "c1", "a1", "d1"},
		{"black kingside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8g8", "g8", "h8", "f8"},
		{"black queenside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "c8", "a8", "d8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := fen.MustParse(tt.fen)
			side := pos.ToMove
			play(t, pos, tt.move)

			if got := pieceAt(t, pos, tt.king); got != model.NewPiece(model.King, side) {
				t.Errorf("%s = %v, want king", tt.king, got)
			}
			if got := pieceAt(t, pos, tt.rookTo); got != model.NewPiece(model.Rook, side) {
				t.Errorf("%s = %v, want rook", tt.rookTo, got)
			}
			if !pieceAt(t, pos, tt.rookFrom).IsEmpty() {
				t.Errorf("%s = %v, want empty", tt.rookFrom, pieceAt(t, pos, tt.rookFrom))
			}
			if pos.Rights.Has(side, true) || pos.Rights.Has(side, false) {
				t.Errorf("Rights = %+v, want %s rights revoked", pos.Rights, side)
			}
			if !pos.Rights.Has(side.Opponent(), true) || !pos.Rights.Has(side.Opponent(), false) {
				t.Errorf("Rights = %+v, opponent rights should be untouched", pos.Rights)
			}
		})
	}
}

func TestIsLegal_Castling(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want bool
	}{
		{"both wings open", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", true},
		{"right revoked", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", "e1g1", false},
		{"rook missing", "r3k2r/8/8/8/8/8/8/R3K3 w KQkq - 0 1", "e1g1", false},
		{"path blocked", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", "e1c1", false},
		{"b-file blocker only matters for queenside", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", "e1g1", true},
		{"king in check", "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1", false},
		{"crossing an attacked square", "5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1", false},
		{"other wing while f-file attacked", "5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1c1", true},
		{"landing on an attacked square", "4k1r1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1", false},
		{"b1 attacked does not stop queenside", "1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1c1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := fen.MustParse(tt.fen)
			if got := IsLegal(pos, mv(t, pos, tt.move)); got != tt.want {
				t.Errorf("IsLegal(%s) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}
}

func TestApply_RightsOnlyShrink(t *testing.T) {
	pos := fen.MustParse("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	play(t, pos, "h1h2")
	if pos.Rights.WhiteKingside {
		t.Error("WhiteKingside held after the h1 rook moved")
	}
	if !pos.Rights.WhiteQueenside {
		t.Error("WhiteQueenside revoked by a kingside rook move")
	}

	play(t, pos, "e8d8", "h2h1")
	if pos.Rights.WhiteKingside {
		t.Error("WhiteKingside restored when the rook returned")
	}
	if pos.Rights.BlackKingside || pos.Rights.BlackQueenside {
		t.Error("black rights held after the king moved")
	}
}

func TestApply_RookCaptureRevokesRight(t *testing.T) {
	pos := fen.MustParse("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, pos, "a1a8")

	if pos.Rights.BlackQueenside {
		t.Error("BlackQueenside held after the a8 rook was captured")
	}
	if pos.Rights.WhiteQueenside {
		t.Error("WhiteQueenside held after the a1 rook left its corner")
	}
	if !pos.Rights.BlackKingside || !pos.Rights.WhiteKingside {
		t.Errorf("Rights = %+v, kingside rights should be untouched", pos.Rights)
	}
}

func TestApply_Promotion(t *testing.T) {
	for _, kind := range []model.Kind{model.Queen, model.Rook, model.Bishop, model.Knight} {
		t.Run(kind.String(), func(t *testing.T) {
			pos := fen.MustParse("k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
			m := mv(t, pos, "e7e8").WithPromotion(kind)

			ok, err := Apply(pos, m, false)
			testutil.AssertNoError(t, err)
			testutil.AssertTrue(t, ok)

			if got := pieceAt(t, pos, "e8"); got != model.NewPiece(kind, model.White) {
				t.Errorf("e8 = %v, want white %s", got, kind)
			}
			if pos.Board.Count() != 3 {
				t.Errorf("Count() = %d, want 3", pos.Board.Count())
			}
		})
	}
}

func TestApply_PromotionIgnoredOnOrdinaryMove(t *testing.T) {
	pos := model.NewPosition()
	play(t, pos, "g1f3")
	ok, err := Apply(pos, mv(t, pos, "e7e5").WithPromotion(model.Queen), false)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)

	if got := pieceAt(t, pos, "e5"); got != model.NewPiece(model.Pawn, model.Black) {
		t.Errorf("e5 = %v, want black pawn", got)
	}
	last, _ := pos.LastMove()
	if last.Promotion != model.None {
		t.Errorf("recorded promotion = %s, want none", last.Promotion)
	}
}

func TestApply_ValidatedSkipsLegality(t *testing.T) {
	pos := model.NewPosition()
	ok, err := Apply(pos, mv(t, pos, "d1d5"), true)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	if got := pieceAt(t, pos, "d5"); got != model.NewPiece(model.Queen, model.White) {
		t.Errorf("d5 = %v, want white queen", got)
	}
}

func TestApply_PieceCount(t *testing.T) {
	pos := model.NewPosition()
	moves := []struct {
		move  string
		count int
	}{
		{"e2e4", 32},
		{"d7d5", 32},
		{"e4d5", 31},
		{"d8d5", 30},
		{"b1c3", 30},
		{"d5a2", 29},
		{"a1a2", 28},
	}

	for _, step := range moves {
		play(t, pos, step.move)
		if got := pos.Board.Count(); got != step.count {
			t.Errorf("after %s Count() = %d, want %d", step.move, got, step.count)
		}
	}
}
