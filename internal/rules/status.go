package rules

import "github.com/benbeisheim/chessrules-backend/internal/model"

// Classify reports the state of the game for the side to move. Checkmate and
// stalemate take priority over check, and check over a material draw.
func Classify(pos *model.Position) model.GameStatus {
	inCheck := InCheck(pos)
	hasMoves := HasLegalMove(pos)

	switch {
	case inCheck && !hasMoves:
		return model.Checkmate(pos.ToMove.Opponent())
	case !hasMoves:
		return model.Stalemate()
	case inCheck:
		return model.SideInCheck(pos.ToMove)
	case HasInsufficientMaterial(&pos.Board):
		return model.DrawInsufficientMaterial()
	}
	return model.Ongoing()
}

// HasInsufficientMaterial recognises bare kings, a single minor piece against a
// bare king, and opposing bishops that travel on the same square colour.
func HasInsufficientMaterial(b *model.Board) bool {
	type minor struct {
		piece model.Piece
		sq    model.Square
	}
	var minors []minor
	heavy := false

	b.Each(func(sq model.Square, p model.Piece) {
		switch p.Kind {
		case model.King:
		case model.Bishop, model.Knight:
			minors = append(minors, minor{piece: p, sq: sq})
		default:
			heavy = true
		}
	})
	if heavy {
		return false
	}

	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, c := minors[0], minors[1]
		return a.piece.Kind == model.Bishop &&
			c.piece.Kind == model.Bishop &&
			a.piece.Side != c.piece.Side &&
			a.sq.IsLight() == c.sq.IsLight()
	}
	return false
}
