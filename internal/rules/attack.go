// Package rules decides legality, applies moves and classifies positions.
// Everything here is synchronous and works on plain model values.
package rules

import "github.com/benbeisheim/chessrules-backend/internal/model"

// IsSquareAttacked reports whether any piece of side by strikes sq.
func IsSquareAttacked(b *model.Board, sq model.Square, by model.Side) bool {
	attacked := false
	b.Each(func(from model.Square, p model.Piece) {
		if attacked || p.Side != by {
			return
		}
		if p.Attacks(b, from, sq) {
			attacked = true
		}
	})
	return attacked
}

// IsKingAttacked reports whether the king of side is attacked. A side with no
// king on the board is never in check.
func IsKingAttacked(b *model.Board, side model.Side) bool {
	king, ok := b.FindKing(side)
	if !ok {
		return false
	}
	return IsSquareAttacked(b, king, side.Opponent())
}

// InCheck reports whether the side to move is in check.
func InCheck(pos *model.Position) bool {
	return IsKingAttacked(&pos.Board, pos.ToMove)
}
