package rules

import "github.com/benbeisheim/chessrules-backend/internal/model"

// isCastle reports whether m is a king's two-file step from its home square.
func isCastle(piece model.Piece, m model.Move) bool {
	return piece.Kind == model.King &&
		m.From == model.KingHome(piece.Side) &&
		m.DeltaRank() == 0 &&
		m.AbsFile() == 2
}

// castleRookSquares returns where the castling rook starts and lands.
func castleRookSquares(side model.Side, m model.Move) (from, to model.Square) {
	kingside := m.DeltaFile() > 0
	from = model.RookHome(side, kingside)
	if kingside {
		return from, m.From.Offset(1, 0)
	}
	return from, m.From.Offset(-1, 0)
}

// canCastle checks everything about a castle except the safety of the landing
// square, which the check simulation covers.
func canCastle(pos *model.Position, side model.Side, m model.Move) bool {
	kingside := m.DeltaFile() > 0
	if !pos.Rights.Has(side, kingside) {
		return false
	}

	rookSq := model.RookHome(side, kingside)
	if rook, ok := pos.Board.Get(rookSq); !ok || rook != model.NewPiece(model.Rook, side) {
		return false
	}
	if !model.PathClear(&pos.Board, m.From, rookSq) {
		return false
	}

	enemy := side.Opponent()
	if IsSquareAttacked(&pos.Board, m.From, enemy) {
		return false
	}
	step := 1
	if !kingside {
		step = -1
	}
	return !IsSquareAttacked(&pos.Board, m.From.Offset(step, 0), enemy)
}

// updateRights revokes castling rights touched by m. It must run against the
// board before the move is played so a captured rook is still visible.
func updateRights(rights *model.CastlingRights, b *model.Board, piece model.Piece, m model.Move) {
	if piece.Kind == model.King {
		rights.RevokeSide(piece.Side)
	}
	for _, kingside := range []bool{true, false} {
		if piece.Kind == model.Rook && m.From == model.RookHome(piece.Side, kingside) {
			rights.Revoke(piece.Side, kingside)
		}
		if target, ok := b.Get(m.To); ok && target.Kind == model.Rook && m.To == model.RookHome(target.Side, kingside) {
			rights.Revoke(target.Side, kingside)
		}
	}
}
