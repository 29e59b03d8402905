package rules

import "github.com/benbeisheim/chessrules-backend/internal/model"

// IsLegal reports whether m may be played in pos. Moves touching squares off
// the board are rejected rather than treated as errors.
func IsLegal(pos *model.Position, m model.Move) bool {
	if !m.From.Valid() || !m.To.Valid() {
		return false
	}
	if m.Mover != pos.ToMove {
		return false
	}
	piece, ok := pos.Board.Get(m.From)
	if !ok || piece.Side != m.Mover {
		return false
	}
	if m.From == m.To {
		return false
	}
	if target, occupied := pos.Board.Get(m.To); occupied && target.Side == m.Mover {
		return false
	}
	if !IsValidGameMove(pos, m) {
		return false
	}
	return !WouldLeaveMoverInCheck(pos, m)
}

// IsValidGameMove applies the piece-specific game rules on top of the raw
// movement shape: pawn pushes and captures, sliding blockers and castling. It
// does not look at whose turn it is or at the mover's own king.
func IsValidGameMove(pos *model.Position, m model.Move) bool {
	piece, ok := pos.Board.Get(m.From)
	if !ok {
		return false
	}
	switch piece.Kind {
	case model.Pawn:
		return isValidPawnMove(pos, piece, m)
	case model.King:
		if isCastle(piece, m) {
			return canCastle(pos, piece.Side, m)
		}
		return piece.IsGeometricallyValid(m)
	case model.Knight:
		return piece.IsGeometricallyValid(m)
	case model.Bishop, model.Rook, model.Queen:
		return piece.IsGeometricallyValid(m) && model.PathClear(&pos.Board, m.From, m.To)
	}
	return false
}

func isValidPawnMove(pos *model.Position, pawn model.Piece, m model.Move) bool {
	if !pawn.IsGeometricallyValid(m) {
		return false
	}
	target, occupied := pos.Board.Get(m.To)
	if m.AbsFile() == 0 {
		if occupied {
			return false
		}
		if m.AbsRank() == 2 {
			if _, blocked := pos.Board.Get(m.From.Offset(0, m.DeltaRank()/2)); blocked {
				return false
			}
		}
		return true
	}
	if occupied {
		return target.Side != pawn.Side
	}
	return isEnPassant(pos, pawn, m)
}

// isEnPassant reports whether a diagonal pawn step onto an empty square is an
// en-passant capture: the last move must be an enemy pawn's double step that
// landed beside the capturing pawn.
func isEnPassant(pos *model.Position, pawn model.Piece, m model.Move) bool {
	last, ok := pos.LastMove()
	if !ok {
		return false
	}
	if last.To != model.NewSquare(m.To.File, m.From.Rank) {
		return false
	}
	if last.AbsFile() != 0 || last.AbsRank() != 2 {
		return false
	}
	victim, occupied := pos.Board.Get(last.To)
	return occupied && victim.Kind == model.Pawn && victim.Side != pawn.Side
}

// EnPassantVictim returns the square of the pawn removed by an en-passant
// capture. Without history it falls back to the destination file on the
// capturing pawn's rank.
func EnPassantVictim(history []model.Move, m model.Move) model.Square {
	if len(history) == 0 {
		return model.NewSquare(m.To.File, m.From.Rank)
	}
	return history[len(history)-1].To
}

// WouldLeaveMoverInCheck plays m on a scratch copy of the board and reports
// whether the mover's king is attacked afterwards. The position is not touched.
func WouldLeaveMoverInCheck(pos *model.Position, m model.Move) bool {
	piece, ok := pos.Board.Get(m.From)
	if !ok {
		return false
	}
	scratch := pos.Board.Copy()
	playOnBoard(&scratch, pos.History, piece, m)
	return IsKingAttacked(&scratch, piece.Side)
}

// playOnBoard moves the piece for m, including the rook of a castle, the victim
// of an en-passant capture and any promotion.
func playOnBoard(b *model.Board, history []model.Move, piece model.Piece, m model.Move) {
	if piece.Kind == model.Pawn && m.AbsFile() == 1 {
		if _, occupied := b.Get(m.To); !occupied {
			b.Clear(EnPassantVictim(history, m))
		}
	}
	if isCastle(piece, m) {
		rookFrom, rookTo := castleRookSquares(piece.Side, m)
		rook, _ := b.Get(rookFrom)
		b.Clear(rookFrom)
		b.Set(rookTo, rook)
	}
	b.Clear(m.From)
	if isPromotion(piece, m) && m.Promotion.IsPromotion() {
		piece = model.NewPiece(m.Promotion, piece.Side)
	}
	b.Set(m.To, piece)
}

func isPromotion(piece model.Piece, m model.Move) bool {
	return piece.Kind == model.Pawn && m.To.Rank == piece.Side.LastRank()
}
