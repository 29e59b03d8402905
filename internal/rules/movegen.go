package rules

import "github.com/benbeisheim/chessrules-backend/internal/model"

var promotionKinds = []model.Kind{model.Queen, model.Rook, model.Bishop, model.Knight}

// LegalMoves lists every legal move for the side to move. A pawn reaching the
// last rank contributes one move per promotion piece.
func LegalMoves(pos *model.Position) []model.Move {
	moves := make([]model.Move, 0, 48)
	pos.Board.Each(func(from model.Square, p model.Piece) {
		if p.Side == pos.ToMove {
			moves = appendLegalFrom(moves, pos, from, p)
		}
	})
	return moves
}

// LegalMovesFrom lists the legal moves of the piece on from. It is empty when
// the square is empty or holds a piece of the side not on move.
func LegalMovesFrom(pos *model.Position, from model.Square) []model.Move {
	p, ok := pos.Board.Get(from)
	if !ok || p.Side != pos.ToMove {
		return []model.Move{}
	}
	return appendLegalFrom(make([]model.Move, 0, 8), pos, from, p)
}

// HasLegalMove stops at the first legal move it finds.
func HasLegalMove(pos *model.Position) bool {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := model.NewSquare(file, rank)
			p, ok := pos.Board.Get(from)
			if !ok || p.Side != pos.ToMove {
				continue
			}
			if len(appendLegalFrom(nil, pos, from, p)) > 0 {
				return true
			}
		}
	}
	return false
}

func appendLegalFrom(moves []model.Move, pos *model.Position, from model.Square, p model.Piece) []model.Move {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			m := model.NewMove(from, model.NewSquare(file, rank), p.Side)
			if !IsLegal(pos, m) {
				continue
			}
			if isPromotion(p, m) {
				for _, kind := range promotionKinds {
					moves = append(moves, m.WithPromotion(kind))
				}
				continue
			}
			moves = append(moves, m)
		}
	}
	return moves
}
