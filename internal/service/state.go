package service

import (
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

// GameState is what clients receive over REST and in gameState broadcasts.
// Board rows run from rank 8 down to rank 1, with null for an empty square.
type GameState struct {
	ID          string               `json:"id"`
	FEN         string               `json:"fen"`
	Board       [][]*model.Piece     `json:"board"`
	ToMove      model.Side           `json:"toMove"`
	Status      model.GameStatus     `json:"status"`
	IsCheck     bool                 `json:"isCheck"`
	Castling    model.CastlingRights `json:"castling"`
	MoveHistory []string             `json:"moveHistory"`
	LastMove    *model.Move          `json:"lastMove"`
	Players     Players              `json:"players"`
}

type Players struct {
	White *Player `json:"white"`
	Black *Player `json:"black"`
}

func boardRows(b model.Board) [][]*model.Piece {
	rows := b.Rows()
	out := make([][]*model.Piece, len(rows))
	for i, row := range rows {
		out[i] = make([]*model.Piece, len(row))
		for j := range row {
			if row[j].IsEmpty() {
				continue
			}
			p := row[j]
			out[i][j] = &p
		}
	}
	return out
}
