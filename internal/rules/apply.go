package rules

import (
	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

// Apply plays m on pos. It returns (false, nil) when an unvalidated move is
// illegal, and an error for malformed input. Pass validated=true to skip the
// legality check for a move the caller has already verified.
//
// Either the whole move is applied or pos is left exactly as it was.
func Apply(pos *model.Position, m model.Move, validated bool) (bool, error) {
	if !m.From.Valid() || !m.To.Valid() {
		return false, errors.Wrapf(errors.ErrInvalidArgument, "move %s leaves the board", m)
	}
	if m.Promotion != model.None && !m.Promotion.IsPromotion() {
		return false, errors.Wrapf(errors.ErrInvalidArgument, "cannot promote to %s", m.Promotion)
	}
	piece, ok := pos.Board.Get(m.From)
	if !ok {
		return false, errors.Wrapf(errors.ErrIllegalState, "no piece to move on %s", m.From)
	}
	if !validated && !IsLegal(pos, m) {
		return false, nil
	}

	if isPromotion(piece, m) {
		if !m.Promotion.IsPromotion() {
			return false, errors.Wrapf(errors.ErrInvalidArgument, "move %s needs a promotion piece", m)
		}
	} else {
		m.Promotion = model.None
	}

	next := pos.Clone()
	updateRights(&next.Rights, &pos.Board, piece, m)
	playOnBoard(&next.Board, pos.History, piece, m)
	next.History = append(next.History, m)
	next.ToMove = pos.ToMove.Opponent()

	*pos = *next
	return true, nil
}
