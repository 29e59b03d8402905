package model

// CastlingRights only ever lose flags during a game.
type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

func AllCastlingRights() CastlingRights {
	return CastlingRights{WhiteKingside: true, WhiteQueenside: true, BlackKingside: true, BlackQueenside: true}
}

func (r CastlingRights) Has(side Side, kingside bool) bool {
	switch {
	case side == White && kingside:
		return r.WhiteKingside
	case side == White:
		return r.WhiteQueenside
	case kingside:
		return r.BlackKingside
	default:
		return r.BlackQueenside
	}
}

func (r *CastlingRights) Revoke(side Side, kingside bool) {
	switch {
	case side == White && kingside:
		r.WhiteKingside = false
	case side == White:
		r.WhiteQueenside = false
	case kingside:
		r.BlackKingside = false
	default:
		r.BlackQueenside = false
	}
}

func (r *CastlingRights) RevokeSide(side Side) {
	r.Revoke(side, true)
	r.Revoke(side, false)
}

// RookHome returns the corner square of the rook that castles on the given wing.
func RookHome(side Side, kingside bool) Square {
	if kingside {
		return NewSquare(7, side.homeRank())
	}
	return NewSquare(0, side.homeRank())
}

// KingHome returns the e-file square the king castles from.
func KingHome(side Side) Square {
	return NewSquare(4, side.homeRank())
}
