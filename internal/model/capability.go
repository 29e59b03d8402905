package model

// IsGeometricallyValid checks the shape of m against the movement pattern of the
// piece, ignoring occupancy and check. Castling's two-file king step is left to
// the rules engine.
func (p Piece) IsGeometricallyValid(m Move) bool {
	df, dr := m.AbsFile(), m.AbsRank()
	if df == 0 && dr == 0 {
		return false
	}
	switch p.Kind {
	case Pawn:
		fwd := p.Side.forward()
		if m.DeltaRank() == fwd {
			return df <= 1
		}
		return df == 0 && m.DeltaRank() == 2*fwd && m.From.Rank == pawnStartRank(p.Side)
	case Knight:
		return (df == 1 && dr == 2) || (df == 2 && dr == 1)
	case Bishop:
		return df == dr
	case Rook:
		return df == 0 || dr == 0
	case Queen:
		return df == dr || df == 0 || dr == 0
	case King:
		return df <= 1 && dr <= 1
	}
	return false
}

// Attacks reports whether the piece standing on from strikes to. This is the
// narrow contract used by check detection: shape plus blocking only, with no
// check simulation behind it.
func (p Piece) Attacks(b *Board, from, to Square) bool {
	if from == to || !from.Valid() || !to.Valid() {
		return false
	}
	m := NewMove(from, to, p.Side)
	switch p.Kind {
	case Pawn:
		return m.AbsFile() == 1 && m.DeltaRank() == p.Side.forward()
	case Knight, King:
		return p.IsGeometricallyValid(m)
	case Bishop, Rook, Queen:
		return p.IsGeometricallyValid(m) && PathClear(b, from, to)
	}
	return false
}

// IsSlider reports whether the piece can be blocked along its path.
func (p Piece) IsSlider() bool {
	return p.Kind == Bishop || p.Kind == Rook || p.Kind == Queen
}

// PathClear reports whether every square strictly between from and to is empty.
// from and to must share a rank, file or diagonal.
func PathClear(b *Board, from, to Square) bool {
	df := sign(to.File - from.File)
	dr := sign(to.Rank - from.Rank)
	for sq := from.Offset(df, dr); sq != to && sq.Valid(); sq = sq.Offset(df, dr) {
		if _, occupied := b.Get(sq); occupied {
			return false
		}
	}
	return true
}

func pawnStartRank(side Side) int {
	return side.homeRank() + side.forward()
}
