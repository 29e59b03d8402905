package model

// Board is a fixed 8x8 grid. Cells are values, so copying a Board never aliases.
type Board struct {
	cells [boardSize * boardSize]Piece
}

func (b *Board) Get(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := b.cells[sq.index()]
	return p, !p.IsEmpty()
}

func (b *Board) Set(sq Square, p Piece) {
	if sq.Valid() {
		b.cells[sq.index()] = p
	}
}

func (b *Board) Clear(sq Square) {
	b.Set(sq, Piece{})
}

func (b *Board) Copy() Board {
	return *b
}

// Each visits every occupied square from a1 to h8.
func (b *Board) Each(fn func(sq Square, p Piece)) {
	for i, p := range b.cells {
		if p.IsEmpty() {
			continue
		}
		fn(Square{File: i % boardSize, Rank: i / boardSize}, p)
	}
}

func (b *Board) FindKing(side Side) (Square, bool) {
	king := NewPiece(King, side)
	for i, p := range b.cells {
		if p == king {
			return Square{File: i % boardSize, Rank: i / boardSize}, true
		}
	}
	return Square{}, false
}

func (b *Board) Count() int {
	n := 0
	for _, p := range b.cells {
		if !p.IsEmpty() {
			n++
		}
	}
	return n
}

// Rows returns the board as rank-major rows from rank 8 down to rank 1.
func (b *Board) Rows() [][]Piece {
	rows := make([][]Piece, 0, boardSize)
	for rank := boardSize - 1; rank >= 0; rank-- {
		row := make([]Piece, boardSize)
		copy(row, b.cells[rank*boardSize:(rank+1)*boardSize])
		rows = append(rows, row)
	}
	return rows
}

func NewBoard() Board {
	var board Board
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range backRank {
		board.Set(NewSquare(file, 0), NewPiece(kind, White))
		board.Set(NewSquare(file, 1), NewPiece(Pawn, White))
		board.Set(NewSquare(file, 6), NewPiece(Pawn, Black))
		board.Set(NewSquare(file, 7), NewPiece(kind, Black))
	}
	return board
}
