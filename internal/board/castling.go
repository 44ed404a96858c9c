package board

// CastlingRights records, per color, whether the king and each of its rooks
// have left their starting squares. The flags are authoritative: castling
// eligibility never inspects piece placement to decide "has moved".
type CastlingRights struct {
	KingMoved          [2]bool
	KingsideRookMoved  [2]bool
	QueensideRookMoved [2]bool
}

// NoCastling has every king and rook marked as moved.
var NoCastling = CastlingRights{
	KingMoved:          [2]bool{true, true},
	KingsideRookMoved:  [2]bool{true, true},
	QueensideRookMoved: [2]bool{true, true},
}

// CanCastle returns true if the flags still allow castling on the given side.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	i := c.Index()
	if cr.KingMoved[i] {
		return false
	}
	if kingSide {
		return !cr.KingsideRookMoved[i]
	}
	return !cr.QueensideRookMoved[i]
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	s := ""
	if cr.CanCastle(White, true) {
		s += "K"
	}
	if cr.CanCastle(White, false) {
		s += "Q"
	}
	if cr.CanCastle(Black, true) {
		s += "k"
	}
	if cr.CanCastle(Black, false) {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// touch marks the king or rook whose canonical square is sq as moved.
// It is called for both the origin and the destination of every move, so a
// rook captured on its corner also loses its right.
func (cr *CastlingRights) touch(sq Square) {
	for _, c := range [2]Color{White, Black} {
		row := homeRow(c)
		if sq.Row != row {
			continue
		}
		i := c.Index()
		switch sq.Col {
		case 4:
			cr.KingMoved[i] = true
		case 7:
			cr.KingsideRookMoved[i] = true
		case 0:
			cr.QueensideRookMoved[i] = true
		}
	}
}
