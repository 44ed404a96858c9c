package board

// offset is a (row, column) step.
type offset struct {
	dr, dc int
}

// Direction tables. Generation order within a piece follows table order.
var (
	rookDirections   = [4]offset{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	bishopDirections = [4]offset{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}
	queenDirections  = [8]offset{{-1, 0}, {0, 1}, {1, 0}, {0, -1}, {-1, -1}, {-1, 1}, {1, 1}, {1, -1}}
	knightOffsets    = [8]offset{{-2, -1}, {-2, 1}, {-1, 2}, {1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}}
	kingOffsets      = queenDirections
)

// directions returns the direction table of a sliding piece.
func directions(pt PieceType) []offset {
	switch pt {
	case Bishop:
		return bishopDirections[:]
	case Rook:
		return rookDirections[:]
	case Queen:
		return queenDirections[:]
	}
	return nil
}

// pawnForward returns the row step of a pawn of the given color.
// White pawns move toward row 0 (rank 8).
func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// attacks reports whether the piece on from includes target in its capture
// pattern. Pawns count only their diagonal captures, and kings never count
// castling, so the test never recurses into move generation.
func (s *State) attacks(from Square, p Piece, target Square) bool {
	dr := target.Row - from.Row
	dc := target.Col - from.Col
	if dr == 0 && dc == 0 {
		return false
	}

	switch p.Type() {
	case Pawn:
		return dr == pawnForward(p.Color()) && abs(dc) == 1
	case Knight:
		return (abs(dr) == 1 && abs(dc) == 2) || (abs(dr) == 2 && abs(dc) == 1)
	case King:
		return abs(dr) <= 1 && abs(dc) <= 1
	case Bishop:
		if abs(dr) != abs(dc) {
			return false
		}
	case Rook:
		if dr != 0 && dc != 0 {
			return false
		}
	case Queen:
		if abs(dr) != abs(dc) && dr != 0 && dc != 0 {
			return false
		}
	default:
		return false
	}

	// Sliding piece on a matching line: every square strictly between must be empty.
	step := offset{sign(dr), sign(dc)}
	for sq := from.Offset(step.dr, step.dc); sq != target; sq = sq.Offset(step.dr, step.dc) {
		if s.board[sq.Row][sq.Col] != NoPiece {
			return false
		}
	}
	return true
}

// IsSquareAttacked returns true if any piece of byColor attacks sq.
// It reads the cached placements, so caches must be fresh.
func (g Generator) IsSquareAttacked(s *State, sq Square, byColor Color) bool {
	for _, pl := range s.placements[byColor.Index()] {
		if s.attacks(pl.Square(), pl.Piece, sq) {
			return true
		}
	}
	return false
}

// InCheck returns true if the king of color c is attacked.
func (g Generator) InCheck(s *State, c Color) bool {
	ksq := s.kings[c.Index()]
	if !ksq.IsValid() {
		return false
	}
	return g.IsSquareAttacked(s, ksq, c.Other())
}

// InCheck returns true if the side to move is in check.
func (s *State) InCheck() bool {
	return s.gen.InCheck(s, s.sideToMove)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
