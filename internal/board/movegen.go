package board

// Generator produces moves for a State. It holds no state of its own;
// every method takes the position explicitly.
type Generator struct{}

// PseudoLegalMoves returns the moves of the piece on sq that obey its
// movement pattern and board occupancy, without testing king safety.
func (g Generator) PseudoLegalMoves(s *State, sq Square) []Move {
	return g.appendPseudoLegal(nil, s, sq)
}

func (g Generator) appendPseudoLegal(moves []Move, s *State, sq Square) []Move {
	p := s.PieceAt(sq)
	if p == NoPiece {
		return moves
	}

	if p.IsSliding() {
		return g.appendSlidingMoves(moves, s, sq, p)
	}

	switch p.Type() {
	case Pawn:
		return g.appendPawnMoves(moves, s, sq, p)
	case Knight:
		return g.appendStepMoves(moves, s, sq, p, knightOffsets[:])
	case King:
		moves = g.appendStepMoves(moves, s, sq, p, kingOffsets[:])
		return g.appendCastlingMoves(moves, s, sq, p)
	}
	return moves
}

// newMove builds a normal or capturing move onto to.
func newMove(s *State, p Piece, from, to Square) Move {
	return Move{
		Piece:      p,
		From:       from,
		To:         to,
		Captured:   s.PieceAt(to),
		CapturedAt: to,
	}
}

// appendSlidingMoves walks each direction up to 7 steps, stopping at the
// board edge or the first occupied square (included when it is an enemy).
func (g Generator) appendSlidingMoves(moves []Move, s *State, from Square, p Piece) []Move {
	us := p.Color()
	for _, d := range directions(p.Type()) {
		for i := 1; i < 8; i++ {
			to := from.Offset(d.dr*i, d.dc*i)
			if !to.IsValid() {
				break
			}
			target := s.PieceAt(to)
			if target == NoPiece {
				moves = append(moves, newMove(s, p, from, to))
				continue
			}
			if target.Color() != us {
				moves = append(moves, newMove(s, p, from, to))
			}
			break
		}
	}
	return moves
}

// appendStepMoves handles knights and the king's ordinary one-step moves.
func (g Generator) appendStepMoves(moves []Move, s *State, from Square, p Piece, offsets []offset) []Move {
	us := p.Color()
	for _, d := range offsets {
		to := from.Offset(d.dr, d.dc)
		if !to.IsValid() {
			continue
		}
		target := s.PieceAt(to)
		if target == NoPiece || target.Color() != us {
			moves = append(moves, newMove(s, p, from, to))
		}
	}
	return moves
}

// appendPawnMoves generates pushes, double pushes, diagonal captures and
// en passant. Reaching the last rank always promotes to a queen.
func (g Generator) appendPawnMoves(moves []Move, s *State, from Square, p Piece) []Move {
	us := p.Color()
	fwd := pawnForward(us)
	startRow := 6
	lastRow := 0
	if us == Black {
		startRow = 1
		lastRow = 7
	}
	queen := NewPiece(Queen, us)

	add := func(m Move) {
		if m.To.Row == lastRow {
			m.Promotion = queen
		}
		moves = append(moves, m)
	}

	// Pushes
	one := from.Offset(fwd, 0)
	if s.IsEmpty(one) {
		add(newMove(s, p, from, one))
		two := from.Offset(2*fwd, 0)
		if from.Row == startRow && s.IsEmpty(two) {
			add(newMove(s, p, from, two))
		}
	}

	// Captures
	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(fwd, dc)
		if !to.IsValid() {
			continue
		}
		target := s.PieceAt(to)
		if target != NoPiece && target.Color() != us {
			add(newMove(s, p, from, to))
		}
	}

	if m, ok := g.enPassant(s, from, p); ok {
		moves = append(moves, m)
	}
	return moves
}

// enPassant looks at the immediately preceding history entry only: an enemy
// pawn that just advanced two ranks onto a square beside from can be taken
// by moving onto the square it passed over.
func (g Generator) enPassant(s *State, from Square, p Piece) (Move, bool) {
	e := s.lastEntry()
	if e == nil {
		return NoMove, false
	}
	last := e.Move
	if !last.Piece.IsPawn() || last.Piece.Color() == p.Color() {
		return NoMove, false
	}
	if abs(last.To.Row-last.From.Row) != 2 {
		return NoMove, false
	}
	if last.To.Row != from.Row || abs(last.To.Col-from.Col) != 1 {
		return NoMove, false
	}
	if s.PieceAt(last.To) != last.Piece {
		return NoMove, false
	}

	to := Square{from.Row + pawnForward(p.Color()), last.To.Col}
	if !s.IsEmpty(to) {
		return NoMove, false
	}
	return Move{
		Piece:      p,
		From:       from,
		To:         to,
		Captured:   last.Piece,
		CapturedAt: last.To,
	}, true
}

// appendCastlingMoves adds the king's two-file moves when CanCastle allows.
func (g Generator) appendCastlingMoves(moves []Move, s *State, from Square, p Piece) []Move {
	us := p.Color()
	if from != (Square{homeRow(us), 4}) {
		return moves
	}
	for _, kingSide := range [2]bool{true, false} {
		if g.CanCastle(s, us, kingSide) {
			moves = append(moves, castlingMove(us, kingSide))
		}
	}
	return moves
}

// castlingMove builds the king move with its linked rook relocation.
func castlingMove(c Color, kingSide bool) Move {
	row := homeRow(c)
	m := Move{
		Piece: NewPiece(King, c),
		From:  Square{row, 4},
	}
	rook := NewPiece(Rook, c)
	if kingSide {
		m.To = Square{row, 6}
		m.Castle = RookMove{Piece: rook, From: Square{row, 7}, To: Square{row, 5}}
	} else {
		m.To = Square{row, 2}
		m.Castle = RookMove{Piece: rook, From: Square{row, 0}, To: Square{row, 3}}
	}
	m.CapturedAt = m.To
	return m
}

// CanCastle reports whether color c may castle on the given side: the king
// and rook flags are unmoved, the squares between them are empty, the king
// is not attacked, and no square the king crosses (destination included) is
// attacked.
func (g Generator) CanCastle(s *State, c Color, kingSide bool) bool {
	if !s.castling.CanCastle(c, kingSide) {
		return false
	}

	row := homeRow(c)
	var between, path []int
	if kingSide {
		between = []int{5, 6}
		path = []int{5, 6}
	} else {
		between = []int{1, 2, 3}
		path = []int{3, 2}
	}

	for _, col := range between {
		if s.board[row][col] != NoPiece {
			return false
		}
	}

	them := c.Other()
	if g.IsSquareAttacked(s, Square{row, 4}, them) {
		return false
	}
	for _, col := range path {
		if g.IsSquareAttacked(s, Square{row, col}, them) {
			return false
		}
	}
	return true
}

// LegalMovesFor returns the legal moves of the piece on sq.
func (g Generator) LegalMovesFor(s *State, sq Square) []Move {
	return g.filterLegal(s, g.PseudoLegalMoves(s, sq))
}

// LegalMoves returns every legal move of color c, scanning the board
// row-major from rank 8 to rank 1 and file a to h.
func (g Generator) LegalMoves(s *State, c Color) []Move {
	var pseudo []Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := s.board[row][col]
			if p == NoPiece || p.Color() != c {
				continue
			}
			pseudo = g.appendPseudoLegal(pseudo, s, Square{row, col})
		}
	}
	return g.filterLegal(s, pseudo)
}

// filterLegal keeps the moves that do not leave the mover's king attacked.
func (g Generator) filterLegal(s *State, pseudo []Move) []Move {
	legal := pseudo[:0]
	for _, m := range pseudo {
		if g.IsLegal(s, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegal simulates m on s, tests the mover's king, and restores s.
func (g Generator) IsLegal(s *State, m Move) bool {
	us := m.Piece.Color()
	s.make(m)
	defer s.restore()
	s.RefreshCaches()
	return !g.InCheck(s, us)
}

// HasLegalMoves returns true if color c has at least one legal move.
func (g Generator) HasLegalMoves(s *State, c Color) bool {
	for _, pl := range append([]Placement(nil), s.placements[c.Index()]...) {
		for _, m := range g.PseudoLegalMoves(s, pl.Square()) {
			if g.IsLegal(s, m) {
				return true
			}
		}
	}
	return false
}

// IsCheckmate returns true if color c is in check and has no legal move.
func (g Generator) IsCheckmate(s *State, c Color) bool {
	return g.InCheck(s, c) && !g.HasLegalMoves(s, c)
}

// IsStalemate returns true if color c is not in check but has no legal move.
// It is informational: stalemate never ends the game.
func (g Generator) IsStalemate(s *State, c Color) bool {
	return !g.InCheck(s, c) && !g.HasLegalMoves(s, c)
}
