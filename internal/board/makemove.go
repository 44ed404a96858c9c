package board

// Apply executes a move for the side to move. The move must come from the
// generator (or be legal); only its mechanics are applied here. Moves built
// from just Piece/From/To are completed with their capture, en passant,
// castling and promotion details first.
//
// A move of a piece that does not belong to the side to move is rejected
// before any mutation.
func (s *State) Apply(m Move) error {
	if !m.From.IsValid() || !m.To.IsValid() {
		return ErrInvalidSquare
	}
	p := s.PieceAt(m.From)
	if p == NoPiece {
		s.logger.Printf("apply %s: %v", m, ErrNoPiece)
		return ErrNoPiece
	}
	if p.Color() != s.sideToMove {
		s.logger.Printf("apply %s: %v", m, ErrNotYourTurn)
		return ErrNotYourTurn
	}
	if m.Piece != NoPiece && m.Piece != p {
		s.logger.Printf("apply %s: moving %s but %s stands on %s", m, m.Piece, p, m.From)
		return ErrIllegalMove
	}

	s.make(m)
	s.RefreshCaches()
	s.gameOver = s.gen.IsCheckmate(s, s.sideToMove)
	s.ClearSelection()
	return nil
}

// Undo takes back the last applied move. With an empty history it logs and
// does nothing.
func (s *State) Undo() (Move, bool) {
	if len(s.history) == 0 {
		s.logger.Printf("undo: no move to undo")
		return NoMove, false
	}
	m := s.unmake()
	s.RefreshCaches()
	s.gameOver = false
	s.ClearSelection()
	return m, true
}

// complete fills in the details of a move that only names its piece,
// origin and destination.
func (s *State) complete(m Move) Move {
	if m.Piece == NoPiece {
		m.Piece = s.PieceAt(m.From)
	}
	us := m.Piece.Color()

	if m.Captured == NoPiece {
		m.CapturedAt = m.To
		if target := s.PieceAt(m.To); target != NoPiece {
			m.Captured = target
		} else if m.Piece.IsPawn() && m.From.Col != m.To.Col {
			// Diagonal pawn move onto an empty square: en passant.
			if ep, ok := s.gen.enPassant(s, m.From, m.Piece); ok && ep.To == m.To {
				m.Captured = ep.Captured
				m.CapturedAt = ep.CapturedAt
			}
		}
	}

	if m.Piece.IsKing() && abs(m.To.Col-m.From.Col) == 2 && !m.IsCastle() {
		m.Castle = castlingMove(us, m.To.Col > m.From.Col).Castle
	}

	if m.Piece.IsPawn() && m.To.Row == homeRow(us.Other()) && !m.IsPromotion() {
		m.Promotion = NewPiece(Queen, us)
	}
	return m
}

// make applies m without validation, cache refresh or checkmate testing.
// It is the mutation half of every simulate/restore pair.
func (s *State) make(m Move) Move {
	m = s.complete(m)
	us := m.Piece.Color()

	// Castling: the rook moves as part of the same history entry.
	if m.IsCastle() {
		s.set(m.Castle.From, NoPiece)
		s.set(m.Castle.To, m.Castle.Piece)
	}

	// En passant: the captured pawn is not on the destination.
	if m.IsEnPassant() {
		s.set(m.CapturedAt, NoPiece)
	}

	placed := m.Piece
	if m.IsPromotion() {
		placed = m.Promotion
	}

	s.history = append(s.history, HistoryEntry{
		Move:           m,
		CastlingRights: s.castling,
		HalfMoveClock:  s.halfMoveClock,
	})

	s.set(m.To, placed)
	s.set(m.From, NoPiece)

	s.castling.touch(m.From)
	s.castling.touch(m.To)

	if m.Piece.IsPawn() || m.IsCapture() {
		s.halfMoveClock = 0
	} else {
		s.halfMoveClock++
	}

	s.moveCount[us.Index()]++
	s.sideToMove = us.Other()
	return m
}

// unmake pops the last history entry and reverses it exactly.
func (s *State) unmake() Move {
	n := len(s.history)
	e := s.history[n-1]
	s.history = s.history[:n-1]
	m := e.Move

	s.set(m.To, NoPiece)
	if m.IsCapture() {
		s.set(m.CapturedAt, m.Captured)
	}
	// The stored piece is the pawn for promotions.
	s.set(m.From, m.Piece)

	if m.IsCastle() {
		s.set(m.Castle.To, NoPiece)
		s.set(m.Castle.From, m.Castle.Piece)
	}

	s.castling = e.CastlingRights
	s.halfMoveClock = e.HalfMoveClock

	us := m.Piece.Color()
	s.moveCount[us.Index()]--
	s.sideToMove = us
	return m
}

// restore undoes a simulated move and brings the caches back in line.
func (s *State) restore() {
	s.unmake()
	s.RefreshCaches()
}
