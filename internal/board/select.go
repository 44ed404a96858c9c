package board

import "fmt"

// LegalMovesFor returns the legal moves of the piece on sq.
func (s *State) LegalMovesFor(sq Square) []Move {
	if !sq.IsValid() {
		return nil
	}
	return s.gen.LegalMovesFor(s, sq)
}

// LegalMoves returns all legal moves of color c.
func (s *State) LegalMoves(c Color) []Move {
	return s.gen.LegalMoves(s, c)
}

// IsCheckmate returns true if color c is checkmated.
func (s *State) IsCheckmate(c Color) bool {
	return s.gen.IsCheckmate(s, c)
}

// IsStalemate returns true if color c has no legal move while not in check.
func (s *State) IsStalemate(c Color) bool {
	return s.gen.IsStalemate(s, c)
}

// Select picks up the piece on sq for the side to move and caches its legal
// moves. Coordinates off the board clear the selection.
func (s *State) Select(sq Square) ([]Move, error) {
	s.ClearSelection()
	if !sq.IsValid() {
		return nil, ErrInvalidSquare
	}
	p := s.PieceAt(sq)
	if p == NoPiece {
		return nil, ErrNoPiece
	}
	if p.Color() != s.sideToMove {
		s.logger.Printf("select %s: %v", sq, ErrNotYourTurn)
		return nil, ErrNotYourTurn
	}
	s.selected = sq
	s.selection = s.gen.LegalMovesFor(s, sq)
	return s.selection, nil
}

// Selected returns the square of the picked-up piece, or NoSquare.
func (s *State) Selected() Square {
	return s.selected
}

// ClearSelection drops the picked-up piece and its cached moves.
func (s *State) ClearSelection() {
	s.selected = NoSquare
	s.selection = nil
}

// IsLegalDestination reports whether sq is a destination in the cached
// moves of the selected piece. It never regenerates moves.
func (s *State) IsLegalDestination(sq Square) bool {
	for _, m := range s.selection {
		if m.To == sq {
			return true
		}
	}
	return false
}

// MovePiece moves the piece on from to to if that is a legal move for the
// side to move. Rejected attempts leave the position untouched.
func (s *State) MovePiece(from, to Square) error {
	if !from.IsValid() || !to.IsValid() {
		s.ClearSelection()
		return ErrInvalidSquare
	}
	p := s.PieceAt(from)
	if p == NoPiece {
		return ErrNoPiece
	}
	if p.Color() != s.sideToMove {
		s.logger.Printf("move %s%s: %v", from, to, ErrNotYourTurn)
		return ErrNotYourTurn
	}

	moves := s.selection
	if s.selected != from {
		moves = s.gen.LegalMovesFor(s, from)
	}
	for _, m := range moves {
		if m.To == to {
			return s.Apply(m)
		}
	}

	s.logger.Printf("move %s%s: %v", from, to, ErrIllegalMove)
	s.ClearSelection()
	return fmt.Errorf("%s%s: %w", from, to, ErrIllegalMove)
}
