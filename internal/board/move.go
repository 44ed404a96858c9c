package board

import "fmt"

// RookMove is the rook relocation linked to a castling move.
type RookMove struct {
	Piece    Piece
	From, To Square
}

// Move describes one ply. It is a plain value: once built it is never
// modified, and the history stack owns a copy of it until it is undone.
type Move struct {
	Piece    Piece
	From, To Square

	// Captured is NoPiece for quiet moves. CapturedAt equals To except for
	// en passant, where it is the square of the passed-over pawn.
	Captured   Piece
	CapturedAt Square

	// Promotion is the piece placed on To when a pawn reaches the last rank.
	Promotion Piece

	// Castle is set only for castling moves.
	Castle RookMove
}

// NoMove represents the absence of a move.
var NoMove = Move{}

// IsZero returns true for NoMove.
func (m Move) IsZero() bool {
	return m.Piece == NoPiece
}

// IsCapture returns true if the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// IsEnPassant returns true if the captured pawn was not on the destination.
func (m Move) IsEnPassant() bool {
	return m.Captured != NoPiece && m.CapturedAt != m.To
}

// IsCastle returns true if the move carries a rook relocation.
func (m Move) IsCastle() bool {
	return m.Castle.Piece != NoPiece
}

// IsPromotion returns true if a pawn is promoted by this move.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPiece
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.IsZero() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += "q"
	}
	return s
}

// ParseMove resolves a UCI move string against the legal moves of the
// piece on its origin square.
func ParseMove(s *State, text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %s", text)
	}

	from, err := ParseSquare(text[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(text) == 5 && text[4] != 'q' {
		return NoMove, fmt.Errorf("invalid promotion piece: %c", text[4])
	}

	if s.PieceAt(from) == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s: %w", from, ErrNoPiece)
	}

	for _, m := range s.LegalMovesFor(from) {
		if m.To == to {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%s: %w", text, ErrIllegalMove)
}
