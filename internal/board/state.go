package board

import (
	"fmt"
	"log"
	"strings"
)

// Placement is a cached (row, col, piece) entry of one color's pieces.
type Placement struct {
	Row, Col int
	Piece    Piece
}

// Square returns the square of the placement.
func (pl Placement) Square() Square {
	return Square{pl.Row, pl.Col}
}

// HistoryEntry is one applied move with the state it overwrote.
type HistoryEntry struct {
	Move           Move
	CastlingRights CastlingRights
	HalfMoveClock  int
}

// State is the mutable game position. All mutation goes through Apply and
// Undo (and the generator's internal simulate/restore pair). Copies are
// never implicit: use Clone for an independent deep copy.
type State struct {
	board      [8][8]Piece
	sideToMove Color
	castling   CastlingRights

	history []HistoryEntry
	// lookback seeds the en passant rule when a position is imported from a
	// FEN with a target square; it is never undone.
	lookback *HistoryEntry

	// Caches refreshed by RefreshCaches.
	placements [2][]Placement
	kings      [2]Square

	gameOver      bool
	moveCount     [2]int
	halfMoveClock int
	startFEN      string

	// Selection for the "pick up / drop" boundary.
	selected  Square
	selection []Move

	gen    Generator
	logger *log.Logger
}

// NewState creates the starting position.
func NewState() *State {
	s := &State{logger: log.Default()}
	s.Reset()
	return s
}

// Reset re-initializes the state to the standard starting position.
func (s *State) Reset() {
	if err := s.load(StartFEN); err != nil {
		panic(fmt.Sprintf("board: start position: %v", err))
	}
}

// SetLogger sets the logger used for rejected moves and no-op undos.
// States log through the standard logger until one is set; nil restores it.
func (s *State) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	s.logger = l
}

// Clone creates a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.history = append([]HistoryEntry(nil), s.history...)
	if s.lookback != nil {
		lb := *s.lookback
		c.lookback = &lb
	}
	for i := range s.placements {
		c.placements[i] = append([]Placement(nil), s.placements[i]...)
	}
	c.selection = append([]Move(nil), s.selection...)
	return &c
}

// PieceAt returns the piece at the given square, or NoPiece if empty or off
// the board.
func (s *State) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return s.board[sq.Row][sq.Col]
}

// IsEmpty returns true if the square is on the board and empty.
func (s *State) IsEmpty(sq Square) bool {
	return sq.IsValid() && s.board[sq.Row][sq.Col] == NoPiece
}

func (s *State) set(sq Square, p Piece) {
	s.board[sq.Row][sq.Col] = p
}

// SideToMove returns the color whose turn it is.
func (s *State) SideToMove() Color { return s.sideToMove }

// Castling returns the current castling flags.
func (s *State) Castling() CastlingRights { return s.castling }

// IsGameOver returns true once checkmate has been detected at turn end.
func (s *State) IsGameOver() bool { return s.gameOver }

// MoveCount returns the number of moves made by a color.
func (s *State) MoveCount(c Color) int { return s.moveCount[c.Index()] }

// HalfMoveClock returns the number of plies since the last capture or pawn move.
func (s *State) HalfMoveClock() int { return s.halfMoveClock }

// FullMoveNumber returns the FEN full-move number.
func (s *State) FullMoveNumber() int { return s.moveCount[Black.Index()] + 1 }

// StartFEN returns the FEN the game was started or imported from.
func (s *State) StartFEN() string { return s.startFEN }

// History returns a copy of the applied moves, oldest first.
func (s *State) History() []Move {
	moves := make([]Move, len(s.history))
	for i, e := range s.history {
		moves[i] = e.Move
	}
	return moves
}

// LastMove returns the most recent applied move, or NoMove.
func (s *State) LastMove() Move {
	if len(s.history) == 0 {
		return NoMove
	}
	return s.history[len(s.history)-1].Move
}

// lastEntry returns the entry the en passant rule looks back at.
func (s *State) lastEntry() *HistoryEntry {
	if n := len(s.history); n > 0 {
		return &s.history[n-1]
	}
	return s.lookback
}

// EnPassantCaptured returns the pawn removed by en passant on the last ply,
// or NoPiece.
func (s *State) EnPassantCaptured() Piece {
	if m := s.LastMove(); m.IsEnPassant() {
		return m.Captured
	}
	return NoPiece
}

// EnPassantTarget returns the square behind a pawn that advanced two ranks
// on the last ply, or NoSquare.
func (s *State) EnPassantTarget() Square {
	e := s.lastEntry()
	if e == nil {
		return NoSquare
	}
	m := e.Move
	if !m.Piece.IsPawn() || abs(m.To.Row-m.From.Row) != 2 {
		return NoSquare
	}
	return Square{(m.From.Row + m.To.Row) / 2, m.To.Col}
}

// Placements returns the cached pieces of a color in row-major order.
func (s *State) Placements(c Color) []Placement {
	return s.placements[c.Index()]
}

// KingSquare returns the cached king square of a color, or NoSquare.
func (s *State) KingSquare(c Color) Square {
	return s.kings[c.Index()]
}

// RefreshCaches recomputes the per-color placement lists and king squares.
// It must run after any mutation before check detection.
func (s *State) RefreshCaches() {
	s.placements[0] = s.placements[0][:0]
	s.placements[1] = s.placements[1][:0]
	s.kings = [2]Square{NoSquare, NoSquare}

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := s.board[row][col]
			if p == NoPiece {
				continue
			}
			i := p.Color().Index()
			s.placements[i] = append(s.placements[i], Placement{row, col, p})
			if p.IsKing() {
				s.kings[i] = Square{row, col}
			}
		}
	}
}

// Material returns the summed piece values of a color.
func (s *State) Material(c Color) int {
	total := 0
	for _, pl := range s.placements[c.Index()] {
		total += pl.Piece.Value()
	}
	return total
}

// String returns a visual representation of the position.
func (s *State) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for col := 0; col < 8; col++ {
			p := s.board[row][col]
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", s.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", s.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", s.EnPassantTarget())
	fmt.Fprintf(&sb, "Half-move clock: %d\n", s.halfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", s.FullMoveNumber())
	fmt.Fprintf(&sb, "FEN: %s\n", s.FEN())
	return sb.String()
}
