// Package board implements the chess rules engine: an 8x8 mailbox position,
// move execution and undo, legal move generation and checkmate detection.
package board

import "fmt"

// Square is a (row, column) coordinate on the board.
// Row 0 is rank 8 and row 7 is rank 1; column 0 is the a-file.
type Square struct {
	Row, Col int
}

// NoSquare is the invalid square.
var NoSquare = Square{-1, -1}

// Named squares used by castling and tests.
var (
	A1 = Square{7, 0}
	B1 = Square{7, 1}
	C1 = Square{7, 2}
	D1 = Square{7, 3}
	E1 = Square{7, 4}
	F1 = Square{7, 5}
	G1 = Square{7, 6}
	H1 = Square{7, 7}
	A8 = Square{0, 0}
	B8 = Square{0, 1}
	C8 = Square{0, 2}
	D8 = Square{0, 3}
	E8 = Square{0, 4}
	F8 = Square{0, 5}
	G8 = Square{0, 6}
	H8 = Square{0, 7}
)

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

// File returns the file (0=a, 7=h).
func (sq Square) File() int {
	return sq.Col
}

// Rank returns the rank (0=rank 1, 7=rank 8).
func (sq Square) Rank() int {
	return 7 - sq.Row
}

// Offset returns the square shifted by dr rows and dc columns.
func (sq Square) Offset(dr, dc int) Square {
	return Square{sq.Row + dr, sq.Col + dc}
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '8'-sq.Row)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return Square{Row: 7 - rank, Col: file}, nil
}

// homeRow returns the back rank row of a color.
func homeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}
