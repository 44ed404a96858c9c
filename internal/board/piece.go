package board

// Color represents the color of a piece or player.
// It occupies bit 3 of a Piece, so White is 0 and Black is 8.
type Color uint8

const (
	White Color = 0
	Black Color = 8
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ Black
}

// Index returns 0 for White and 1 for Black, for per-color arrays.
func (c Color) Index() int {
	return int(c >> 3)
}

// String returns the color name.
func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// PieceValue is the material value of each piece type.
// The king value is a sentinel large enough that king safety dominates
// any material comparison.
var PieceValue = [7]int{0, 1, 3, 3, 5, 9, 1000}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType | color (type in bits 0-2, color in bit 3).
type Piece uint8

const (
	typeMask  Piece = 7
	colorMask Piece = 8
)

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = Piece(Pawn) | Piece(White)
	WhiteKnight Piece = Piece(Knight) | Piece(White)
	WhiteBishop Piece = Piece(Bishop) | Piece(White)
	WhiteRook   Piece = Piece(Rook) | Piece(White)
	WhiteQueen  Piece = Piece(Queen) | Piece(White)
	WhiteKing   Piece = Piece(King) | Piece(White)
	BlackPawn   Piece = Piece(Pawn) | Piece(Black)
	BlackKnight Piece = Piece(Knight) | Piece(Black)
	BlackBishop Piece = Piece(Bishop) | Piece(Black)
	BlackRook   Piece = Piece(Rook) | Piece(Black)
	BlackQueen  Piece = Piece(Queen) | Piece(Black)
	BlackKing   Piece = Piece(King) | Piece(Black)
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(pt) | Piece(c)
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p & typeMask)
}

// Color returns the Color of the piece.
// NoPiece reports White; callers test for NoPiece first.
func (p Piece) Color() Color {
	return Color(p & colorMask)
}

func (p Piece) IsPawn() bool   { return p.Type() == Pawn }
func (p Piece) IsKnight() bool { return p.Type() == Knight }
func (p Piece) IsBishop() bool { return p.Type() == Bishop }
func (p Piece) IsRook() bool   { return p.Type() == Rook }
func (p Piece) IsQueen() bool  { return p.Type() == Queen }
func (p Piece) IsKing() bool   { return p.Type() == King }

// IsSliding returns true for bishops, rooks and queens.
func (p Piece) IsSliding() bool {
	switch p.Type() {
	case Bishop, Rook, Queen:
		return true
	}
	return false
}

// Value returns the material value of the piece.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	c := " pnbrqk"[p.Type()]
	if p.Color() == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}
