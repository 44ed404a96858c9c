package board

import "errors"

var (
	ErrInvalidSquare = errors.New("square off the board")
	ErrNoPiece       = errors.New("no piece on square")
	ErrNotYourTurn   = errors.New("piece does not belong to the side to move")
	ErrIllegalMove   = errors.New("illegal move")
)
