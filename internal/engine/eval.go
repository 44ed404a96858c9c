// Package engine implements the chess AI: static evaluation and a
// fixed-depth alpha-beta minimax search over board.State.
package engine

import (
	"github.com/hailam/chessrules/internal/board"
)

// Evaluator scores the pieces of one color. Larger is better for that color.
type Evaluator interface {
	Evaluate(s *board.State, c board.Color) int
}

// MaterialEvaluator sums the plain piece values of a color.
type MaterialEvaluator struct{}

// Evaluate returns the material of color c.
func (MaterialEvaluator) Evaluate(s *board.State, c board.Color) int {
	return s.Material(c)
}

// Phase is the coarse stage of the game used to pick the king table.
type Phase int

const (
	Early Phase = iota
	Middle
	Endgame
)

func (p Phase) String() string {
	switch p {
	case Early:
		return "early"
	case Middle:
		return "middle"
	case Endgame:
		return "endgame"
	}
	return "unknown"
}

// GamePhase classifies the position by its queen and pawn counts.
// Fewer than two queens or more than twelve pawns is the middle game,
// eight pawns or fewer is the endgame, anything else is early.
func GamePhase(s *board.State) Phase {
	queens, pawns := 0, 0
	for _, c := range [2]board.Color{board.White, board.Black} {
		for _, pl := range s.Placements(c) {
			switch {
			case pl.Piece.IsQueen():
				queens++
			case pl.Piece.IsPawn():
				pawns++
			}
		}
	}

	switch {
	case queens < 2 || pawns > 12:
		return Middle
	case pawns <= 8:
		return Endgame
	}
	return Early
}

// Piece-Square Tables (PST) for positional evaluation.
// Index 0 is a1 from White's point of view; Black reads them mirrored.

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST (middlegame) - encourages castling
var kingMidgamePST = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

// King PST (endgame) - king should be active
var kingEndgamePST = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

// psts is indexed by piece type; the king entry is the middlegame table.
var psts = [...]*[64]int{
	board.Pawn:   &pawnPST,
	board.Knight: &knightPST,
	board.Bishop: &bishopPST,
	board.Rook:   &rookPST,
	board.Queen:  &queenPST,
	board.King:   &kingMidgamePST,
}

// TableEvaluator adds piece-square bonuses to material scaled to
// centipawns. The king switches to its endgame table in the endgame.
type TableEvaluator struct{}

// Evaluate returns the positional score of color c in centipawns.
func (TableEvaluator) Evaluate(s *board.State, c board.Color) int {
	phase := GamePhase(s)
	score := 0
	for _, pl := range s.Placements(c) {
		score += pl.Piece.Value()*100 + pstBonus(pl, phase)
	}
	return score
}

// pstBonus looks up the table entry of a placed piece.
func pstBonus(pl board.Placement, phase Phase) int {
	pt := pl.Piece.Type()
	if pt == board.NoPieceType {
		return 0
	}
	table := psts[pt]
	if pt == board.King && phase == Endgame {
		table = &kingEndgamePST
	}
	return table[pstIndex(pl.Row, pl.Col, pl.Piece.Color())]
}

// pstIndex maps a board row/column to the a1-first table index of color c.
func pstIndex(row, col int, c board.Color) int {
	if c == board.White {
		return (7-row)*8 + col
	}
	return row*8 + col
}

// Evaluate returns the evaluation of the position from White's perspective.
func Evaluate(e Evaluator, s *board.State) int {
	return e.Evaluate(s, board.White) - e.Evaluate(s, board.Black)
}

// NewEvaluator returns the evaluator registered under name, defaulting to
// material.
func NewEvaluator(name string) Evaluator {
	if name == "tables" {
		return TableEvaluator{}
	}
	return MaterialEvaluator{}
}

// EvaluatorName returns the name NewEvaluator accepts for e.
func EvaluatorName(e Evaluator) string {
	if _, ok := e.(TableEvaluator); ok {
		return "tables"
	}
	return "material"
}
