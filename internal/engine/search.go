package engine

import (
	"sort"

	"github.com/hailam/chessrules/internal/board"
)

// Search constants. Scores are large enough to sit above any centipawn
// evaluation, since the king alone is worth 1000 pawns.
const (
	Infinity  = 1 << 30
	MateScore = 1 << 28
	MaxPly    = 64
)

// Searcher performs the alpha-beta search. White maximizes and Black
// minimizes; every branch works on its own copy of the state.
type Searcher struct {
	eval  Evaluator
	nodes uint64
}

// NewSearcher creates a searcher using the given evaluator.
func NewSearcher(eval Evaluator) *Searcher {
	if eval == nil {
		eval = MaterialEvaluator{}
	}
	return &Searcher{eval: eval}
}

// Reset resets the node counter for a new search.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Evaluator returns the evaluator used at the leaves.
func (s *Searcher) Evaluator() Evaluator {
	return s.eval
}

// BestMove searches depth plies for color c, which must be the side to move.
// It returns the White-relative score and the best move, or NoMove when c
// has no legal move.
func (s *Searcher) BestMove(pos *board.State, c board.Color, depth int) (int, board.Move) {
	return s.minimax(pos, c, depth, 0, -Infinity, Infinity)
}

func (s *Searcher) minimax(pos *board.State, c board.Color, depth, ply, alpha, beta int) (int, board.Move) {
	s.nodes++

	if pos.IsGameOver() {
		return mateScore(pos.SideToMove(), ply), board.NoMove
	}
	if depth <= 0 || c != pos.SideToMove() {
		return Evaluate(s.eval, pos), board.NoMove
	}

	moves := orderMoves(pos.LegalMoves(c))
	if len(moves) == 0 {
		return Evaluate(s.eval, pos), board.NoMove
	}

	maximizing := c == board.White
	best := Infinity
	if maximizing {
		best = -Infinity
	}
	bestMove := board.NoMove

	for _, m := range moves {
		child := pos.Clone()
		if err := child.Apply(m); err != nil {
			continue
		}
		score, _ := s.minimax(child, c.Other(), depth-1, ply+1, alpha, beta)

		if maximizing {
			if score > best || bestMove.IsZero() {
				best, bestMove = score, m
			}
			alpha = max(alpha, score)
		} else {
			if score < best || bestMove.IsZero() {
				best, bestMove = score, m
			}
			beta = min(beta, score)
		}
		if beta <= alpha {
			break // Alpha-Beta Pruning
		}
	}

	return best, bestMove
}

// mateScore scores a checkmate of the mated color, preferring shorter mates.
func mateScore(mated board.Color, ply int) int {
	if mated == board.White {
		return -MateScore + ply
	}
	return MateScore - ply
}

// orderMoves sorts captures of the most valuable pieces first. Quiet moves
// keep their generation order.
func orderMoves(moves []board.Move) []board.Move {
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Captured.Value() > moves[j].Captured.Value()
	})
	return moves
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int) bool {
	return score > MateScore-MaxPly*4 || score < -MateScore+MaxPly*4
}
