package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/hailam/chessrules/internal/board"
)

// SearchInfo contains information about one completed search iteration.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultyDepth maps difficulty to search depth in plies.
var DifficultyDepth = map[Difficulty]int{
	Easy:   2,
	Medium: 3,
	Hard:   4,
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty: %s", s)
}

// Engine is the chess AI engine.
type Engine struct {
	searcher   *Searcher
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine with the given evaluator.
func NewEngine(eval Evaluator) *Engine {
	return &Engine{
		searcher:   NewSearcher(eval),
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the engine difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// SetEvaluator replaces the leaf evaluator.
func (e *Engine) SetEvaluator(eval Evaluator) {
	e.searcher = NewSearcher(eval)
}

// Evaluator returns the leaf evaluator.
func (e *Engine) Evaluator() Evaluator {
	return e.searcher.Evaluator()
}

// Search finds the best move for the side to move at the difficulty's depth.
func (e *Engine) Search(s *board.State) board.Move {
	m, _ := e.SearchDepth(s, DifficultyDepth[e.difficulty])
	return m
}

// SearchDepth searches to the given depth, deepening one ply at a time so
// OnInfo sees every iteration. The state is not modified.
func (e *Engine) SearchDepth(s *board.State, depth int) (board.Move, int) {
	e.searcher.Reset()
	startTime := time.Now()

	var bestMove board.Move
	var bestScore int
	if depth < 1 {
		depth = 1
	}

	for d := 1; d <= depth; d++ {
		score, move := e.searcher.BestMove(s, s.SideToMove(), d)
		bestMove, bestScore = move, score

		// Report info
		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: d,
				Score: score,
				Nodes: e.searcher.Nodes(),
				Time:  time.Since(startTime),
				Move:  move,
			})
		}

		// Early termination: no move or found mate
		if move.IsZero() || IsMateScore(score) {
			break
		}
	}

	return bestMove, bestScore
}

// Nodes returns the number of nodes searched by the last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// Evaluate returns the static evaluation of a position from White's side.
func (e *Engine) Evaluate(s *board.State) int {
	return Evaluate(e.searcher.Evaluator(), s)
}

// ScoreToString converts a White-relative score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly*4 {
		return fmt.Sprintf("White mates in %d", (MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly*4 {
		return fmt.Sprintf("Black mates in %d", (MateScore+score+1)/2)
	}
	return fmt.Sprintf("%+d", score)
}
