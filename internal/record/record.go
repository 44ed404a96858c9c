// Package record holds the persisted form of a game: the position it
// started from, the moves applied since, and the position they reach.
package record

import (
	"errors"
	"fmt"
	"sort"

	"github.com/notnil/chess"

	"github.com/hailam/chessrules/internal/board"
)

// Game results as written in PGN.
const (
	WhiteWins  = "1-0"
	BlackWins  = "0-1"
	Unfinished = "*"
)

// ErrMismatch is returned by Replay when the moves do not reach the stored FEN.
var ErrMismatch = errors.New("record: replay does not reach the stored position")

// Record is a replayable game.
type Record struct {
	StartFEN string            `json:"start_fen"`
	Moves    []string          `json:"moves"`
	FEN      string            `json:"fen"`
	Result   string            `json:"result"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// FromState captures the game held by s.
func FromState(s *board.State) Record {
	history := s.History()
	moves := make([]string, len(history))
	for i, m := range history {
		moves[i] = m.String()
	}
	return Record{
		StartFEN: s.StartFEN(),
		Moves:    moves,
		FEN:      s.FEN(),
		Result:   Result(s),
	}
}

// Result returns the PGN result of the game in s. Only checkmate ends a game.
func Result(s *board.State) string {
	if !s.IsGameOver() {
		return Unfinished
	}
	if s.SideToMove() == board.White {
		return BlackWins
	}
	return WhiteWins
}

// Replay rebuilds the game by applying every move to the start position.
// The history of the returned state can be undone move by move.
func (r Record) Replay() (*board.State, error) {
	start := r.StartFEN
	if start == "" {
		start = board.StartFEN
	}
	s, err := board.ParseFEN(start)
	if err != nil {
		return nil, fmt.Errorf("record: start position: %w", err)
	}

	for i, text := range r.Moves {
		m, err := board.ParseMove(s, text)
		if err != nil {
			return nil, fmt.Errorf("record: move %d (%s): %w", i+1, text, err)
		}
		if err := s.Apply(m); err != nil {
			return nil, fmt.Errorf("record: move %d (%s): %w", i+1, text, err)
		}
	}

	if r.FEN != "" && s.FEN() != r.FEN {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrMismatch, s.FEN(), r.FEN)
	}
	return s, nil
}

// PGN renders the record as PGN text. Non-standard start positions are
// written with SetUp and FEN tags.
func (r Record) PGN() (string, error) {
	var opts []func(*chess.Game)
	if r.StartFEN != "" && r.StartFEN != board.StartFEN {
		opt, err := chess.FEN(r.StartFEN)
		if err != nil {
			return "", fmt.Errorf("record: start position: %w", err)
		}
		opts = append(opts, opt)
	}
	g := chess.NewGame(opts...)

	keys := make([]string, 0, len(r.Tags))
	for k := range r.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g.AddTagPair(k, r.Tags[k])
	}
	if len(opts) > 0 {
		g.AddTagPair("SetUp", "1")
		g.AddTagPair("FEN", r.StartFEN)
	}

	for i, text := range r.Moves {
		m := findMove(g, text)
		if m == nil {
			return "", fmt.Errorf("record: move %d (%s): %w", i+1, text, board.ErrIllegalMove)
		}
		if err := g.Move(m); err != nil {
			return "", fmt.Errorf("record: move %d (%s): %w", i+1, text, err)
		}
	}

	return g.String(), nil
}

// findMove resolves a UCI string against the valid moves of g.
func findMove(g *chess.Game, uci string) *chess.Move {
	for _, m := range g.ValidMoves() {
		if m.String() == uci {
			return m
		}
	}
	return nil
}
