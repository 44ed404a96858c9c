package engine

import (
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func mustParse(t *testing.T, fen string) *board.State {
	t.Helper()
	s, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return s
}

func TestSearchBasic(t *testing.T) {
	s := board.NewState()
	eng := NewEngine(MaterialEvaluator{})
	eng.SetDifficulty(Easy)

	move := eng.Search(s)
	if move.IsZero() {
		t.Error("Search returned NoMove for starting position")
	}
	if s.FEN() != board.StartFEN {
		t.Errorf("search modified the position: %s", s.FEN())
	}
	t.Logf("Best move: %s", move.String())
}

func TestMateInOne(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{"white back rank", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8"},
		{"black back rank", "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", "a8a1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := mustParse(t, tc.fen)
			eng := NewEngine(MaterialEvaluator{})

			move, score := eng.SearchDepth(s, 3)
			if move.String() != tc.want {
				t.Errorf("best move = %s, want %s", move, tc.want)
			}
			if !IsMateScore(score) {
				t.Errorf("score %d is not a mate score", score)
			}
			t.Log(ScoreToString(score))
		})
	}
}

func TestWinsHangingQueen(t *testing.T) {
	s := mustParse(t, "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	for _, eval := range []Evaluator{MaterialEvaluator{}, TableEvaluator{}} {
		searcher := NewSearcher(eval)
		score, move := searcher.BestMove(s, board.White, 2)
		if move.String() != "d1d5" {
			t.Errorf("%T: best move = %s, want d1d5", eval, move)
		}
		if score <= 0 {
			t.Errorf("%T: score = %d, want positive", eval, score)
		}
	}
}

func TestNoLegalMove(t *testing.T) {
	s := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	searcher := NewSearcher(MaterialEvaluator{})

	score, move := searcher.BestMove(s, board.Black, 3)
	if !move.IsZero() {
		t.Errorf("stalemate returned move %s", move)
	}
	if want := Evaluate(MaterialEvaluator{}, s); score != want {
		t.Errorf("score = %d, want static evaluation %d", score, want)
	}
}

// plainMinimax is the unpruned reference for the alpha-beta search.
func plainMinimax(eval Evaluator, s *board.State, depth, ply int) int {
	if s.IsGameOver() {
		return mateScore(s.SideToMove(), ply)
	}
	if depth == 0 {
		return Evaluate(eval, s)
	}
	moves := s.LegalMoves(s.SideToMove())
	if len(moves) == 0 {
		return Evaluate(eval, s)
	}

	maximizing := s.SideToMove() == board.White
	best := Infinity
	if maximizing {
		best = -Infinity
	}
	for _, m := range moves {
		child := s.Clone()
		if err := child.Apply(m); err != nil {
			panic(err)
		}
		score := plainMinimax(eval, child, depth-1, ply+1)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/3q4/8/8/8/3RK3 b - - 0 1",
		"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
	}

	for _, fen := range fens {
		for _, eval := range []Evaluator{MaterialEvaluator{}, TableEvaluator{}} {
			s := mustParse(t, fen)
			searcher := NewSearcher(eval)
			got, _ := searcher.BestMove(s, s.SideToMove(), 2)
			want := plainMinimax(eval, s, 2, 0)
			if got != want {
				t.Errorf("%s %T: alpha-beta %d, minimax %d", fen, eval, got, want)
			}
		}
	}
}

func TestSearchInfo(t *testing.T) {
	s := board.NewState()
	eng := NewEngine(TableEvaluator{})

	var infos []SearchInfo
	eng.OnInfo = func(info SearchInfo) {
		infos = append(infos, info)
	}
	move, _ := eng.SearchDepth(s, 3)

	if len(infos) != 3 {
		t.Fatalf("got %d info callbacks, want 3", len(infos))
	}
	for i, info := range infos {
		if info.Depth != i+1 {
			t.Errorf("info %d depth = %d", i, info.Depth)
		}
		if info.Nodes == 0 {
			t.Errorf("info %d has no nodes", i)
		}
	}
	if infos[2].Move != move {
		t.Errorf("last info move %s != result %s", infos[2].Move, move)
	}
	if eng.Nodes() == 0 {
		t.Error("node counter not updated")
	}
}

func TestGamePhase(t *testing.T) {
	tests := []struct {
		fen  string
		want Phase
	}{
		{board.StartFEN, Middle},
		{"3qk3/ppppp3/8/8/8/8/PPPPP3/3QK3 w - - 0 1", Early},
		{"3qk3/pppp4/8/8/8/8/PPPP4/3QK3 w - - 0 1", Endgame},
		{"4k3/pppp4/8/8/8/8/PPPP4/3QK3 w - - 0 1", Middle},
	}

	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			if got := GamePhase(mustParse(t, tc.fen)); got != tc.want {
				t.Errorf("GamePhase(%s) = %v, want %v", tc.fen, got, tc.want)
			}
		})
	}
}

func TestEvaluators(t *testing.T) {
	s := board.NewState()
	for _, eval := range []Evaluator{MaterialEvaluator{}, TableEvaluator{}} {
		if got := Evaluate(eval, s); got != 0 {
			t.Errorf("%T: start position = %d, want 0", eval, got)
		}
	}

	if got := (MaterialEvaluator{}).Evaluate(s, board.White); got != 1039 {
		t.Errorf("white material = %d, want 1039", got)
	}

	center := mustParse(t, "4k3/8/8/8/4N3/8/8/4K3 w - - 0 1")
	corner := mustParse(t, "4k3/8/8/8/8/8/8/N3K3 w - - 0 1")
	if Evaluate(TableEvaluator{}, center) <= Evaluate(TableEvaluator{}, corner) {
		t.Error("table evaluator should prefer a centralized knight")
	}

	// Mirrored positions score the same for each side.
	white := mustParse(t, "4k3/8/8/8/4N3/8/8/4K3 w - - 0 1")
	black := mustParse(t, "4k3/8/8/4n3/8/8/8/4K3 w - - 0 1")
	if (TableEvaluator{}).Evaluate(white, board.White) != (TableEvaluator{}).Evaluate(black, board.Black) {
		t.Error("table evaluator is not color symmetric")
	}
}

func TestEvaluatorNames(t *testing.T) {
	for _, name := range []string{"material", "tables"} {
		if got := EvaluatorName(NewEvaluator(name)); got != name {
			t.Errorf("EvaluatorName(NewEvaluator(%q)) = %q", name, got)
		}
	}
	if _, ok := NewEvaluator("bogus").(MaterialEvaluator); !ok {
		t.Error("unknown evaluator should fall back to material")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		got, err := ParseDifficulty(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDifficulty(%s) = %v, %v", d, got, err)
		}
	}
	if _, err := ParseDifficulty("grandmaster"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "+0"},
		{-250, "-250"},
		{MateScore - 1, "White mates in 1"},
		{-MateScore + 3, "Black mates in 2"},
	}
	for _, tc := range tests {
		if got := ScoreToString(tc.score); got != tc.want {
			t.Errorf("ScoreToString(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
