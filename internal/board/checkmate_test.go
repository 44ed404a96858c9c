package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: white rook on a8, black king on h8 boxed in by its
	// own pawns. Black is already checkmated.
	s, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(s)
	t.Log("InCheck:", s.InCheck())
	t.Log("Black legal moves:", len(s.LegalMoves(Black)))

	if !s.IsCheckmate(Black) {
		t.Error("Expected checkmate but got false")
	}
	if !s.IsGameOver() {
		t.Error("Expected the imported mate to be game over")
	}
}

func TestNotCheckmate(t *testing.T) {
	// The black king can take the checking rook.
	s, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	moves := s.LegalMoves(Black)
	t.Log("Black legal moves:", moves)

	if !s.InCheck() {
		t.Error("Expected black to be in check")
	}
	if s.IsCheckmate(Black) {
		t.Error("Expected NOT checkmate but got true")
	}
	if s.IsGameOver() {
		t.Error("Expected game not over")
	}
}

func TestFoolsMate(t *testing.T) {
	s := NewState()
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := ParseMove(s, mv)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", mv, err)
		}
		if err := s.Apply(m); err != nil {
			t.Fatalf("Apply(%s): %v", mv, err)
		}
	}

	if !s.IsCheckmate(White) {
		t.Error("Expected white to be checkmated")
	}
	if !s.IsGameOver() {
		t.Error("Expected game over after mate")
	}

	// Undo reopens the game.
	if _, ok := s.Undo(); !ok {
		t.Fatal("Undo failed")
	}
	if s.IsGameOver() || s.IsCheckmate(White) {
		t.Error("Expected the game to be open again after undo")
	}
}

func TestStartPositionNotCheckmate(t *testing.T) {
	s := NewState()
	for _, c := range []Color{White, Black} {
		if s.IsCheckmate(c) {
			t.Errorf("%s checkmated in the starting position", c)
		}
		if s.IsStalemate(c) {
			t.Errorf("%s stalemated in the starting position", c)
		}
	}
}

func TestStalemateIsNotGameOver(t *testing.T) {
	s, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !s.IsStalemate(Black) {
		t.Error("Expected stalemate")
	}
	if s.IsCheckmate(Black) {
		t.Error("Stalemate reported as checkmate")
	}
	if s.IsGameOver() {
		t.Error("Stalemate must not end the game")
	}
}
