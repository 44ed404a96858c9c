package board

import "testing"

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	s := NewState()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		if tc.depth > 3 && testing.Short() {
			continue
		}
		t.Run("", func(t *testing.T) {
			got := s.Perft(tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}

	if s.FEN() != StartFEN {
		t.Errorf("perft left the position modified: %s", s.FEN())
	}
}

// TestPerftKiwipete tests the Kiwipete position with many castling and
// en passant edge cases.
// FEN: r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -
func TestPerftKiwipete(t *testing.T) {
	s, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		if tc.depth > 2 && testing.Short() {
			continue
		}
		t.Run("", func(t *testing.T) {
			got := s.Perft(tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftPosition3 tests en passant and discovered check edge cases.
// FEN: 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
func TestPerftPosition3(t *testing.T) {
	s, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		if tc.depth > 3 && testing.Short() {
			continue
		}
		t.Run("", func(t *testing.T) {
			got := s.Perft(tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftEnPassantPin tests the horizontal pin on an en passant capture.
// FEN: 8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1
// Black pawn on e4 could capture en passant on d3, but that would expose
// the black king on a4 to the white rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	s, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	for _, m := range s.LegalMoves(Black) {
		if m.IsEnPassant() {
			t.Errorf("En passant move %v should be illegal (horizontal pin)", m)
		}
	}

	// Depth 1: Ka3, Ka5, Kb3, Kb4, Kb5, e3 = 6 moves
	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := s.Perft(tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	s := NewState()
	div := s.Divide(3)
	if len(div) != 20 {
		t.Fatalf("divide has %d root moves, want 20", len(div))
	}
	var total uint64
	for _, n := range div {
		total += n
	}
	if total != 8902 {
		t.Errorf("divide total = %d, want 8902", total)
	}
	if div["e2e4"] != 600 {
		t.Errorf("divide[e2e4] = %d, want 600", div["e2e4"])
	}
}
