package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It is the standard way to verify move generation correctness.
func (g Generator) Perft(s *State, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := g.LegalMoves(s, s.sideToMove)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		s.make(m)
		s.RefreshCaches()
		nodes += g.Perft(s, depth-1)
		s.restore()
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by UCI string.
func (g Generator) Divide(s *State, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth < 1 {
		return out
	}
	for _, m := range g.LegalMoves(s, s.sideToMove) {
		s.make(m)
		s.RefreshCaches()
		out[m.String()] = g.Perft(s, depth-1)
		s.restore()
	}
	return out
}

// Perft counts leaf nodes from the current position.
func (s *State) Perft(depth int) uint64 {
	return s.gen.Perft(s, depth)
}

// Divide splits the perft count by root move.
func (s *State) Divide(depth int) map[string]uint64 {
	return s.gen.Divide(s, depth)
}
