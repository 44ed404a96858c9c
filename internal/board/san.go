package board

import (
	"fmt"
	"strings"
)

// SAN returns the Standard Algebraic Notation of a legal move in s.
func (m Move) SAN(s *State) string {
	if m.IsZero() {
		return "-"
	}

	var sb strings.Builder
	if m.IsCastle() {
		sb.WriteString(castleSAN(m))
	} else {
		sb.WriteString(m.moveSAN(s))
	}

	// Check/checkmate marker
	next := s.Clone()
	next.make(m)
	next.RefreshCaches()
	if next.IsCheckmate(next.sideToMove) {
		sb.WriteByte('#')
	} else if next.InCheck() {
		sb.WriteByte('+')
	}

	return sb.String()
}

func castleSAN(m Move) string {
	if m.To.Col > m.From.Col {
		return "O-O"
	}
	return "O-O-O"
}

// moveSAN renders a non-castling move without its check marker.
func (m Move) moveSAN(s *State) string {
	var sb strings.Builder
	pt := m.Piece.Type()

	// Piece letter and disambiguation (not for pawns)
	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt-1])
		sb.WriteString(disambiguation(s, m))
	}

	if m.IsCapture() {
		if pt == Pawn {
			// Pawn captures include the file of origin
			sb.WriteByte('a' + byte(m.From.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	if m.IsPromotion() {
		sb.WriteString("=Q")
	}
	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell m apart
// from another piece of the same type reaching the same square.
func disambiguation(s *State, m Move) string {
	var candidates []Square
	for _, other := range s.LegalMoves(m.Piece.Color()) {
		if other.To == m.To && other.From != m.From && other.Piece == m.Piece {
			candidates = append(candidates, other.From)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + m.From.File()))
	}
	if !sameRank {
		return string(rune('1' + m.From.Rank()))
	}
	return m.From.String()
}

// ParseSAN resolves a SAN string against the legal moves of the side to
// move. Only queen promotions exist, so "=Q" is optional.
func ParseSAN(s *State, text string) (Move, error) {
	san := strings.TrimSpace(text)
	san = strings.TrimRight(san, "+#!?")

	us := s.sideToMove
	legal := s.LegalMoves(us)

	if san == "O-O" || san == "0-0" || san == "O-O-O" || san == "0-0-0" {
		kingSide := len(san) == 3
		for _, m := range legal {
			if m.IsCastle() && (m.To.Col > m.From.Col) == kingSide {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("%s: %w", text, ErrIllegalMove)
	}

	if idx := strings.Index(san, "="); idx >= 0 {
		if san[idx+1:] != "Q" {
			return NoMove, fmt.Errorf("invalid promotion in %s", text)
		}
		san = san[:idx]
	}

	isCapture := strings.Contains(san, "x")
	san = strings.ReplaceAll(san, "x", "")

	pt := Pawn
	if len(san) > 0 && san[0] >= 'A' && san[0] <= 'Z' {
		switch san[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		default:
			return NoMove, fmt.Errorf("invalid piece in %s", text)
		}
		san = san[1:]
	}

	if len(san) < 2 {
		return NoMove, fmt.Errorf("invalid SAN: %s", text)
	}
	dest, err := ParseSquare(san[len(san)-2:])
	if err != nil {
		return NoMove, err
	}

	// Disambiguation (file, rank, or both)
	file, rank := -1, -1
	for _, c := range san[:len(san)-2] {
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		}
	}

	for _, m := range legal {
		if m.To != dest || m.Piece.Type() != pt || m.IsCastle() {
			continue
		}
		if file >= 0 && m.From.File() != file {
			continue
		}
		if rank >= 0 && m.From.Rank() != rank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("%s: %w", text, ErrIllegalMove)
}

// MovesToSAN converts a line of moves, starting at s, to SAN.
func MovesToSAN(s *State, moves []Move) []string {
	result := make([]string, len(moves))
	p := s.Clone()

	for i, m := range moves {
		result[i] = m.SAN(p)
		p.make(m)
		p.RefreshCaches()
	}

	return result
}
