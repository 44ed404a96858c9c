package board

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenDefaults fill in missing trailing FEN fields.
var fenDefaults = [6]string{"", "w", "-", "-", "0", "1"}

// ParseFEN parses a FEN string and returns a State.
// Missing trailing fields take the values "w - - 0 1".
func ParseFEN(fen string) (*State, error) {
	s := &State{logger: log.Default()}
	if err := s.load(fen); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFEN replaces the position with the one described by fen. History is
// cleared. On error the state is unchanged.
func (s *State) LoadFEN(fen string) error {
	next, err := ParseFEN(fen)
	if err != nil {
		return err
	}
	next.logger = s.logger
	*s = *next
	return nil
}

// load parses fen into s from scratch.
func (s *State) load(fen string) error {
	parts := strings.Fields(fen)
	if len(parts) == 0 || len(parts) > 6 {
		return fmt.Errorf("invalid FEN: need 1 to 6 fields, got %d", len(parts))
	}
	var fields [6]string
	copy(fields[:], fenDefaults[:])
	copy(fields[:], parts)

	logger := s.logger
	*s = State{logger: logger, selected: NoSquare}

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(s, fields[0]); err != nil {
		return err
	}
	s.RefreshCaches()
	for _, c := range [2]Color{White, Black} {
		if n := countKings(s, c); n != 1 {
			return fmt.Errorf("invalid FEN: %s must have exactly one king, got %d", c, n)
		}
	}

	// Parse side to move (field 1)
	switch fields[1] {
	case "w":
		s.sideToMove = White
	case "b":
		s.sideToMove = Black
	default:
		return fmt.Errorf("invalid side to move: %s", fields[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(s, fields[2]); err != nil {
		return err
	}

	// Parse en passant square (field 3)
	if fields[3] != "-" {
		if err := parseEnPassant(s, fields[3]); err != nil {
			return err
		}
	}

	// Parse half-move clock (field 4)
	hmc, err := strconv.Atoi(fields[4])
	if err != nil || hmc < 0 {
		return fmt.Errorf("invalid half-move clock: %s", fields[4])
	}
	s.halfMoveClock = hmc

	// Parse full-move number (field 5)
	fmn, err := strconv.Atoi(fields[5])
	if err != nil || fmn < 1 {
		return fmt.Errorf("invalid full-move number: %s", fields[5])
	}
	s.moveCount[Black.Index()] = fmn - 1
	s.moveCount[White.Index()] = fmn - 1
	if s.sideToMove == Black {
		s.moveCount[White.Index()] = fmn
	}

	s.startFEN = s.FEN()
	s.gameOver = s.gen.IsCheckmate(s, s.sideToMove)
	return nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(s *State, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for row, rankStr := range ranks {
		col := 0
		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("too many squares in rank %d", 8-row)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			s.board[row][col] = piece
			col++
		}

		if col != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", 8-row, col)
		}
	}

	return nil
}

// parseCastlingRights starts from "everything moved" and clears the flags
// named by each letter. A letter whose king or rook is not on its starting
// square is ignored so the flags never contradict the board.
func parseCastlingRights(s *State, castling string) error {
	s.castling = NoCastling
	if castling == "-" {
		return nil
	}

	for _, c := range castling {
		var color Color
		var kingSide bool
		switch c {
		case 'K':
			color, kingSide = White, true
		case 'Q':
			color, kingSide = White, false
		case 'k':
			color, kingSide = Black, true
		case 'q':
			color, kingSide = Black, false
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}

		row := homeRow(color)
		rookCol := 0
		if kingSide {
			rookCol = 7
		}
		if s.board[row][4] != NewPiece(King, color) || s.board[row][rookCol] != NewPiece(Rook, color) {
			continue
		}

		i := color.Index()
		s.castling.KingMoved[i] = false
		if kingSide {
			s.castling.KingsideRookMoved[i] = false
		} else {
			s.castling.QueensideRookMoved[i] = false
		}
	}

	return nil
}

// parseEnPassant turns a target square into the lookback entry describing
// the double pawn push that created it.
func parseEnPassant(s *State, field string) error {
	target, err := ParseSquare(field)
	if err != nil {
		return fmt.Errorf("invalid en passant square: %s", field)
	}

	// The pawn that just moved belongs to the side not to move.
	mover := s.sideToMove.Other()
	fwd := pawnForward(mover)
	from := target.Offset(-fwd, 0)
	to := target.Offset(fwd, 0)
	pawn := NewPiece(Pawn, mover)

	if !from.IsValid() || !to.IsValid() || s.PieceAt(to) != pawn || !s.IsEmpty(target) || !s.IsEmpty(from) {
		return fmt.Errorf("invalid en passant square: %s", field)
	}

	s.lookback = &HistoryEntry{
		Move:           Move{Piece: pawn, From: from, To: to, CapturedAt: to},
		CastlingRights: s.castling,
	}
	return nil
}

func countKings(s *State, c Color) int {
	n := 0
	for _, pl := range s.placements[c.Index()] {
		if pl.Piece.IsKing() {
			n++
		}
	}
	return n
}

// FEN returns the FEN representation of the position.
func (s *State) FEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			piece := s.board[row][col]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if s.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(s.castling.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(s.EnPassantTarget().String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.FullMoveNumber()))

	return sb.String()
}
