// Package uci implements a line-based UCI front end over the engine.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/record"
	"github.com/hailam/chessrules/internal/storage"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position *board.State
	store    *storage.Storage // nil disables save/load
	prefs    *storage.Preferences

	// depth overrides the difficulty preset when positive
	depth int

	out io.Writer

	// CPU profiling
	profileFile *os.File
}

// New creates a new UCI protocol handler. store may be nil.
func New(eng *engine.Engine, store *storage.Storage) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewState(),
		store:    store,
		prefs:    storage.DefaultPreferences(),
		out:      os.Stdout,
	}
}

// ApplyPreferences configures the engine from stored preferences.
func (u *UCI) ApplyPreferences(prefs *storage.Preferences) {
	u.prefs = prefs
	if d, err := engine.ParseDifficulty(prefs.Difficulty); err == nil {
		u.engine.SetDifficulty(d)
	}
	u.engine.SetEvaluator(engine.NewEvaluator(prefs.Evaluator))
	u.depth = prefs.Depth
}

// SetDepth fixes the search depth; zero falls back to the difficulty preset.
func (u *UCI) SetDepth(depth int) {
	u.depth = depth
}

// Position returns the current game.
func (u *UCI) Position() *board.State {
	return u.position
}

// Run reads commands from in and writes responses to out until quit or EOF.
func (u *UCI) Run(in io.Reader, out io.Writer) error {
	u.out = out
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			// Searches are synchronous; nothing is running here.
		case "quit":
			u.handleQuit()
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.println(u.position.String())
		case "perft":
			u.handlePerft(args)
		case "undo":
			u.handleUndo()
		case "moves":
			u.handleMoves()
		case "eval":
			score := u.engine.Evaluate(u.position)
			u.printf("info string eval %s (%s)\n", engine.ScoreToString(score), engine.EvaluatorName(u.engine.Evaluator()))
		case "save":
			u.handleSave(args)
		case "load":
			u.handleLoad(args)
		case "games":
			u.handleGames()
		case "delete":
			u.handleDelete(args)
		case "pgn":
			u.handlePGN()
		default:
			u.printf("info string Unknown command: %s\n", cmd)
		}
	}

	return scanner.Err()
}

func (u *UCI) println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *UCI) printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessRules")
	u.println("id author ChessRules Team")
	u.println()
	u.println("option name Depth type spin default 0 min 0 max 8")
	u.println("option name Difficulty type combo default medium var easy var medium var hard")
	u.println("option name Evaluator type combo default material var material var tables")
	u.println("option name CPUProfile type string default <empty>")
	u.println("uciok")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.position = board.NewState()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	fenEnd, moveStart := len(args), len(args)
	for i, arg := range args {
		if arg == "moves" {
			fenEnd, moveStart = i, i+1
			break
		}
	}

	var pos *board.State
	switch args[0] {
	case "startpos":
		pos = board.NewState()
	case "fen":
		p, err := board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			u.printf("info string Invalid FEN: %v\n", err)
			return
		}
		pos = p
	default:
		return
	}

	// Apply moves
	for _, moveStr := range args[moveStart:] {
		m, err := board.ParseMove(pos, strings.ToLower(moveStr))
		if err != nil {
			u.printf("info string Invalid move: %s (%v)\n", moveStr, err)
			return
		}
		if err := pos.Apply(m); err != nil {
			u.printf("info string Invalid move: %s (%v)\n", moveStr, err)
			return
		}
	}

	u.position = pos
}

// handleGo runs a synchronous search and prints the best move.
// Only "depth N" is honored; clock arguments are ignored.
func (u *UCI) handleGo(args []string) {
	depth := u.depth
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
				depth = d
			}
			i++
		}
	}
	if depth <= 0 {
		depth = engine.DifficultyDepth[u.engine.Difficulty()]
	}

	u.engine.OnInfo = u.sendInfo
	defer func() { u.engine.OnInfo = nil }()

	best, _ := u.engine.SearchDepth(u.position, depth)
	u.printf("bestmove %s\n", best.String())
}

func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	// UCI scores are from the side to move's point of view.
	score := info.Score
	if u.position.SideToMove() == board.Black {
		score = -score
	}
	if score > engine.MateScore-engine.MaxPly*4 {
		parts = append(parts, fmt.Sprintf("score mate %d", (engine.MateScore-score+1)/2))
	} else if score < -engine.MateScore+engine.MaxPly*4 {
		parts = append(parts, fmt.Sprintf("score mate %d", -(engine.MateScore+score+1)/2))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if !info.Move.IsZero() {
		parts = append(parts, "pv "+info.Move.String())
	}

	u.printf("info %s\n", strings.Join(parts, " "))
}

func (u *UCI) handleQuit() {
	u.stopProfile()
}

func (u *UCI) stopProfile() {
	if u.profileFile != nil {
		pprof.StopCPUProfile()
		u.profileFile.Close()
		u.profileFile = nil
		u.println("info string CPU profile saved")
	}
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "depth":
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 0 {
			u.printf("info string Invalid depth: %s\n", value)
			return
		}
		u.depth = depth
		u.prefs.Depth = depth
	case "difficulty":
		d, err := engine.ParseDifficulty(value)
		if err != nil {
			u.printf("info string %v\n", err)
			return
		}
		u.engine.SetDifficulty(d)
		u.prefs.Difficulty = d.String()
	case "evaluator":
		eval := engine.NewEvaluator(strings.ToLower(value))
		u.engine.SetEvaluator(eval)
		u.prefs.Evaluator = engine.EvaluatorName(eval)
	case "cpuprofile":
		u.stopProfile()
		if value != "" && value != "stop" {
			f, err := os.Create(value)
			if err != nil {
				u.printf("info string Failed to create profile: %v\n", err)
				return
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				f.Close()
				u.printf("info string Failed to start profile: %v\n", err)
				return
			}
			u.profileFile = f
			u.printf("info string CPU profiling to %s\n", value)
		}
		return
	default:
		u.printf("info string Unknown option: %s\n", name)
		return
	}

	if u.store != nil {
		if err := u.store.SavePreferences(u.prefs); err != nil {
			u.printf("info string Failed to save preferences: %v\n", err)
		}
	}
}

// handlePerft prints the count below each root move, then the total.
func (u *UCI) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			depth = d
		}
	}

	div := u.position.Divide(depth)
	moves := make([]string, 0, len(div))
	for m := range div {
		moves = append(moves, m)
	}
	sort.Strings(moves)

	var total uint64
	for _, m := range moves {
		u.printf("%s: %d\n", m, div[m])
		total += div[m]
	}
	u.printf("\nNodes searched: %d\n", total)
}

func (u *UCI) handleUndo() {
	m, ok := u.position.Undo()
	if !ok {
		u.println("info string Nothing to undo")
		return
	}
	u.printf("info string Undid %s\n", m)
}

// handleMoves prints the game so far in SAN, then lists the legal moves of
// the side to move in UCI and SAN.
func (u *UCI) handleMoves() {
	if history := u.position.History(); len(history) > 0 {
		start, err := board.ParseFEN(u.position.StartFEN())
		if err == nil {
			u.printf("info string line: %s\n", strings.Join(board.MovesToSAN(start, history), " "))
		}
	}

	moves := u.position.LegalMoves(u.position.SideToMove())
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String() + "(" + m.SAN(u.position) + ")"
	}
	u.printf("info string %d moves: %s\n", len(moves), strings.Join(parts, " "))
	if u.position.IsGameOver() {
		u.println("info string checkmate")
	} else if u.position.IsStalemate(u.position.SideToMove()) {
		u.println("info string stalemate")
	}
}

func (u *UCI) requireStore(args []string) (string, bool) {
	if u.store == nil {
		u.println("info string Storage disabled")
		return "", false
	}
	if args == nil {
		return "", true
	}
	if len(args) == 0 {
		u.println("info string Missing game name")
		return "", false
	}
	return strings.Join(args, " "), true
}

func (u *UCI) handleSave(args []string) {
	name, ok := u.requireStore(args)
	if !ok {
		return
	}
	if err := u.store.SaveGame(name, record.FromState(u.position)); err != nil {
		u.printf("info string Save failed: %v\n", err)
		return
	}
	u.printf("info string Saved %s\n", name)
}

func (u *UCI) handleLoad(args []string) {
	name, ok := u.requireStore(args)
	if !ok {
		return
	}
	game, err := u.store.LoadGame(name)
	if err != nil {
		u.printf("info string Load failed: %v\n", err)
		return
	}
	pos, err := game.Record.Replay()
	if err != nil {
		u.printf("info string Load failed: %v\n", err)
		return
	}
	u.position = pos
	u.printf("info string Loaded %s (%d moves)\n", name, len(game.Record.Moves))
}

func (u *UCI) handleGames() {
	if _, ok := u.requireStore(nil); !ok {
		return
	}
	names, err := u.store.ListGames()
	if err != nil {
		u.printf("info string List failed: %v\n", err)
		return
	}
	u.printf("info string %d games: %s\n", len(names), strings.Join(names, ", "))
}

func (u *UCI) handleDelete(args []string) {
	name, ok := u.requireStore(args)
	if !ok {
		return
	}
	if err := u.store.DeleteGame(name); err != nil {
		u.printf("info string Delete failed: %v\n", err)
		return
	}
	u.printf("info string Deleted %s\n", name)
}

func (u *UCI) handlePGN() {
	rec := record.FromState(u.position)
	rec.Tags = map[string]string{
		"Event": "ChessRules game",
		"White": u.prefs.Username,
		"Black": "ChessRules",
	}
	if u.prefs.PlayerColor == storage.ColorBlack {
		rec.Tags["White"], rec.Tags["Black"] = rec.Tags["Black"], rec.Tags["White"]
	}

	pgn, err := rec.PGN()
	if err != nil {
		u.printf("info string PGN failed: %v\n", err)
		return
	}
	u.println(pgn)
}
