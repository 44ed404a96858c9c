package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/record"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	st, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPreferences(t *testing.T) {
	st := openTest(t)

	t.Run("Defaults", func(t *testing.T) {
		prefs, err := st.LoadPreferences()
		if err != nil {
			t.Fatal(err)
		}
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.Difficulty != "medium" || prefs.Evaluator != "material" {
			t.Errorf("unexpected defaults: %+v", prefs)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		prefs := DefaultPreferences()
		prefs.Username = "alice"
		prefs.Depth = 4
		prefs.Evaluator = "tables"
		prefs.PlayerColor = ColorBlack
		if err := st.SavePreferences(prefs); err != nil {
			t.Fatal(err)
		}

		got, err := st.LoadPreferences()
		if err != nil {
			t.Fatal(err)
		}
		if got.Username != "alice" || got.Depth != 4 || got.Evaluator != "tables" || got.PlayerColor != ColorBlack {
			t.Errorf("loaded %+v", got)
		}
	})
}

func TestFirstLaunch(t *testing.T) {
	st := openTest(t)

	first, err := st.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch = %v, %v; want true", first, err)
	}
	if err := st.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	if first, _ := st.IsFirstLaunch(); first {
		t.Error("still first launch after marking complete")
	}
}

func TestGames(t *testing.T) {
	st := openTest(t)

	s := board.NewState()
	for _, mv := range []string{"e2e4", "c7c5", "g1f3"} {
		m, err := board.ParseMove(s, mv)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Apply(m); err != nil {
			t.Fatal(err)
		}
	}
	rec := record.FromState(s)

	if err := st.SaveGame("sicilian", rec); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if err := st.SaveGame("empty", record.FromState(board.NewState())); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	game, err := st.LoadGame("sicilian")
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if game.Name != "sicilian" || game.Record.FEN != s.FEN() || len(game.Record.Moves) != 3 {
		t.Errorf("loaded %+v", game)
	}

	replayed, err := game.Record.Replay()
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if replayed.FEN() != s.FEN() {
		t.Errorf("replayed %s, want %s", replayed.FEN(), s.FEN())
	}

	names, err := st.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "empty" || names[1] != "sicilian" {
		t.Errorf("ListGames = %v", names)
	}

	if err := st.DeleteGame("empty"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if _, err := st.LoadGame("empty"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame after delete: err = %v", err)
	}
	if err := st.DeleteGame("empty"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
	if err := st.SaveGame("  ", rec); !errors.Is(err, ErrInvalidName) {
		t.Errorf("blank name: err = %v", err)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := st.SaveGame("g", record.FromState(board.NewState())); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	if _, err := st.LoadGame("g"); err != nil {
		t.Errorf("game lost across reopen: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}

	t.Logf("Data directory: %s", dataDir)
}
