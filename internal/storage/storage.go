package storage

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessrules/internal/record"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyFirstLaunch = "first_launch"
	gamePrefix     = "game/"
)

// ErrGameNotFound is returned when no game is saved under a name.
var ErrGameNotFound = errors.New("storage: game not found")

// ErrInvalidName is returned for empty game names.
var ErrInvalidName = errors.New("storage: invalid game name")

// PlayerColor represents which color the human plays
type PlayerColor int

const (
	ColorWhite PlayerColor = iota
	ColorBlack
)

// Preferences stores engine and player settings.
type Preferences struct {
	Username    string      `json:"username"`
	Difficulty  string      `json:"difficulty"`
	Depth       int         `json:"depth"` // 0 = use difficulty
	Evaluator   string      `json:"evaluator"`
	PlayerColor PlayerColor `json:"player_color"`
	LastPlayed  time.Time   `json:"last_played"`
}

// DefaultPreferences returns default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Username:    "Player",
		Difficulty:  "medium",
		Evaluator:   "material",
		PlayerColor: ColorWhite,
		LastPlayed:  time.Now(),
	}
}

// SavedGame is a stored game record.
type SavedGame struct {
	Name    string        `json:"name"`
	SavedAt time.Time     `json:"saved_at"`
	Record  record.Record `json:"record"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

func gameKey(name string) []byte {
	return []byte(gamePrefix + name)
}

// SaveGame stores rec under name, replacing any game with that name.
func (s *Storage) SaveGame(name string, rec record.Record) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}

	data, err := json.Marshal(SavedGame{Name: name, SavedAt: time.Now(), Record: rec})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(name), data)
	})
}

// LoadGame returns the game saved under name.
func (s *Storage) LoadGame(name string) (*SavedGame, error) {
	var game SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(strings.TrimSpace(name)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &game)
		})
	})
	if err != nil {
		return nil, err
	}

	return &game, nil
}

// ListGames returns the names of all saved games in sorted order.
func (s *Storage) ListGames() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(gamePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, gamePrefix))
		}
		return nil
	})

	sort.Strings(names)
	return names, err
}

// DeleteGame removes the game saved under name.
func (s *Storage) DeleteGame(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := gameKey(strings.TrimSpace(name))
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}
