// Package history persists recent match results to a JSON file so the
// UI can show a win/loss record across sessions.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/fivecarddraw/internal/fileutil"
	"github.com/lox/fivecarddraw/internal/game"
)

// DefaultLimit is how many match results are retained
const DefaultLimit = 50

// Entry is one recorded match result
type Entry struct {
	Date          time.Time   `json:"date"`
	Result        game.Winner `json:"result"`
	PlayerScore   int         `json:"player_score"`
	OpponentScore int         `json:"opponent_score"`
}

// Store keeps the most recent match results, newest first, capped at a
// fixed limit. Saves are atomic so a crash never corrupts the file.
type Store struct {
	path    string
	limit   int
	clock   quartz.Clock
	entries []Entry
}

// Option configures a Store
type Option func(*Store)

// WithLimit overrides the retained entry count
func WithLimit(limit int) Option {
	return func(s *Store) { s.limit = limit }
}

// WithClock substitutes the time source, for tests
func WithClock(clock quartz.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// New creates a store backed by the file at path. The file is not read
// until Load.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:  path,
		limit: DefaultLimit,
		clock: quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads existing history from disk. A missing file is an empty
// history, not an error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.entries = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse history: %w", err)
	}
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	s.entries = entries
	return nil
}

// Record prepends a match result, truncates to the limit and saves
func (s *Store) Record(result *game.MatchResult) error {
	entry := Entry{
		Date:          s.clock.Now().UTC(),
		Result:        result.Winner,
		PlayerScore:   result.PlayerScore,
		OpponentScore: result.OpponentScore,
	}

	entries := append([]Entry{entry}, s.entries...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	s.entries = entries
	return s.save()
}

// Entries returns the recorded results, newest first
func (s *Store) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Summary counts wins, losses and ties for display
func (s *Store) Summary() (wins, losses, ties int) {
	for _, e := range s.entries {
		switch e.Result {
		case game.PlayerWins:
			wins++
		case game.OpponentWins:
			losses++
		case game.TieGame:
			ties++
		}
	}
	return wins, losses, ties
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return fileutil.WriteFileAtomic(s.path, data, 0644)
}
