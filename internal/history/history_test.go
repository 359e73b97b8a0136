package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fivecarddraw/internal/game"
)

func testStore(t *testing.T, opts ...Option) (*Store, *quartz.Mock) {
	t.Helper()
	mock := quartz.NewMock(t)
	mock.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	opts = append(opts, WithClock(mock))
	path := filepath.Join(t.TempDir(), "history.json")
	return New(path, opts...), mock
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store, _ := testStore(t)
	require.NoError(t, store.Load())
	assert.Empty(t, store.Entries())
}

func TestRecordAndReload(t *testing.T) {
	store, mock := testStore(t)
	require.NoError(t, store.Load())

	require.NoError(t, store.Record(&game.MatchResult{
		Winner:        game.PlayerWins,
		PlayerScore:   104,
		OpponentScore: 62,
	}))
	mock.Advance(time.Hour)
	require.NoError(t, store.Record(&game.MatchResult{
		Winner:        game.OpponentWins,
		PlayerScore:   40,
		OpponentScore: 102,
	}))

	entries := store.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, game.OpponentWins, entries[0].Result, "newest entry first")
	assert.Equal(t, game.PlayerWins, entries[1].Result)
	assert.True(t, entries[0].Date.After(entries[1].Date))
	assert.Equal(t, 104, entries[1].PlayerScore)

	reloaded := New(store.path, WithClock(mock))
	require.NoError(t, reloaded.Load())
	assert.Equal(t, entries, reloaded.Entries())
}

func TestRecordTruncatesAtLimit(t *testing.T) {
	store, mock := testStore(t, WithLimit(3))
	require.NoError(t, store.Load())

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(&game.MatchResult{
			Winner:      game.PlayerWins,
			PlayerScore: 100 + i,
		}))
		mock.Advance(time.Minute)
	}

	entries := store.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 104, entries[0].PlayerScore, "oldest entries are dropped")
	assert.Equal(t, 102, entries[2].PlayerScore)
}

func TestLoadTruncatesOversizedFile(t *testing.T) {
	store, mock := testStore(t)
	require.NoError(t, store.Load())
	for i := 0; i < 4; i++ {
		require.NoError(t, store.Record(&game.MatchResult{Winner: game.PlayerWins}))
	}

	small := New(store.path, WithClock(mock), WithLimit(2))
	require.NoError(t, small.Load())
	assert.Len(t, small.Entries(), 2)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	store, _ := testStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("not json"), 0644))
	assert.Error(t, store.Load())
}

func TestSummary(t *testing.T) {
	store, _ := testStore(t)
	require.NoError(t, store.Load())

	results := []game.Winner{game.PlayerWins, game.PlayerWins, game.OpponentWins, game.TieGame}
	for _, r := range results {
		require.NoError(t, store.Record(&game.MatchResult{Winner: r}))
	}

	wins, losses, ties := store.Summary()
	assert.Equal(t, 2, wins)
	assert.Equal(t, 1, losses)
	assert.Equal(t, 1, ties)
}

func TestEntriesReturnsCopy(t *testing.T) {
	store, _ := testStore(t)
	require.NoError(t, store.Load())
	require.NoError(t, store.Record(&game.MatchResult{Winner: game.PlayerWins}))

	entries := store.Entries()
	entries[0].Result = game.OpponentWins
	assert.Equal(t, game.PlayerWins, store.Entries()[0].Result)
}

func TestRecordCreatesParentDirectory(t *testing.T) {
	mock := quartz.NewMock(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.json")
	store := New(path, WithClock(mock))
	require.NoError(t, store.Load())
	require.NoError(t, store.Record(&game.MatchResult{Winner: game.TieGame}))

	_, err := os.Stat(path)
	require.NoError(t, err)
}
