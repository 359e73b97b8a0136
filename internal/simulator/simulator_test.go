package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fivecarddraw/internal/game"
)

func testConfig(matches int, seed int64, workers int) Config {
	return Config{
		Matches: matches,
		Seed:    seed,
		Workers: workers,
		Game:    game.DefaultConfig(),
		Logger:  log.New(io.Discard),
	}
}

func TestRunCompletesAllMatches(t *testing.T) {
	sim := New(testConfig(5, 12345, 2))
	results, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, results.Matches)
	assert.Equal(t, 5, results.PlayerWins+results.OpponentWins,
		"every match must produce a winner")
}

func TestWinnerReachesTargetScore(t *testing.T) {
	sim := New(testConfig(3, 99, 1))
	results, err := sim.Run(context.Background())
	require.NoError(t, err)

	// The winner of each match holds at least the target score
	assert.GreaterOrEqual(t, results.TotalPlayerScore+results.TotalOpponentScore, 3*100)
}

func TestRunIsReproducible(t *testing.T) {
	a, err := New(testConfig(4, 7, 1)).Run(context.Background())
	require.NoError(t, err)

	b, err := New(testConfig(4, 7, 4)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b, "results must not depend on worker count")
}

func TestRunRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(100, 1, 1)).Run(ctx)
	assert.Error(t, err)
}

func TestSummaryFormat(t *testing.T) {
	r := Results{
		Matches:            10,
		PlayerWins:         6,
		OpponentWins:       4,
		TotalPlayerScore:   900,
		TotalOpponentScore: 700,
	}
	assert.Contains(t, r.Summary(), "10 matches")
	assert.Contains(t, r.Summary(), "player 6 (60.0%)")
}
