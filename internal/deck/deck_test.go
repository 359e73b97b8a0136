package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fivecarddraw/internal/randutil"
)

func TestNewDeckHas52DistinctCards(t *testing.T) {
	d := New(randutil.New(1))
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	a := New(randutil.New(42))
	b := New(randutil.New(42))
	a.Shuffle()
	b.Shuffle()
	assert.Equal(t, a.Cards(), b.Cards())

	c := New(randutil.New(43))
	c.Shuffle()
	assert.NotEqual(t, a.Cards(), c.Cards())
}

func TestShufflePreservesCardSet(t *testing.T) {
	d := New(randutil.New(7))
	d.Shuffle()

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestDeal(t *testing.T) {
	d := New(randutil.New(1))
	d.Shuffle()

	hand, err := d.Deal(5)
	require.NoError(t, err)
	assert.Len(t, hand, 5)
	assert.Equal(t, 47, d.Remaining())

	// Dealt cards must not remain in the deck
	for _, c := range d.Cards() {
		for _, h := range hand {
			assert.NotEqual(t, h, c)
		}
	}
}

func TestDealInsufficientCards(t *testing.T) {
	d := New(randutil.New(1))
	_, err := d.Deal(50)
	require.NoError(t, err)

	_, err = d.Deal(3)
	require.ErrorIs(t, err, ErrInsufficientCards)
	assert.Equal(t, 2, d.Remaining(), "failed deal must not consume cards")
}

func TestDealOne(t *testing.T) {
	d := New(randutil.New(1))
	top := d.Cards()[0]

	card, err := d.DealOne()
	require.NoError(t, err)
	assert.Equal(t, top, card)
	assert.Equal(t, 51, d.Remaining())
}

func TestDealOneEmptyDeck(t *testing.T) {
	d := New(randutil.New(1))
	_, err := d.Deal(52)
	require.NoError(t, err)

	_, err = d.DealOne()
	require.ErrorIs(t, err, ErrEmptyDeck)
}

func TestResetRestoresFullDeck(t *testing.T) {
	d := New(randutil.New(1))
	d.Shuffle()
	_, err := d.Deal(30)
	require.NoError(t, err)

	d.Reset()
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		seen[c] = true
	}
	assert.Len(t, seen, 52, "reset deck must contain each card exactly once")
}
