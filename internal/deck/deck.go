package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// Errors reported by dealing operations. Both indicate the deck has been
// exhausted relative to the request; in normal play a hand deals at most
// 5+5 cards plus two draws of up to 5 against a fresh 52-card deck, so
// hitting either is a bookkeeping bug in the caller.
var (
	ErrEmptyDeck         = errors.New("deck is empty")
	ErrInsufficientCards = errors.New("not enough cards in deck")
)

// Deck represents an ordered deck of playing cards, top of the deck at
// index 0. Cards leave the deck through Deal/DealOne and are never
// reinserted; Reset rebuilds the full 52.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full 52-card deck in deterministic order (suits outer,
// ranks inner). The caller supplies the RNG so shuffles are reproducible
// under a fixed seed.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.fill()
	return d
}

func (d *Deck) fill() {
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the order of the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top n cards
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientCards, n, len(d.cards))
	}

	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// DealOne removes and returns the top card
func (d *Deck) DealOne() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Reset restores the deck to a full 52-card deck and shuffles it
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	d.fill()
	d.Shuffle()
}

// Cards returns a copy of the remaining cards for inspection
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
