package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14) except in the
// A-2-3-4-5 straight, where the evaluator treats the ace as low.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Value returns the numeric value of the rank for comparison (2-14)
func (r Rank) Value() int {
	return int(r)
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsFaceOrAce returns true for jacks, queens, kings and aces. The draw
// heuristic keeps these even when unpaired.
func (c Card) IsFaceOrAce() bool {
	return c.Rank >= Jack
}

// ParseCards parses compact card notation like "AsKdTh2c" into cards.
// Parsing is case insensitive; an empty string yields an empty slice.
func ParseCards(s string) ([]Card, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("card string must have even length, got %d", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	lower := strings.ToLower(s)
	for i := 0; i < len(lower); i += 2 {
		rank, err := parseRank(lower[i])
		if err != nil {
			return nil, err
		}
		suit, err := parseSuit(lower[i+1])
		if err != nil {
			return nil, err
		}
		cards = append(cards, Card{Suit: suit, Rank: rank})
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on invalid input.
// Intended for tests and fixed fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(b byte) (Rank, error) {
	switch b {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(b - '0'), nil
	case 't':
		return Ten, nil
	case 'j':
		return Jack, nil
	case 'q':
		return Queen, nil
	case 'k':
		return King, nil
	case 'a':
		return Ace, nil
	default:
		return 0, fmt.Errorf("invalid rank character %q", b)
	}
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 's':
		return Spades, nil
	case 'h':
		return Hearts, nil
	case 'd':
		return Diamonds, nil
	case 'c':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("invalid suit character %q", b)
	}
}
