// Package evaluator classifies 5-card draw poker hands and provides a
// total ordering over them.
//
// Each hand maps to one of ten categories plus a tie-break key. Ordering
// is decided lexicographically on (Category, TieBreak) so equal-category
// hands compare by their significant ranks in descending weight; the
// legacy Value score is kept for display and for normalizing hand
// strength in the AI, but it is not the ordering authority.
package evaluator

import (
	"errors"
	"sort"

	"github.com/lox/fivecarddraw/internal/deck"
)

// ErrInvalidHandSize is returned when Evaluate is called with other than
// exactly 5 cards. Always a caller bug; never coerced.
var ErrInvalidHandSize = errors.New("hand must contain exactly 5 cards")

// Category is a poker hand category, ordered weakest to strongest
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Evaluation is the result of classifying a 5-card hand
type Evaluation struct {
	// Category of the hand
	Category Category

	// Value is a 0-9000 display score (Royal Flush fixed at 9000,
	// category bases at multiples of 1000). Used by the UI and the AI's
	// strength normalization. Ties within a category may share a Value;
	// Compare uses TieBreak for exact ordering.
	Value int

	// TieBreak holds the category-significant ranks in descending
	// weight, e.g. {quadRank, kicker} for four of a kind. Hands of equal
	// Category compare lexicographically on this slice.
	TieBreak []int

	// Cards is the hand sorted ascending by rank
	Cards []deck.Card

	// Kickers are the tie-break cards in descending significance,
	// for display only
	Kickers []deck.Card
}

// Evaluate classifies a hand of exactly 5 cards
func Evaluate(hand []deck.Card) (Evaluation, error) {
	if len(hand) != 5 {
		return Evaluation{}, ErrInvalidHandSize
	}

	sorted := sortByRank(hand)
	counts := rankCounts(sorted)
	flush := isFlush(sorted)
	straight, wheel := isStraight(sorted)

	switch {
	case flush && straight && !wheel && sorted[4].Rank == deck.Ace:
		return Evaluation{
			Category: RoyalFlush,
			Value:    9000,
			TieBreak: []int{},
			Cards:    sorted,
			Kickers:  []deck.Card{},
		}, nil

	case flush && straight:
		high := straightHigh(sorted, wheel)
		return Evaluation{
			Category: StraightFlush,
			Value:    8000 + high,
			TieBreak: []int{high},
			Cards:    sorted,
			Kickers:  []deck.Card{},
		}, nil

	case hasCount(counts, 4):
		quad := rankWithCount(counts, 4)
		kicker := firstCardNotRank(sorted, quad)
		return Evaluation{
			Category: FourOfAKind,
			Value:    7000 + quad.Value()*10 + kicker.Rank.Value(),
			TieBreak: []int{quad.Value(), kicker.Rank.Value()},
			Cards:    sorted,
			Kickers:  []deck.Card{kicker},
		}, nil

	case hasCount(counts, 3) && hasCount(counts, 2):
		trips := rankWithCount(counts, 3)
		pair := rankWithCount(counts, 2)
		return Evaluation{
			Category: FullHouse,
			Value:    6000 + trips.Value()*10 + pair.Value(),
			TieBreak: []int{trips.Value(), pair.Value()},
			Cards:    sorted,
			Kickers:  []deck.Card{},
		}, nil

	case flush:
		desc := reversed(sorted)
		return Evaluation{
			Category: Flush,
			Value:    5000 + sorted[4].Rank.Value(),
			TieBreak: rankValues(desc),
			Cards:    sorted,
			Kickers:  desc[1:],
		}, nil

	case straight:
		high := straightHigh(sorted, wheel)
		return Evaluation{
			Category: Straight,
			Value:    4000 + high,
			TieBreak: []int{high},
			Cards:    sorted,
			Kickers:  []deck.Card{},
		}, nil

	case hasCount(counts, 3):
		trips := rankWithCount(counts, 3)
		kickers := cardsNotRank(sorted, trips)
		return Evaluation{
			Category: ThreeOfAKind,
			Value:    3000 + trips.Value()*10 + kickers[0].Rank.Value(),
			TieBreak: append([]int{trips.Value()}, rankValues(kickers)...),
			Cards:    sorted,
			Kickers:  kickers,
		}, nil

	case pairCount(counts) == 2:
		high, low := twoPairRanks(counts)
		kicker := firstCardNotRank(sorted, high, low)
		return Evaluation{
			Category: TwoPair,
			Value:    2000 + high.Value()*10 + low.Value(),
			TieBreak: []int{high.Value(), low.Value(), kicker.Rank.Value()},
			Cards:    sorted,
			Kickers:  []deck.Card{kicker},
		}, nil

	case pairCount(counts) == 1:
		pair := rankWithCount(counts, 2)
		kickers := cardsNotRank(sorted, pair)
		return Evaluation{
			Category: Pair,
			Value:    1000 + pair.Value()*10 + kickers[0].Rank.Value(),
			TieBreak: append([]int{pair.Value()}, rankValues(kickers)...),
			Cards:    sorted,
			Kickers:  kickers,
		}, nil

	default:
		desc := reversed(sorted)
		return Evaluation{
			Category: HighCard,
			Value:    desc[0].Rank.Value()*10 + desc[1].Rank.Value(),
			TieBreak: rankValues(desc),
			Cards:    sorted,
			Kickers:  desc,
		}, nil
	}
}

// Compare orders two evaluations: 1 if a wins, -1 if b wins, 0 for a
// true tie. Ordering is lexicographic on (Category, TieBreak), which is
// exact for every 5-card hand.
func Compare(a, b Evaluation) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.TieBreak) && i < len(b.TieBreak); i++ {
		if a.TieBreak[i] != b.TieBreak[i] {
			if a.TieBreak[i] > b.TieBreak[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// CompareHands evaluates both hands and compares them
func CompareHands(a, b []deck.Card) (int, error) {
	ea, err := Evaluate(a)
	if err != nil {
		return 0, err
	}
	eb, err := Evaluate(b)
	if err != nil {
		return 0, err
	}
	return Compare(ea, eb), nil
}

func sortByRank(cards []deck.Card) []deck.Card {
	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted
}

func rankCounts(cards []deck.Card) map[deck.Rank]int {
	counts := make(map[deck.Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

func isFlush(cards []deck.Card) bool {
	suit := cards[0].Suit
	for _, c := range cards[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// isStraight reports whether the sorted hand forms 5 consecutive ranks.
// wheel is true for A-2-3-4-5, where the ace plays low.
func isStraight(sorted []deck.Card) (straight, wheel bool) {
	if sorted[0].Rank == deck.Two && sorted[1].Rank == deck.Three &&
		sorted[2].Rank == deck.Four && sorted[3].Rank == deck.Five &&
		sorted[4].Rank == deck.Ace {
		return true, true
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank != sorted[i-1].Rank+1 {
			return false, false
		}
	}
	return true, false
}

// straightHigh returns the high rank value of a straight; the wheel's
// high card is the 5, not the ace
func straightHigh(sorted []deck.Card, wheel bool) int {
	if wheel {
		return sorted[3].Rank.Value()
	}
	return sorted[4].Rank.Value()
}

func hasCount(counts map[deck.Rank]int, n int) bool {
	for _, c := range counts {
		if c == n {
			return true
		}
	}
	return false
}

func rankWithCount(counts map[deck.Rank]int, n int) deck.Rank {
	best := deck.Rank(0)
	for r, c := range counts {
		if c == n && r > best {
			best = r
		}
	}
	return best
}

func pairCount(counts map[deck.Rank]int) int {
	pairs := 0
	for _, c := range counts {
		if c == 2 {
			pairs++
		}
	}
	return pairs
}

func twoPairRanks(counts map[deck.Rank]int) (high, low deck.Rank) {
	for r, c := range counts {
		if c != 2 {
			continue
		}
		if r > high {
			high, low = r, high
		} else if r > low {
			low = r
		}
	}
	return high, low
}

// cardsNotRank returns the cards outside the given ranks, highest first
func cardsNotRank(sorted []deck.Card, exclude ...deck.Rank) []deck.Card {
	var out []deck.Card
	for i := len(sorted) - 1; i >= 0; i-- {
		excluded := false
		for _, r := range exclude {
			if sorted[i].Rank == r {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, sorted[i])
		}
	}
	return out
}

func firstCardNotRank(sorted []deck.Card, exclude ...deck.Rank) deck.Card {
	return cardsNotRank(sorted, exclude...)[0]
}

func reversed(sorted []deck.Card) []deck.Card {
	out := make([]deck.Card, len(sorted))
	for i, c := range sorted {
		out[len(sorted)-1-i] = c
	}
	return out
}

func rankValues(cards []deck.Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Rank.Value()
	}
	return out
}
