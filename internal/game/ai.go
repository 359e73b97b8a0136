package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/fivecarddraw/internal/deck"
	"github.com/lox/fivecarddraw/internal/evaluator"
)

// Decision is the AI's chosen action. Amount is the bet size for Bet
// and the increment over the outstanding bet for Raise; Reasoning is a
// short trace for logging and the simulator's verbose output.
type Decision struct {
	Action    Action
	Amount    int
	Reasoning string
}

// DecisionContext is the betting state the AI sees when deciding. It
// never sees the player's cards.
type DecisionContext struct {
	Pot          int
	CurrentBet   int
	AmountToCall int
	Cap          int
	Chips        int
}

// AIEngine makes betting and draw decisions for the opponent seat. It
// is a threshold heuristic over normalized hand strength: strong hands
// bet and raise, medium hands weigh pot odds, weak hands occasionally
// bluff. The RNG only drives the bluffing frequency.
type AIEngine struct {
	rng *rand.Rand
}

func NewAIEngine(rng *rand.Rand) *AIEngine {
	return &AIEngine{rng: rng}
}

// Strength thresholds on the 0-1 scale
const (
	strengthStrong   = 0.8
	strengthGood     = 0.6
	strengthMarginal = 0.4
	bluffFrequency   = 0.1
)

var categoryStrength = map[evaluator.Category]float64{
	evaluator.HighCard:      0.1,
	evaluator.Pair:          0.3,
	evaluator.TwoPair:       0.5,
	evaluator.ThreeOfAKind:  0.6,
	evaluator.Straight:      0.7,
	evaluator.Flush:         0.75,
	evaluator.FullHouse:     0.85,
	evaluator.FourOfAKind:   0.95,
	evaluator.StraightFlush: 0.98,
	evaluator.RoyalFlush:    1.0,
}

// HandStrength normalizes an evaluation to [0, 1]: a base per category
// plus a small bonus from the display value so stronger hands within a
// category rate slightly higher.
func HandStrength(eval evaluator.Evaluation) float64 {
	strength := categoryStrength[eval.Category]
	bonus := float64(eval.Value) / 10000
	if bonus > 1 {
		bonus = 1
	}
	strength += bonus * 0.1
	if strength > 1 {
		strength = 1
	}
	return strength
}

// Decide picks the opponent's betting action for the current state
func (ai *AIEngine) Decide(eval evaluator.Evaluation, ctx DecisionContext) Decision {
	strength := HandStrength(eval)

	if ctx.AmountToCall <= 0 {
		return ai.decideUnopened(strength, ctx)
	}
	return ai.decideFacingBet(strength, ctx)
}

// decideUnopened handles the no-outstanding-bet case: value-bet strong
// hands, bet smaller with good ones, bluff occasionally, otherwise
// check
func (ai *AIEngine) decideUnopened(strength float64, ctx DecisionContext) Decision {
	switch {
	case strength >= strengthStrong:
		return Decision{
			Action:    Bet,
			Amount:    ctx.Cap,
			Reasoning: fmt.Sprintf("strong hand (%.2f), betting the cap", strength),
		}
	case strength >= strengthGood:
		amount := ctx.Cap * 3 / 4
		if amount < 1 {
			amount = 1
		}
		return Decision{
			Action:    Bet,
			Amount:    amount,
			Reasoning: fmt.Sprintf("good hand (%.2f), betting for value", strength),
		}
	case ai.rng.Float64() < bluffFrequency:
		return Decision{
			Action:    Bet,
			Amount:    ctx.Cap,
			Reasoning: fmt.Sprintf("weak hand (%.2f), bluffing", strength),
		}
	default:
		return Decision{
			Action:    Check,
			Reasoning: fmt.Sprintf("weak hand (%.2f), checking", strength),
		}
	}
}

// decideFacingBet weighs strength against pot odds: the ratio of what
// the pot offers to what a call costs
func (ai *AIEngine) decideFacingBet(strength float64, ctx DecisionContext) Decision {
	potOdds := float64(ctx.Pot+ctx.AmountToCall) / float64(ctx.AmountToCall)

	switch {
	case strength >= strengthStrong:
		if increment := ctx.Cap - ctx.CurrentBet; increment > 0 && ctx.AmountToCall+increment <= ctx.Chips {
			return Decision{
				Action:    Raise,
				Amount:    increment,
				Reasoning: fmt.Sprintf("strong hand (%.2f), raising to the cap", strength),
			}
		}
		return Decision{
			Action:    Call,
			Reasoning: fmt.Sprintf("strong hand (%.2f), cap reached, calling", strength),
		}
	case strength >= strengthGood:
		if potOdds > 3 {
			return Decision{
				Action:    Call,
				Reasoning: fmt.Sprintf("good hand (%.2f), pot odds %.1f justify a call", strength, potOdds),
			}
		}
		return Decision{
			Action:    Fold,
			Reasoning: fmt.Sprintf("good hand (%.2f) but pot odds %.1f too thin", strength, potOdds),
		}
	case strength >= strengthMarginal:
		if potOdds > 4 {
			return Decision{
				Action:    Call,
				Reasoning: fmt.Sprintf("marginal hand (%.2f), pot odds %.1f justify a call", strength, potOdds),
			}
		}
		return Decision{
			Action:    Fold,
			Reasoning: fmt.Sprintf("marginal hand (%.2f), folding at pot odds %.1f", strength, potOdds),
		}
	default:
		if potOdds > 8 {
			return Decision{
				Action:    Call,
				Reasoning: fmt.Sprintf("weak hand (%.2f) but pot odds %.1f too good to fold", strength, potOdds),
			}
		}
		return Decision{
			Action:    Fold,
			Reasoning: fmt.Sprintf("weak hand (%.2f), folding", strength),
		}
	}
}

// ChooseDiscards picks up to 3 cards to replace at the draw. Cards that
// are part of a rank pair or better are kept, as are face cards and
// aces; everything else is a discard candidate, lowest indices first.
func (ai *AIEngine) ChooseDiscards(hand []deck.Card) []int {
	counts := make(map[deck.Rank]int, len(hand))
	for _, c := range hand {
		counts[c.Rank]++
	}

	var discards []int
	for i, c := range hand {
		if len(discards) == 3 {
			break
		}
		if counts[c.Rank] >= 2 || c.IsFaceOrAce() {
			continue
		}
		discards = append(discards, i)
	}
	return discards
}
