package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fivecarddraw/internal/deck"
	"github.com/lox/fivecarddraw/internal/evaluator"
	"github.com/lox/fivecarddraw/internal/randutil"
)

func evalCards(t *testing.T, cards string) evaluator.Evaluation {
	t.Helper()
	eval, err := evaluator.Evaluate(deck.MustParseCards(cards))
	require.NoError(t, err)
	return eval
}

func TestHandStrengthScale(t *testing.T) {
	royal := HandStrength(evalCards(t, "AsKsQsJsTs"))
	quads := HandStrength(evalCards(t, "7s7h7d7c2s"))
	pair := HandStrength(evalCards(t, "JsJh9d6c2s"))
	high := HandStrength(evalCards(t, "As9h7d5c2s"))

	assert.Equal(t, 1.0, royal)
	assert.Greater(t, quads, HandStrength(evalCards(t, "KsKhKd2c2s")))
	assert.Greater(t, pair, high)
	assert.GreaterOrEqual(t, quads, strengthStrong)
	assert.Less(t, pair, strengthMarginal)
}

func TestDecideStrongHandBetsCap(t *testing.T) {
	ai := NewAIEngine(randutil.New(1))
	d := ai.Decide(evalCards(t, "7s7h7d7c2s"), DecisionContext{
		Pot: 4, Cap: 2, Chips: 98,
	})
	assert.Equal(t, Bet, d.Action)
	assert.Equal(t, 2, d.Amount)
}

func TestDecideGoodHandBetsSmaller(t *testing.T) {
	ai := NewAIEngine(randutil.New(1))
	d := ai.Decide(evalCards(t, "9s8h7d6c5s"), DecisionContext{
		Pot: 8, Cap: 4, Chips: 96,
	})
	assert.Equal(t, Bet, d.Action)
	assert.Equal(t, 3, d.Amount)
}

func TestDecideWeakHandMostlyChecks(t *testing.T) {
	ai := NewAIEngine(randutil.New(1))
	eval := evalCards(t, "2s5h7d9cJs")

	bets := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		d := ai.Decide(eval, DecisionContext{Pot: 4, Cap: 2, Chips: 98})
		switch d.Action {
		case Bet:
			bets++
			assert.Equal(t, 2, d.Amount, "bluffs bet the cap")
		case Check:
		default:
			t.Fatalf("unexpected action %v with no bet outstanding", d.Action)
		}
	}
	assert.Greater(t, bets, trials/20, "bluff frequency far below 10%%")
	assert.Less(t, bets, trials/5, "bluff frequency far above 10%%")
}

func TestDecideStrongHandRaises(t *testing.T) {
	ai := NewAIEngine(randutil.New(1))
	d := ai.Decide(evalCards(t, "7s7h7d7c2s"), DecisionContext{
		Pot: 6, CurrentBet: 2, AmountToCall: 2, Cap: 4, Chips: 96,
	})
	assert.Equal(t, Raise, d.Action)
	assert.Equal(t, 2, d.Amount, "raises by the remaining room to the cap")
}

func TestDecideStrongHandCallsAtCap(t *testing.T) {
	ai := NewAIEngine(randutil.New(1))
	d := ai.Decide(evalCards(t, "7s7h7d7c2s"), DecisionContext{
		Pot: 10, CurrentBet: 4, AmountToCall: 4, Cap: 4, Chips: 94,
	})
	assert.Equal(t, Call, d.Action)
}

func TestDecideGoodHandUsesPotOdds(t *testing.T) {
	ai := NewAIEngine(randutil.New(1))
	eval := evalCards(t, "9s8h7d6c5s") // straight

	call := ai.Decide(eval, DecisionContext{Pot: 6, CurrentBet: 2, AmountToCall: 2, Cap: 2, Chips: 96})
	assert.Equal(t, Call, call.Action, "pot odds 4:1 justify a call")

	fold := ai.Decide(eval, DecisionContext{Pot: 2, CurrentBet: 2, AmountToCall: 2, Cap: 2, Chips: 96})
	assert.Equal(t, Fold, fold.Action, "pot odds 2:1 do not")
}

func TestDecideMarginalHandUsesPotOdds(t *testing.T) {
	ai := NewAIEngine(randutil.New(1))
	eval := evalCards(t, "KsKhQdQc2s") // two pair

	call := ai.Decide(eval, DecisionContext{Pot: 8, CurrentBet: 2, AmountToCall: 2, Cap: 2, Chips: 96})
	assert.Equal(t, Call, call.Action)

	fold := ai.Decide(eval, DecisionContext{Pot: 4, CurrentBet: 2, AmountToCall: 2, Cap: 2, Chips: 96})
	assert.Equal(t, Fold, fold.Action)
}

func TestDecideWeakHandNeedsLongOdds(t *testing.T) {
	ai := NewAIEngine(randutil.New(1))
	eval := evalCards(t, "2s5h7d9cJs")

	call := ai.Decide(eval, DecisionContext{Pot: 20, CurrentBet: 2, AmountToCall: 2, Cap: 2, Chips: 96})
	assert.Equal(t, Call, call.Action, "pot odds 11:1 force a call even weak")

	fold := ai.Decide(eval, DecisionContext{Pot: 4, CurrentBet: 2, AmountToCall: 2, Cap: 2, Chips: 96})
	assert.Equal(t, Fold, fold.Action)
}

func TestChooseDiscards(t *testing.T) {
	ai := NewAIEngine(randutil.New(1))

	tests := []struct {
		name  string
		hand  string
		want  []int
	}{
		{"keeps pair, discards the rest", "7s7h2d3c4s", []int{2, 3, 4}},
		{"keeps face cards and aces", "2s3h5dKc9s", []int{0, 1, 2}},
		{"near-pat hand discards one", "AsKsQhJd8c", []int{4}},
		{"full house stands pat", "KsKhKd2c2s", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ai.ChooseDiscards(deck.MustParseCards(tt.hand))
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 3)
		})
	}
}
