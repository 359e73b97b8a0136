package game

// Phase represents the state of a hand
type Phase int

const (
	Idle Phase = iota
	Dealing
	Betting
	Drawing
	Showdown
	GameOver
)

func (p Phase) String() string {
	return [...]string{"idle", "dealing", "betting", "drawing", "showdown", "game_over"}[p]
}

// Action represents a betting action
type Action int

const (
	Bet Action = iota
	Check
	Call
	Raise
	Fold
)

func (a Action) String() string {
	return [...]string{"bet", "check", "call", "raise", "fold"}[a]
}

// Winner identifies the outcome of a hand or match
type Winner int

const (
	NoWinner Winner = iota
	PlayerWins
	OpponentWins
	TieGame
)

func (w Winner) String() string {
	return [...]string{"none", "player", "opponent", "tie"}[w]
}

// Limits holds the fixed-limit bet caps. Round 1 is capped at the small
// bet, round 2 at the big bet; the ante equals the small bet.
type Limits struct {
	SmallBet int
	BigBet   int
}

// Cap returns the bet cap for the given round number
func (l Limits) Cap(round int) int {
	if round >= 2 {
		return l.BigBet
	}
	return l.SmallBet
}

// BettingRound tracks the state of one fixed-limit betting round.
// CurrentBet is the single outstanding bet that must be matched to stay
// in the hand; reaching the round's cap blocks further raises.
type BettingRound struct {
	Round      int // 1 or 2
	CurrentBet int
	Pot        int
	Active     SeatID
	LastAction Action
	Acted      bool // false until the first action of the round
}

func newBettingRound(round, pot int) *BettingRound {
	return &BettingRound{
		Round:  round,
		Pot:    pot,
		Active: SeatPlayer,
	}
}

// checked reports whether the last action in this round was a check
func (br *BettingRound) checked() bool {
	return br.Acted && br.LastAction == Check
}

func (br *BettingRound) record(action Action, active SeatID) {
	br.LastAction = action
	br.Acted = true
	br.Active = active
}
