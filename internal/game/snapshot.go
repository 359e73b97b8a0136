package game

// State is an immutable snapshot of the game for presentation. Every
// slice and nested struct is copied, so callers can hold a snapshot
// across further commands without seeing mutation.
type State struct {
	Phase    Phase
	Player   *Player
	Opponent *Player
	Pot      int
	Betting  *BettingRound
	Limits   Limits

	Selected         []int
	PlayerHasDrawn   bool
	OpponentHasDrawn bool

	Winner  Winner
	Message string

	PlayerScore   int
	OpponentScore int
	TargetScore   int
	MatchWinner   Winner
	HandCount     int

	DeckRemaining int
}

// Snapshot returns a deep copy of the current game state
func (g *Game) Snapshot() State {
	var betting *BettingRound
	if g.betting != nil {
		br := *g.betting
		betting = &br
	}

	return State{
		Phase:            g.phase,
		Player:           g.player.clone(),
		Opponent:         g.opponent.clone(),
		Pot:              g.pot,
		Betting:          betting,
		Limits:           g.limits,
		Selected:         g.selectedIndices(),
		PlayerHasDrawn:   g.drawn[SeatPlayer],
		OpponentHasDrawn: g.drawn[SeatOpponent],
		Winner:           g.winner,
		Message:          g.message,
		PlayerScore:      g.playerScore,
		OpponentScore:    g.opponentScore,
		TargetScore:      g.cfg.TargetScore,
		MatchWinner:      g.matchWinner,
		HandCount:        g.handCount,
		DeckRemaining:    g.deck.Remaining(),
	}
}

// AmountToCall reports what the player seat owes against the
// outstanding bet
func (s State) AmountToCall() int {
	if s.Betting == nil || s.Player == nil {
		return 0
	}
	toCall := s.Betting.CurrentBet - s.Player.CurrentBet
	if toCall < 0 {
		return 0
	}
	return toCall
}

// CanRaise reports whether the round cap leaves room for a raise
func (s State) CanRaise() bool {
	if s.Betting == nil {
		return false
	}
	return s.Betting.CurrentBet > 0 && s.Betting.CurrentBet < s.Limits.Cap(s.Betting.Round)
}
