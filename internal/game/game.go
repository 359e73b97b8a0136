// Package game implements the rules engine for a two-player, fixed-limit
// 5-card draw poker match: the betting/draw state machine, chip and pot
// accounting, match scoring, and the AI opponent's decision procedure.
//
// A hand moves through Idle -> Dealing -> Betting (round 1) -> Drawing ->
// Betting (round 2) -> Showdown -> GameOver, with a fold short-circuiting
// straight to GameOver. All state is owned by the Game instance and only
// mutated through the command methods; every command validates its
// preconditions and leaves state untouched on error. Callers drive the
// opponent by invoking OpponentAct/OpponentDraw whenever a command hands
// the turn over - the engine itself never schedules anything.
package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/fivecarddraw/internal/deck"
	"github.com/lox/fivecarddraw/internal/evaluator"
)

// ErrIllegalAction is returned when a command is invoked outside its
// legal phase or turn, or with an amount that violates the limits. The
// presentation layer is expected to prevent most of these, but the
// engine re-validates every constraint as the source of truth.
var ErrIllegalAction = errors.New("illegal action")

// ErrInvariantViolation indicates corrupted bookkeeping (chip or card
// accounting no longer adds up). Not recoverable within the hand.
var ErrInvariantViolation = errors.New("game invariant violated")

const handSize = 5

// Config holds the fixed parameters of a match
type Config struct {
	StartingChips int
	SmallBet      int
	BigBet        int
	TargetScore   int
	PlayerName    string
	OpponentName  string
}

// DefaultConfig returns the canonical 2/4 fixed-limit setup
func DefaultConfig() Config {
	return Config{
		StartingChips: 100,
		SmallBet:      2,
		BigBet:        4,
		TargetScore:   100,
		PlayerName:    "You",
		OpponentName:  "Opponent",
	}
}

// MatchResult reports a decided match, produced by Continue when a seat
// has reached the target score. The caller persists it; the engine does
// no I/O.
type MatchResult struct {
	Winner        Winner
	PlayerScore   int
	OpponentScore int
}

// Game is the authoritative state machine for one match
type Game struct {
	logger *log.Logger
	cfg    Config
	limits Limits
	deck   *deck.Deck
	ai     *AIEngine

	phase    Phase
	player   *Player
	opponent *Player
	pot      int
	betting  *BettingRound
	selected map[int]bool
	drawn    [2]bool
	winner   Winner
	message  string

	playerScore   int
	opponentScore int
	matchWinner   Winner
	handCount     int
}

// New creates a game in the Idle phase. The RNG drives both the shuffle
// and the AI's randomized decisions, so a fixed seed reproduces a match.
func New(cfg Config, logger *log.Logger, rng *rand.Rand) *Game {
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		logger:   logger,
		cfg:      cfg,
		limits:   Limits{SmallBet: cfg.SmallBet, BigBet: cfg.BigBet},
		deck:     deck.New(rng),
		ai:       NewAIEngine(rng),
		selected: make(map[int]bool),
	}
}

// StartMatch zeroes the match scores and deals the first hand
func (g *Game) StartMatch() error {
	g.playerScore = 0
	g.opponentScore = 0
	g.matchWinner = NoWinner
	return g.StartHand()
}

// StartHand resets per-hand state, shuffles, deals 5 cards to each seat
// and collects the ante (one small bet per seat) into the pot. The
// player seat acts first in round 1.
func (g *Game) StartHand() error {
	if g.phase != Idle && g.phase != GameOver {
		return fmt.Errorf("%w: cannot start a hand during %s", ErrIllegalAction, g.phase)
	}
	if g.matchWinner != NoWinner {
		return fmt.Errorf("%w: match is decided, call Continue", ErrIllegalAction)
	}

	g.phase = Dealing
	g.player = newPlayer(SeatPlayer, g.cfg.PlayerName, g.cfg.StartingChips)
	g.opponent = newPlayer(SeatOpponent, g.cfg.OpponentName, g.cfg.StartingChips)

	g.deck.Reset()
	playerHand, err := g.deck.Deal(handSize)
	if err != nil {
		return err
	}
	opponentHand, err := g.deck.Deal(handSize)
	if err != nil {
		return err
	}

	g.player.Hand = playerHand
	g.player.FaceUp = []bool{true, true, true, true, true}
	g.opponent.Hand = opponentHand
	g.opponent.FaceUp = []bool{false, false, false, false, false}

	ante := g.cfg.SmallBet
	g.pot = g.player.pay(ante) + g.opponent.pay(ante)

	g.betting = newBettingRound(1, g.pot)
	g.player.Active = true
	g.winner = NoWinner
	g.selected = make(map[int]bool)
	g.drawn = [2]bool{}
	g.message = ""
	g.handCount++
	g.phase = Betting

	g.logger.Debug("hand started",
		"hand", g.handCount,
		"ante", ante,
		"pot", g.pot,
		"deckRemaining", g.deck.Remaining())
	return nil
}

// Bet opens the betting for the round. Legal only when no bet is
// outstanding; the amount must be positive, within the round's cap and
// within the player's stack.
func (g *Game) Bet(amount int) error {
	if err := g.requirePlayerTurn(); err != nil {
		return err
	}
	if g.betting.CurrentBet != 0 {
		return fmt.Errorf("%w: a bet of %d is already outstanding", ErrIllegalAction, g.betting.CurrentBet)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: bet must be positive", ErrIllegalAction)
	}
	if cap := g.limits.Cap(g.betting.Round); amount > cap {
		return fmt.Errorf("%w: bet %d exceeds round cap %d", ErrIllegalAction, amount, cap)
	}
	if amount > g.player.Chips {
		return fmt.Errorf("%w: bet %d exceeds stack %d", ErrIllegalAction, amount, g.player.Chips)
	}

	g.pot += g.player.pay(amount)
	g.player.CurrentBet = amount
	g.betting.CurrentBet = amount
	g.betting.Pot = g.pot
	g.passTurn(SeatOpponent, Bet)
	g.logAction(g.player, Bet, amount)
	return nil
}

// Check passes without betting. Legal only when no bet is outstanding;
// the second check of a round closes it.
func (g *Game) Check() error {
	if err := g.requirePlayerTurn(); err != nil {
		return err
	}
	if g.betting.CurrentBet != 0 {
		return fmt.Errorf("%w: cannot check over an outstanding bet of %d", ErrIllegalAction, g.betting.CurrentBet)
	}

	g.logAction(g.player, Check, 0)
	if g.betting.checked() {
		g.betting.record(Check, SeatPlayer)
		g.closeRound()
		return nil
	}
	g.passTurn(SeatOpponent, Check)
	return nil
}

// Call matches the outstanding bet and closes the round
func (g *Game) Call() error {
	if err := g.requirePlayerTurn(); err != nil {
		return err
	}
	toCall := g.betting.CurrentBet - g.player.CurrentBet
	if toCall <= 0 {
		return fmt.Errorf("%w: no bet to call", ErrIllegalAction)
	}
	if toCall > g.player.Chips {
		return fmt.Errorf("%w: need %d to call but stack is %d", ErrIllegalAction, toCall, g.player.Chips)
	}

	g.pot += g.player.pay(toCall)
	g.player.CurrentBet = g.betting.CurrentBet
	g.betting.Pot = g.pot
	g.betting.record(Call, SeatPlayer)
	g.logAction(g.player, Call, toCall)
	g.closeRound()
	return nil
}

// Raise increases the outstanding bet by increment, up to the round cap.
// The opponent must act again, so the round stays open.
func (g *Game) Raise(increment int) error {
	if err := g.requirePlayerTurn(); err != nil {
		return err
	}
	if g.betting.CurrentBet == 0 {
		return fmt.Errorf("%w: nothing to raise, bet instead", ErrIllegalAction)
	}
	if increment <= 0 {
		return fmt.Errorf("%w: raise must be positive", ErrIllegalAction)
	}
	newBet := g.betting.CurrentBet + increment
	if cap := g.limits.Cap(g.betting.Round); newBet > cap {
		return fmt.Errorf("%w: raise to %d exceeds round cap %d", ErrIllegalAction, newBet, cap)
	}
	needed := newBet - g.player.CurrentBet
	if needed > g.player.Chips {
		return fmt.Errorf("%w: need %d to raise but stack is %d", ErrIllegalAction, needed, g.player.Chips)
	}

	g.pot += g.player.pay(needed)
	g.player.CurrentBet = newBet
	g.betting.CurrentBet = newBet
	g.betting.Pot = g.pot
	g.passTurn(SeatOpponent, Raise)
	g.logAction(g.player, Raise, needed)
	return nil
}

// Fold concedes the hand. The opponent takes the entire pot and the
// winnings are credited to their match score.
func (g *Game) Fold() error {
	if err := g.requirePlayerTurn(); err != nil {
		return err
	}

	g.player.Folded = true
	g.logAction(g.player, Fold, 0)
	return g.awardPotTo(SeatOpponent)
}

// ToggleCardSelection marks or unmarks a card for replacement during
// the draw phase
func (g *Game) ToggleCardSelection(index int) error {
	if g.phase != Drawing || g.drawn[SeatPlayer] {
		return fmt.Errorf("%w: not selecting cards", ErrIllegalAction)
	}
	if index < 0 || index >= len(g.player.Hand) {
		return fmt.Errorf("%w: card index %d out of range", ErrIllegalAction, index)
	}

	if g.selected[index] {
		delete(g.selected, index)
	} else {
		g.selected[index] = true
	}
	return nil
}

// Draw replaces the player's selected cards with the next cards off the
// deck, in index order. No selection means standing pat. After the
// player draws, the opponent's own draw step follows via OpponentDraw.
func (g *Game) Draw() (int, error) {
	if g.phase != Drawing || g.drawn[SeatPlayer] {
		return 0, fmt.Errorf("%w: not the player's draw", ErrIllegalAction)
	}

	indices := g.selectedIndices()
	if err := g.replaceCards(g.player, indices); err != nil {
		return 0, err
	}
	g.drawn[SeatPlayer] = true
	g.selected = make(map[int]bool)
	g.message = fmt.Sprintf("Drew %d cards. Waiting for opponent...", len(indices))
	g.logger.Debug("player drew", "count", len(indices), "deckRemaining", g.deck.Remaining())
	return len(indices), nil
}

// OpponentDraw runs the opponent's draw step and then opens betting
// round 2 with the player seat acting first
func (g *Game) OpponentDraw() (int, error) {
	if g.phase != Drawing || !g.drawn[SeatPlayer] || g.drawn[SeatOpponent] {
		return 0, fmt.Errorf("%w: not the opponent's draw", ErrIllegalAction)
	}

	discards := g.ai.ChooseDiscards(g.opponent.Hand)
	if err := g.replaceCards(g.opponent, discards); err != nil {
		return 0, err
	}
	g.drawn[SeatOpponent] = true
	g.logger.Debug("opponent drew", "count", len(discards), "deckRemaining", g.deck.Remaining())

	g.player.CurrentBet = 0
	g.opponent.CurrentBet = 0
	g.betting = newBettingRound(2, g.pot)
	g.player.Active = true
	g.opponent.Active = false
	g.phase = Betting
	g.message = fmt.Sprintf("Opponent drew %d cards", len(discards))
	return len(discards), nil
}

// OpponentAct makes the AI's betting decision and applies it. Amounts
// are clamped to the opponent's stack and the round cap rather than
// rejected, so the AI path never fails on limits.
func (g *Game) OpponentAct() (Decision, error) {
	if g.phase != Betting || !g.opponent.Active {
		return Decision{}, fmt.Errorf("%w: not the opponent's turn", ErrIllegalAction)
	}

	eval, err := evaluator.Evaluate(g.opponent.Hand)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	decision := g.ai.Decide(eval, DecisionContext{
		Pot:          g.pot,
		CurrentBet:   g.betting.CurrentBet,
		AmountToCall: g.betting.CurrentBet - g.opponent.CurrentBet,
		Cap:          g.limits.Cap(g.betting.Round),
		Chips:        g.opponent.Chips,
	})

	if err := g.applyOpponentDecision(decision); err != nil {
		return decision, err
	}
	return decision, nil
}

func (g *Game) applyOpponentDecision(d Decision) error {
	switch d.Action {
	case Check:
		g.logAction(g.opponent, Check, 0)
		if g.betting.checked() {
			g.betting.record(Check, SeatOpponent)
			g.closeRound()
			return nil
		}
		g.passTurn(SeatPlayer, Check)
		return nil

	case Bet:
		if g.betting.CurrentBet != 0 {
			return g.opponentCall()
		}
		amount := min(d.Amount, g.limits.Cap(g.betting.Round))
		amount = min(amount, g.opponent.Chips)
		if amount <= 0 {
			g.passTurn(SeatPlayer, Check)
			return nil
		}
		g.pot += g.opponent.pay(amount)
		g.opponent.CurrentBet = amount
		g.betting.CurrentBet = amount
		g.betting.Pot = g.pot
		g.passTurn(SeatPlayer, Bet)
		g.logAction(g.opponent, Bet, amount)
		return nil

	case Call:
		return g.opponentCall()

	case Raise:
		newBet := g.betting.CurrentBet + d.Amount
		if cap := g.limits.Cap(g.betting.Round); newBet > cap {
			newBet = cap
		}
		if newBet <= g.betting.CurrentBet {
			return g.opponentCall()
		}
		needed := newBet - g.opponent.CurrentBet
		paid := g.opponent.pay(needed) // short stack raises all-in
		g.pot += paid
		g.opponent.CurrentBet += paid
		g.betting.CurrentBet = g.opponent.CurrentBet
		g.betting.Pot = g.pot
		g.passTurn(SeatPlayer, Raise)
		g.logAction(g.opponent, Raise, paid)
		return nil

	case Fold:
		g.opponent.Folded = true
		g.logAction(g.opponent, Fold, 0)
		return g.awardPotTo(SeatPlayer)

	default:
		return fmt.Errorf("%w: unknown action %v", ErrIllegalAction, d.Action)
	}
}

// opponentCall matches the outstanding bet, going all-in when the stack
// is short, and closes the round
func (g *Game) opponentCall() error {
	toCall := g.betting.CurrentBet - g.opponent.CurrentBet
	if toCall <= 0 {
		g.logAction(g.opponent, Check, 0)
		if g.betting.checked() {
			g.betting.record(Check, SeatOpponent)
			g.closeRound()
			return nil
		}
		g.passTurn(SeatPlayer, Check)
		return nil
	}

	paid := g.opponent.pay(toCall)
	g.pot += paid
	g.opponent.CurrentBet += paid
	g.betting.Pot = g.pot
	g.betting.record(Call, SeatOpponent)
	g.logAction(g.opponent, Call, paid)
	g.closeRound()
	return nil
}

// Continue advances past a finished hand. While the match is live it
// deals the next hand; once a seat has reached the target score it
// returns the MatchResult and resets to Idle.
func (g *Game) Continue() (*MatchResult, error) {
	if g.phase != GameOver {
		return nil, fmt.Errorf("%w: hand is not over", ErrIllegalAction)
	}

	if g.matchWinner != NoWinner {
		result := &MatchResult{
			Winner:        g.matchWinner,
			PlayerScore:   g.playerScore,
			OpponentScore: g.opponentScore,
		}
		g.playerScore = 0
		g.opponentScore = 0
		g.matchWinner = NoWinner
		g.phase = Idle
		g.logger.Info("match over", "winner", result.Winner,
			"playerScore", result.PlayerScore, "opponentScore", result.OpponentScore)
		return result, nil
	}

	return nil, g.StartHand()
}

// closeRound ends the current betting round: round 1 opens the draw
// phase, round 2 goes to showdown
func (g *Game) closeRound() {
	g.player.CurrentBet = 0
	g.opponent.CurrentBet = 0

	if g.betting.Round == 1 {
		g.phase = Drawing
		g.drawn = [2]bool{}
		g.selected = make(map[int]bool)
		g.player.Active = true
		g.opponent.Active = false
		g.message = "Select cards to discard, then draw"
		g.logger.Debug("round closed", "round", 1, "pot", g.pot)
		return
	}

	if err := g.showdown(); err != nil {
		g.logger.Error("showdown failed", "error", err)
	}
}

// showdown reveals both hands, compares them and pays out the pot. A
// tie splits the pot with the floor to the player seat and the ceiling
// to the opponent so odd pots conserve exactly.
func (g *Game) showdown() error {
	g.phase = Showdown
	g.player.revealAll()
	g.opponent.revealAll()

	cmp, err := evaluator.CompareHands(g.player.Hand, g.opponent.Hand)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}

	pot := g.pot
	switch {
	case cmp > 0:
		g.player.Chips += pot
		g.playerScore += pot
		g.winner = PlayerWins
		g.message = fmt.Sprintf("You win $%d!", pot)
	case cmp < 0:
		g.opponent.Chips += pot
		g.opponentScore += pot
		g.winner = OpponentWins
		g.message = fmt.Sprintf("Opponent wins $%d!", pot)
	default:
		half := pot / 2
		g.player.Chips += half
		g.opponent.Chips += pot - half
		g.playerScore += half
		g.opponentScore += pot - half
		g.winner = TieGame
		g.message = fmt.Sprintf("Tie! Split pot $%d", pot)
	}
	g.pot = 0

	g.updateMatchWinner()
	g.phase = GameOver
	g.logger.Debug("showdown", "winner", g.winner, "pot", pot,
		"playerScore", g.playerScore, "opponentScore", g.opponentScore)
	return g.validateConservation()
}

// awardPotTo ends the hand on a fold, crediting the whole pot and the
// winner's match score
func (g *Game) awardPotTo(seat SeatID) error {
	g.player.revealAll()
	g.opponent.revealAll()

	pot := g.pot
	if seat == SeatPlayer {
		g.player.Chips += pot
		g.playerScore += pot
		g.winner = PlayerWins
		g.message = fmt.Sprintf("You win $%d!", pot)
	} else {
		g.opponent.Chips += pot
		g.opponentScore += pot
		g.winner = OpponentWins
		g.message = fmt.Sprintf("Opponent wins $%d!", pot)
	}
	g.pot = 0

	g.updateMatchWinner()
	g.phase = GameOver
	g.logger.Debug("hand won by fold", "winner", g.winner, "pot", pot)
	return g.validateConservation()
}

func (g *Game) updateMatchWinner() {
	switch {
	case g.playerScore >= g.cfg.TargetScore:
		g.matchWinner = PlayerWins
		g.message = "You win the match!"
	case g.opponentScore >= g.cfg.TargetScore:
		g.matchWinner = OpponentWins
		g.message = "Opponent wins the match!"
	}
}

// validateConservation checks that no chips were created or destroyed
// during the hand
func (g *Game) validateConservation() error {
	total := g.player.Chips + g.opponent.Chips + g.pot
	expected := 2 * g.cfg.StartingChips
	if total != expected {
		return fmt.Errorf("%w: chip total %d, expected %d", ErrInvariantViolation, total, expected)
	}
	return nil
}

func (g *Game) requirePlayerTurn() error {
	if g.phase != Betting {
		return fmt.Errorf("%w: no betting during %s", ErrIllegalAction, g.phase)
	}
	if !g.player.Active {
		return fmt.Errorf("%w: not the player's turn", ErrIllegalAction)
	}
	return nil
}

func (g *Game) passTurn(to SeatID, action Action) {
	g.player.Active = to == SeatPlayer
	g.opponent.Active = to == SeatOpponent
	g.betting.record(action, to)
}

// replaceCards swaps each card at the given indices for the next card
// off the deck, in index order
func (g *Game) replaceCards(p *Player, indices []int) error {
	for _, i := range indices {
		if i < 0 || i >= len(p.Hand) {
			return fmt.Errorf("%w: card index %d out of range", ErrIllegalAction, i)
		}
	}
	for _, i := range indices {
		card, err := g.deck.DealOne()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
		}
		p.Hand[i] = card
	}
	return nil
}

func (g *Game) selectedIndices() []int {
	indices := make([]int, 0, len(g.selected))
	for i := range g.selected {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

func (g *Game) logAction(p *Player, action Action, amount int) {
	g.logger.Debug("action",
		"seat", p.ID,
		"action", action,
		"amount", amount,
		"pot", g.pot,
		"chips", p.Chips)
}
