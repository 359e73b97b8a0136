// Package tui renders the interactive game with Bubble Tea. The model
// holds no game state of its own; every frame is drawn from a fresh
// engine snapshot, and the opponent's turns are paced with timed
// messages so the hand unfolds at a readable speed.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/fivecarddraw/internal/deck"
	"github.com/lox/fivecarddraw/internal/game"
	"github.com/lox/fivecarddraw/internal/history"
)

// opponentDelay paces the AI so its moves are visible
const opponentDelay = 800 * time.Millisecond

type opponentActMsg struct{}
type opponentDrawMsg struct{}

// Model is the Bubble Tea model for an interactive match
type Model struct {
	game   *game.Game
	store  *history.Store
	logger *log.Logger

	keys keyMap
	help help.Model

	width    int
	height   int
	errMsg   string
	activity []string
	quitting bool
}

// New creates a model over a game that has already been started
func New(g *game.Game, store *history.Store, logger *log.Logger) *Model {
	return &Model{
		game:   g,
		store:  store,
		logger: logger.WithPrefix("tui"),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Run starts the match and blocks until the player quits
func Run(g *game.Game, store *history.Store, logger *log.Logger) error {
	if err := g.StartMatch(); err != nil {
		return err
	}
	_, err := tea.NewProgram(New(g, store, logger), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case opponentActMsg:
		return m, m.opponentAct()

	case opponentDrawMsg:
		return m, m.opponentDraw()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	state := m.game.Snapshot()
	switch {
	case key.Matches(msg, m.keys.Cards):
		index := int(msg.String()[0] - '1')
		m.command(m.game.ToggleCardSelection(index))
		return m, nil

	case key.Matches(msg, m.keys.Bet):
		amount := min(state.Limits.Cap(betRound(state)), playerChips(state))
		return m, m.playerAction(m.game.Bet(amount))

	case key.Matches(msg, m.keys.Check):
		return m, m.playerAction(m.game.Check())

	case key.Matches(msg, m.keys.Call):
		return m, m.playerAction(m.game.Call())

	case key.Matches(msg, m.keys.Raise):
		increment := state.Limits.Cap(betRound(state)) - currentBet(state)
		return m, m.playerAction(m.game.Raise(increment))

	case key.Matches(msg, m.keys.Fold):
		return m, m.playerAction(m.game.Fold())

	case key.Matches(msg, m.keys.Draw):
		count, err := m.game.Draw()
		if err != nil {
			m.command(err)
			return m, nil
		}
		m.errMsg = ""
		m.logActivity(fmt.Sprintf("You drew %d cards", count))
		return m, tea.Tick(opponentDelay, func(time.Time) tea.Msg { return opponentDrawMsg{} })

	case key.Matches(msg, m.keys.Continue):
		return m, m.advance(state)
	}
	return m, nil
}

// playerAction records the outcome of a betting command and schedules
// the opponent if the turn passed over
func (m *Model) playerAction(err error) tea.Cmd {
	if !m.command(err) {
		return nil
	}
	m.activity = nil
	return m.scheduleOpponent()
}

// advance handles enter: deal the next hand, or start a fresh match
// once the previous one was decided
func (m *Model) advance(state game.State) tea.Cmd {
	switch state.Phase {
	case game.GameOver:
		result, err := m.game.Continue()
		if !m.command(err) {
			return nil
		}
		if result != nil {
			m.recordResult(result)
		}
		m.activity = nil
		return nil
	case game.Idle:
		m.command(m.game.StartMatch())
		return nil
	default:
		return nil
	}
}

func (m *Model) recordResult(result *game.MatchResult) {
	if m.store == nil {
		return
	}
	if err := m.store.Record(result); err != nil {
		m.logger.Error("failed to record match result", "error", err)
	}
}

// scheduleOpponent queues the AI's next move when the engine is
// waiting on it
func (m *Model) scheduleOpponent() tea.Cmd {
	state := m.game.Snapshot()
	switch {
	case state.Phase == game.Betting && state.Opponent != nil && state.Opponent.Active:
		return tea.Tick(opponentDelay, func(time.Time) tea.Msg { return opponentActMsg{} })
	case state.Phase == game.Drawing && state.PlayerHasDrawn && !state.OpponentHasDrawn:
		return tea.Tick(opponentDelay, func(time.Time) tea.Msg { return opponentDrawMsg{} })
	default:
		return nil
	}
}

func (m *Model) opponentAct() tea.Cmd {
	decision, err := m.game.OpponentAct()
	if err != nil {
		m.logger.Error("opponent action failed", "error", err)
		return nil
	}
	m.logger.Debug("opponent acted", "action", decision.Action, "reasoning", decision.Reasoning)

	switch decision.Action {
	case game.Bet, game.Raise:
		m.logActivity(fmt.Sprintf("Opponent %ss $%d", decision.Action, decision.Amount))
	default:
		m.logActivity(fmt.Sprintf("Opponent %ss", decision.Action))
	}
	return m.scheduleOpponent()
}

func (m *Model) opponentDraw() tea.Cmd {
	count, err := m.game.OpponentDraw()
	if err != nil {
		m.logger.Error("opponent draw failed", "error", err)
		return nil
	}
	m.logActivity(fmt.Sprintf("Opponent drew %d cards", count))
	return m.scheduleOpponent()
}

// command applies an engine error to the status line, reporting whether
// the command succeeded
func (m *Model) command(err error) bool {
	if err != nil {
		m.errMsg = err.Error()
		return false
	}
	m.errMsg = ""
	return true
}

func (m *Model) logActivity(line string) {
	m.activity = append(m.activity, line)
	if len(m.activity) > 4 {
		m.activity = m.activity[len(m.activity)-4:]
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.game.Snapshot()
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Five Card Draw"))
	b.WriteString("  ")
	b.WriteString(ScoreStyle.Render(fmt.Sprintf("You %d - %d Opponent (first to %d)",
		state.PlayerScore, state.OpponentScore, state.TargetScore)))
	if m.store != nil {
		wins, losses, ties := m.store.Summary()
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  record %dW-%dL-%dT", wins, losses, ties)))
	}
	b.WriteString("\n\n")

	if state.Phase == game.Idle {
		b.WriteString(MessageStyle.Render(m.matchOverLine()))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("press enter to play again, q to quit"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderSeat(state.Opponent, nil))
	b.WriteString("\n")
	b.WriteString(PotStyle.Render(fmt.Sprintf("Pot $%d", state.Pot)))
	if toCall := state.AmountToCall(); toCall > 0 {
		b.WriteString(PotStyle.Render(fmt.Sprintf("   $%d to call", toCall)))
	}
	b.WriteString("\n")
	b.WriteString(m.renderSeat(state.Player, state.Selected))
	b.WriteString("\n")

	for _, line := range m.activity {
		b.WriteString(InfoStyle.Render(line))
		b.WriteString("\n")
	}
	if state.Message != "" {
		b.WriteString(MessageStyle.Render(state.Message))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) matchOverLine() string {
	entries := []history.Entry{}
	if m.store != nil {
		entries = m.store.Entries()
	}
	if len(entries) == 0 {
		return "Match over"
	}
	last := entries[0]
	if last.Result == game.PlayerWins {
		return fmt.Sprintf("You won the match %d-%d!", last.PlayerScore, last.OpponentScore)
	}
	return fmt.Sprintf("Opponent won the match %d-%d", last.OpponentScore, last.PlayerScore)
}

func (m *Model) renderSeat(p *game.Player, selected []int) string {
	if p == nil {
		return ""
	}

	cards := make([]string, len(p.Hand))
	for i, c := range p.Hand {
		cards[i] = renderCard(c, p.FaceUp[i], contains(selected, i))
	}

	label := fmt.Sprintf("%s  $%d", p.Name, p.Chips)
	if p.Active {
		label += MessageStyle.Render("  to act")
	}
	return label + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(cards, " "))
}

func renderCard(c deck.Card, faceUp, selected bool) string {
	if !faceUp {
		return CardBackStyle.Render(cardBack)
	}
	text := fmt.Sprintf("[%s]", c)
	switch {
	case selected:
		return SelectedCardStyle.Render(text)
	case c.IsRed():
		return RedCardStyle.Render(text)
	default:
		return BlackCardStyle.Render(text)
	}
}

func contains(indices []int, i int) bool {
	for _, v := range indices {
		if v == i {
			return true
		}
	}
	return false
}

func betRound(state game.State) int {
	if state.Betting == nil {
		return 1
	}
	return state.Betting.Round
}

func currentBet(state game.State) int {
	if state.Betting == nil {
		return 0
	}
	return state.Betting.CurrentBet
}

func playerChips(state game.State) int {
	if state.Player == nil {
		return 0
	}
	return state.Player.Chips
}
