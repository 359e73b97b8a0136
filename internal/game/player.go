package game

import "github.com/lox/fivecarddraw/internal/deck"

// SeatID identifies one of the two seats
type SeatID int

const (
	SeatPlayer SeatID = iota
	SeatOpponent
)

func (s SeatID) String() string {
	if s == SeatOpponent {
		return "opponent"
	}
	return "player"
}

// Other returns the opposing seat
func (s SeatID) Other() SeatID {
	if s == SeatPlayer {
		return SeatOpponent
	}
	return SeatPlayer
}

// Player represents one seat in a hand
type Player struct {
	ID         SeatID
	Name       string
	Chips      int
	Hand       []deck.Card
	FaceUp     []bool
	Active     bool
	Folded     bool
	CurrentBet int
}

func newPlayer(id SeatID, name string, chips int) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Chips: chips,
	}
}

// pay debits up to amount from the player's stack and returns what was
// actually paid. Never drives chips negative.
func (p *Player) pay(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	return amount
}

// revealAll flips every card face up
func (p *Player) revealAll() {
	for i := range p.FaceUp {
		p.FaceUp[i] = true
	}
}

// clone returns a deep copy for snapshots
func (p *Player) clone() *Player {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Hand = append([]deck.Card(nil), p.Hand...)
	cp.FaceUp = append([]bool(nil), p.FaceUp...)
	return &cp
}
