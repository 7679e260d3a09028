package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem/internal/deck"
)

// Status is a seat's participation state within the current hand
type Status int

const (
	Active Status = iota
	Folded
	StatusAllIn
	Busted
)

var statusNames = [...]string{"active", "folded", "all-in", "busted"}

func (s Status) String() string {
	if s < Active || s > Busted {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Player is a seat's chip account. It persists across hands; the per-hand
// fields are cleared by ResetForNewHand.
type Player struct {
	ID        int
	Name      string
	Chips     int
	HoleCards []deck.Card

	CurrentBet int // committed in the current betting round
	TotalBet   int // committed across the whole hand

	Status Status

	IsDealer     bool
	IsSmallBlind bool
	IsBigBlind   bool
}

// NewPlayer creates a seat account
func NewPlayer(id int, name string, chips int) *Player {
	p := &Player{ID: id, Name: name, Chips: chips}
	if chips <= 0 {
		p.Status = Busted
	}
	return p
}

// Bet moves up to amount chips from the stack into the current bet and returns
// what was actually committed. Short stacks are clamped and go all-in;
// non-positive amounts commit nothing.
func (p *Player) Bet(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.Chips)
	p.Chips -= actual
	p.CurrentBet += actual
	p.TotalBet += actual
	if p.Chips == 0 {
		p.Status = StatusAllIn
	}
	return actual
}

// Fold removes the seat from the hand. Hole cards are kept for the hand record.
func (p *Player) Fold() {
	p.Status = Folded
}

// ResetForNewHand clears all per-hand state
func (p *Player) ResetForNewHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBet = 0
	p.IsDealer = false
	p.IsSmallBlind = false
	p.IsBigBlind = false
	if p.Chips > 0 {
		p.Status = Active
	} else {
		p.Status = Busted
	}
}

// ResetForNewRound clears the round bet; the hand total is kept
func (p *Player) ResetForNewRound() {
	p.CurrentBet = 0
}

// CanAct returns true if the seat can still take betting actions
func (p *Player) CanAct() bool {
	return p.Status == Active
}

// IsInHand returns true if the seat still contests the pot
func (p *Player) IsInHand() bool {
	return p.Status == Active || p.Status == StatusAllIn
}

func (p *Player) clone() *Player {
	c := *p
	c.HoleCards = slices.Clone(p.HoleCards)
	return &c
}

func (p *Player) String() string {
	return fmt.Sprintf("Player %d (%s, %d chips, %s)", p.ID, p.Name, p.Chips, p.Status)
}
