package game

import (
	"slices"

	"github.com/lox/holdem/internal/deck"
)

// SeatView is the public part of a seat
type SeatView struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Chips      int    `json:"chips"`
	CurrentBet int    `json:"current_bet"`
	TotalBet   int    `json:"total_bet"`
	Status     Status `json:"status"`
	IsDealer   bool   `json:"is_dealer,omitempty"`
	IsSmall    bool   `json:"is_small_blind,omitempty"`
	IsBig      bool   `json:"is_big_blind,omitempty"`
}

// GameView is the read-only snapshot given to a seat when it must decide.
// It holds copies, so mutating it never affects the engine.
type GameView struct {
	Seat         int           `json:"seat"`
	HandNumber   int           `json:"hand_number"`
	Phase        Phase         `json:"phase"`
	HoleCards    []deck.Card   `json:"hole_cards"`
	Community    []deck.Card   `json:"community"`
	Pot          int           `json:"pot"`
	CurrentBet   int           `json:"current_bet"`
	ToCall       int           `json:"to_call"`
	MinRaiseBy   int           `json:"min_raise_increment"` // smallest raise amount; LegalActions carry totals
	Chips        int           `json:"chips"`
	SmallBlind   int           `json:"small_blind"`
	BigBlind     int           `json:"big_blind"`
	Button       int           `json:"button"`
	LegalActions []LegalAction `json:"legal_actions"`
	Seats        []SeatView    `json:"seats"`
	History      []string      `json:"history"`
}

// View builds the snapshot for seat with at most historyLimit recent history
// lines (all when historyLimit <= 0). Other seats' hole cards are never
// included.
func (e *Engine) View(seat, historyLimit int) GameView {
	v := GameView{
		Seat:         seat,
		HandNumber:   e.handNumber,
		Phase:        e.phase,
		Community:    slices.Clone(e.community),
		Pot:          e.pot,
		CurrentBet:   e.currentBet,
		ToCall:       e.ToCall(seat),
		MinRaiseBy:   e.cfg.BigBlind,
		SmallBlind:   e.cfg.SmallBlind,
		BigBlind:     e.cfg.BigBlind,
		Button:       e.button,
		LegalActions: e.LegalActions(seat),
		History:      e.HistoryLines(historyLimit),
	}
	if p := e.account(seat); p != nil {
		v.HoleCards = slices.Clone(p.HoleCards)
		v.Chips = p.Chips
	}

	v.Seats = make([]SeatView, len(e.players))
	for i, p := range e.players {
		v.Seats[i] = SeatView{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			TotalBet:   p.TotalBet,
			Status:     p.Status,
			IsDealer:   p.IsDealer,
			IsSmall:    p.IsSmallBlind,
			IsBig:      p.IsBigBlind,
		}
	}
	return v
}

// Legal returns the legal action of the given kind, if offered
func (v GameView) Legal(kind ActionKind) (LegalAction, bool) {
	for _, a := range v.LegalActions {
		if a.Kind == kind {
			return a, true
		}
	}
	return LegalAction{}, false
}

// RaiseTo converts a desired total bet into the increment ProcessAction
// expects for a Raise.
func (v GameView) RaiseTo(total int) int {
	return total - v.CurrentBet
}
