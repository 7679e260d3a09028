package phh

import (
	"fmt"
	"strings"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/runner"
)

func cards(cs []deck.Card) string {
	var b strings.Builder
	for _, c := range cs {
		b.WriteString(c.Text())
	}
	return b.String()
}

// FromHand converts a finished hand. Seats that were busted before the hand
// are left out and the remaining seats keep their table order.
func FromHand(h *runner.HandSummary, table string) *HandHistory {
	var seats []runner.SeatResult
	for _, s := range h.Seats {
		if s.StartChips > 0 {
			seats = append(seats, s)
		}
	}

	// Map table seat ids to PHH player indices
	index := make(map[int]int, len(seats))
	for i, s := range seats {
		index[s.ID] = i
	}

	hand := &HandHistory{
		Variant:   Variant,
		Table:     table,
		SeatCount: len(seats),
		MinBet:    h.BigBlind,
		HandID:    fmt.Sprintf("%s-%05d", table, h.HandNumber),
	}
	for i, s := range seats {
		hand.Seats = append(hand.Seats, i+1)
		hand.Antes = append(hand.Antes, 0)
		hand.BlindsOrStraddles = append(hand.BlindsOrStraddles, s.Blind)
		hand.StartingStacks = append(hand.StartingStacks, s.StartChips)
		hand.FinishingStacks = append(hand.FinishingStacks, s.EndChips)
		hand.Players = append(hand.Players, s.Name)
		won := 0
		if h.Result != nil {
			won = h.Result.Awards[s.ID]
		}
		hand.Winnings = append(hand.Winnings, won)
	}
	if !h.StartedAt.IsZero() {
		hand.SetTimestamp(h.StartedAt)
	}

	for i, s := range seats {
		hand.Actions = append(hand.Actions, fmt.Sprintf("d dh %s %s", player(i), cards(s.HoleCards)))
	}
	hand.Actions = append(hand.Actions, actions(h.History, index)...)

	if h.Result != nil && !h.Result.Uncontested() {
		for _, s := range seats {
			if shown, ok := h.Result.Cards[s.ID]; ok {
				hand.Actions = append(hand.Actions, fmt.Sprintf("%s sm %s", player(index[s.ID]), cards(shown)))
			}
		}
	}
	return hand
}

// actions replays the betting history, tracking street bets so that all-ins
// become calls or raises as appropriate.
func actions(history []game.HistoryEntry, index map[int]int) []string {
	bets := make(map[int]int)
	tableBet := 0
	var out []string

	for _, e := range history {
		switch e.Kind {
		case game.EntrySmallBlind, game.EntryBigBlind:
			bets[e.Seat] = e.Amount
			tableBet = max(tableBet, e.Amount)

		case game.EntryStreet:
			clear(bets)
			tableBet = 0
			out = append(out, "d db "+cards(e.Cards))

		case game.EntryAction:
			seat := index[e.Seat]
			switch e.Action {
			case game.Fold:
				out = append(out, FormatFold(seat))
			case game.Check:
				out = append(out, FormatCheckCall(seat))
			case game.Call:
				bets[e.Seat] += e.Amount
				out = append(out, FormatCheckCall(seat))
			case game.Raise:
				bets[e.Seat] = e.Amount
				tableBet = e.Amount
				out = append(out, FormatBetRaise(seat, e.Amount))
			case game.AllIn:
				bets[e.Seat] += e.Amount
				if bets[e.Seat] > tableBet {
					tableBet = bets[e.Seat]
					out = append(out, FormatBetRaise(seat, tableBet))
				} else {
					out = append(out, FormatCheckCall(seat))
				}
			}
		}
	}
	return out
}
