package game

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/evaluator"
)

// ShowdownResult records how a hand's pot was awarded
type ShowdownResult struct {
	HandNumber int                 `json:"hand_number"`
	Board      []deck.Card         `json:"board"`
	Winners    []int               `json:"winners"`         // seats holding the best hand overall
	Awards     map[int]int         `json:"awards"`          // seat -> chips won
	Hands      map[int]string      `json:"hands,omitempty"` // seat -> hand description
	Cards      map[int][]deck.Card `json:"cards,omitempty"` // seat -> hole cards shown
	Layers     []LayerResult       `json:"layers,omitempty"`
	Unclaimed  int                 `json:"unclaimed,omitempty"`
}

// Uncontested returns true if the pot was won without showing cards
func (r *ShowdownResult) Uncontested() bool {
	return len(r.Cards) == 0
}

// ConductShowdown awards the pot and finishes the hand. A lone remaining seat
// takes the whole pot. Otherwise every remaining hand is evaluated and each
// pot layer goes to the best hand eligible for it.
func (e *Engine) ConductShowdown() (*ShowdownResult, error) {
	if e.phase != Showdown {
		return nil, fmt.Errorf("%w: phase is %s", ErrNotShowdown, e.phase)
	}

	result := &ShowdownResult{
		HandNumber: e.handNumber,
		Board:      slices.Clone(e.community),
		Awards:     make(map[int]int),
		Hands:      make(map[int]string),
		Cards:      make(map[int][]deck.Card),
	}

	var remaining []*Player
	for _, p := range e.players {
		if p.IsInHand() {
			remaining = append(remaining, p)
		}
	}

	switch len(remaining) {
	case 0:
		e.logger.Error("Showdown with no remaining players", "hand", e.handNumber, "pot", e.pot)
		e.recordShowdown("Showdown: no remaining players")

	case 1:
		winner := remaining[0]
		amount := e.pot
		winner.Chips += amount
		e.pot = 0
		result.Winners = []int{winner.ID}
		result.Awards[winner.ID] = amount
		e.recordShowdown("Showdown: Player %d won %d", winner.ID, amount)

	default:
		e.awardContested(remaining, result)
	}

	e.phase = Finished
	e.currentPlayer = -1
	e.roundComplete = true

	e.logger.Info("Hand complete",
		"hand", e.handNumber,
		"winners", result.Winners,
		"awards", result.Awards)
	return result, nil
}

func (e *Engine) awardContested(remaining []*Player, result *ShowdownResult) {
	hands := make(map[int]evaluator.HandResult, len(remaining))
	var best evaluator.HandResult
	for i, p := range remaining {
		h := evaluator.Evaluate(p.HoleCards, e.community)
		hands[p.ID] = h
		result.Hands[p.ID] = h.String()
		result.Cards[p.ID] = slices.Clone(p.HoleCards)
		e.recordShowdown("Showdown: Player %d hand=%s cards=%s", p.ID, h, deck.FormatCards(p.HoleCards))

		switch {
		case i == 0 || h.Beats(best):
			best = h
			result.Winners = []int{p.ID}
		case h.Ties(best):
			result.Winners = append(result.Winners, p.ID)
		}
	}

	contributions := make(map[int]int)
	for _, p := range e.players {
		if p.TotalBet > 0 {
			contributions[p.ID] = p.TotalBet
		}
	}

	alloc := AllocatePots(contributions, hands)
	for i, layer := range alloc.Layers {
		if len(layer.Winners) == 0 {
			e.logger.Error("Pot layer left unawarded",
				"hand", e.handNumber,
				"layer", i+1,
				"amount", layer.Amount,
				"contributors", layer.Contributors,
				"error", ErrNoEligibleWinners)
			e.recordShowdown("Side pot layer %d: amount=%d, no eligible winners", i+1, layer.Amount)
			continue
		}
		e.recordShowdown("Side pot layer %d: amount=%d, winners=%s best_hand=%s",
			i+1, layer.Amount, formatSeats(layer.Winners), layer.Best)
	}

	for _, seat := range slices.Sorted(maps.Keys(alloc.Awards)) {
		amount := alloc.Awards[seat]
		e.players[seat].Chips += amount
		e.pot -= amount
		result.Awards[seat] = amount
	}
	result.Layers = alloc.Layers
	result.Unclaimed = alloc.Unclaimed
}

func formatSeats(seats []int) string {
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
