package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem/internal/deck"
)

// EntryKind classifies a hand history entry
type EntryKind int

const (
	EntrySmallBlind EntryKind = iota
	EntryBigBlind
	EntryAction
	EntryStreet
	EntryShowdown
)

// HistoryEntry is one event of the hand. String renders the line format used
// in views and logs, e.g. "Player 2 raised to 60".
type HistoryEntry struct {
	Kind   EntryKind
	Phase  Phase
	Seat   int
	Action ActionKind
	Amount int
	Cards  []deck.Card
	Text   string // pre-rendered showdown line
}

func (h HistoryEntry) String() string {
	switch h.Kind {
	case EntrySmallBlind:
		return fmt.Sprintf("Player %d posted small blind %d", h.Seat, h.Amount)
	case EntryBigBlind:
		return fmt.Sprintf("Player %d posted big blind %d", h.Seat, h.Amount)
	case EntryStreet:
		name := "Flop"
		switch h.Phase {
		case Turn:
			name = "Turn"
		case River:
			name = "River"
		}
		return fmt.Sprintf("%s dealt: %s", name, deck.FormatCards(h.Cards))
	case EntryShowdown:
		return h.Text
	}

	switch h.Action {
	case Fold:
		return fmt.Sprintf("Player %d folded", h.Seat)
	case Check:
		return fmt.Sprintf("Player %d checked", h.Seat)
	case Call:
		return fmt.Sprintf("Player %d called %d", h.Seat, h.Amount)
	case Raise:
		return fmt.Sprintf("Player %d raised to %d", h.Seat, h.Amount)
	case AllIn:
		return fmt.Sprintf("Player %d went all-in with %d", h.Seat, h.Amount)
	}
	return fmt.Sprintf("Player %d %s", h.Seat, h.Action)
}

func (e *Engine) record(entry HistoryEntry) {
	e.history = append(e.history, entry)
}

func (e *Engine) recordShowdown(format string, args ...any) {
	e.record(HistoryEntry{Kind: EntryShowdown, Phase: Showdown, Seat: -1, Text: fmt.Sprintf(format, args...)})
}

// History returns a copy of the current hand's entries in order
func (e *Engine) History() []HistoryEntry {
	return slices.Clone(e.history)
}

// HistoryLines renders the most recent limit entries; limit <= 0 returns all
func (e *Engine) HistoryLines(limit int) []string {
	entries := e.history
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	lines := make([]string, len(entries))
	for i, h := range entries {
		lines[i] = h.String()
	}
	return lines
}
