// Package agent provides the decision makers that sit at a table. An Agent
// sees only the GameView for its own seat and answers with a Decision; the
// host validates every answer against the engine.
package agent

import (
	"context"
	"errors"
	"slices"

	"github.com/lox/holdem/internal/game"
)

// Agent decides an action for one seat
type Agent interface {
	Decide(ctx context.Context, view game.GameView) (game.Decision, error)
}

// Func adapts a plain function to the Agent interface
type Func func(ctx context.Context, view game.GameView) (game.Decision, error)

func (f Func) Decide(ctx context.Context, view game.GameView) (game.Decision, error) {
	return f(ctx, view)
}

// Agent kinds accepted in table configuration
const (
	KindRandom   = "random"
	KindCalling  = "calling"
	KindFolding  = "folding"
	KindScripted = "scripted"
	KindRemote   = "remote"
)

// Kinds lists every known agent kind
var Kinds = []string{KindRandom, KindCalling, KindFolding, KindScripted, KindRemote}

// IsKnownKind returns true if kind names a supported agent
func IsKnownKind(kind string) bool {
	return slices.Contains(Kinds, kind)
}

// ErrNoLegalActions is returned when asked to decide for a seat that cannot act
var ErrNoLegalActions = errors.New("no legal actions")

// choose returns a decision for the first preferred kind that is legal
func choose(view game.GameView, reasoning string, preferred ...game.ActionKind) (game.Decision, bool) {
	for _, kind := range preferred {
		if _, ok := view.Legal(kind); ok {
			return game.Decision{Action: kind, Reasoning: reasoning}, true
		}
	}
	return game.Decision{}, false
}
