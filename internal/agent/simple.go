package agent

import (
	"context"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/game"
)

// Random picks uniformly among the legal actions, and a uniform raise size
// between the minimum raise and its whole stack.
type Random struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a Random agent
func NewRandom(rng *rand.Rand, logger *log.Logger) *Random {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Random{rng: rng, logger: logger}
}

func (r *Random) Decide(_ context.Context, view game.GameView) (game.Decision, error) {
	if len(view.LegalActions) == 0 {
		return game.Decision{}, ErrNoLegalActions
	}

	choice := view.LegalActions[r.rng.IntN(len(view.LegalActions))]
	d := game.Decision{Action: choice.Kind, Reasoning: "random action"}

	if choice.Kind == game.Raise {
		// Amount is the increment over the current bet
		minInc := view.RaiseTo(choice.Amount)
		maxInc := view.Chips - view.ToCall
		d.Amount = minInc
		if maxInc > minInc {
			d.Amount += r.rng.IntN(maxInc - minInc + 1)
		}
	}

	r.logger.Debug("Random decision", "seat", view.Seat, "action", d.Action, "amount", d.Amount)
	return d, nil
}

// Calling checks or calls every bet and never raises. Facing a bet it cannot
// cover it goes all-in.
type Calling struct{}

func (Calling) Decide(_ context.Context, view game.GameView) (game.Decision, error) {
	if d, ok := choose(view, "calling station", game.Check, game.Call, game.AllIn, game.Fold); ok {
		return d, nil
	}
	return game.Decision{}, ErrNoLegalActions
}

// Folding checks when it can and folds otherwise
type Folding struct{}

func (Folding) Decide(_ context.Context, view game.GameView) (game.Decision, error) {
	if d, ok := choose(view, "check or fold", game.Check, game.Fold); ok {
		return d, nil
	}
	return game.Decision{}, ErrNoLegalActions
}
