package game

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/deck"
)

// CardSource supplies cards to a hand. Reset is called once at the start of
// every hand.
type CardSource interface {
	Reset()
	DealCard() (deck.Card, error)
}

// Option configures an Engine
type Option func(*options)

type options struct {
	logger *log.Logger
	cards  CardSource
	rng    *rand.Rand
	button int
}

// WithLogger sets the logger used for hand progress and anomalies
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCardSource replaces the shuffled deck, e.g. with a deck.Stacked for
// reproducible hands.
func WithCardSource(cards CardSource) Option {
	return func(o *options) {
		o.cards = cards
	}
}

// WithRNG shuffles the default deck with rng
func WithRNG(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithButton places the dealer button for the first hand. If that seat is
// busted the button moves to the next seat with chips.
func WithButton(seat int) Option {
	return func(o *options) {
		o.button = seat
	}
}
