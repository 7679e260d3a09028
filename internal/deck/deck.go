package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmptyDeck is returned when a card is requested from an exhausted deck.
// It indicates a dealing defect; a single hand with ten seats uses at most 28 cards.
var ErrEmptyDeck = errors.New("deck is empty")

// Size is the number of cards in a standard deck.
const Size = 52

// Deck represents a standard 52-card deck dealt from the top
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full deck using rng for shuffling. The deck is not shuffled
// until Reset is called.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
}

// Reset repopulates all 52 cards and shuffles them.
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

// Shuffle randomizes the remaining cards with a Fisher-Yates pass over the injected RNG
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// DealCard removes and returns the top card.
func (d *Deck) DealCard() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Stacked deals a fixed sequence of cards. Reset rewinds to the first card
// instead of shuffling, which makes hands exactly reproducible.
type Stacked struct {
	cards []Card
	next  int
}

// NewStacked creates a deck that deals cards in the given order.
func NewStacked(cards ...Card) *Stacked {
	return &Stacked{cards: append([]Card(nil), cards...)}
}

// Reset rewinds the deck.
func (s *Stacked) Reset() {
	s.next = 0
}

// DealCard returns the next card in the stacked order.
func (s *Stacked) DealCard() (Card, error) {
	if s.next >= len(s.cards) {
		return Card{}, ErrEmptyDeck
	}
	c := s.cards[s.next]
	s.next++
	return c, nil
}

// Remaining returns the number of undealt cards
func (s *Stacked) Remaining() int {
	return len(s.cards) - s.next
}
