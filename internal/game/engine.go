package game

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/randutil"
)

const (
	MinSeats = 2
	MaxSeats = 10
)

// Config holds the table stakes
type Config struct {
	SmallBlind int
	BigBlind   int
}

// Validate checks the stakes are usable
func (c Config) Validate() error {
	if c.SmallBlind <= 0 {
		return fmt.Errorf("%w: small blind must be positive, got %d", ErrInvalidConfig, c.SmallBlind)
	}
	if c.BigBlind < c.SmallBlind {
		return fmt.Errorf("%w: big blind %d is below small blind %d", ErrInvalidConfig, c.BigBlind, c.SmallBlind)
	}
	return nil
}

// Seat describes a player joining the table
type Seat struct {
	Name  string
	Chips int
}

// Engine runs hands for one table. It owns the seat accounts for the life of
// the table; each hand's state is rebuilt by StartNewHand.
type Engine struct {
	cfg     Config
	players []*Player
	cards   CardSource
	logger  *log.Logger

	handNumber int
	phase      Phase
	community  []deck.Card
	pot        int
	currentBet int

	button        int
	started       bool
	currentPlayer int
	lastRaiser    int
	betOrRaise    bool
	acted         []bool
	roundComplete bool

	history []HistoryEntry
}

// NewEngine seats players in order; seat ids are their indices. No hand is in
// progress until StartNewHand is called.
func NewEngine(cfg Config, seats []Seat, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(seats) < MinSeats || len(seats) > MaxSeats {
		return nil, fmt.Errorf("%w: need %d-%d seats, got %d", ErrInvalidConfig, MinSeats, MaxSeats, len(seats))
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.cards == nil {
		rng := o.rng
		if rng == nil {
			rng = randutil.New(randutil.Seed())
		}
		o.cards = deck.New(rng)
	}
	if o.button < 0 || o.button >= len(seats) {
		return nil, fmt.Errorf("%w: button seat %d out of range", ErrInvalidConfig, o.button)
	}

	players := make([]*Player, len(seats))
	for i, s := range seats {
		if s.Chips < 0 {
			return nil, fmt.Errorf("%w: seat %d has negative chips", ErrInvalidConfig, i)
		}
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i)
		}
		players[i] = NewPlayer(i, name, s.Chips)
	}

	return &Engine{
		cfg:           cfg,
		players:       players,
		cards:         o.cards,
		logger:        o.logger,
		phase:         Finished,
		button:        o.button,
		currentPlayer: -1,
		lastRaiser:    -1,
		acted:         make([]bool, len(players)),
		roundComplete: true,
	}, nil
}

// StartNewHand resets per-hand state, moves the button, posts blinds, deals
// hole cards and hands the action to the first seat. With fewer than two
// seats holding chips the hand is not started: the phase becomes Finished
// and HandNumber is left unchanged, so it always counts hands actually dealt.
func (e *Engine) StartNewHand() error {
	for _, p := range e.players {
		p.ResetForNewHand()
	}
	e.community = nil
	e.pot = 0
	e.currentBet = 0
	e.lastRaiser = -1
	e.betOrRaise = false
	e.history = nil
	clear(e.acted)

	live := e.liveSeats()
	if len(live) < MinSeats {
		e.phase = Finished
		e.currentPlayer = -1
		e.roundComplete = true
		e.logger.Info("Not enough players to start a hand", "players", len(live))
		return nil
	}

	e.handNumber++
	e.phase = Preflop
	e.cards.Reset()
	e.moveButton(live)
	e.postBlinds(live)

	if err := e.dealHoleCards(live); err != nil {
		return fmt.Errorf("deal hole cards: %w", err)
	}

	e.currentPlayer = e.firstPreflopActor(live)
	e.updateRoundComplete()

	e.logger.Info("Hand started",
		"hand", e.handNumber,
		"button", e.button,
		"players", len(live),
		"pot", e.pot)
	return nil
}

func (e *Engine) liveSeats() []int {
	var live []int
	for _, p := range e.players {
		if p.Status != Busted {
			live = append(live, p.ID)
		}
	}
	return live
}

// moveButton advances the button to the next seat with chips. The first hand
// uses the configured seat, or the next live one after it.
func (e *Engine) moveButton(live []int) {
	n := len(e.players)
	start := 1
	if !e.started {
		start = 0
		e.started = true
	}
	for i := start; i < n+start; i++ {
		idx := (e.button + i) % n
		if slices.Contains(live, idx) {
			e.button = idx
			break
		}
	}
	e.players[e.button].IsDealer = true
}

// blindSeats returns the small and big blind seats. Heads-up the button posts
// the small blind.
func (e *Engine) blindSeats(live []int) (int, int) {
	pos := slices.Index(live, e.button)
	if len(live) == 2 {
		return live[pos], live[(pos+1)%2]
	}
	return live[(pos+1)%len(live)], live[(pos+2)%len(live)]
}

func (e *Engine) postBlinds(live []int) {
	sb, bb := e.blindSeats(live)

	small := e.players[sb]
	small.IsSmallBlind = true
	paid := small.Bet(e.cfg.SmallBlind)
	e.pot += paid
	e.record(HistoryEntry{Kind: EntrySmallBlind, Phase: Preflop, Seat: sb, Amount: paid})

	big := e.players[bb]
	big.IsBigBlind = true
	paid = big.Bet(e.cfg.BigBlind)
	e.pot += paid
	e.record(HistoryEntry{Kind: EntryBigBlind, Phase: Preflop, Seat: bb, Amount: paid})

	e.currentBet = max(small.CurrentBet, big.CurrentBet)
}

// dealHoleCards deals one card at a time in two passes over the live seats
func (e *Engine) dealHoleCards(live []int) error {
	for range 2 {
		for _, seat := range live {
			card, err := e.cards.DealCard()
			if err != nil {
				return err
			}
			e.players[seat].HoleCards = append(e.players[seat].HoleCards, card)
		}
	}
	return nil
}

// firstPreflopActor is the button heads-up, otherwise the seat three places
// clockwise of the button. Seats that are already all-in are skipped.
func (e *Engine) firstPreflopActor(live []int) int {
	first := e.button
	if len(live) > 2 {
		pos := slices.Index(live, e.button)
		first = live[(pos+3)%len(live)]
	}
	if e.players[first].CanAct() {
		return first
	}
	return e.nextActive(first)
}

// AdvanceToNextPhase moves to the next street once the betting round is
// complete, dealing community cards and opening a new round. When at most one
// seat contests the pot the hand goes straight to Showdown. It returns false
// when the round is still open or the hand has no further streets.
func (e *Engine) AdvanceToNextPhase() (bool, error) {
	if !e.phase.IsBetting() || !e.roundComplete {
		return false, nil
	}

	if e.contenders() <= 1 {
		e.phase = Showdown
		e.currentPlayer = -1
		e.logger.Debug("Hand decided before showdown", "hand", e.handNumber)
		return true, nil
	}

	var (
		next  Phase
		count int
	)
	switch e.phase {
	case Preflop:
		next, count = Flop, 3
	case Flop:
		next, count = Turn, 1
	case Turn:
		next, count = River, 1
	case River:
		e.phase = Showdown
		e.currentPlayer = -1
		return true, nil
	}

	if err := e.dealCommunity(next, count); err != nil {
		return false, fmt.Errorf("deal %s: %w", next, err)
	}
	e.phase = next
	e.startBettingRound()

	e.logger.Debug("Street dealt",
		"phase", e.phase,
		"board", deck.FormatCards(e.community),
		"pot", e.pot)
	return true, nil
}

// dealCommunity burns one card then deals count cards to the board
func (e *Engine) dealCommunity(phase Phase, count int) error {
	if _, err := e.cards.DealCard(); err != nil {
		return err
	}
	dealt := make([]deck.Card, 0, count)
	for range count {
		card, err := e.cards.DealCard()
		if err != nil {
			return err
		}
		dealt = append(dealt, card)
	}
	e.community = append(e.community, dealt...)
	e.record(HistoryEntry{Kind: EntryStreet, Phase: phase, Seat: -1, Cards: dealt})
	return nil
}

// startBettingRound clears round bets and gives the action to the first
// Active seat after the button.
func (e *Engine) startBettingRound() {
	for _, p := range e.players {
		p.ResetForNewRound()
	}
	e.currentBet = 0
	e.lastRaiser = -1
	e.betOrRaise = false
	clear(e.acted)
	e.currentPlayer = e.nextActive(e.button)
	e.updateRoundComplete()
}

func (e *Engine) contenders() int {
	n := 0
	for _, p := range e.players {
		if p.IsInHand() {
			n++
		}
	}
	return n
}

func (e *Engine) account(seat int) *Player {
	if seat < 0 || seat >= len(e.players) {
		return nil
	}
	return e.players[seat]
}

// Player returns a copy of the seat account, or nil for an unknown seat.
// Changing the copy does not affect the table.
func (e *Engine) Player(seat int) *Player {
	if p := e.account(seat); p != nil {
		return p.clone()
	}
	return nil
}

// Players returns copies of the seat accounts in seat order
func (e *Engine) Players() []*Player {
	players := make([]*Player, len(e.players))
	for i, p := range e.players {
		players[i] = p.clone()
	}
	return players
}

func (e *Engine) Config() Config                { return e.cfg }
func (e *Engine) Phase() Phase                  { return e.phase }
func (e *Engine) Pot() int                      { return e.pot }
func (e *Engine) CurrentBet() int               { return e.currentBet }
func (e *Engine) Button() int                   { return e.button }
func (e *Engine) CurrentPlayer() int            { return e.currentPlayer }
func (e *Engine) LastRaiser() int               { return e.lastRaiser }
func (e *Engine) HandNumber() int               { return e.handNumber }
func (e *Engine) Community() []deck.Card        { return slices.Clone(e.community) }

// TotalChips is every chip at the table, stacks plus pot. It is constant for
// the life of the table.
func (e *Engine) TotalChips() int {
	total := e.pot
	for _, p := range e.players {
		total += p.Chips
	}
	return total
}

// GameOver returns true when fewer than two seats have chips
func (e *Engine) GameOver() bool {
	withChips := 0
	for _, p := range e.players {
		if p.Chips > 0 {
			withChips++
		}
	}
	return withChips < MinSeats
}
