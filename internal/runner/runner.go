// Package runner hosts a table: it asks each seat's agent for a decision,
// enforces the decision timeout and plays hands through the engine until the
// table breaks or a hand limit is reached.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/agent"
	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
)

// ErrTableBroken is returned when fewer than two seats have chips left
var ErrTableBroken = errors.New("fewer than two players have chips")

const defaultHistoryLimit = 20

// SeatResult is one seat's outcome for a hand
type SeatResult struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	StartChips  int         `json:"start_chips"`
	EndChips    int         `json:"end_chips"`
	HoleCards   []deck.Card `json:"hole_cards,omitempty"`
	Contributed int         `json:"contributed"`
	Blind       int         `json:"blind,omitempty"`
	FinalStatus game.Status `json:"final_status"`
}

// Net is the chips won or lost in the hand
func (s SeatResult) Net() int {
	return s.EndChips - s.StartChips
}

// HandSummary records a completed hand
type HandSummary struct {
	HandNumber int                  `json:"hand_number"`
	Button     int                  `json:"button"`
	SmallBlind int                  `json:"small_blind"`
	BigBlind   int                  `json:"big_blind"`
	Seats      []SeatResult         `json:"seats"`
	Board      []deck.Card          `json:"board"`
	History    []game.HistoryEntry  `json:"-"`
	Result     *game.ShowdownResult `json:"result"`
	Fallbacks  int                  `json:"fallbacks"`
	StartedAt  time.Time            `json:"started_at"`
	Duration   time.Duration        `json:"duration"`
}

// Lines renders the hand history
func (h *HandSummary) Lines() []string {
	lines := make([]string, len(h.History))
	for i, entry := range h.History {
		lines[i] = entry.String()
	}
	return lines
}

// Observer is notified after every completed hand
type Observer func(ctx context.Context, hand *HandSummary) error

// Runner drives one Engine with one Agent per seat
type Runner struct {
	engine       *game.Engine
	agents       []agent.Agent
	logger       *log.Logger
	clock        quartz.Clock
	timeout      time.Duration
	historyLimit int
	observers    []Observer
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock sets the clock used for decision timeouts and hand timing
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithDecisionTimeout bounds each agent decision. Zero disables the timeout.
func WithDecisionTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// WithHistoryLimit sets how many history lines agents see
func WithHistoryLimit(limit int) Option {
	return func(r *Runner) {
		r.historyLimit = limit
	}
}

// WithObserver registers a callback for completed hands
func WithObserver(obs Observer) Option {
	return func(r *Runner) {
		r.observers = append(r.observers, obs)
	}
}

// New creates a runner. agents is indexed by seat.
func New(engine *game.Engine, agents []agent.Agent, opts ...Option) (*Runner, error) {
	if len(agents) != len(engine.Players()) {
		return nil, fmt.Errorf("have %d agents for %d seats", len(agents), len(engine.Players()))
	}
	for i, a := range agents {
		if a == nil {
			return nil, fmt.Errorf("seat %d has no agent", i)
		}
	}

	r := &Runner{
		engine:       engine,
		agents:       agents,
		logger:       log.New(io.Discard),
		clock:        quartz.NewReal(),
		historyLimit: defaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("runner")
	return r, nil
}

// Run plays hands until the table breaks, maxHands have been played
// (maxHands <= 0 means no limit) or ctx is cancelled. It returns the number of
// hands played.
func (r *Runner) Run(ctx context.Context, maxHands int) (int, error) {
	played := 0
	for maxHands <= 0 || played < maxHands {
		if err := ctx.Err(); err != nil {
			return played, err
		}
		if _, err := r.PlayHand(ctx); err != nil {
			if errors.Is(err, ErrTableBroken) {
				r.logger.Info("Table broken", "hands", played)
				return played, nil
			}
			return played, err
		}
		played++
	}
	return played, nil
}

// PlayHand plays one complete hand
func (r *Runner) PlayHand(ctx context.Context) (*HandSummary, error) {
	e := r.engine
	if e.GameOver() {
		return nil, ErrTableBroken
	}

	start := make([]int, len(e.Players()))
	for i, p := range e.Players() {
		start[i] = p.Chips
	}
	startedAt := r.clock.Now()

	if err := e.StartNewHand(); err != nil {
		return nil, fmt.Errorf("start hand: %w", err)
	}
	if e.Phase() == game.Finished {
		return nil, ErrTableBroken
	}

	fallbacks := 0
	for e.Phase().IsBetting() {
		for !e.IsRoundComplete() {
			fellBack, err := r.takeTurn(ctx, e.CurrentPlayer())
			if err != nil {
				return nil, err
			}
			if fellBack {
				fallbacks++
			}
		}
		if _, err := e.AdvanceToNextPhase(); err != nil {
			return nil, fmt.Errorf("advance from %s: %w", e.Phase(), err)
		}
	}

	result, err := e.ConductShowdown()
	if err != nil {
		return nil, fmt.Errorf("showdown: %w", err)
	}

	summary := r.summarise(start, result, fallbacks)
	summary.StartedAt = startedAt
	summary.Duration = r.clock.Since(startedAt)

	r.logger.Info("Hand finished",
		"hand", summary.HandNumber,
		"winners", result.Winners,
		"pot", potSize(summary),
		"fallbacks", fallbacks)

	for _, obs := range r.observers {
		if err := obs(ctx, summary); err != nil {
			return summary, fmt.Errorf("hand %d observer: %w", summary.HandNumber, err)
		}
	}
	return summary, nil
}

// takeTurn asks the seat's agent and applies its decision. Any failure,
// whether an error, a timeout or an illegal decision, folds the seat and
// reports fellBack. Only cancellation of ctx aborts the hand.
func (r *Runner) takeTurn(ctx context.Context, seat int) (fellBack bool, err error) {
	e := r.engine
	view := e.View(seat, r.historyLimit)
	logger := r.logger.With("hand", view.HandNumber, "seat", seat, "phase", view.Phase)

	d, err := r.decide(ctx, seat, view)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		logger.Warn("Agent failed, folding", "error", err)
		return true, r.fold(seat)
	}

	if err := e.ProcessAction(seat, d.Action, d.Amount); err != nil {
		logger.Warn("Illegal decision, folding",
			"action", d.Action,
			"amount", d.Amount,
			"error", err)
		return true, r.fold(seat)
	}

	logger.Debug("Decision applied", "action", d.Action, "amount", d.Amount, "reasoning", d.Reasoning)
	return false, nil
}

func (r *Runner) fold(seat int) error {
	if err := r.engine.ProcessAction(seat, game.Fold, 0); err != nil {
		return fmt.Errorf("fold seat %d: %w", seat, err)
	}
	return nil
}

type decision struct {
	d   game.Decision
	err error
}

// decide runs the agent with the decision timeout applied
func (r *Runner) decide(ctx context.Context, seat int, view game.GameView) (game.Decision, error) {
	dctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timedOut := make(chan struct{})
	if r.timeout > 0 {
		timer := r.clock.AfterFunc(r.timeout, func() {
			close(timedOut)
			cancel()
		})
		defer timer.Stop()
	}

	done := make(chan decision, 1)
	go func() {
		d, err := r.agents[seat].Decide(dctx, view)
		done <- decision{d: d, err: err}
	}()

	select {
	case res := <-done:
		return res.d, res.err
	case <-timedOut:
		return game.Decision{}, fmt.Errorf("no decision within %s", r.timeout)
	case <-ctx.Done():
		return game.Decision{}, ctx.Err()
	}
}

func (r *Runner) summarise(start []int, result *game.ShowdownResult, fallbacks int) *HandSummary {
	e := r.engine
	cfg := e.Config()
	summary := &HandSummary{
		HandNumber: e.HandNumber(),
		Button:     e.Button(),
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		Board:      e.Community(),
		History:    e.History(),
		Result:     result,
		Fallbacks:  fallbacks,
	}

	blinds := make(map[int]int)
	for _, h := range summary.History {
		if h.Kind == game.EntrySmallBlind || h.Kind == game.EntryBigBlind {
			blinds[h.Seat] = h.Amount
		}
	}

	for i, p := range e.Players() {
		summary.Seats = append(summary.Seats, SeatResult{
			ID:          p.ID,
			Name:        p.Name,
			StartChips:  start[i],
			EndChips:    p.Chips,
			HoleCards:   slices.Clone(p.HoleCards),
			Contributed: p.TotalBet,
			Blind:       blinds[p.ID],
			FinalStatus: p.Status,
		})
	}
	return summary
}

func potSize(h *HandSummary) int {
	total := 0
	for _, s := range h.Seats {
		total += s.Contributed
	}
	return total
}
