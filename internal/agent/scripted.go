package agent

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/lox/holdem/internal/game"
)

// ErrScriptExhausted is returned once a Scripted agent has no decisions left
var ErrScriptExhausted = errors.New("script exhausted")

// Scripted replays a fixed list of decisions in order, one per turn
type Scripted struct {
	mu        sync.Mutex
	decisions []game.Decision
	next      int
}

// NewScripted creates an agent that plays decisions in order
func NewScripted(decisions ...game.Decision) *Scripted {
	return &Scripted{decisions: decisions}
}

// ParseScript reads a comma separated script such as "call, raise 40, fold".
// A raise takes the increment over the current bet.
func ParseScript(script string) ([]game.Decision, error) {
	var decisions []game.Decision
	for i, step := range strings.Split(script, ",") {
		fields := strings.Fields(step)
		if len(fields) == 0 {
			continue
		}
		kind, err := game.ParseActionKind(fields[0])
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		d := game.Decision{Action: kind, Reasoning: "scripted"}
		switch {
		case kind == game.Raise && len(fields) != 2:
			return nil, fmt.Errorf("step %d: raise needs an amount", i+1)
		case kind == game.Raise:
			d.Amount, err = strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("step %d: bad raise amount %q", i+1, fields[1])
			}
		case len(fields) > 1:
			return nil, fmt.Errorf("step %d: %s takes no amount", i+1, kind)
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

func (s *Scripted) Decide(_ context.Context, _ game.GameView) (game.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.decisions) {
		return game.Decision{}, ErrScriptExhausted
	}
	d := s.decisions[s.next]
	s.next++
	return d, nil
}

// Remaining returns the number of unplayed decisions
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decisions) - s.next
}
