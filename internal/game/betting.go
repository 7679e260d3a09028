package game

import (
	"fmt"
	"strings"
)

// Phase is the stage of a hand
type Phase int

const (
	Preflop Phase = iota
	Flop
	Turn
	River
	Showdown
	Finished
)

var phaseNames = [...]string{"preflop", "flop", "turn", "river", "showdown", "finished"}

func (p Phase) String() string {
	if p < Preflop || p > Finished {
		return "unknown"
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// IsBetting returns true for the four streets that take betting actions
func (p Phase) IsBetting() bool {
	return p >= Preflop && p <= River
}

// ActionKind is a betting action
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
	AllIn
)

var actionNames = [...]string{"fold", "check", "call", "raise", "allin"}

func (a ActionKind) String() string {
	if a < Fold || a > AllIn {
		return "unknown"
	}
	return actionNames[a]
}

// MarshalText encodes the action by name
func (a ActionKind) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name, see ParseActionKind
func (a *ActionKind) UnmarshalText(text []byte) error {
	kind, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*a = kind
	return nil
}

// ParseActionKind accepts the action names case-insensitively, plus the
// common spellings "all-in", "all_in", "bet" and "shove".
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold", "f":
		return Fold, nil
	case "check", "x":
		return Check, nil
	case "call", "c":
		return Call, nil
	case "raise", "bet", "r":
		return Raise, nil
	case "allin", "all-in", "all_in", "shove":
		return AllIn, nil
	}
	return Fold, fmt.Errorf("unknown action %q", s)
}

// LegalAction is one action a seat may take. Amount is the chips needed to
// call, the minimum total bet to raise to, or the whole stack for an all-in.
type LegalAction struct {
	Kind   ActionKind `json:"kind"`
	Amount int        `json:"amount,omitempty"`
}

func (l LegalAction) String() string {
	switch l.Kind {
	case Call:
		return fmt.Sprintf("call (%d)", l.Amount)
	case Raise:
		return fmt.Sprintf("raise (min %d)", l.Amount)
	case AllIn:
		return fmt.Sprintf("all-in (%d)", l.Amount)
	default:
		return l.Kind.String()
	}
}

// Decision is what a decision maker returns for its turn. For a raise, Amount
// is the increment over the table's current bet.
type Decision struct {
	Action    ActionKind `json:"action"`
	Amount    int        `json:"amount,omitempty"`
	Reasoning string     `json:"reasoning,omitempty"`
}

// ToCall returns the chips the seat must add to match the current bet
func (e *Engine) ToCall(seat int) int {
	p := e.account(seat)
	if p == nil {
		return 0
	}
	return max(0, e.currentBet-p.CurrentBet)
}

// minRaiseTotal is the smallest total bet a raise may make this round
func (e *Engine) minRaiseTotal() int {
	if e.currentBet == 0 {
		return e.cfg.BigBlind
	}
	return e.currentBet + e.cfg.BigBlind
}

// LegalActions returns the actions available to seat. The list is empty when
// the seat cannot act or the betting round is over. Fold is always offered to
// an Active seat.
func (e *Engine) LegalActions(seat int) []LegalAction {
	p := e.account(seat)
	if p == nil || !p.CanAct() || !e.phase.IsBetting() || e.roundComplete {
		return nil
	}

	toCall := e.ToCall(seat)
	actions := []LegalAction{{Kind: Fold}}

	if toCall == 0 {
		actions = append(actions, LegalAction{Kind: Check})
	} else if p.Chips >= toCall {
		actions = append(actions, LegalAction{Kind: Call, Amount: toCall})
	}

	// The big blind may raise an unraised pot even though it owes nothing
	bbOption := e.phase == Preflop && p.IsBigBlind && toCall == 0 &&
		e.currentBet == e.cfg.BigBlind && !e.betOrRaise
	canRaise := e.currentBet == 0 || toCall > 0 || bbOption

	minTotal := e.minRaiseTotal()
	if canRaise && p.Chips >= minTotal && toCall < p.Chips {
		actions = append(actions, LegalAction{Kind: Raise, Amount: minTotal})
	}

	if p.Chips > 0 && (canRaise || toCall > p.Chips) {
		actions = append(actions, LegalAction{Kind: AllIn, Amount: p.Chips})
	}

	return actions
}

func hasAction(actions []LegalAction, kind ActionKind) bool {
	for _, a := range actions {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// ProcessAction applies one action for the current seat. For Raise, amount is
// the increment over the current table bet and must be at least the big blind;
// the seat puts in its call plus amount. Amount is ignored for other actions.
// A Call with nothing owed is treated as a Check. Errors wrap ErrIllegalAction
// and leave the engine unchanged.
func (e *Engine) ProcessAction(seat int, kind ActionKind, amount int) error {
	if !e.phase.IsBetting() {
		return illegal("no betting during %s", e.phase)
	}
	if e.roundComplete {
		return illegal("%s betting round is complete", e.phase)
	}
	p := e.account(seat)
	if p == nil {
		return illegal("no seat %d", seat)
	}
	if seat != e.currentPlayer {
		return illegal("seat %d acted out of turn, waiting on seat %d", seat, e.currentPlayer)
	}
	if !p.CanAct() {
		return illegal("seat %d is %s", seat, p.Status)
	}

	toCall := e.ToCall(seat)
	if kind == Call && toCall == 0 {
		kind = Check
	}

	legal := e.LegalActions(seat)
	if !hasAction(legal, kind) {
		return illegal("seat %d cannot %s, legal actions are %v", seat, kind, legal)
	}

	entry := HistoryEntry{Kind: EntryAction, Phase: e.phase, Seat: seat, Action: kind}

	switch kind {
	case Fold:
		p.Fold()

	case Check:

	case Call:
		paid := p.Bet(toCall)
		e.pot += paid
		entry.Amount = paid

	case Raise:
		if amount < e.cfg.BigBlind {
			return illegal("raise of %d is below the big blind %d", amount, e.cfg.BigBlind)
		}
		total := toCall + amount
		if total > p.Chips {
			return illegal("raise needs %d chips, seat %d has %d", total, seat, p.Chips)
		}
		e.pot += p.Bet(total)
		e.reopen(seat)
		entry.Amount = p.CurrentBet

	case AllIn:
		paid := p.Bet(p.Chips)
		e.pot += paid
		if p.CurrentBet > e.currentBet {
			e.reopen(seat)
		}
		entry.Amount = paid
	}

	e.record(entry)
	e.logger.Debug("Action processed", "seat", seat, "action", kind, "amount", entry.Amount, "pot", e.pot)

	e.acted[seat] = true
	e.currentPlayer = e.nextActive(seat)
	e.updateRoundComplete()
	return nil
}

// reopen makes seat the aggressor: the table bet rises to its bet and every
// other seat must act again.
func (e *Engine) reopen(seat int) {
	e.currentBet = e.players[seat].CurrentBet
	e.lastRaiser = seat
	e.betOrRaise = true
	for i := range e.acted {
		e.acted[i] = false
	}
}

// nextActive returns the first Active seat clockwise after from, which may be
// from itself, or -1 if nobody can act.
func (e *Engine) nextActive(from int) int {
	n := len(e.players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if e.players[idx].CanAct() {
			return idx
		}
	}
	return -1
}

// IsRoundComplete returns true once no further betting action is possible in
// the current round.
func (e *Engine) IsRoundComplete() bool {
	return e.roundComplete
}

// updateRoundComplete recomputes whether the round is over. It is over when at
// most one seat still contests the pot, when nobody can act, when a lone
// Active seat has matched the bet, or when every Active seat has matched the
// bet and acted since the last raise.
func (e *Engine) updateRoundComplete() {
	contenders, active := 0, 0
	for _, p := range e.players {
		if p.IsInHand() {
			contenders++
		}
		if p.CanAct() {
			active++
		}
	}

	switch {
	case !e.phase.IsBetting():
		e.roundComplete = true
		return
	case contenders <= 1 || active == 0:
		e.roundComplete = true
		return
	}

	for _, p := range e.players {
		if p.CanAct() && p.CurrentBet != e.currentBet {
			e.roundComplete = false
			return
		}
	}
	if active == 1 {
		e.roundComplete = true
		return
	}

	for _, p := range e.players {
		if p.CanAct() && !e.acted[p.ID] {
			e.roundComplete = false
			return
		}
	}
	e.roundComplete = true
}
