package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is returned when an action is out of turn, from a seat that
	// cannot act, or not in the current legal set. The engine state is unchanged.
	ErrIllegalAction = errors.New("illegal action")

	// ErrNoEligibleWinners marks a pot layer whose contributors all folded.
	// It indicates an accounting bug upstream and is logged, never swallowed.
	ErrNoEligibleWinners = errors.New("pot layer has no eligible winners")

	// ErrNotShowdown is returned by ConductShowdown outside the showdown phase.
	ErrNotShowdown = errors.New("hand is not at showdown")

	// ErrInvalidConfig is returned by NewEngine for unusable table settings.
	ErrInvalidConfig = errors.New("invalid table configuration")
)

func illegal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalAction, fmt.Sprintf(format, args...))
}
