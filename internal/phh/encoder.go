package phh

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Encode writes the hand history to w in PHH TOML format
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// Decode reads a hand history written by Encode
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}
	return &hand, nil
}

func player(seat int) string {
	return fmt.Sprintf("p%d", seat+1)
}

// FormatFold renders a fold
func FormatFold(seat int) string { return player(seat) + " f" }

// FormatCheckCall renders a check or call
func FormatCheckCall(seat int) string { return player(seat) + " cc" }

// FormatBetRaise renders a bet or raise to total chips for the street
func FormatBetRaise(seat, total int) string { return fmt.Sprintf("%s cbr %d", player(seat), total) }
