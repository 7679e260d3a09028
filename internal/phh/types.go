// Package phh writes finished hands in the Poker Hand History format, a TOML
// dialect. Players are named p1..pN by seat order.
package phh

import "time"

// Variant is the PHH code for No-Limit Texas Hold'em
const Variant = "NT"

// HandHistory is a single hand in PHH form
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// SetTimestamp fills the PHH date and time fields from t in UTC
func (h *HandHistory) SetTimestamp(t time.Time) {
	t = t.UTC()
	h.Timestamp = t
	h.Time = t.Format(time.TimeOnly)
	h.TimeZone = "UTC"
	h.Day = t.Day()
	h.Month = int(t.Month())
	h.Year = t.Year()
}
