package phh

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/agent"
	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/runner"
)

func TestEncodeHandHistory(t *testing.T) {
	t.Parallel()

	hand := &HandHistory{
		Variant:           Variant,
		Table:             "default",
		SeatCount:         3,
		Seats:             []int{1, 2, 3},
		Antes:             []int{0, 0, 0},
		BlindsOrStraddles: []int{1, 2, 0},
		MinBet:            2,
		StartingStacks:    []int{200, 200, 200},
		FinishingStacks:   []int{200, 200, 200},
		Winnings:          []int{0, 0, 0},
		Actions:           []string{"d dh p1 AhKh", "p1 cbr 6", "p2 f"},
		Players:           []string{"alice", "bob", "carol"},
		HandID:            "default-00042",
	}
	hand.SetTimestamp(time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, hand))

	want := "" +
		"variant = \"NT\"\n" +
		"table = \"default\"\n" +
		"seat_count = 3\n" +
		"seats = [1, 2, 3]\n" +
		"antes = [0, 0, 0]\n" +
		"blinds_or_straddles = [1, 2, 0]\n" +
		"min_bet = 2\n" +
		"starting_stacks = [200, 200, 200]\n" +
		"finishing_stacks = [200, 200, 200]\n" +
		"winnings = [0, 0, 0]\n" +
		"actions = [\"d dh p1 AhKh\", \"p1 cbr 6\", \"p2 f\"]\n" +
		"players = [\"alice\", \"bob\", \"carol\"]\n" +
		"hand = \"default-00042\"\n" +
		"time = \"15:22:00\"\n" +
		"time_zone = \"UTC\"\n" +
		"day = 14\n" +
		"month = 11\n" +
		"year = 2025\n"
	assert.Equal(t, want, buf.String())

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, hand.Actions, back.Actions)
	assert.Equal(t, hand.StartingStacks, back.StartingStacks)

	assert.Error(t, Encode(&buf, nil))
}

func scripted(t *testing.T, script string) agent.Agent {
	t.Helper()
	decisions, err := agent.ParseScript(script)
	require.NoError(t, err)
	return agent.NewScripted(decisions...)
}

func playScriptedHand(t *testing.T) *runner.HandSummary {
	t.Helper()

	cards := deck.MustParseCards("As Ks Qs Ah Kh Qh 2c 7d 8c 3s 2d 9h 2h 4c")
	e, err := game.NewEngine(game.Config{SmallBlind: 10, BigBlind: 20},
		[]game.Seat{{Name: "alice", Chips: 1000}, {Name: "bob", Chips: 1000}, {Name: "carol", Chips: 1000}},
		game.WithCardSource(deck.NewStacked(cards...)))
	require.NoError(t, err)

	r, err := runner.New(e, []agent.Agent{
		scripted(t, "raise 40, allin"),
		scripted(t, "fold"),
		scripted(t, "call, check, call"),
	})
	require.NoError(t, err)

	summary, err := r.PlayHand(context.Background())
	require.NoError(t, err)
	require.Zero(t, summary.Fallbacks)
	return summary
}

func TestFromHand(t *testing.T) {
	t.Parallel()

	hand := FromHand(playScriptedHand(t), "main")

	assert.Equal(t, "main-00001", hand.HandID)
	assert.Equal(t, 3, hand.SeatCount)
	assert.Equal(t, 20, hand.MinBet)
	assert.Equal(t, []int{0, 10, 20}, hand.BlindsOrStraddles)
	assert.Equal(t, []int{1000, 1000, 1000}, hand.StartingStacks)
	assert.Equal(t, []int{2010, 990, 0}, hand.FinishingStacks)
	assert.Equal(t, []int{2010, 0, 0}, hand.Winnings)
	assert.Equal(t, []string{"alice", "bob", "carol"}, hand.Players)
	assert.Equal(t, []string{
		"d dh p1 AsAh",
		"d dh p2 KsKh",
		"d dh p3 QsQh",
		"p1 cbr 60",
		"p2 f",
		"p3 cc",
		"d db 7d8c3s",
		"p3 cc",
		"p1 cbr 940",
		"p3 cc",
		"d db 9h",
		"d db 4c",
		"p1 sm AsAh",
		"p3 sm QsQh",
	}, hand.Actions)
}

func TestWriterObserve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWriter(dir, "main", "run1", nil)
	require.NoError(t, err)

	summary := playScriptedHand(t)
	require.NoError(t, w.Observe(context.Background(), summary))
	assert.Equal(t, filepath.Join(dir, "main-run1-00001.phh"), w.Path(1))

	f, err := os.Open(w.Path(1))
	require.NoError(t, err)
	defer f.Close()

	hand, err := Decode(f)
	require.NoError(t, err)
	assert.Equal(t, Variant, hand.Variant)
	assert.Equal(t, "main-run1-00001", hand.HandID)
	assert.Equal(t, []int{2010, 0, 0}, hand.Winnings)
	assert.Equal(t, "UTC", hand.TimeZone)
}

func TestWriterKeepsSessionsApart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first, err := NewWriter(dir, "main", "run1", nil)
	require.NoError(t, err)
	second, err := NewWriter(dir, "main", "run2", nil)
	require.NoError(t, err)

	summary := playScriptedHand(t)
	require.NoError(t, first.Observe(context.Background(), summary))
	require.NoError(t, second.Observe(context.Background(), summary))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "the second run must not overwrite the first run's hand 1")

	_, err = NewWriter(dir, "main", "", nil)
	assert.Error(t, err)
}

func TestFormatActions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "p1 f", FormatFold(0))
	assert.Equal(t, "p3 cc", FormatCheckCall(2))
	assert.Equal(t, "p2 cbr 120", FormatBetRaise(1, 120))
}
