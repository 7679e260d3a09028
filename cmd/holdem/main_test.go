package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/agent"
	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/runner"
)

func TestLocalAgent(t *testing.T) {
	t.Parallel()

	logger := log.New(io.Discard)
	for _, kind := range []string{agent.KindRandom, agent.KindCalling, agent.KindFolding} {
		a, err := localAgent(kind, "", 1, logger)
		require.NoError(t, err, kind)
		assert.NotNil(t, a)
	}

	a, err := localAgent(agent.KindScripted, "call, fold", 1, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, a.(*agent.Scripted).Remaining())

	_, err = localAgent(agent.KindRemote, "", 1, logger)
	assert.Error(t, err)

	_, err = localAgent(agent.KindScripted, "dance", 1, logger)
	assert.Error(t, err)
}

func TestBuildAgentsAndPlay(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	agents, closeAgents, err := buildAgents(context.Background(), cfg, 7, time.Second, log.New(io.Discard))
	require.NoError(t, err)
	defer closeAgents()
	require.Len(t, agents, len(cfg.Seats))

	e, err := game.NewEngine(cfg.Stakes(), cfg.GameSeats(), game.WithRNG(randutil.New(7)))
	require.NoError(t, err)

	var rendered []string
	r, err := runner.New(e, agents, runner.WithObserver(func(_ context.Context, h *runner.HandSummary) error {
		rendered = append(rendered, renderHand(h))
		return nil
	}))
	require.NoError(t, err)

	played, err := r.Run(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rendered, played)
	assert.Contains(t, rendered[0], "Hand #1")
	assert.Contains(t, rendered[0], "posted small blind")

	standings := renderStandings(e, played)
	assert.Contains(t, standings, "alice")
	assert.Contains(t, standings, "bob")
	assert.Equal(t, 0, e.Players()[0].ID, "standings do not reorder the engine's seats")
}

func TestBuildAgentsDialFailure(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Seats[1].Agent = agent.KindRemote
	cfg.Seats[1].URL = "ws://127.0.0.1:1/agent"

	_, _, err := buildAgents(context.Background(), cfg, 7, time.Second, log.New(io.Discard))
	assert.Error(t, err)
}

func TestOverride(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cmd := &PlayCmd{Seed: 9, LogLevel: "debug", HandsDir: "out", DB: "hands.db"}
	cmd.override(cfg)

	assert.Equal(t, int64(9), cfg.Table.Seed)
	assert.Equal(t, "debug", cfg.Table.LogLevel)
	assert.Equal(t, "out", cfg.Table.HandsDir)
	assert.Equal(t, "hands.db", cfg.Table.Database)
}

func TestPlayTwiceAgainstSameDatabase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "hands.db")
	handsDir := filepath.Join(dir, "hands")

	total := 0
	for run := range 2 {
		cfg := config.Default()
		cfg.Table.Seed = int64(run + 3)
		cfg.Table.HandsDir = handsDir
		cfg.Table.Database = dbPath
		require.NoError(t, cfg.Validate())

		var out bytes.Buffer
		cmd := &PlayCmd{Table: "main", Hands: 3, Quiet: true}
		played, err := cmd.play(context.Background(), cfg, log.New(io.Discard), &out)
		require.NoError(t, err, "run %d", run)
		require.Positive(t, played)
		assert.Contains(t, out.String(), "Standings after")
		total += played
	}

	entries, err := os.ReadDir(handsDir)
	require.NoError(t, err)
	assert.Len(t, entries, total, "each run writes its own hand files")

	var summary bytes.Buffer
	require.NoError(t, (&HistoryCmd{DB: dbPath, Table: "main"}).show(context.Background(), &summary))
	assert.Contains(t, summary.String(), "Sessions")
	assert.Contains(t, summary.String(), "seed 3")
	assert.Contains(t, summary.String(), "seed 4")
	assert.Contains(t, summary.String(), "alice")

	var hand bytes.Buffer
	require.NoError(t, (&HistoryCmd{DB: dbPath, Table: "main", Hand: 1}).show(context.Background(), &hand))
	assert.Contains(t, hand.String(), "Hand #1")
	assert.Contains(t, hand.String(), "posted small blind")

	err = (&HistoryCmd{DB: dbPath, Table: "main", Session: 999, Hand: 1}).show(context.Background(), io.Discard)
	assert.Error(t, err)

	err = (&HistoryCmd{DB: dbPath, Table: "other"}).show(context.Background(), io.Discard)
	assert.Error(t, err)
}

func TestSessionNamesDiffer(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "20261018T093000.000000", sessionName(at))
	assert.NotEqual(t, sessionName(at), sessionName(at.Add(time.Millisecond)))
}
