package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/agent"
	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/phh"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/runner"
	"github.com/lox/holdem/internal/store"
)

const dialTimeout = 10 * time.Second

type PlayCmd struct {
	Config   string `short:"c" default:"holdem.hcl" type:"path" help:"Table config file (defaults are used when missing)"`
	Table    string `default:"main" help:"Table name used for hand files and the database"`
	Hands    int    `short:"n" help:"Maximum hands to play (0 = until one player has every chip)"`
	Seed     int64  `help:"Deck and agent seed (overrides config, 0 = config or random)"`
	LogLevel string `help:"Log level (debug|info|warn|error), overrides config"`
	HandsDir string `help:"Write each hand as a PHH file into this directory"`
	DB       string `name:"db" help:"Record hands in this SQLite database"`
	Quiet    bool   `short:"q" help:"Only print the final standings"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.override(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", c.Config, err)
	}

	logger, err := newLogger(cfg.Table.LogLevel, "holdem")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = c.play(ctx, cfg, logger, os.Stdout)
	return err
}

// sessionName identifies one run of a table in hand files and the database
func sessionName(startedAt time.Time) string {
	return startedAt.UTC().Format("20060102T150405.000000")
}

// play seats the table described by cfg and plays it out, returning the
// number of hands played
func (c *PlayCmd) play(ctx context.Context, cfg *config.Config, logger *log.Logger, out io.Writer) (int, error) {
	startedAt := time.Now()
	session := sessionName(startedAt)

	seed := cfg.Table.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}
	logger.Info("Seating table", "table", c.Table, "session", session, "seats", len(cfg.Seats), "seed", seed,
		"blinds", fmt.Sprintf("%d/%d", cfg.Table.SmallBlind, cfg.Table.BigBlind))

	engine, err := game.NewEngine(cfg.Stakes(), cfg.GameSeats(),
		game.WithLogger(logger),
		game.WithRNG(randutil.New(seed)),
		game.WithButton(cfg.Table.Button))
	if err != nil {
		return 0, err
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return 0, err
	}

	agents, closeAgents, err := buildAgents(ctx, cfg, seed, timeout, logger)
	if err != nil {
		return 0, err
	}
	defer closeAgents()

	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithDecisionTimeout(timeout),
	}
	if !c.Quiet {
		opts = append(opts, runner.WithObserver(func(_ context.Context, h *runner.HandSummary) error {
			_, err := fmt.Fprintln(out, renderHand(h))
			return err
		}))
	}
	if cfg.Table.HandsDir != "" {
		w, err := phh.NewWriter(cfg.Table.HandsDir, c.Table, session, logger)
		if err != nil {
			return 0, err
		}
		opts = append(opts, runner.WithObserver(w.Observe))
	}
	if cfg.Table.Database != "" {
		db, err := store.Open(ctx, cfg.Table.Database)
		if err != nil {
			return 0, err
		}
		defer db.Close()

		recorded, err := db.StartSession(ctx, c.Table, session, seed, startedAt)
		if err != nil {
			return 0, err
		}
		opts = append(opts, runner.WithObserver(recorded.Observe))
	}

	r, err := runner.New(engine, agents, opts...)
	if err != nil {
		return 0, err
	}

	played, runErr := r.Run(ctx, c.Hands)
	fmt.Fprintln(out, renderStandings(engine, played))
	if runErr != nil && ctx.Err() == nil {
		return played, runErr
	}
	return played, nil
}

// override applies command line flags on top of the file config
func (c *PlayCmd) override(cfg *config.Config) {
	if c.Seed != 0 {
		cfg.Table.Seed = c.Seed
	}
	if c.LogLevel != "" {
		cfg.Table.LogLevel = c.LogLevel
	}
	if c.HandsDir != "" {
		cfg.Table.HandsDir = c.HandsDir
	}
	if c.DB != "" {
		cfg.Table.Database = c.DB
	}
}

// buildAgents creates one agent per configured seat. The returned func closes
// any remote connections.
func buildAgents(ctx context.Context, cfg *config.Config, seed int64, timeout time.Duration, logger *log.Logger) ([]agent.Agent, func(), error) {
	var remotes []*agent.Remote
	closeAll := func() {
		for _, r := range remotes {
			_ = r.Close()
		}
	}

	agents := make([]agent.Agent, len(cfg.Seats))
	for i, s := range cfg.Seats {
		seatLogger := logger.With("seat", i, "name", s.Name)
		switch s.Agent {
		case agent.KindRemote:
			dctx, cancel := context.WithTimeout(ctx, dialTimeout)
			remote, err := agent.Dial(dctx, s.URL,
				agent.WithRemoteLogger(seatLogger),
				agent.WithRemoteTimeout(timeout))
			cancel()
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("seat %q: %w", s.Name, err)
			}
			remotes = append(remotes, remote)
			agents[i] = remote
		default:
			a, err := localAgent(s.Agent, s.Script, seed+int64(i)+1, seatLogger)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("seat %q: %w", s.Name, err)
			}
			agents[i] = a
		}
	}
	return agents, closeAll, nil
}

// localAgent builds an agent that runs in process
func localAgent(kind, script string, seed int64, logger *log.Logger) (agent.Agent, error) {
	switch kind {
	case agent.KindRandom:
		return agent.NewRandom(randutil.New(seed), logger), nil
	case agent.KindCalling:
		return agent.Calling{}, nil
	case agent.KindFolding:
		return agent.Folding{}, nil
	case agent.KindScripted:
		decisions, err := agent.ParseScript(script)
		if err != nil {
			return nil, err
		}
		return agent.NewScripted(decisions...), nil
	default:
		return nil, fmt.Errorf("agent %q cannot run locally (want one of %v)", kind, agent.Kinds)
	}
}
