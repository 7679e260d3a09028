package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/holdem/internal/agent"
	"github.com/lox/holdem/internal/randutil"
)

type AgentCmd struct {
	Kind     string `arg:"" help:"Agent kind (random, calling, folding, scripted)"`
	Addr     string `default:":8081" help:"Address to listen on"`
	Script   string `help:"Decisions for a scripted agent, e.g. \"call, raise 40, fold\""`
	Seed     int64  `help:"Seed for the random agent (0 = random)"`
	LogLevel string `default:"info" help:"Log level (debug|info|warn|error)"`
}

func (c *AgentCmd) Run() error {
	logger, err := newLogger(c.LogLevel, "agent")
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}
	a, err := localAgent(c.Kind, c.Script, seed, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Serving agent", "kind", c.Kind, "addr", c.Addr, "path", "/agent")
	return agent.NewServer(a, logger).ListenAndServe(ctx, c.Addr)
}
