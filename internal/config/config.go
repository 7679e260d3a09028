// Package config loads table configuration from HCL.
//
//	table {
//	  small_blind      = 10
//	  big_blind        = 20
//	  starting_chips   = 2000
//	  decision_timeout = "10s"
//	}
//
//	seat "alice" {
//	  agent = "random"
//	}
//
//	seat "bob" {
//	  agent = "remote"
//	  url   = "ws://localhost:8081/agent"
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem/internal/agent"
	"github.com/lox/holdem/internal/game"
)

const (
	DefaultSmallBlind      = 10
	DefaultBigBlind        = 20
	DefaultStartingChips   = 2000
	DefaultDecisionTimeout = "10s"
	DefaultLogLevel        = "info"
)

// Config is the complete table configuration
type Config struct {
	Table TableConfig
	Seats []SeatConfig
}

// TableConfig holds stakes and table-wide settings
type TableConfig struct {
	SmallBlind      int    `hcl:"small_blind,optional"`
	BigBlind        int    `hcl:"big_blind,optional"`
	StartingChips   int    `hcl:"starting_chips,optional"`
	Button          int    `hcl:"button,optional"`
	Seed            int64  `hcl:"seed,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	HandsDir        string `hcl:"hands_dir,optional"`
	Database        string `hcl:"database,optional"`
}

// SeatConfig describes one seat and the agent that plays it
type SeatConfig struct {
	Name   string `hcl:"name,label"`
	Agent  string `hcl:"agent"`
	URL    string `hcl:"url,optional"`
	Chips  int    `hcl:"chips,optional"`
	Script string `hcl:"script,optional"`
}

// Default returns a heads-up table of random agents
func Default() *Config {
	c := &Config{
		Seats: []SeatConfig{
			{Name: "alice", Agent: agent.KindRandom},
			{Name: "bob", Agent: agent.KindCalling},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse reads configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var file struct {
		Table *TableConfig `hcl:"table,block"`
		Seats []SeatConfig `hcl:"seat,block"`
	}
	if diags := gohcl.DecodeBody(body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c := &Config{Seats: file.Seats}
	if file.Table != nil {
		c.Table = *file.Table
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = DefaultSmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = max(DefaultBigBlind, c.Table.SmallBlind)
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = DefaultStartingChips
	}
	if c.Table.DecisionTimeout == "" {
		c.Table.DecisionTimeout = DefaultDecisionTimeout
	}
	if c.Table.LogLevel == "" {
		c.Table.LogLevel = DefaultLogLevel
	}
	for i := range c.Seats {
		if c.Seats[i].Chips == 0 {
			c.Seats[i].Chips = c.Table.StartingChips
		}
	}
}

// Validate checks the configuration can seat a table
func (c *Config) Validate() error {
	if err := c.Stakes().Validate(); err != nil {
		return err
	}
	if c.Table.StartingChips < 0 {
		return fmt.Errorf("starting_chips must not be negative, got %d", c.Table.StartingChips)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Table.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.Table.LogLevel, err)
	}
	if n := len(c.Seats); n < game.MinSeats || n > game.MaxSeats {
		return fmt.Errorf("need %d-%d seats, got %d", game.MinSeats, game.MaxSeats, n)
	}
	if c.Table.Button < 0 || c.Table.Button >= len(c.Seats) {
		return fmt.Errorf("button seat %d out of range", c.Table.Button)
	}

	names := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if names[s.Name] {
			return fmt.Errorf("duplicate seat %q", s.Name)
		}
		names[s.Name] = true

		if !agent.IsKnownKind(s.Agent) {
			return fmt.Errorf("seat %q: unknown agent %q (want one of %v)", s.Name, s.Agent, agent.Kinds)
		}
		if s.Chips < 0 {
			return fmt.Errorf("seat %q: chips must not be negative", s.Name)
		}
		switch s.Agent {
		case agent.KindRemote:
			if s.URL == "" {
				return fmt.Errorf("seat %q: remote agent needs a url", s.Name)
			}
		case agent.KindScripted:
			if _, err := agent.ParseScript(s.Script); err != nil {
				return fmt.Errorf("seat %q: %w", s.Name, err)
			}
		}
	}
	return nil
}

// Stakes returns the engine configuration
func (c *Config) Stakes() game.Config {
	return game.Config{SmallBlind: c.Table.SmallBlind, BigBlind: c.Table.BigBlind}
}

// Timeout parses the decision timeout
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Table.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid decision_timeout %q: %w", c.Table.DecisionTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("decision_timeout must not be negative")
	}
	return d, nil
}

// GameSeats returns the seats in table order
func (c *Config) GameSeats() []game.Seat {
	seats := make([]game.Seat, len(c.Seats))
	for i, s := range c.Seats {
		seats[i] = game.Seat{Name: s.Name, Chips: s.Chips}
	}
	return seats
}
