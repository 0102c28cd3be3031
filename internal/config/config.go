package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/blackjack"
)

// Config represents the complete engine configuration
type Config struct {
	Tables  []TableConfig  `hcl:"table,block"`
	Log     *LogConfig     `hcl:"log,block"`
	History *HistoryConfig `hcl:"history,block"`
}

// TableConfig defines the house rules of a table
type TableConfig struct {
	Name         string  `hcl:"name,label"`
	Decks        int     `hcl:"decks,optional"`
	Seed         int64   `hcl:"seed,optional"`
	LuckyLucky   bool    `hcl:"lucky_lucky,optional"`
	PerfectPairs bool    `hcl:"perfect_pairs,optional"`
	MinBet       float64 `hcl:"min_bet,optional"`
	MaxBet       float64 `hcl:"max_bet,optional"`
}

// LogConfig controls logger output
type LogConfig struct {
	Level string `hcl:"level,optional"`
	JSON  bool   `hcl:"json,optional"`
}

// HistoryConfig controls where round histories are written. An empty Dir
// disables history output.
type HistoryConfig struct {
	Dir string `hcl:"dir,optional"`
}

const (
	defaultDecks  = 6
	defaultMinBet = 5
	defaultMaxBet = 500
	maxDecks      = 8
)

// Default returns the built-in configuration: one six-deck table with both
// side bets offered.
func Default() *Config {
	return &Config{
		Tables: []TableConfig{
			{
				Name:         "main",
				Decks:        defaultDecks,
				LuckyLucky:   true,
				PerfectPairs: true,
				MinBet:       defaultMinBet,
				MaxBet:       defaultMaxBet,
			},
		},
		Log:     &LogConfig{Level: "info"},
		History: &HistoryConfig{},
	}
}

// Load loads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Tables) == 0 {
		c.Tables = Default().Tables
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.History == nil {
		c.History = &HistoryConfig{}
	}

	for i := range c.Tables {
		if c.Tables[i].Decks == 0 {
			c.Tables[i].Decks = defaultDecks
		}
		if c.Tables[i].MinBet == 0 {
			c.Tables[i].MinBet = defaultMinBet
		}
		if c.Tables[i].MaxBet == 0 {
			c.Tables[i].MaxBet = c.Tables[i].MinBet * 100
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	seen := make(map[string]bool, len(c.Tables))
	for _, table := range c.Tables {
		if seen[table.Name] {
			return fmt.Errorf("table %s: defined more than once", table.Name)
		}
		seen[table.Name] = true

		if table.Decks < 1 || table.Decks > maxDecks {
			return fmt.Errorf("table %s: decks must be between 1 and %d", table.Name, maxDecks)
		}
		if table.MinBet <= 0 {
			return fmt.Errorf("table %s: minimum bet must be positive", table.Name)
		}
		if table.MaxBet < table.MinBet {
			return fmt.Errorf("table %s: maximum bet must not be below minimum", table.Name)
		}
	}

	if c.Log != nil {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}

	return nil
}

// Table returns a table configuration by name
func (c *Config) Table(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

// AvailableBets returns the side bets offered at the table.
func (t TableConfig) AvailableBets() blackjack.AvailableBets {
	return blackjack.AvailableBets{
		LuckyLucky:   t.LuckyLucky,
		PerfectPairs: t.PerfectPairs,
	}
}

// CheckBet reports whether bet is within the table limits.
func (t TableConfig) CheckBet(bet float64) error {
	if bet < t.MinBet || bet > t.MaxBet {
		return fmt.Errorf("table %s: bet %.2f outside limits %.2f-%.2f", t.Name, bet, t.MinBet, t.MaxBet)
	}
	return nil
}
