package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/logging"
	"github.com/lox/blackjack/internal/render"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `type:"path" default:"blackjack.hcl" help:"HCL config file (defaults apply when absent)"`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)"`
	NoColor  bool   `help:"Disable coloured output"`

	out io.Writer
	err io.Writer
}

func (g *Globals) stdout() io.Writer {
	if g.out != nil {
		return g.out
	}
	return os.Stdout
}

func (g *Globals) stderr() io.Writer {
	if g.err != nil {
		return g.err
	}
	return os.Stderr
}

// setup loads the config and builds the logger. It also applies --no-color.
func (g *Globals) setup() (*config.Config, *log.Logger, error) {
	if g.NoColor {
		render.DisableColor()
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(g.stderr(), cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// table picks the named table, or the first configured one when name is
// empty.
func table(cfg *config.Config, name string) (config.TableConfig, error) {
	if name == "" {
		return cfg.Tables[0], nil
	}
	t := cfg.Table(name)
	if t == nil {
		return config.TableConfig{}, fmt.Errorf("unknown table %q", name)
	}
	return *t, nil
}
