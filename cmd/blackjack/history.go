package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/blackjack/internal/history"
	"github.com/lox/blackjack/internal/render"
)

// HistoryCmd renders TOML round histories written by replay.
type HistoryCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Round history files (.toml)"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	out := g.stdout()
	for _, path := range c.Files {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return err
		}
		h, err := history.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fmt.Fprintf(out, "%s %s %s\n", render.HeaderStyle.Render(" ROUND "), h.Round, h.Time)
		for _, step := range h.Actions {
			fmt.Fprintf(out, "  %s\n", step)
		}
		for i, hand := range h.Hands {
			fmt.Fprintf(out, "  hand %d: %s (%d) bet %.2f -> %s %.2f\n",
				i+1, strings.Join(hand.Cards, " "), hand.Value, hand.Bet, hand.Outcome, hand.Prize)
		}
		fmt.Fprintf(out, "  dealer: %s\n", strings.Join(h.Dealer, " "))
		fmt.Fprintf(out, "  net: %s\n", formatNet(h.Net))
	}
	return nil
}
