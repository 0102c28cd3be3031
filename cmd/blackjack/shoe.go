package main

import (
	"fmt"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/render"
)

// ShoeCmd prints a shuffled shoe.
type ShoeCmd struct {
	Table string `short:"t" help:"Table whose shoe settings to use"`
	Decks int    `short:"n" help:"Number of decks (overrides the table)"`
	Seed  int64  `short:"s" help:"Shuffle seed (overrides the table, 0 for random)"`
	Row   int    `default:"13" help:"Cards per output line"`
}

func (c *ShoeCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	t, err := table(cfg, c.Table)
	if err != nil {
		return err
	}

	decks := t.Decks
	if c.Decks > 0 {
		decks = c.Decks
	}
	seed := t.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	seed, err = randutil.Seed(seed)
	if err != nil {
		return err
	}
	logger.Debug("shuffling", "table", t.Name, "decks", decks, "seed", seed)

	shoe := blackjack.NewShoe(randutil.New(seed), decks)
	cards := make([]blackjack.Card, 0, shoe.Remaining())
	for {
		card, ok := shoe.Draw()
		if !ok {
			break
		}
		cards = append(cards, card)
	}

	row := c.Row
	if row <= 0 {
		row = len(cards)
	}
	out := g.stdout()
	fmt.Fprintf(out, "%s %d decks, seed %d\n", render.HeaderStyle.Render(" SHOE "), decks, seed)
	for i := 0; i < len(cards); i += row {
		end := min(i+row, len(cards))
		fmt.Fprintln(out, render.Cards(cards[i:end]))
	}
	return nil
}
