package main

import (
	"fmt"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/render"
)

// EvalCmd prints the evaluated hand for a player/dealer card set.
type EvalCmd struct {
	Player string  `arg:"" help:"Player cards, e.g. 'Ah 7c'"`
	Dealer string  `short:"d" required:"" help:"Dealer cards, e.g. '9s'"`
	Bet    float64 `short:"b" default:"10" help:"Bet carried on the hand"`
}

func (c *EvalCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	player, err := blackjack.ParseCards(c.Player)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	dealer, err := blackjack.ParseCards(c.Dealer)
	if err != nil {
		return fmt.Errorf("dealer: %w", err)
	}

	h, err := blackjack.AfterDeal(player, dealer, c.Bet)
	if err != nil {
		return err
	}

	out := g.stdout()
	fmt.Fprintln(out, render.HeaderStyle.Render(" HAND "))
	fmt.Fprintf(out, "player: %s\n", render.Hand(h))
	fmt.Fprintf(out, "dealer: %s\n", render.Cards(dealer))
	return nil
}

// GateCmd checks the stage gate.
type GateCmd struct {
	Action string `arg:"" help:"Action wire name, e.g. HIT"`
	Stage  string `arg:"" help:"Stage wire name, e.g. player-turn-right"`
}

func (c *GateCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	action := blackjack.Action(c.Action)
	stage := blackjack.Stage(c.Stage)
	if blackjack.IsActionAllowed(action, stage) {
		fmt.Fprintln(g.stdout(), render.SuccessStyle.Render(fmt.Sprintf("%s allowed in %s", action, stage)))
	} else {
		fmt.Fprintln(g.stdout(), render.ErrorStyle.Render(fmt.Sprintf("%s not allowed in %s", action, stage)))
	}
	return nil
}

// CountCmd prints the running count of cards.
type CountCmd struct {
	Cards  string  `arg:"" help:"Cards seen, e.g. '2h 10s Ac'"`
	System string  `default:"Hi-Lo" help:"Counting system"`
	Decks  float64 `help:"Decks remaining, to report the true count"`
}

func (c *CountCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	cards, err := blackjack.ParseCards(c.Cards)
	if err != nil {
		return err
	}
	count, err := blackjack.CountingSystem(c.System).Count(cards)
	if err != nil {
		return err
	}

	out := g.stdout()
	fmt.Fprintf(out, "%s running count: %+d\n", c.System, count)
	if c.Decks > 0 {
		fmt.Fprintf(out, "true count: %+.2f\n", float64(count)/c.Decks)
	}
	return nil
}
