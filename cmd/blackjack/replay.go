package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/history"
	"github.com/lox/blackjack/internal/render"
	"github.com/lox/blackjack/internal/round"
	"github.com/lox/blackjack/internal/statistics"
)

// ReplayCmd plays HCL round scripts through the round dispatcher.
type ReplayCmd struct {
	Scripts  []string `arg:"" type:"existingfile" help:"Round scripts (.hcl)"`
	Table    string   `short:"t" help:"Table for scripts that do not name one"`
	Parallel int      `short:"p" default:"4" help:"Scripts played concurrently"`
	History  string   `help:"Directory for TOML round histories (overrides the config)"`
	Quiet    bool     `short:"q" help:"Only print the summary"`
}

type replayed struct {
	script *round.Script
	table  config.TableConfig
	result *round.Result
}

func (c *ReplayCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	rounds := make([]replayed, len(c.Scripts))
	for i, path := range c.Scripts {
		s, err := round.LoadScript(path)
		if err != nil {
			return err
		}
		name := s.Table
		if name == "" {
			name = c.Table
		}
		t, err := table(cfg, name)
		if err != nil {
			return fmt.Errorf("script %s: %w", s.Name, err)
		}
		rounds[i] = replayed{script: s, table: t}
	}

	if err := c.play(rounds, logger); err != nil {
		return err
	}

	dir := c.History
	if dir == "" && cfg.History != nil {
		dir = cfg.History.Dir
	}

	stats := &statistics.Statistics{}
	out := g.stdout()
	for _, r := range rounds {
		stats.Add(statistics.FromRound(r.result))
		if !c.Quiet {
			printRound(out, r)
		}
		if dir != "" {
			path, err := history.WriteFile(dir, history.FromResult(r.table.Name, r.result))
			if err != nil {
				return err
			}
			logger.Info("wrote history", "script", r.script.Name, "path", path)
		}
	}

	if err := stats.Validate(); err != nil {
		return fmt.Errorf("replay accounting: %w", err)
	}
	printSummary(out, stats)
	return nil
}

// play runs every script, at most Parallel at a time. Each round has its own
// shoe so scripts are independent.
func (c *ReplayCmd) play(rounds []replayed, logger *log.Logger) error {
	var g errgroup.Group
	if c.Parallel > 0 {
		g.SetLimit(c.Parallel)
	}
	for i := range rounds {
		r := &rounds[i]
		g.Go(func() error {
			res, err := r.script.Run(r.table, round.WithLogger(logger.With("script", r.script.Name)))
			if err != nil {
				return err
			}
			r.result = res
			return nil
		})
	}
	return g.Wait()
}

func printRound(w io.Writer, r replayed) {
	res := r.result
	fmt.Fprintf(w, "%s %s at %s", render.HeaderStyle.Render(" "+r.script.Name+" "), res.ID, r.table.Name)
	if res.Seed != 0 {
		fmt.Fprintf(w, " (seed %d)", res.Seed)
	}
	fmt.Fprintln(w)
	for i, h := range res.Hands {
		fmt.Fprintf(w, "  hand %d: %s -> %s %.2f\n", i+1, render.Hand(h), history.Outcome(h), res.Prizes[i])
	}
	fmt.Fprintf(w, "  dealer: %s\n", render.Cards(res.Dealer))
	if side := res.SideBets.Total(); side > 0 {
		fmt.Fprintf(w, "  side bets: lucky lucky %.2f, perfect pairs %.2f\n", res.SideBets.LuckyLucky, res.SideBets.PerfectPairs)
	}
	fmt.Fprintf(w, "  net: %s\n", formatNet(res.Net()))
}

func printSummary(w io.Writer, s *statistics.Statistics) {
	low, high := s.ConfidenceInterval95()
	fmt.Fprintln(w, render.HeaderStyle.Render(" SUMMARY "))
	fmt.Fprintf(w, "rounds: %d (won %d, pushed %d, lost %d)\n", s.Rounds, s.Wins, s.Pushes, s.Losses)
	fmt.Fprintf(w, "wagered: %.2f  paid: %.2f  net: %s\n", s.TotalWagered, s.TotalPaid, formatNet(s.SumNet))
	fmt.Fprintf(w, "return to player: %.2f%%\n", s.ReturnToPlayer()*100)
	fmt.Fprintf(w, "mean: %+.2f  median: %+.2f  stddev: %.2f  95%% CI: [%+.2f, %+.2f]\n",
		s.Mean(), s.Median(), s.StdDev(), low, high)
	fmt.Fprintf(w, "blackjacks: %d  busts: %d  surrenders: %d  splits: %d\n",
		s.Blackjacks, s.Busts, s.Surrenders, s.Splits)
}

func formatNet(net float64) string {
	text := fmt.Sprintf("%+.2f", net)
	switch {
	case net > 0:
		return render.SuccessStyle.Render(text)
	case net < 0:
		return render.ErrorStyle.Render(text)
	default:
		return render.InfoStyle.Render(text)
	}
}
