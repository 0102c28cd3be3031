package round

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/randutil"
)

// Script is a scripted round loaded from HCL:
//
//	bet     = 10
//	cards   = ["8h", "6c", "8s", "10d"]  # optional stacked shoe
//	actions = ["DEAL", "STAND", "SHOWDOWN"]
//
//	side_bets {
//	  perfect_pairs = 5
//	}
type Script struct {
	Name     string          `hcl:"name,optional"`
	Table    string          `hcl:"table,optional"`
	Bet      float64         `hcl:"bet"`
	Seed     int64           `hcl:"seed,optional"`
	Cards    []string        `hcl:"cards,optional"`
	Actions  []string        `hcl:"actions"`
	SideBets *SideBetsConfig `hcl:"side_bets,block"`
}

// SideBetsConfig holds the side bet wagers of a script.
type SideBetsConfig struct {
	LuckyLucky   float64 `hcl:"lucky_lucky,optional"`
	PerfectPairs float64 `hcl:"perfect_pairs,optional"`
}

// LoadScript reads and decodes a script file. The script name defaults to
// the file name without extension.
func LoadScript(filename string) (*Script, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s, err := ParseScript(src, filename)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return s, nil
}

// ParseScript decodes script source. filename is used in diagnostics.
func ParseScript(src []byte, filename string) (*Script, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse script: %s", diags.Error())
	}

	var s Script
	diags = gohcl.DecodeBody(file.Body, nil, &s)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode script: %s", diags.Error())
	}
	if len(s.Actions) == 0 {
		return nil, fmt.Errorf("script %s: no actions", filename)
	}
	return &s, nil
}

func (s *Script) wagers() blackjack.SideBets {
	if s.SideBets == nil {
		return blackjack.SideBets{}
	}
	return blackjack.SideBets{
		LuckyLucky:   s.SideBets.LuckyLucky,
		PerfectPairs: s.SideBets.PerfectPairs,
	}
}

// shoe builds the script's shoe: the stacked cards when given, otherwise a
// shuffled shoe from the script or table seed.
func (s *Script) shoe(table config.TableConfig) (*blackjack.Shoe, int64, error) {
	if len(s.Cards) > 0 {
		cards, err := blackjack.ParseCards(strings.Join(s.Cards, " "))
		if err != nil {
			return nil, 0, fmt.Errorf("script %s: %w", s.Name, err)
		}
		return blackjack.NewStackedShoe(cards), 0, nil
	}

	seed := s.Seed
	if seed == 0 {
		seed = table.Seed
	}
	seed, err := randutil.Seed(seed)
	if err != nil {
		return nil, 0, err
	}
	return blackjack.NewShoe(randutil.New(seed), table.Decks), seed, nil
}

// Run plays the script at table and settles the round. The script must
// leave the round in the dealer's turn.
func (s *Script) Run(table config.TableConfig, opts ...Option) (*Result, error) {
	if err := table.CheckBet(s.Bet); err != nil {
		return nil, fmt.Errorf("script %s: %w", s.Name, err)
	}

	shoe, seed, err := s.shoe(table)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{
		WithBet(s.Bet),
		WithSideBets(table.AvailableBets(), s.wagers()),
	}, opts...)
	r := New(shoe, opts...)

	for i, a := range s.Actions {
		if err := r.Dispatch(blackjack.Action(a)); err != nil {
			return nil, fmt.Errorf("script %s: action %d (%s): %w", s.Name, i+1, a, err)
		}
	}

	res, err := r.Settle()
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", s.Name, err)
	}
	res.Seed = seed
	return res, nil
}
