// Package history records settled rounds as TOML documents.
package history

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/blackjack/blackjack"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/round"
)

// FromResult converts a settled round into its history record.
func FromResult(table string, res *round.Result) *RoundHistory {
	h := &RoundHistory{
		Round:     res.ID,
		Table:     table,
		Seed:      res.Seed,
		Time:      res.SettledAt.UTC().Format(time.RFC3339),
		Dealer:    cardStrings(res.Dealer),
		Actions:   make([]string, 0, len(res.Steps)),
		Wagered:   res.Wagered,
		Paid:      res.Paid,
		Net:       res.Net(),
		SideBets:  SideBets{LuckyLucky: res.SideBets.LuckyLucky, PerfectPairs: res.SideBets.PerfectPairs},
		Hands:     make([]HandRecord, len(res.Hands)),
		Timestamp: res.SettledAt,
	}
	for _, step := range res.Steps {
		h.Actions = append(h.Actions, FormatStep(step))
	}
	for i, hand := range res.Hands {
		h.Hands[i] = HandRecord{
			Cards:     cardStrings(hand.Cards),
			Value:     hand.Value.Hi,
			Bet:       hand.Bet,
			Insurance: hand.InsuranceValue,
			Outcome:   Outcome(hand),
			Prize:     res.Prizes[i],
		}
	}
	return h
}

// Outcome names how a closed hand finished.
func Outcome(h blackjack.Hand) string {
	switch {
	case h.Surrendered:
		return "surrendered"
	case h.Busted:
		return "busted"
	case h.Blackjack:
		return "blackjack"
	case h.Closed:
		return "stood"
	default:
		return "open"
	}
}

// FormatStep renders a step as "<actor> <ACTION> [card]", where the actor
// is p1/p2 for the right/left hand, d for dealer actions and t for table
// actions.
func FormatStep(step round.Step) string {
	actor := "t"
	switch {
	case step.Hand >= 0:
		actor = fmt.Sprintf("p%d", step.Hand+1)
	case step.Action == blackjack.ActionDealerHit:
		actor = "d"
	}
	s := actor + " " + string(step.Action)
	if !step.Card.IsZero() {
		s += " " + step.Card.String()
	}
	return s
}

func cardStrings(cards []blackjack.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// Encode writes the round history to w in TOML.
func Encode(w io.Writer, h *RoundHistory) error {
	if h == nil {
		return fmt.Errorf("history: round history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(h)
}

// Decode reads a round history written by Encode.
func Decode(r io.Reader) (*RoundHistory, error) {
	var h RoundHistory
	if _, err := toml.NewDecoder(r).Decode(&h); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	t, err := time.Parse(time.RFC3339, h.Time)
	if err != nil {
		return nil, fmt.Errorf("history: round %s time: %w", h.Round, err)
	}
	h.Timestamp = t
	return &h, nil
}

// WriteFile writes h to <dir>/<round>.toml atomically and returns the path.
func WriteFile(dir string, h *RoundHistory) (string, error) {
	path := filepath.Join(dir, h.Round+".toml")
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, h)
	})
	if err != nil {
		return "", fmt.Errorf("history: write %s: %w", path, err)
	}
	return path, nil
}
