// Package render formats engine values for terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/blackjack"
)

// Card renders a single card in its suit colour.
func Card(c blackjack.Card) string {
	switch c.Color {
	case blackjack.Red:
		return RedCardStyle.Render(c.String())
	case blackjack.Black:
		return BlackCardStyle.Render(c.String())
	default:
		return c.String()
	}
}

// Cards renders cards separated by spaces.
func Cards(cards []blackjack.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return strings.Join(parts, " ")
}

// Value renders a hand value as "17" or "18/8" for soft totals.
func Value(v blackjack.HandValue) string {
	if v.Soft() {
		return fmt.Sprintf("%d/%d", v.Hi, v.Lo)
	}
	return fmt.Sprintf("%d", v.Hi)
}

// Actions lists the available actions by wire name in a stable order.
func Actions(a blackjack.Actions) string {
	order := []blackjack.Action{
		blackjack.ActionHit,
		blackjack.ActionStand,
		blackjack.ActionDouble,
		blackjack.ActionSplit,
		blackjack.ActionSurrender,
		blackjack.ActionInsurance,
		blackjack.ActionNoInsurance,
	}
	var names []string
	for _, action := range order {
		if a.Allows(action) {
			names = append(names, string(action))
		}
	}
	if len(names) == 0 {
		return InfoStyle.Render("none")
	}
	return ActionsStyle.Render(strings.Join(names, " "))
}

// Hand renders a one-line summary of h.
func Hand(h blackjack.Hand) string {
	var flags []string
	switch {
	case h.Blackjack:
		flags = append(flags, "blackjack")
	case h.Busted:
		flags = append(flags, "busted")
	}
	if h.Surrendered {
		flags = append(flags, "surrendered")
	}
	if h.Closed {
		flags = append(flags, "closed")
	}

	line := fmt.Sprintf("%s (%s) bet %.2f", Cards(h.Cards), Value(h.Value), h.Bet)
	if h.InsuranceValue > 0 {
		line += fmt.Sprintf(" insurance %.2f", h.InsuranceValue)
	}
	if len(flags) > 0 {
		line += " [" + strings.Join(flags, ", ") + "]"
	}
	return line + " actions: " + Actions(h.Actions)
}
