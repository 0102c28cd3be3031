package blackjack

import (
	"errors"
	"fmt"
)

// ErrHandOpen is returned by Prize for a hand that has not closed yet.
var ErrHandOpen = errors.New("hand is still open")

// Prize returns the amount owed to the player for h once the dealer's
// cards are final. The amount includes the returned stake and any
// insurance payout. An open hand pays nothing and returns ErrHandOpen.
func Prize(h Hand, dealer []Card) (float64, error) {
	dv, ok := Calculate(dealer)
	if !ok {
		return 0, ErrNoDealerCards
	}
	dealerValue := dv.Hi

	insurance := 0.0
	if IsBlackjack(dealer) && h.InsuranceValue > 0 {
		insurance = h.InsuranceValue * 2
	}

	switch {
	case !h.Closed:
		return 0, ErrHandOpen
	case h.Busted:
		return insurance, nil
	case h.Surrendered:
		return h.Bet/2 + insurance, nil
	case h.Blackjack:
		return h.Bet + h.Bet*1.5 + insurance, nil
	}

	player := h.Value.Hi
	switch {
	case dealerValue > 21 || player > dealerValue:
		return h.Bet*2 + insurance, nil
	case player == dealerValue:
		return h.Bet + insurance, nil
	default:
		return insurance, nil
	}
}

// AvailableBets lists which side bets the table offers.
type AvailableBets struct {
	LuckyLucky   bool
	PerfectPairs bool
}

// SideBets holds the amounts wagered on each side bet.
type SideBets struct {
	LuckyLucky   float64
	PerfectPairs float64
}

// SideBetsInfo holds side bet payouts for a round.
type SideBetsInfo struct {
	LuckyLucky   float64
	PerfectPairs float64
}

// Total returns the sum of all side bet payouts.
func (s SideBetsInfo) Total() float64 {
	return s.LuckyLucky + s.PerfectPairs
}

// ResolveSideBets computes side bet payouts from the player's initial cards
// and the dealer's up-card. A side bet pays only if it is offered and
// wagered.
//
// Lucky Lucky pays 2x when the player total plus the up-card is 19 to 21.
// Perfect Pairs pays a flat 5x on any pair of equal values; there are no
// separate coloured or mixed pair tiers.
func ResolveSideBets(available AvailableBets, bets SideBets, player, dealer []Card) (SideBetsInfo, error) {
	var info SideBetsInfo
	if len(player) < 2 {
		return info, fmt.Errorf("side bets: %w", ErrNoPlayerCards)
	}
	if len(dealer) == 0 {
		return info, fmt.Errorf("side bets: %w", ErrNoDealerCards)
	}

	if available.LuckyLucky && bets.LuckyLucky > 0 && isLuckyLucky(player, dealer) {
		info.LuckyLucky = bets.LuckyLucky * 2
	}
	if available.PerfectPairs && bets.PerfectPairs > 0 && player[0].Value == player[1].Value {
		info.PerfectPairs = bets.PerfectPairs * 5
	}
	return info, nil
}

func isLuckyLucky(player, dealer []Card) bool {
	pv, _ := Calculate(player)
	dv, _ := Calculate(dealer[:1])
	total := pv.Hi + dv.Hi
	return total >= 19 && total <= 21
}
