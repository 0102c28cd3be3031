package blackjack

import (
	"errors"
	"slices"
)

var (
	ErrNoPlayerCards = errors.New("no player cards")
	ErrNoDealerCards = errors.New("no dealer cards")
)

// Actions is the per-hand availability of player actions.
type Actions struct {
	Double      bool
	Split       bool
	Insurance   bool
	NoInsurance bool
	Hit         bool
	Stand       bool
	Surrender   bool
}

// Any reports whether at least one action is available.
func (a Actions) Any() bool {
	return a != Actions{}
}

// Allows reports whether the hand-level flag for action is set. Actions
// that are not hand-level (DEAL, SHOWDOWN, ...) are never allowed here.
func (a Actions) Allows(action Action) bool {
	switch action {
	case ActionDouble:
		return a.Double
	case ActionSplit:
		return a.Split
	case ActionInsurance:
		return a.Insurance
	case ActionNoInsurance:
		return a.NoInsurance
	case ActionHit:
		return a.Hit
	case ActionStand:
		return a.Stand
	case ActionSurrender:
		return a.Surrender
	default:
		return false
	}
}

// Hand is an immutable snapshot of one player hand. Closed and Actions are
// derived from the cards, the dealer's up-card and the event that produced
// the hand; transitions build a new Hand rather than editing one.
type Hand struct {
	Cards          []Card
	Value          HandValue
	Bet            float64
	Closed         bool
	Blackjack      bool
	Busted         bool
	Surrendered    bool
	InsuranceValue float64
	Actions        Actions
}

// Evaluate derives the base hand snapshot before any event is applied: no
// bet, no insurance, and availability computed from the cards alone.
func Evaluate(player, dealer []Card) (Hand, error) {
	value, ok := Calculate(player)
	if !ok {
		return Hand{}, ErrNoPlayerCards
	}
	if len(dealer) == 0 || dealer[0].IsZero() {
		return Hand{}, ErrNoDealerCards
	}

	blackjack := IsBlackjack(player)
	busted := value.Hi > 21
	closed := busted || blackjack
	canSplit := len(player) == 2 && player[0].Value == player[1].Value && !closed
	canInsure := dealer[0].IsAce()

	return Hand{
		Cards:     slices.Clone(player),
		Value:     value,
		Closed:    closed,
		Blackjack: blackjack,
		Busted:    busted,
		Actions: Actions{
			Double:      !closed,
			Split:       canSplit,
			Insurance:   canInsure,
			NoInsurance: canInsure,
			Hit:         !closed,
			Stand:       !closed,
			Surrender:   !closed,
		},
	}, nil
}

// settle enforces that a closed hand offers no actions.
func (h Hand) settle() Hand {
	if h.Closed {
		h.Actions = Actions{}
	}
	return h
}
