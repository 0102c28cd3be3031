package blackjack

import (
	"errors"
	"fmt"
)

var (
	ErrHandClosed   = errors.New("hand is closed")
	ErrUnknownEvent = errors.New("unknown event")
)

// Event is something that happened to a hand.
type Event uint8

const (
	EventDeal Event = iota + 1
	EventSplit
	EventHit
	EventDouble
	EventStand
	EventSurrender
	EventInsurance
)

func (e Event) String() string {
	switch e {
	case EventDeal:
		return "deal"
	case EventSplit:
		return "split"
	case EventHit:
		return "hit"
	case EventDouble:
		return "double"
	case EventStand:
		return "stand"
	case EventSurrender:
		return "surrender"
	case EventInsurance:
		return "insurance"
	default:
		return fmt.Sprintf("event(%d)", uint8(e))
	}
}

// Context carries the inputs a transition reads besides the previous hand.
// Player holds the hand's cards after the event (e.g. including the card
// just hit). Bet is the initial bet, or the insurance stake for
// EventInsurance.
type Context struct {
	Player []Card
	Dealer []Card
	Bet    float64
}

// Apply transitions prev through ev and returns the resulting hand.
//
// DEAL ignores prev. STAND and SURRENDER close prev as it is and ignore ctx.
// Every other event re-derives the hand from ctx and refuses to act on a
// closed prev; an insurance stake already placed on prev is kept. In all
// cases a closed result carries no available actions.
func Apply(prev Hand, ev Event, ctx Context) (Hand, error) {
	switch ev {
	case EventStand:
		return stand(prev), nil
	case EventSurrender:
		h := stand(prev)
		h.Surrendered = true
		return h, nil
	case EventDeal:
		return deal(ctx)
	case EventSplit, EventHit, EventDouble, EventInsurance:
	default:
		return Hand{}, fmt.Errorf("%w: %s", ErrUnknownEvent, ev)
	}

	if prev.Closed {
		return Hand{}, fmt.Errorf("%s: %w", ev, ErrHandClosed)
	}

	base, err := Evaluate(ctx.Player, ctx.Dealer)
	if err != nil {
		return Hand{}, fmt.Errorf("%s: %w", ev, err)
	}
	base.InsuranceValue = prev.InsuranceValue

	var h Hand
	switch ev {
	case EventSplit:
		h = split(base, ctx.Bet)
	case EventHit:
		h = hit(base, ctx.Bet)
	case EventDouble:
		h = double(base, ctx.Bet)
	case EventInsurance:
		h = insure(base, prev.Bet, ctx.Bet)
	}
	return h.settle(), nil
}

func deal(ctx Context) (Hand, error) {
	h, err := Evaluate(ctx.Player, ctx.Dealer)
	if err != nil {
		return Hand{}, fmt.Errorf("%s: %w", EventDeal, err)
	}
	h.Bet = ctx.Bet
	h.Actions.Stand = true
	h.Actions.Hit = true
	h.Actions.Surrender = true
	// A natural stays open against an ace up-card so insurance can be taken.
	h.Closed = h.Blackjack && !ctx.Dealer[0].IsAce()
	return h.settle(), nil
}

func split(h Hand, bet float64) Hand {
	h.Bet = bet
	h.Actions.Stand = false
	h.Actions.Split = false
	h.Actions.Double = false
	h.Actions.Insurance = false
	h.Actions.NoInsurance = false
	h.Actions.Surrender = false
	return h
}

func hit(h Hand, bet float64) Hand {
	h.Bet = bet
	h.Actions.Double = len(h.Cards) == 2
	h.Actions.Split = false
	h.Actions.Insurance = false
	h.Actions.NoInsurance = false
	h.Actions.Surrender = false
	return h
}

func double(h Hand, bet float64) Hand {
	h = hit(h, bet)
	h.Actions.Hit = false
	h.Actions.Stand = false
	h.Bet = bet * 2
	h.Closed = true
	return h
}

func insure(h Hand, bet, stake float64) Hand {
	h.Bet = bet
	h.InsuranceValue = stake
	h.Actions.Insurance = false
	h.Actions.NoInsurance = false
	return h
}

func stand(h Hand) Hand {
	h.Closed = true
	h.Actions = Actions{}
	return h
}

// AfterDeal builds the hand for the two initial player cards.
func AfterDeal(player, dealer []Card, bet float64) (Hand, error) {
	return Apply(Hand{}, EventDeal, Context{Player: player, Dealer: dealer, Bet: bet})
}

// AfterSplit builds one of the hands produced by a split.
func AfterSplit(player, dealer []Card, bet float64) (Hand, error) {
	return Apply(Hand{}, EventSplit, Context{Player: player, Dealer: dealer, Bet: bet})
}

// AfterHit builds the hand after a card was hit; player includes the new card.
func AfterHit(player, dealer []Card, bet float64) (Hand, error) {
	return Apply(Hand{}, EventHit, Context{Player: player, Dealer: dealer, Bet: bet})
}

// AfterDouble builds the hand after doubling down; bet is the initial bet.
func AfterDouble(player, dealer []Card, bet float64) (Hand, error) {
	return Apply(Hand{}, EventDouble, Context{Player: player, Dealer: dealer, Bet: bet})
}

// AfterStand closes h.
func AfterStand(h Hand) Hand {
	return stand(h)
}

// AfterSurrender closes h and marks it surrendered.
func AfterSurrender(h Hand) Hand {
	h = stand(h)
	h.Surrendered = true
	return h
}

// AfterInsurance builds the hand after an insurance stake was placed.
func AfterInsurance(player, dealer []Card, stake float64) (Hand, error) {
	return Apply(Hand{}, EventInsurance, Context{Player: player, Dealer: dealer, Bet: stake})
}
