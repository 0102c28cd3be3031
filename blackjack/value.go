package blackjack

// HandValue holds the two totals of a hand. Hi counts aces as 11 where the
// greedy resolution allows it; Lo counts every ace as 1. Hi >= Lo always.
type HandValue struct {
	Hi int
	Lo int
}

// Soft reports whether at least one ace is being counted as 11.
func (v HandValue) Soft() bool {
	return v.Hi != v.Lo
}

// Calculate returns the totals of cards.
//
// A single card is evaluated on its own (the dealer's up-card case): an ace
// is {11, 1}. For longer hands the non-ace values are summed and the aces
// are then resolved left to right, each taking 11 on Hi only while Hi+11
// stays at or under 21. This is a greedy pass, not a search over ace
// assignments.
//
// ok is false when there is nothing to evaluate: an empty slice or a single
// zero Card. An empty slice still yields {0, 0}.
func Calculate(cards []Card) (v HandValue, ok bool) {
	switch len(cards) {
	case 0:
		return HandValue{}, false
	case 1:
		c := cards[0]
		if c.IsZero() {
			return HandValue{}, false
		}
		if c.IsAce() {
			return HandValue{Hi: 11, Lo: 1}, true
		}
		return HandValue{Hi: c.Value, Lo: c.Value}, true
	}

	aces := 0
	sum := 0
	for _, c := range cards {
		if c.IsAce() {
			aces++
			continue
		}
		sum += c.Value
	}

	v = HandValue{Hi: sum, Lo: sum}
	for range aces {
		if v.Hi+11 <= 21 {
			v.Hi += 11
		} else {
			v.Hi++
		}
		v.Lo++
	}
	return v, true
}

// IsBlackjack reports whether cards are exactly two cards totalling 21.
func IsBlackjack(cards []Card) bool {
	if len(cards) != 2 {
		return false
	}
	v, _ := Calculate(cards)
	return v.Hi == 21
}
