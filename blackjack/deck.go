package blackjack

import (
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a single deck.
const DeckSize = 52

// NewDeck returns an ordered 52-card deck: hearts, diamonds, clubs, spades,
// each from ace to king.
func NewDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// NewDecks returns n ordered decks concatenated.
func NewDecks(n int) []Card {
	if n <= 0 {
		return nil
	}
	cards := make([]Card, 0, n*DeckSize)
	for range n {
		cards = append(cards, NewDeck()...)
	}
	return cards
}

// Shuffle returns a permuted copy of cards using Fisher-Yates. The input
// slice is left untouched. rng is required so shuffles are reproducible.
func Shuffle(rng *rand.Rand, cards []Card) []Card {
	if rng == nil {
		panic("rng is required for shuffling")
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Shoe is a stack of cards drawn from the front.
type Shoe struct {
	cards []Card
	next  int
}

// NewShoe creates a shoe of n shuffled decks.
func NewShoe(rng *rand.Rand, decks int) *Shoe {
	return &Shoe{cards: Shuffle(rng, NewDecks(decks))}
}

// NewStackedShoe creates a shoe that deals cards in exactly the given order.
func NewStackedShoe(cards []Card) *Shoe {
	s := &Shoe{cards: make([]Card, len(cards))}
	copy(s.cards, cards)
	return s
}

// Draw deals the next card. ok is false once the shoe is empty.
func (s *Shoe) Draw() (Card, bool) {
	if s.next >= len(s.cards) {
		return Card{}, false
	}
	c := s.cards[s.next]
	s.next++
	return c, true
}

// Remaining returns the number of cards left to deal.
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.next
}

// Dealt returns a copy of the cards already drawn, in draw order.
func (s *Shoe) Dealt() []Card {
	out := make([]Card, s.next)
	copy(out, s.cards[:s.next])
	return out
}
