package blackjack

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCard is returned when card text cannot be parsed.
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit. The zero value is NoSuit, which marks a card
// built from unrecognised suit text.
type Suit uint8

const (
	NoSuit Suit = iota
	Hearts
	Diamonds
	Clubs
	Spades
)

// Suits lists the four real suits in deck order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the suit name used on the wire ("hearts", "spades", ...).
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return ""
	}
}

// Symbol returns the unicode glyph for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Color returns the suit colour.
func (s Suit) Color() Color {
	switch s {
	case Hearts, Diamonds:
		return Red
	case Clubs, Spades:
		return Black
	default:
		return NoColor
	}
}

// ParseSuit maps suit text to a Suit. Matching is case-insensitive and
// accepts the glyph, the initial, and the singular or plural name.
func ParseSuit(text string) Suit {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "♥", "h", "heart", "hearts":
		return Hearts
	case "♦", "d", "diamond", "diamonds":
		return Diamonds
	case "♣", "c", "club", "clubs":
		return Clubs
	case "♠", "s", "spade", "spades":
		return Spades
	default:
		return NoSuit
	}
}

// Color is the colour of a card's suit.
type Color uint8

const (
	NoColor Color = iota
	Red
	Black
)

func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Black:
		return "B"
	default:
		return ""
	}
}

// Rank is the card rank, 1 (ace) through 13 (king).
type Rank uint8

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// String returns "A", "2".."10", "J", "Q" or "K".
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= 2 && r <= 10 {
			return strconv.Itoa(int(r))
		}
		return ""
	}
}

// Valid reports whether r is within 1..13.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Card is an immutable playing card. Value collapses ten and the figures to
// 10 and keeps the ace at 1; soft totals are resolved by Calculate.
type Card struct {
	Rank  Rank
	Suit  Suit
	Value int
	Color Color
}

// MakeCard builds a card from a rank and suit text. Unknown suit text does
// not fail: the card carries NoSuit and NoColor and callers must check
// HasSuit before relying on either. A rank outside 1..13 yields the zero
// Card, which Calculate and Evaluate reject.
func MakeCard(rank int, suit string) Card {
	if !Rank(rank).Valid() {
		return Card{}
	}
	return NewCard(Rank(rank), ParseSuit(suit))
}

// NewCard builds a card from typed rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{
		Rank:  rank,
		Suit:  suit,
		Value: cardValue(rank),
		Color: suit.Color(),
	}
}

func cardValue(rank Rank) int {
	if rank < 10 {
		return int(rank)
	}
	return 10
}

// IsZero reports whether c is the zero Card (no rank at all).
func (c Card) IsZero() bool {
	return c.Rank == 0
}

// HasSuit reports whether the card was built from recognised suit text.
func (c Card) HasSuit() bool {
	return c.Suit != NoSuit
}

// IsAce reports whether the card is an ace.
func (c Card) IsAce() bool {
	return c.Value == 1
}

// String returns the card text, e.g. "A♥", "10♠".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// ParseCard parses a single card such as "Ah", "10-spades", "q♦" or "K-D".
// The rank comes first; an optional dash separates it from the suit.
func ParseCard(text string) (Card, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Card{}, fmt.Errorf("%w: empty text", ErrInvalidCard)
	}

	rank, rest, ok := splitRank(s)
	if !ok {
		return Card{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, text)
	}

	rest = strings.TrimPrefix(rest, "-")
	suit := ParseSuit(rest)
	if suit == NoSuit {
		return Card{}, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, text)
	}
	return NewCard(rank, suit), nil
}

// splitRank consumes the rank prefix of s.
func splitRank(s string) (Rank, string, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end > 0 {
		n, err := strconv.Atoi(s[:end])
		if err != nil || n < 1 || n > 10 {
			return 0, "", false
		}
		return Rank(n), s[end:], true
	}

	switch s[0] {
	case 'a', 'A':
		return Ace, s[1:], true
	case 'j', 'J':
		return Jack, s[1:], true
	case 'q', 'Q':
		return Queen, s[1:], true
	case 'k', 'K':
		return King, s[1:], true
	}
	return 0, "", false
}

// ParseCards parses whitespace-separated card text.
func ParseCards(text string) ([]Card, error) {
	fields := strings.Fields(text)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// FormatCards renders cards separated by single spaces. The output parses
// back with ParseCards.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
