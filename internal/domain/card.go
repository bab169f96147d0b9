package domain

import "fmt"

// Suit is one of the four French suits.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"

	// SuitNone marks the absence of a suit (no trump chosen, empty trick).
	SuitNone Suit = ""
)

// Suits returns all suits in a fixed order.
func Suits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

// IsValidSuit reports whether s names a real suit.
func IsValidSuit(s Suit) bool {
	switch s {
	case Hearts, Diamonds, Clubs, Spades:
		return true
	}
	return false
}

// Rank is a card rank. The numeric value doubles as the rank's strength,
// 2 for the deuce up to 14 for the ace.
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Ranks returns all ranks in ascending strength order.
func Ranks() []Rank {
	return []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
}

// Card is a single playing card. Equality is by (suit, rank).
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// trumpBonus lifts every trump card above the strongest lead-suit card.
const trumpBonus = 100

// Power scores a card for trick resolution. Trump cards always outrank
// lead-suit cards, lead-suit cards score their rank strength, and any other
// card scores -1 and can never win the trick.
func Power(c Card, trump, lead Suit) int {
	switch c.Suit {
	case trump:
		return int(c.Rank) + trumpBonus
	case lead:
		return int(c.Rank)
	default:
		return -1
	}
}
