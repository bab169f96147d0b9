package domain

import (
	"fmt"
	"math/rand"
)

// DeckSize is the number of cards in a full Hokm deck.
const DeckSize = 52

// HandSize is the number of cards dealt to each seat.
const HandSize = DeckSize / SeatCount

// NewDeck returns the ordered 52-card deck: every suit crossed with every
// rank, suits in fixed order, ranks ascending.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits() {
		for _, r := range Ranks() {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle returns a uniformly shuffled copy of the given deck.
func Shuffle(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal partitions a shuffled deck contiguously into one hand per seat, keyed
// by seat. The input must be exactly the 52 unique cards; anything else is a
// defect in the caller and reported as an ErrInvariantViolation.
func Deal(deck []Card) (map[Seat][]Card, error) {
	if len(deck) != DeckSize {
		return nil, fmt.Errorf("deal: deck has %d cards, want %d: %w", len(deck), DeckSize, ErrInvariantViolation)
	}

	seen := make(map[Card]bool, DeckSize)
	for _, c := range deck {
		if seen[c] {
			return nil, fmt.Errorf("deal: duplicate card %s: %w", c, ErrInvariantViolation)
		}
		seen[c] = true
	}

	hands := make(map[Seat][]Card, SeatCount)
	idx := 0
	for seat := FirstSeat; seat <= Seat(SeatCount); seat++ {
		hands[seat] = append([]Card{}, deck[idx:idx+HandSize]...)
		idx += HandSize
	}
	return hands, nil
}
