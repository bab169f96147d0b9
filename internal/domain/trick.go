package domain

import "fmt"

// Play is one card played by one seat within a trick.
type Play struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// Trick is the ordered sequence of up to four plays. The suit of the first
// play is the lead suit for the whole trick.
type Trick struct {
	Plays []Play `json:"plays"`
}

// LeadSuit returns the suit of the first play, or SuitNone for an empty trick.
func (t *Trick) LeadSuit() Suit {
	if len(t.Plays) == 0 {
		return SuitNone
	}
	return t.Plays[0].Card.Suit
}

// Add appends a play to the trick.
func (t *Trick) Add(seat Seat, card Card) {
	t.Plays = append(t.Plays, Play{Seat: seat, Card: card})
}

// Complete reports whether all four seats have played.
func (t *Trick) Complete() bool {
	return len(t.Plays) == SeatCount
}

// Clear empties the trick for the next one.
func (t *Trick) Clear() {
	t.Plays = nil
}

// Resolve returns the seat whose play has maximal power under the given trump
// suit. The leader's own card always carries the lead suit, so at least one
// play has non-negative power and a winner always exists. Equal powers cannot
// occur with a standard deck; if a customized card set produces one, the
// earliest play keeps the trick.
func (t *Trick) Resolve(trump Suit) (Seat, error) {
	if !t.Complete() {
		return SeatNone, fmt.Errorf("resolve: trick has %d plays, want %d: %w", len(t.Plays), SeatCount, ErrInvariantViolation)
	}

	lead := t.LeadSuit()
	winner := t.Plays[0].Seat
	best := Power(t.Plays[0].Card, trump, lead)
	for _, p := range t.Plays[1:] {
		if pw := Power(p.Card, trump, lead); pw > best {
			best = pw
			winner = p.Seat
		}
	}
	return winner, nil
}

// LegalPlays returns the subset of hand that may be played on the trick: the
// whole hand when leading or when void in the lead suit, otherwise only the
// cards that follow suit.
func LegalPlays(hand []Card, trick *Trick) []Card {
	lead := SuitNone
	if trick != nil {
		lead = trick.LeadSuit()
	}
	if lead == SuitNone || !HasSuit(hand, lead) {
		return append([]Card{}, hand...)
	}

	legal := make([]Card, 0, len(hand))
	for _, c := range hand {
		if c.Suit == lead {
			legal = append(legal, c)
		}
	}
	return legal
}

// HasSuit reports whether the hand holds at least one card of the suit.
func HasSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// ContainsCard reports whether the hand holds the exact card.
func ContainsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard returns the hand with one occurrence of card removed. The second
// return value is false when the card was not in the hand.
func RemoveCard(hand []Card, card Card) ([]Card, bool) {
	for i, c := range hand {
		if c == card {
			out := make([]Card, 0, len(hand)-1)
			out = append(out, hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, true
		}
	}
	return hand, false
}
