package domain

import (
	"errors"
	"testing"
)

func TestLegalPlays(t *testing.T) {
	hand := []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Spades, Rank: Seven},
		{Suit: Hearts, Rank: King},
		{Suit: Diamonds, Rank: Three},
	}

	tests := []struct {
		name     string
		trick    *Trick
		expected []Card
	}{
		{
			name:     "leading allows the whole hand",
			trick:    &Trick{},
			expected: hand,
		},
		{
			name:     "nil trick allows the whole hand",
			trick:    nil,
			expected: hand,
		},
		{
			name: "must follow the lead suit when holding it",
			trick: &Trick{Plays: []Play{
				{Seat: 2, Card: Card{Suit: Spades, Rank: Four}},
			}},
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: Seven},
			},
		},
		{
			name: "void in the lead suit frees the whole hand",
			trick: &Trick{Plays: []Play{
				{Seat: 2, Card: Card{Suit: Clubs, Rank: Four}},
			}},
			expected: hand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legal := LegalPlays(hand, tt.trick)
			if len(legal) != len(tt.expected) {
				t.Fatalf("got %d legal plays, want %d", len(legal), len(tt.expected))
			}
			for i, c := range tt.expected {
				if legal[i] != c {
					t.Errorf("legal[%d] = %s, want %s", i, legal[i], c)
				}
			}
		})
	}
}

func TestTrickResolve(t *testing.T) {
	tests := []struct {
		name     string
		trump    Suit
		plays    []Play
		expected Seat
	}{
		{
			name:  "lone trump takes the trick over the lead ace",
			trump: Hearts,
			plays: []Play{
				{Seat: 1, Card: Card{Suit: Spades, Rank: Ace}},
				{Seat: 2, Card: Card{Suit: Spades, Rank: Seven}},
				{Seat: 3, Card: Card{Suit: Hearts, Rank: King}},
				{Seat: 4, Card: Card{Suit: Spades, Rank: Nine}},
			},
			expected: 3,
		},
		{
			name:  "highest lead-suit card wins without trumps",
			trump: Hearts,
			plays: []Play{
				{Seat: 2, Card: Card{Suit: Clubs, Rank: Ten}},
				{Seat: 3, Card: Card{Suit: Clubs, Rank: Queen}},
				{Seat: 4, Card: Card{Suit: Diamonds, Rank: Ace}},
				{Seat: 1, Card: Card{Suit: Clubs, Rank: Four}},
			},
			expected: 3,
		},
		{
			name:  "higher trump beats lower trump",
			trump: Spades,
			plays: []Play{
				{Seat: 4, Card: Card{Suit: Diamonds, Rank: King}},
				{Seat: 1, Card: Card{Suit: Spades, Rank: Two}},
				{Seat: 2, Card: Card{Suit: Spades, Rank: Jack}},
				{Seat: 3, Card: Card{Suit: Diamonds, Rank: Ace}},
			},
			expected: 2,
		},
		{
			name:  "leader keeps the trick when everyone else is off suit",
			trump: Hearts,
			plays: []Play{
				{Seat: 3, Card: Card{Suit: Diamonds, Rank: Two}},
				{Seat: 4, Card: Card{Suit: Clubs, Rank: Ace}},
				{Seat: 1, Card: Card{Suit: Spades, Rank: Ace}},
				{Seat: 2, Card: Card{Suit: Clubs, Rank: King}},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trick := &Trick{Plays: tt.plays}
			winner, err := trick.Resolve(tt.trump)
			if err != nil {
				t.Fatalf("resolve error: %v", err)
			}
			if winner != tt.expected {
				t.Errorf("winner = seat %d, want seat %d", winner, tt.expected)
			}
		})
	}
}

func TestTrickResolveIsRepeatable(t *testing.T) {
	trick := &Trick{Plays: []Play{
		{Seat: 1, Card: Card{Suit: Spades, Rank: Ace}},
		{Seat: 2, Card: Card{Suit: Spades, Rank: Seven}},
		{Seat: 3, Card: Card{Suit: Hearts, Rank: King}},
		{Seat: 4, Card: Card{Suit: Spades, Rank: Nine}},
	}}

	first, err := trick.Resolve(Hearts)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	second, err := trick.Resolve(Hearts)
	if err != nil {
		t.Fatalf("second resolve error: %v", err)
	}
	if first != second {
		t.Errorf("resolve changed its answer: %d then %d", first, second)
	}
	if len(trick.Plays) != SeatCount {
		t.Errorf("resolve mutated the trick: %d plays left", len(trick.Plays))
	}
}

func TestTrickResolveRejectsIncompleteTrick(t *testing.T) {
	trick := &Trick{Plays: []Play{
		{Seat: 1, Card: Card{Suit: Spades, Rank: Ace}},
	}}
	_, err := trick.Resolve(Hearts)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("err = %v, want ErrInvariantViolation", err)
	}
}

func TestRemoveCard(t *testing.T) {
	hand := []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Hearts, Rank: King},
	}

	out, ok := RemoveCard(hand, Card{Suit: Spades, Rank: Ace})
	if !ok {
		t.Fatal("expected card to be removed")
	}
	if len(out) != 1 || out[0] != (Card{Suit: Hearts, Rank: King}) {
		t.Errorf("unexpected hand after removal: %v", out)
	}

	if _, ok := RemoveCard(hand, Card{Suit: Clubs, Rank: Two}); ok {
		t.Error("removed a card that was not in the hand")
	}
}
