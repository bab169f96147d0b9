package bot

import (
	"math/rand"
	"testing"

	"hokm/internal/domain"
)

func TestRandomBrainAlwaysPlaysLegally(t *testing.T) {
	brain := NewRandomBrain(rand.New(rand.NewSource(1)))
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: domain.Four},
		{Suit: domain.Spades, Rank: domain.Ten},
		{Suit: domain.Hearts, Rank: domain.Queen},
		{Suit: domain.Clubs, Rank: domain.Seven},
	}
	trick := &domain.Trick{Plays: []domain.Play{
		{Seat: 2, Card: domain.Card{Suit: domain.Spades, Rank: domain.Six}},
	}}

	for i := 0; i < 50; i++ {
		card, err := brain.ChooseCard(hand, trick, domain.Hearts)
		if err != nil {
			t.Fatalf("choose card error: %v", err)
		}
		if card.Suit != domain.Spades {
			t.Fatalf("iteration %d: played %s against a spade lead while holding spades", i, card)
		}
	}
}

func TestRandomBrainChoosesARealTrump(t *testing.T) {
	brain := NewRandomBrain(rand.New(rand.NewSource(2)))
	for i := 0; i < 20; i++ {
		if suit := brain.ChooseTrump(nil); !domain.IsValidSuit(suit) {
			t.Fatalf("iteration %d: invalid trump %q", i, suit)
		}
	}
}

func TestRandomBrainRejectsEmptyHand(t *testing.T) {
	brain := NewRandomBrain(rand.New(rand.NewSource(3)))
	if _, err := brain.ChooseCard(nil, &domain.Trick{}, domain.Hearts); err == nil {
		t.Fatal("expected error for an empty hand")
	}
}

func TestGreedyBrainChooseCard(t *testing.T) {
	tests := []struct {
		name     string
		hand     []domain.Card
		trick    *domain.Trick
		trump    domain.Suit
		expected domain.Card
	}{
		{
			name: "leads the strongest non-trump card",
			hand: []domain.Card{
				{Suit: domain.Hearts, Rank: domain.Ace},
				{Suit: domain.Spades, Rank: domain.King},
				{Suit: domain.Diamonds, Rank: domain.Three},
			},
			trick:    &domain.Trick{},
			trump:    domain.Hearts,
			expected: domain.Card{Suit: domain.Spades, Rank: domain.King},
		},
		{
			name: "wins the trick with the cheapest winner",
			hand: []domain.Card{
				{Suit: domain.Spades, Rank: domain.Jack},
				{Suit: domain.Spades, Rank: domain.Ace},
				{Suit: domain.Spades, Rank: domain.Two},
			},
			trick: &domain.Trick{Plays: []domain.Play{
				{Seat: 2, Card: domain.Card{Suit: domain.Spades, Rank: domain.Ten}},
			}},
			trump:    domain.Hearts,
			expected: domain.Card{Suit: domain.Spades, Rank: domain.Jack},
		},
		{
			name: "trumps with the lowest trump when void",
			hand: []domain.Card{
				{Suit: domain.Hearts, Rank: domain.Two},
				{Suit: domain.Hearts, Rank: domain.Nine},
				{Suit: domain.Diamonds, Rank: domain.Five},
			},
			trick: &domain.Trick{Plays: []domain.Play{
				{Seat: 2, Card: domain.Card{Suit: domain.Spades, Rank: domain.Ten}},
			}},
			trump:    domain.Hearts,
			expected: domain.Card{Suit: domain.Hearts, Rank: domain.Two},
		},
		{
			name: "sheds the lowest card when it cannot win",
			hand: []domain.Card{
				{Suit: domain.Spades, Rank: domain.Nine},
				{Suit: domain.Spades, Rank: domain.Five},
			},
			trick: &domain.Trick{Plays: []domain.Play{
				{Seat: 2, Card: domain.Card{Suit: domain.Spades, Rank: domain.Ace}},
			}},
			trump:    domain.Hearts,
			expected: domain.Card{Suit: domain.Spades, Rank: domain.Five},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brain := NewGreedyBrain(rand.New(rand.NewSource(4)))
			card, err := brain.ChooseCard(tt.hand, tt.trick, tt.trump)
			if err != nil {
				t.Fatalf("choose card error: %v", err)
			}
			if card != tt.expected {
				t.Errorf("chose %s, want %s", card, tt.expected)
			}
		})
	}
}

func TestGreedyBrainChoosesLongestSuitAsTrump(t *testing.T) {
	brain := NewGreedyBrain(rand.New(rand.NewSource(5)))
	hand := []domain.Card{
		{Suit: domain.Clubs, Rank: domain.Two},
		{Suit: domain.Clubs, Rank: domain.Five},
		{Suit: domain.Clubs, Rank: domain.Nine},
		{Suit: domain.Hearts, Rank: domain.Jack},
		{Suit: domain.Hearts, Rank: domain.Ace},
		{Suit: domain.Spades, Rank: domain.King},
	}

	if suit := brain.ChooseTrump(hand); suit != domain.Clubs {
		t.Errorf("trump = %s, want clubs", suit)
	}
}

func TestNewBrainLevels(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	easy, err := NewBrain(BotLevelEasy, rng)
	if err != nil {
		t.Fatalf("easy brain error: %v", err)
	}
	if _, ok := easy.(*RandomBrain); !ok {
		t.Errorf("easy brain is %T, want *RandomBrain", easy)
	}

	hard, err := NewBrain(BotLevelHard, rng)
	if err != nil {
		t.Fatalf("hard brain error: %v", err)
	}
	if _, ok := hard.(*GreedyBrain); !ok {
		t.Errorf("hard brain is %T, want *GreedyBrain", hard)
	}

	if _, err := NewBrain(BotLevel(99), rng); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelFromDifficulty(t *testing.T) {
	if LevelFromDifficulty("easy") != BotLevelEasy {
		t.Error("easy should map to the easy level")
	}
	if LevelFromDifficulty("hard") != BotLevelHard {
		t.Error("hard should map to the hard level")
	}
	if LevelFromDifficulty("") != BotLevelHard {
		t.Error("unknown difficulties should map to the hard level")
	}
}
