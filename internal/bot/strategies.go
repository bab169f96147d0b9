package bot

import (
	"errors"
	"math/rand"

	"hokm/internal/domain"
)

var errEmptyHand = errors.New("no cards to choose from")

// RandomBrain plays a uniformly random legal card and calls a uniformly
// random trump suit. It is the baseline policy and the one the engine's
// timeout fallback mirrors.
type RandomBrain struct {
	rng *rand.Rand
}

func NewRandomBrain(rng *rand.Rand) *RandomBrain {
	return &RandomBrain{rng: rng}
}

func (b *RandomBrain) ChooseCard(hand []domain.Card, trick *domain.Trick, trump domain.Suit) (domain.Card, error) {
	legal := domain.LegalPlays(hand, trick)
	if len(legal) == 0 {
		return domain.Card{}, errEmptyHand
	}
	return legal[b.rng.Intn(len(legal))], nil
}

func (b *RandomBrain) ChooseTrump(hand []domain.Card) domain.Suit {
	suits := domain.Suits()
	return suits[b.rng.Intn(len(suits))]
}

// GreedyBrain wins tricks as cheaply as possible: among legal plays it picks
// the weakest card that still beats everything on the table, and sheds its
// weakest card when it cannot win. Trump is called for the longest suit in
// hand.
type GreedyBrain struct {
	rng *rand.Rand
}

func NewGreedyBrain(rng *rand.Rand) *GreedyBrain {
	return &GreedyBrain{rng: rng}
}

func (b *GreedyBrain) ChooseCard(hand []domain.Card, trick *domain.Trick, trump domain.Suit) (domain.Card, error) {
	legal := domain.LegalPlays(hand, trick)
	if len(legal) == 0 {
		return domain.Card{}, errEmptyHand
	}

	lead := domain.SuitNone
	best := -1
	if trick != nil {
		lead = trick.LeadSuit()
		for _, p := range trick.Plays {
			if pw := domain.Power(p.Card, trump, lead); pw > best {
				best = pw
			}
		}
	}

	if lead == domain.SuitNone {
		// Leading: open with the strongest non-trump card, saving trumps.
		var pick *domain.Card
		for i := range legal {
			c := legal[i]
			if c.Suit == trump {
				continue
			}
			if pick == nil || c.Rank > pick.Rank {
				pick = &legal[i]
			}
		}
		if pick != nil {
			return *pick, nil
		}
		return lowestByRank(legal), nil
	}

	// Cheapest card that still takes the trick.
	var winning *domain.Card
	for i := range legal {
		pw := domain.Power(legal[i], trump, lead)
		if pw <= best {
			continue
		}
		if winning == nil || pw < domain.Power(*winning, trump, lead) {
			winning = &legal[i]
		}
	}
	if winning != nil {
		return *winning, nil
	}
	return lowestByRank(legal), nil
}

func (b *GreedyBrain) ChooseTrump(hand []domain.Card) domain.Suit {
	counts := make(map[domain.Suit]int, domain.SeatCount)
	for _, c := range hand {
		counts[c.Suit]++
	}

	longest := make([]domain.Suit, 0, domain.SeatCount)
	max := -1
	for _, s := range domain.Suits() {
		switch {
		case counts[s] > max:
			max = counts[s]
			longest = longest[:0]
			longest = append(longest, s)
		case counts[s] == max:
			longest = append(longest, s)
		}
	}
	return longest[b.rng.Intn(len(longest))]
}

func lowestByRank(cards []domain.Card) domain.Card {
	pick := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < pick.Rank {
			pick = c
		}
	}
	return pick
}
