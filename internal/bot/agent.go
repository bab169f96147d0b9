package bot

import (
	"math/rand"

	"hokm/internal/domain"
)

// Agent is an autonomous opponent occupying one seat. It carries an identity
// for display purposes and delegates decisions to its strategy, so it
// satisfies the engine's Policy interface directly.
type Agent struct {
	ID       string
	Name     string
	Seat     domain.Seat
	Strategy Brain
}

// NewAgent builds an agent for the given bot identity and seat. rng may be
// nil for a time-seeded default; tests pass a seeded source.
func NewAgent(identity Identity, seat domain.Seat, rng *rand.Rand) (*Agent, error) {
	brain, err := NewBrain(LevelFromDifficulty(identity.Difficulty), rng)
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:       identity.UserID,
		Name:     identity.DisplayName,
		Seat:     seat,
		Strategy: brain,
	}, nil
}

func (a *Agent) ChooseCard(hand []domain.Card, trick *domain.Trick, trump domain.Suit) (domain.Card, error) {
	return a.Strategy.ChooseCard(hand, trick, trump)
}

func (a *Agent) ChooseTrump(hand []domain.Card) domain.Suit {
	return a.Strategy.ChooseTrump(hand)
}
