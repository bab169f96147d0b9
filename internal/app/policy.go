package app

import "hokm/internal/domain"

// Policy decides plays for a simulated seat. ChooseCard must return an
// element of the legal plays for the given hand and trick; the engine pushes
// every policy decision through the same legality gate as a human play and
// substitutes a uniformly random legal card if a policy misbehaves.
type Policy interface {
	ChooseCard(hand []domain.Card, trick *domain.Trick, trump domain.Suit) (domain.Card, error)
	ChooseTrump(hand []domain.Card) domain.Suit
}
