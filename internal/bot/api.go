package bot

import "hokm/internal/domain"

// Brain is the interface all opponent strategies implement. ChooseCard must
// return an element of the legal plays for the hand and trick; the engine
// re-validates every choice through the same gate as a human play.
type Brain interface {
	ChooseCard(hand []domain.Card, trick *domain.Trick, trump domain.Suit) (domain.Card, error)
	ChooseTrump(hand []domain.Card) domain.Suit
}
