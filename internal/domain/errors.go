package domain

import "errors"

// ErrInvariantViolation marks conditions that cannot occur when the engine is
// driven correctly: malformed decks, duplicate cards across hands, resolving
// an unfinished trick. It signals a programming defect, not a player error.
var ErrInvariantViolation = errors.New("invariant violation")
