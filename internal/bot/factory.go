package bot

import (
	"fmt"
	"math/rand"
	"time"
)

// BotLevel selects a strategy implementation.
type BotLevel int

const (
	BotLevelEasy BotLevel = iota
	BotLevelHard
)

// LevelFromDifficulty maps an identity difficulty string to a level.
// Unknown values get the hard brain.
func LevelFromDifficulty(difficulty string) BotLevel {
	if difficulty == "easy" {
		return BotLevelEasy
	}
	return BotLevelHard
}

// NewBrain creates a brain for the specified level. rng may be nil for a
// time-seeded default.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch level {
	case BotLevelEasy:
		return NewRandomBrain(rng), nil
	case BotLevelHard:
		return NewGreedyBrain(rng), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
