package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds the table defaults loaded at module startup.
type GameConfig struct {
	// ScoreLimit is the round-point total a team needs to win a game.
	ScoreLimit int `json:"score_limit"`
	// TurnDurationSeconds is the per-turn countdown.
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// AISpeed is "slow", "normal" or "fast".
	AISpeed string `json:"ai_speed"`
	// BotAutoFillDelaySeconds is how long a solo human waits in the lobby
	// before empty seats are filled with simulated opponents.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration with safe defaults filled
// in. It never returns nil.
func GetGameConfig() GameConfig {
	out := GameConfig{}
	if cfg != nil {
		out = *cfg
	}
	if out.ScoreLimit <= 0 {
		out.ScoreLimit = 7
	}
	if out.TurnDurationSeconds <= 0 {
		out.TurnDurationSeconds = 15
	}
	if out.AISpeed == "" {
		out.AISpeed = "normal"
	}
	if out.BotAutoFillDelaySeconds <= 0 {
		out.BotAutoFillDelaySeconds = 5
	}
	return out
}
