package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Identity is one entry of the simulated-opponent pool.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy" or "hard"
	AvatarIndex int    `json:"avatar_index"`
}

var (
	identities     []Identity
	idMap          map[string]bool
	displayNameMap map[string]string
	poolOnce       sync.Once
	loadOnce       sync.Once
	loadErr        error
)

var defaultNames = []struct {
	name       string
	difficulty string
}{
	{"Arash", "hard"},
	{"Leila", "easy"},
	{"Kaveh", "hard"},
	{"Shirin", "easy"},
	{"Babak", "hard"},
	{"Yasmin", "easy"},
}

// LoadIdentities replaces the built-in opponent pool with profiles from the
// given JSON file. Calling it is optional; without it a generated default
// pool is used.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var loaded []Identity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		poolOnce.Do(func() {})
		identities = identities[:0]
		idMap = make(map[string]bool)
		displayNameMap = make(map[string]string)
		for _, identity := range loaded {
			if identity.UserID == "" {
				identity.UserID = "bot-" + uuid.NewString()
			}
			registerIdentity(identity)
		}
	})
	return loadErr
}

func ensurePool() {
	poolOnce.Do(func() {
		idMap = make(map[string]bool)
		displayNameMap = make(map[string]string)
		for i, d := range defaultNames {
			registerIdentity(Identity{
				UserID:      "bot-" + uuid.NewString(),
				Username:    fmt.Sprintf("%s_bot", d.name),
				DisplayName: d.name,
				Difficulty:  d.difficulty,
				AvatarIndex: i,
			})
		}
	})
}

func registerIdentity(identity Identity) {
	identities = append(identities, identity)
	idMap[identity.UserID] = true
	displayNameMap[identity.UserID] = identity.DisplayName
}

// GetIdentity returns an identity by index (mod pool size).
func GetIdentity(index int) Identity {
	ensurePool()
	return identities[index%len(identities)]
}

// IsBot reports whether the user ID belongs to the opponent pool.
func IsBot(userID string) bool {
	ensurePool()
	return idMap[userID]
}

// GetDisplayName returns the display name for a bot ID, or "" for non-bots.
func GetDisplayName(userID string) string {
	ensurePool()
	return displayNameMap[userID]
}
