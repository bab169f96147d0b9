package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"hokm/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// voiceService is initialized lazily from runtime env; tests may set it
// directly.
var voiceService *app.VoiceService

// RpcGetVoiceToken returns a signed access token for the table voice
// channel.
// Payload: {"action": "login" | "join", "channel": "<match id>"}
func RpcGetVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("No user ID in context", 16) // UNAUTHENTICATED
	}

	var req struct {
		Action  string `json:"action"`
		Channel string `json:"channel"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}

	if voiceService == nil {
		env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
		issuer := env["voice_issuer"]
		secret := env["voice_secret"]
		domainName := env["voice_domain"]
		if issuer == "" || secret == "" || domainName == "" {
			issuer = "test-issuer"
			secret = "test-secret"
			domainName = "voice.example.com"
			logger.Warn("RpcGetVoiceToken: Voice credentials missing from env, using test defaults.")
		}
		voiceService = app.NewVoiceService(secret, issuer, domainName)
	}

	token, err := voiceService.GenerateToken(userID, req.Action, req.Channel)
	if err != nil {
		logger.Error("RpcGetVoiceToken: Failed to generate token: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	res := map[string]string{"token": token}
	resBytes, _ := json.Marshal(res)
	return string(resBytes), nil
}
