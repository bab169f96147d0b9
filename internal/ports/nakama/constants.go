package nakama

const (
	// RpcQuickMatch is the RPC id clients call to find or create an open table.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken is the RPC id clients call to obtain a voice-channel token.
	RpcVoiceToken = "voice_token"

	// MatchNameHokm is the authoritative match handler name registered with Nakama.
	MatchNameHokm = "hokm_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame      int64 = 1
	OpSelectTrump    int64 = 2
	OpPlayCard       int64 = 3
	OpRequestNewGame int64 = 4

	// Server -> Client events
	OpMatchState    int64 = 101
	OpHandDealt     int64 = 102 // sent privately
	OpTrumpSelected int64 = 103
	OpCardPlayed    int64 = 104
	OpTrickWon      int64 = 105
	OpRoundEnded    int64 = 106
	OpGameEnded     int64 = 107
	OpGameError     int64 = 108 // sent privately
	OpTimerSync     int64 = 109
	OpTurnTimeout   int64 = 110
)
