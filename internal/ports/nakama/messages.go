package nakama

import "hokm/internal/domain"

// MatchLabel is the advertised match label, queried by the quick-match RPC.
type MatchLabel struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// PlayerInfo describes one occupied seat in a match snapshot.
type PlayerInfo struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	DisplayName    string `json:"display_name"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	CardsRemaining int    `json:"cards_remaining"`
}

// MatchSnapshot is broadcast after joins and leaves so clients can render
// the table.
type MatchSnapshot struct {
	Phase   string       `json:"phase"`
	Players []PlayerInfo `json:"players"`
	Round   int          `json:"round,omitempty"`
	ScoreA  int          `json:"score_a"`
	ScoreB  int          `json:"score_b"`
}

// SelectTrumpRequest is the OpSelectTrump payload.
type SelectTrumpRequest struct {
	Suit domain.Suit `json:"suit"`
}

// PlayCardRequest is the OpPlayCard payload.
type PlayCardRequest struct {
	Card domain.Card `json:"card"`
}

// TimerSync keeps client countdowns aligned with the authoritative one.
type TimerSync struct {
	CurrentTurn   int `json:"current_turn"`
	TimeRemaining int `json:"time_remaining"`
}

// GameError is a rule violation reported privately to the offending client.
type GameError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
