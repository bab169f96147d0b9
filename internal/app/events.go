package app

import "hokm/internal/domain"

// EventKind identifies engine events emitted by state transitions.
type EventKind string

const (
	EventHandDealt     EventKind = "hand_dealt"
	EventTrumpSelected EventKind = "trump_selected"
	EventCardPlayed    EventKind = "card_played"
	EventTrickWon      EventKind = "trick_won"
	EventRoundEnded    EventKind = "round_ended"
	EventGameEnded     EventKind = "game_ended"
	EventTurnTimeout   EventKind = "turn_timeout"
)

// Event is an engine event with an optional private target seat.
type Event struct {
	Kind    EventKind
	Payload any
	// ToSeat targets the event at a single seat (private hand contents);
	// SeatNone means broadcast.
	ToSeat domain.Seat
}

type HandDealtPayload struct {
	Seat domain.Seat   `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type TrumpSelectedPayload struct {
	Seat  domain.Seat `json:"seat"`
	Trump domain.Suit `json:"trump"`
}

type CardPlayedPayload struct {
	Seat     domain.Seat `json:"seat"`
	Card     domain.Card `json:"card"`
	NextTurn domain.Seat `json:"next_turn"`
}

type TrickWonPayload struct {
	Seat   domain.Seat `json:"seat"`
	Team   domain.Team `json:"team"`
	TricksA int        `json:"tricks_a"`
	TricksB int        `json:"tricks_b"`
}

type RoundEndedPayload struct {
	Round  int         `json:"round"`
	Winner domain.Team `json:"winner"`
	Points int         `json:"points"`
	Sweep  bool        `json:"sweep"`
	ScoreA int         `json:"score_a"`
	ScoreB int         `json:"score_b"`
}

type GameEndedPayload struct {
	Winner domain.Team `json:"winner"`
	ScoreA int         `json:"score_a"`
	ScoreB int         `json:"score_b"`
}

type TurnTimeoutPayload struct {
	Seat domain.Seat `json:"seat"`
	Card domain.Card `json:"card"`
}
