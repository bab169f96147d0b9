package domain

import "fmt"

// SeatCount is the fixed number of seats at a Hokm table.
const SeatCount = 4

// Seat identifies one of the four fixed player positions, 1..4.
type Seat int

const (
	// SeatNone is the zero seat, used where no seat applies.
	SeatNone Seat = 0
	// FirstSeat is the seat that calls trump in a fresh game.
	FirstSeat Seat = 1
)

// Valid reports whether the seat is one of the four table positions.
func (s Seat) Valid() bool {
	return s >= 1 && s <= SeatCount
}

// Next returns the seat's fixed turn-order successor: 1→2→3→4→1.
func (s Seat) Next() Seat {
	return s%SeatCount + 1
}

// Team is one of the two fixed partnerships.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// TeamOf maps a seat to its team. Partners sit across: seats 1 and 3 form
// team A, seats 2 and 4 form team B.
func TeamOf(s Seat) Team {
	if s%2 == 1 {
		return TeamA
	}
	return TeamB
}

// Stage is the lifecycle stage of a Hokm game.
type Stage string

const (
	// StageTrumpSelection waits for the trump caller to pick a suit.
	StageTrumpSelection Stage = "trump_selection"
	// StagePlaying is the active trick-play stage.
	StagePlaying Stage = "playing"
	// StageGameEnd is terminal; only an explicit reset leaves it.
	StageGameEnd Stage = "game_end"
)

// LogEntry is one append-only game log line for the presentation layer.
type LogEntry struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Log categories.
const (
	LogDeal  = "deal"
	LogTrump = "trump"
	LogPlay  = "play"
	LogTrick = "trick"
	LogRound = "round"
	LogGame  = "game"
	LogTimer = "timer"
)

// RoundResult records one finished round for the history.
type RoundResult struct {
	Round  int           `json:"round"`
	Trump  Suit          `json:"trump"`
	Tricks map[Team]int  `json:"tricks"`
	Winner Team          `json:"winner"`
	Points int           `json:"points"`
}

// Config holds the recognized game options. Zero values mean defaults.
type Config struct {
	// ScoreLimit is the cumulative round-point total a team needs to win.
	ScoreLimit int `json:"score_limit"`
	// TimePerTurn is the per-turn countdown in seconds.
	TimePerTurn int `json:"time_per_turn"`
	// BotDelayMillis is how long a simulated seat "thinks" before acting.
	BotDelayMillis int `json:"bot_delay_millis"`
}

// GameState is the authoritative aggregate for one Hokm game. It is owned by
// the app service; every other layer reads it or requests transitions, never
// mutates it directly.
type GameState struct {
	Config Config `json:"config"`

	Stage       Stage `json:"stage"`
	RoundNumber int   `json:"round_number"`

	TrumpSuit   Suit `json:"trump_suit"`
	TrumpCaller Seat `json:"trump_caller"`

	CurrentTurn Seat            `json:"current_turn"`
	Trick       Trick           `json:"trick"`
	Hands       map[Seat][]Card `json:"hands"`

	Score      map[Team]int `json:"score"`
	TrickCount map[Team]int `json:"trick_count"`

	// LastTrickWinner leads the next trick and, at round end, calls trump
	// for the following round.
	LastTrickWinner Seat `json:"last_trick_winner"`

	// TimeRemaining is the active turn countdown in seconds. There is at
	// most one countdown at any time.
	TimeRemaining int `json:"time_remaining"`
	// BotThinkMillis accumulates simulated thinking time for the seat on
	// turn; reset whenever the turn changes.
	BotThinkMillis int `json:"bot_think_millis"`

	Winner Team          `json:"winner,omitempty"`
	Rounds []RoundResult `json:"rounds"`
	Log    []LogEntry    `json:"log"`
}

// Logf appends a formatted entry to the game log.
func (g *GameState) Logf(category, format string, args ...any) {
	g.Log = append(g.Log, LogEntry{
		Message:  fmt.Sprintf(format, args...),
		Category: category,
	})
}

// HandOf returns a copy of the seat's current hand.
func (g *GameState) HandOf(seat Seat) []Card {
	return append([]Card{}, g.Hands[seat]...)
}

// LegalPlaysFor returns the cards the seat may play on the current trick.
func (g *GameState) LegalPlaysFor(seat Seat) []Card {
	return LegalPlays(g.Hands[seat], &g.Trick)
}

// TrickPlays returns a copy of the trick in progress.
func (g *GameState) TrickPlays() []Play {
	return append([]Play{}, g.Trick.Plays...)
}

// LeadSuit returns the lead suit of the trick in progress, or SuitNone.
func (g *GameState) LeadSuit() Suit {
	return g.Trick.LeadSuit()
}

// TricksPlayed returns the number of completed tricks this round.
func (g *GameState) TricksPlayed() int {
	return g.TrickCount[TeamA] + g.TrickCount[TeamB]
}
