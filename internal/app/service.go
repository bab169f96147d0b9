package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"hokm/internal/domain"
)

// AISpeed selects how long simulated seats pretend to think.
type AISpeed string

const (
	AISpeedSlow   AISpeed = "slow"
	AISpeedNormal AISpeed = "normal"
	AISpeedFast   AISpeed = "fast"
)

// DelayMillis returns the thinking delay for the speed setting.
func (s AISpeed) DelayMillis() int {
	switch s {
	case AISpeedSlow:
		return 2000
	case AISpeedFast:
		return 500
	default:
		return 1000
	}
}

const (
	// DefaultScoreLimit is the cumulative score a team needs to win the game.
	DefaultScoreLimit = 7
	// DefaultTimePerTurn is the per-turn countdown in seconds.
	DefaultTimePerTurn = 15
	// SweepPoints is awarded for winning all tricks of a round.
	SweepPoints = 2
	// RoundPoints is awarded for winning the majority of tricks.
	RoundPoints = 1
	// tickMillis is how much simulated time one Tick advances.
	tickMillis = 1000
)

// Options are the recognized game options. Zero values mean defaults.
type Options struct {
	ScoreLimit  int
	TimePerTurn int
	AISpeed     AISpeed
}

var (
	// ErrIllegalPlay rejects a play made out of turn, with a card not in
	// hand, or with a card that violates the follow-suit rule. The game
	// state is left untouched.
	ErrIllegalPlay = errors.New("illegal play")
	// ErrInvalidTrumpSelection rejects a trump choice by the wrong seat,
	// outside the trump-selection stage, or naming no real suit.
	ErrInvalidTrumpSelection = errors.New("invalid trump selection")
)

// Service contains the Hokm use-cases operating on domain state. All
// GameState mutations go through its transition methods.
type Service struct {
	rng      *rand.Rand
	policies map[domain.Seat]Policy
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		rng:      rng,
		policies: make(map[domain.Seat]Policy),
	}
}

// RegisterPolicy attaches a decision policy to a seat, marking it as
// simulated. Seats without a policy are human: they get the turn countdown
// and the timeout fallback instead of scheduled moves.
func (s *Service) RegisterPolicy(seat domain.Seat, p Policy) {
	s.policies[seat] = p
}

// UnregisterPolicy detaches the seat's policy, returning it to human control.
func (s *Service) UnregisterPolicy(seat domain.Seat) {
	delete(s.policies, seat)
}

// IsSimulated reports whether the seat is driven by a registered policy.
func (s *Service) IsSimulated(seat domain.Seat) bool {
	return s.policies[seat] != nil
}

// NewGame initializes a fresh game: round 1, zero scores, seat 1 calling
// trump, hands dealt.
func (s *Service) NewGame(opts Options) (*domain.GameState, []Event, error) {
	if opts.ScoreLimit <= 0 {
		opts.ScoreLimit = DefaultScoreLimit
	}
	if opts.TimePerTurn <= 0 {
		opts.TimePerTurn = DefaultTimePerTurn
	}

	g := &domain.GameState{
		Config: domain.Config{
			ScoreLimit:     opts.ScoreLimit,
			TimePerTurn:    opts.TimePerTurn,
			BotDelayMillis: opts.AISpeed.DelayMillis(),
		},
		Score:      map[domain.Team]int{domain.TeamA: 0, domain.TeamB: 0},
		TrickCount: map[domain.Team]int{domain.TeamA: 0, domain.TeamB: 0},
	}

	events, err := s.beginRound(g, 1, domain.FirstSeat)
	if err != nil {
		return nil, nil, err
	}
	return g, events, nil
}

// Reset reinitializes a finished (or abandoned) game in place, keeping its
// configuration: round 1, zero scores, seat 1 calling trump, fresh hands.
func (s *Service) Reset(g *domain.GameState) ([]Event, error) {
	g.Score = map[domain.Team]int{domain.TeamA: 0, domain.TeamB: 0}
	g.Winner = ""
	g.Rounds = nil
	g.LastTrickWinner = domain.SeatNone
	g.Logf(domain.LogGame, "new game started")
	return s.beginRound(g, 1, domain.FirstSeat)
}

// SelectTrump sets the round's trump suit and moves the game into the
// playing stage with the caller on turn.
func (s *Service) SelectTrump(g *domain.GameState, seat domain.Seat, suit domain.Suit) ([]Event, error) {
	if g.Stage != domain.StageTrumpSelection {
		return nil, fmt.Errorf("stage is %s: %w", g.Stage, ErrInvalidTrumpSelection)
	}
	if seat != g.TrumpCaller {
		return nil, fmt.Errorf("seat %d is not the trump caller (seat %d): %w", seat, g.TrumpCaller, ErrInvalidTrumpSelection)
	}
	if !domain.IsValidSuit(suit) {
		return nil, fmt.Errorf("unknown suit %q: %w", suit, ErrInvalidTrumpSelection)
	}

	g.TrumpSuit = suit
	g.Stage = domain.StagePlaying
	g.CurrentTurn = g.TrumpCaller
	s.resetTurnClock(g)
	g.Logf(domain.LogTrump, "seat %d calls %s as trump", seat, suit)

	return []Event{{
		Kind:    EventTrumpSelected,
		Payload: TrumpSelectedPayload{Seat: seat, Trump: suit},
	}}, nil
}

// PlayCard accepts one play from the seat on turn, resolving the trick and
// the round when they complete. Illegal plays are rejected without mutating
// any state.
func (s *Service) PlayCard(g *domain.GameState, seat domain.Seat, card domain.Card) ([]Event, error) {
	if g.Stage != domain.StagePlaying {
		return nil, fmt.Errorf("stage is %s: %w", g.Stage, ErrIllegalPlay)
	}
	if seat != g.CurrentTurn {
		return nil, fmt.Errorf("seat %d played out of turn (turn is seat %d): %w", seat, g.CurrentTurn, ErrIllegalPlay)
	}
	if !domain.ContainsCard(g.Hands[seat], card) {
		return nil, fmt.Errorf("seat %d does not hold %s: %w", seat, card, ErrIllegalPlay)
	}
	if !domain.ContainsCard(domain.LegalPlays(g.Hands[seat], &g.Trick), card) {
		return nil, fmt.Errorf("seat %d must follow %s: %w", seat, g.Trick.LeadSuit(), ErrIllegalPlay)
	}

	hand, _ := domain.RemoveCard(g.Hands[seat], card)
	g.Hands[seat] = hand
	g.Trick.Add(seat, card)
	g.Logf(domain.LogPlay, "seat %d plays %s", seat, card)

	if !g.Trick.Complete() {
		g.CurrentTurn = seat.Next()
		s.resetTurnClock(g)
		return []Event{{
			Kind:    EventCardPlayed,
			Payload: CardPlayedPayload{Seat: seat, Card: card, NextTurn: g.CurrentTurn},
		}}, nil
	}

	winner, err := g.Trick.Resolve(g.TrumpSuit)
	if err != nil {
		return nil, err
	}
	team := domain.TeamOf(winner)
	g.TrickCount[team]++
	g.LastTrickWinner = winner
	g.Trick.Clear()
	g.CurrentTurn = winner
	s.resetTurnClock(g)
	g.Logf(domain.LogTrick, "seat %d takes the trick for team %s", winner, team)

	events := []Event{
		{
			Kind:    EventCardPlayed,
			Payload: CardPlayedPayload{Seat: seat, Card: card, NextTurn: winner},
		},
		{
			Kind: EventTrickWon,
			Payload: TrickWonPayload{
				Seat:    winner,
				Team:    team,
				TricksA: g.TrickCount[domain.TeamA],
				TricksB: g.TrickCount[domain.TeamB],
			},
		},
	}

	if g.TricksPlayed() < domain.HandSize {
		return events, nil
	}

	roundEvents, err := s.finishRound(g)
	if err != nil {
		return nil, err
	}
	return append(events, roundEvents...), nil
}

// Tick advances the engine by one second: it runs the turn countdown, forces
// a fallback play on expiry, and schedules simulated seats' moves after
// their thinking delay.
func (s *Service) Tick(g *domain.GameState) ([]Event, error) {
	switch g.Stage {
	case domain.StageTrumpSelection:
		policy := s.policies[g.TrumpCaller]
		if policy == nil {
			return nil, nil
		}
		g.BotThinkMillis += tickMillis
		if g.BotThinkMillis < g.Config.BotDelayMillis {
			return nil, nil
		}
		suit := policy.ChooseTrump(g.HandOf(g.TrumpCaller))
		if !domain.IsValidSuit(suit) {
			suit = domain.Suits()[s.rng.Intn(len(domain.Suits()))]
		}
		return s.SelectTrump(g, g.TrumpCaller, suit)

	case domain.StagePlaying:
		g.TimeRemaining--
		seat := g.CurrentTurn

		if policy := s.policies[seat]; policy != nil && g.TimeRemaining > 0 {
			g.BotThinkMillis += tickMillis
			if g.BotThinkMillis < g.Config.BotDelayMillis {
				return nil, nil
			}
			card, err := policy.ChooseCard(g.HandOf(seat), &g.Trick, g.TrumpSuit)
			if err != nil || !domain.ContainsCard(g.LegalPlaysFor(seat), card) {
				card = s.randomLegalCard(g, seat)
			}
			return s.PlayCard(g, seat, card)
		}

		if g.TimeRemaining > 0 {
			return nil, nil
		}

		card := s.randomLegalCard(g, seat)
		g.Logf(domain.LogTimer, "seat %d ran out of time, playing %s", seat, card)
		events, err := s.PlayCard(g, seat, card)
		if err != nil {
			return nil, err
		}
		timeout := Event{
			Kind:    EventTurnTimeout,
			Payload: TurnTimeoutPayload{Seat: seat, Card: card},
		}
		return append([]Event{timeout}, events...), nil
	}
	return nil, nil
}

// beginRound deals fresh hands and opens trump selection.
func (s *Service) beginRound(g *domain.GameState, round int, caller domain.Seat) ([]Event, error) {
	deck := domain.Shuffle(s.rng, domain.NewDeck())
	hands, err := domain.Deal(deck)
	if err != nil {
		return nil, err
	}

	g.RoundNumber = round
	g.Hands = hands
	g.TrickCount = map[domain.Team]int{domain.TeamA: 0, domain.TeamB: 0}
	g.Trick.Clear()
	g.TrumpSuit = domain.SuitNone
	g.TrumpCaller = caller
	g.CurrentTurn = caller
	g.Stage = domain.StageTrumpSelection
	s.resetTurnClock(g)
	g.Logf(domain.LogDeal, "round %d dealt, seat %d calls trump", round, caller)

	events := make([]Event, 0, domain.SeatCount)
	for seat := domain.FirstSeat; seat <= domain.Seat(domain.SeatCount); seat++ {
		events = append(events, Event{
			Kind:    EventHandDealt,
			Payload: HandDealtPayload{Seat: seat, Hand: g.HandOf(seat)},
			ToSeat:  seat,
		})
	}
	return events, nil
}

// finishRound awards round points and either ends the game or begins the
// next round with the last trick's winner calling trump.
func (s *Service) finishRound(g *domain.GameState) ([]Event, error) {
	winner := domain.TeamA
	if g.TrickCount[domain.TeamB] > g.TrickCount[domain.TeamA] {
		winner = domain.TeamB
	}
	sweep := g.TrickCount[winner] == domain.HandSize
	points := RoundPoints
	if sweep {
		points = SweepPoints
	}
	g.Score[winner] += points
	g.Rounds = append(g.Rounds, domain.RoundResult{
		Round:  g.RoundNumber,
		Trump:  g.TrumpSuit,
		Tricks: map[domain.Team]int{domain.TeamA: g.TrickCount[domain.TeamA], domain.TeamB: g.TrickCount[domain.TeamB]},
		Winner: winner,
		Points: points,
	})
	g.Logf(domain.LogRound, "team %s wins round %d (%d-%d) for %d point(s)",
		winner, g.RoundNumber, g.TrickCount[domain.TeamA], g.TrickCount[domain.TeamB], points)

	events := []Event{{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			Round:  g.RoundNumber,
			Winner: winner,
			Points: points,
			Sweep:  sweep,
			ScoreA: g.Score[domain.TeamA],
			ScoreB: g.Score[domain.TeamB],
		},
	}}

	if g.Score[winner] >= g.Config.ScoreLimit {
		g.Stage = domain.StageGameEnd
		g.Winner = winner
		g.CurrentTurn = domain.SeatNone
		g.TimeRemaining = 0
		g.Logf(domain.LogGame, "team %s wins the game %d-%d",
			winner, g.Score[domain.TeamA], g.Score[domain.TeamB])
		return append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				Winner: winner,
				ScoreA: g.Score[domain.TeamA],
				ScoreB: g.Score[domain.TeamB],
			},
		}), nil
	}

	dealEvents, err := s.beginRound(g, g.RoundNumber+1, g.LastTrickWinner)
	if err != nil {
		return nil, err
	}
	return append(events, dealEvents...), nil
}

// resetTurnClock restarts the single countdown for a new active seat.
func (s *Service) resetTurnClock(g *domain.GameState) {
	g.TimeRemaining = g.Config.TimePerTurn
	g.BotThinkMillis = 0
}

// randomLegalCard picks uniformly among the seat's legal plays.
func (s *Service) randomLegalCard(g *domain.GameState, seat domain.Seat) domain.Card {
	legal := g.LegalPlaysFor(seat)
	return legal[s.rng.Intn(len(legal))]
}
