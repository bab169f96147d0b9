package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"hokm/internal/app"
	"hokm/internal/bot"
	"hokm/internal/config"
	"hokm/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one Hokm table.
type MatchState struct {
	Seats     [domain.SeatCount]string    `json:"seats"`      // user IDs, "" = empty seat
	OwnerSeat int                         `json:"owner_seat"` // seat index of the match owner, -1 if none
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"`
	Engine    *app.Service                `json:"-"`
	Game      *domain.GameState           `json:"-"` // nil while in lobby

	BotsEnabled          bool                  `json:"bots_enabled"`
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"` // seconds before bots fill a waiting lobby
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"`
	Bots                 map[string]*bot.Agent `json:"-"`
	Options              app.Options           `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !bot.IsBot(seat) {
			count++
		}
	}
	return count
}

// seatIndexOf returns the seat index occupied by the user, or -1.
func seatIndexOf(seats []string, userID string) int {
	for i, id := range seats {
		if id != "" && id == userID {
			return i
		}
	}
	return -1
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userID := seats[seatIndex]
	return userID != "" && !bot.IsBot(userID)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1.
func findFirstHumanSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" && !bot.IsBot(userID) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// domainSeat converts a 0-based seat index to the 1-based engine seat.
func domainSeat(index int) domain.Seat {
	return domain.Seat(index + 1)
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing Hokm table.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	defaults := config.GetGameConfig()

	state := &MatchState{
		OwnerSeat:        -1,
		Presences:        make(map[string]runtime.Presence),
		Engine:           app.NewService(nil),
		Bots:             make(map[string]*bot.Agent),
		BotsEnabled:      true,
		BotAutoFillDelay: defaults.BotAutoFillDelaySeconds,
		Options: app.Options{
			ScoreLimit:  defaults.ScoreLimit,
			TimePerTurn: defaults.TurnDurationSeconds,
			AISpeed:     app.AISpeed(defaults.AISpeed),
		},
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["hokm_bots_enabled"]; ok {
		state.BotsEnabled = val != "false"
	}
	if val, ok := env["hokm_score_limit"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.Options.ScoreLimit = i
		}
	}
	if val, ok := env["hokm_turn_seconds"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.Options.TimePerTurn = i
		}
	}
	if val, ok := env["hokm_ai_speed"]; ok && val != "" {
		state.Options.AISpeed = app.AISpeed(val)
	}
	if val, ok := env["hokm_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.BotAutoFillDelay = i
		}
	}

	tickRate := 1 // one tick per second drives the engine countdown
	return state, tickRate, marshalLabel(state, logger)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace before the
	// game starts.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if bot.IsBot(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserID := range matchState.Seats {
				if bot.IsBot(seatUserID) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserID, p.GetUserId(), i)
					delete(matchState.Bots, seatUserID)
					matchState.Engine.UnregisterPolicy(domainSeat(i))
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
		}
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave frees seats and hands abandoned in-game seats to bot agents so
// the table keeps playing.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		i := seatIndexOf(matchState.Seats[:], p.GetUserId())
		if i < 0 {
			continue
		}

		if matchState.Game != nil && matchState.Game.Stage != domain.StageGameEnd {
			if err := mh.seatBot(matchState, i, logger); err != nil {
				logger.Error("MatchLeave: Failed to seat replacement bot: %v", err)
				matchState.Seats[i] = ""
			} else {
				logger.Info("MatchLeave: User %s left mid-game, seat %d taken over by bot.", p.GetUserId(), i)
			}
		} else {
			matchState.Seats[i] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
		}
	}

	matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg.GetUserId())
		case OpSelectTrump:
			mh.handleSelectTrump(matchState, dispatcher, logger, msg.GetUserId(), msg.GetData())
		case OpPlayCard:
			mh.handlePlayCard(matchState, dispatcher, logger, msg.GetUserId(), msg.GetData())
		case OpRequestNewGame:
			mh.handleRequestNewGame(matchState, dispatcher, logger, msg.GetUserId())
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled && matchState.Game == nil {
		mh.autoFillLobby(matchState, dispatcher, logger)
	}

	if matchState.Game != nil && matchState.Game.Stage != domain.StageGameEnd {
		events, err := matchState.Engine.Tick(matchState.Game)
		if err != nil {
			logger.Error("MatchLoop: Engine tick failed: %v", err)
		}
		mh.broadcastEvents(matchState, dispatcher, logger, events)

		if matchState.Game.Stage == domain.StagePlaying {
			mh.broadcastTimerSync(matchState, dispatcher, logger)
		}
	}

	return matchState
}

// autoFillLobby adds bot opponents to a waiting lobby after the configured
// delay, so a solo human can start a game.
func (mh *matchHandler) autoFillLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	humanCount := state.GetHumanPlayerCount()
	if humanCount == 0 || state.GetOpenSeatsCount() == 0 {
		state.LastSinglePlayerTick = 0
		return
	}

	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("autoFillLobby: Waiting lobby detected, starting auto-fill timer.")
		return
	}

	if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay) {
		return
	}

	added := false
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		if err := mh.seatBot(state, i, logger); err != nil {
			logger.Error("autoFillLobby: Failed to seat bot: %v", err)
			continue
		}
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastMatchState(state, dispatcher, logger)
	}
	state.LastSinglePlayerTick = 0
}

// seatBot occupies the seat index with a fresh bot agent and, when a game is
// running, registers its policy with the engine.
func (mh *matchHandler) seatBot(state *MatchState, seatIndex int, logger runtime.Logger) error {
	identity := bot.GetIdentity(seatIndex)
	agent, err := bot.NewAgent(identity, domainSeat(seatIndex), nil)
	if err != nil {
		return err
	}
	state.Seats[seatIndex] = identity.UserID
	state.Bots[identity.UserID] = agent
	state.Engine.RegisterPolicy(agent.Seat, agent)
	logger.Info("seatBot: Added bot %s (%s) to seat %d", identity.DisplayName, identity.UserID, seatIndex)
	return nil
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	senderSeat := seatIndexOf(state.Seats[:], userID)

	if state.Game != nil {
		logger.Warn("handleStartGame: Game already in progress.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("handleStartGame: User %s tried to start game but is not owner (owner_seat=%d)", userID, state.OwnerSeat)
		return
	}

	// Hokm needs exactly four seats; fill the remainder with bots.
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		if !state.BotsEnabled {
			logger.Warn("handleStartGame: Cannot start with open seats and bots disabled.")
			return
		}
		if err := mh.seatBot(state, i, logger); err != nil {
			logger.Error("handleStartGame: Failed to seat bot: %v", err)
			return
		}
	}

	game, events, err := state.Engine.NewGame(state.Options)
	if err != nil {
		logger.Error("handleStartGame: Failed to start game: %v", err)
		return
	}
	state.Game = game

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
	mh.broadcastEvents(state, dispatcher, logger, events)

	logger.Info("handleStartGame: Game started, seat %d calls trump.", game.TrumpCaller)
}

func (mh *matchHandler) handleSelectTrump(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, data []byte) {
	senderSeat := seatIndexOf(state.Seats[:], userID)

	if state.Game == nil {
		logger.Warn("handleSelectTrump: Game not started.")
		return
	}
	if senderSeat < 0 {
		logger.Warn("handleSelectTrump: User %s has no seat.", userID)
		return
	}

	var request SelectTrumpRequest
	if err := json.Unmarshal(data, &request); err != nil {
		logger.Warn("handleSelectTrump: Invalid payload from %s: %v", userID, err)
		mh.sendError(state, dispatcher, logger, userID, 400, "invalid payload")
		return
	}

	events, err := state.Engine.SelectTrump(state.Game, domainSeat(senderSeat), request.Suit)
	if err != nil {
		logger.Warn("handleSelectTrump: User %s (seat %d) rejected: %v", userID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, userID, 400, err.Error())
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePlayCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, data []byte) {
	senderSeat := seatIndexOf(state.Seats[:], userID)

	if state.Game == nil {
		logger.Warn("handlePlayCard: Game not started.")
		return
	}
	if senderSeat < 0 {
		logger.Warn("handlePlayCard: User %s has no seat.", userID)
		return
	}

	var request PlayCardRequest
	if err := json.Unmarshal(data, &request); err != nil {
		logger.Warn("handlePlayCard: Invalid payload from %s: %v", userID, err)
		mh.sendError(state, dispatcher, logger, userID, 400, "invalid payload")
		return
	}

	events, err := state.Engine.PlayCard(state.Game, domainSeat(senderSeat), request.Card)
	if err != nil {
		logger.Warn("handlePlayCard: User %s (seat %d) rejected: %v. Requested: %+v",
			userID, senderSeat, err, request.Card)
		mh.sendError(state, dispatcher, logger, userID, 400, err.Error())
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) handleRequestNewGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	senderSeat := seatIndexOf(state.Seats[:], userID)

	if state.Game == nil || state.Game.Stage != domain.StageGameEnd {
		logger.Warn("handleRequestNewGame: No finished game to restart.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("handleRequestNewGame: User %s is not owner.", userID)
		return
	}

	events, err := state.Engine.Reset(state.Game)
	if err != nil {
		logger.Error("handleRequestNewGame: Reset failed: %v", err)
		return
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvents(state, dispatcher, logger, events)
}

// broadcastEvents converts engine events to wire messages. Seat-targeted
// events go only to that seat's presence; events for bot seats are dropped
// rather than leaked to everyone else.
func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		var opCode int64
		switch ev.Kind {
		case app.EventHandDealt:
			opCode = OpHandDealt
		case app.EventTrumpSelected:
			opCode = OpTrumpSelected
		case app.EventCardPlayed:
			opCode = OpCardPlayed
		case app.EventTrickWon:
			opCode = OpTrickWon
		case app.EventRoundEnded:
			opCode = OpRoundEnded
		case app.EventGameEnded:
			opCode = OpGameEnded
		case app.EventTurnTimeout:
			opCode = OpTurnTimeout
		default:
			logger.Warn("broadcastEvents: Unknown event kind: %v", ev.Kind)
			continue
		}

		data, err := json.Marshal(ev.Payload)
		if err != nil {
			logger.Error("broadcastEvents: Failed to marshal %v: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if ev.ToSeat != domain.SeatNone {
			userID := state.Seats[int(ev.ToSeat)-1]
			p, ok := state.Presences[userID]
			if !ok {
				// Bot seat or disconnected user; never broadcast a
				// private payload as a fallback.
				continue
			}
			recipients = []runtime.Presence{p}
		}

		if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
			logger.Error("broadcastEvents: Broadcast failed: %v", err)
		}

		if ev.Kind == app.EventGameEnded {
			mh.updateLabel(state, dispatcher, logger)
		}
	}
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snapshot := MatchSnapshot{Phase: matchPhase(state)}
	if state.Game != nil {
		snapshot.Round = state.Game.RoundNumber
		snapshot.ScoreA = state.Game.Score[domain.TeamA]
		snapshot.ScoreB = state.Game.Score[domain.TeamB]
	}

	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}

		displayName := userID
		if p, exists := state.Presences[userID]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetDisplayName(userID); name != "" {
			displayName = name
		}

		cardsRemaining := 0
		if state.Game != nil {
			cardsRemaining = len(state.Game.HandOf(domainSeat(i)))
		}

		snapshot.Players = append(snapshot.Players, PlayerInfo{
			UserID:         userID,
			Seat:           i + 1,
			DisplayName:    displayName,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          bot.IsBot(userID),
			CardsRemaining: cardsRemaining,
		})
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchState, data, nil, nil, true); err != nil {
		logger.Error("broadcastMatchState: Broadcast failed: %v", err)
	}
}

func (mh *matchHandler) broadcastTimerSync(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	data, err := json.Marshal(TimerSync{
		CurrentTurn:   int(state.Game.CurrentTurn),
		TimeRemaining: state.Game.TimeRemaining,
	})
	if err != nil {
		logger.Error("broadcastTimerSync: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpTimerSync, data, nil, nil, true); err != nil {
		logger.Error("broadcastTimerSync: Broadcast failed: %v", err)
	}
}

// sendError reports a rule violation to a specific user only.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	data, err := json.Marshal(GameError{Code: code, Message: message})
	if err != nil {
		logger.Error("sendError: Failed to marshal: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("sendError: Cannot send error to %s: presence not found", userID)
		return
	}

	if err := dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendError: Broadcast failed: %v", err)
	}
}

func matchPhase(state *MatchState) string {
	switch {
	case state.Game == nil:
		return "lobby"
	case state.Game.Stage == domain.StageGameEnd:
		return "ended"
	default:
		return "playing"
	}
}

func marshalLabel(state *MatchState, logger runtime.Logger) string {
	label := MatchLabel{
		Open:  state.Game == nil && state.GetOpenSeatsCount() > 0,
		Game:  "hokm",
		Phase: matchPhase(state),
	}
	data, err := json.Marshal(label)
	if err != nil {
		logger.Error("marshalLabel: Failed to marshal: %v", err)
		return ""
	}
	return string(data)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if err := dispatcher.MatchLabelUpdate(marshalLabel(state, logger)); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
