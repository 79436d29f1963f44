package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/app"
	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/bot"
	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/config"
	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/domain"
	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/ports"
)

// tickRatePerSec drives the match loop at 250ms, fine enough for the turn
// countdown and bot pacing.
const tickRatePerSec = 4

// botSeatPrefix marks synthetic user ids for bot seats.
const botSeatPrefix = "bot:"

// MatchState holds the authoritative runtime state for the practice match.
type MatchState struct {
	Presences map[string]runtime.Presence `json:"-"` // userId -> presence
	HumanID   string                      `json:"human_id"`

	App   *app.Service `json:"-"`
	Table *app.Table   `json:"-"`

	Brains       map[string]bot.Brain `json:"-"` // bot userId -> brain
	pendingSeats []app.Seat

	Tick         int64 `json:"tick"`
	BotWaitUntil int64 `json:"bot_wait_until"` // tick at which the pending bot move fires
	// MeldActions counts lays and extensions by the acting bot this turn,
	// feeding the tier budget. Reset at the start of every turn.
	MeldActions int `json:"meld_actions"`

	Cfg      config.PracticeConfig `json:"-"`
	Notifier ports.NotifierPort    `json:"-"`

	// rng drives bot think delays and bot decisions. Seedable via the
	// "seed" match param so a whole practice match can be replayed.
	rng *rand.Rand
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created. Match params may carry
// bot_count and difficulty; environment variables override the config file.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing practice match.")

	cfg := config.Load("data/practice_config.json")

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["rummy_turn_seconds"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			cfg.TurnSeconds = i
		}
	}
	if val, ok := env["rummy_bot_think_min_ms"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			cfg.BotThinkMinMs = i
		}
	}
	if val, ok := env["rummy_bot_think_max_ms"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			cfg.BotThinkMaxMs = i
		}
	}
	// Overrides may arrive in either order; an inverted pair must never
	// reach the delay draw.
	if cfg.BotThinkMaxMs < cfg.BotThinkMinMs {
		cfg.BotThinkMaxMs = cfg.BotThinkMinMs
	}

	botCount := cfg.DefaultBotCount
	if v, ok := params["bot_count"]; ok {
		switch n := v.(type) {
		case float64:
			botCount = int(n)
		case int:
			botCount = n
		case string:
			if i, err := strconv.Atoi(n); err == nil {
				botCount = i
			}
		}
	}
	if botCount < domain.MinSeats-1 {
		botCount = domain.MinSeats - 1
	}
	if botCount > domain.MaxSeats-1 {
		botCount = domain.MaxSeats - 1
	}

	difficulty := cfg.DefaultDifficulty
	if v, ok := params["difficulty"].(string); ok && v != "" {
		difficulty = v
	}

	seed := time.Now().UnixNano()
	if v, ok := params["seed"].(string); ok {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = i
		}
	}
	rng := rand.New(rand.NewSource(seed))

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		App:       mh.newService(cfg, rng),
		Brains:    make(map[string]bot.Brain),
		Cfg:       cfg,
		Notifier:  NewNakamaNotifierAdapter(nk),
		rng:       rng,
	}

	// Seats beyond the human are filled up front so the round can start the
	// moment the player connects.
	tier := bot.ParseTier(difficulty)
	pool := bot.LoadIdentities(cfg.BotIdentitiesPath)
	for i, id := range bot.PickIdentities(rng, pool, botCount) {
		botID := botSeatPrefix + strconv.Itoa(i)
		state.Brains[botID] = bot.NewBrain(tier)
		state.pendingSeats = append(state.pendingSeats, app.Seat{ID: botID, Name: id.Name, IsBot: true})
	}

	label := map[string]interface{}{
		"game":       "rummy_practice",
		"difficulty": string(tier),
		"bots":       botCount,
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, tickRatePerSec, string(labelBytes)
}

func (mh *matchHandler) newService(cfg config.PracticeConfig, rng *rand.Rand) *app.Service {
	return app.NewService(rng, app.Options{
		TurnDuration:  time.Duration(cfg.TurnSeconds) * time.Second,
		FirstWarning:  time.Duration(cfg.FirstWarningSeconds) * time.Second,
		SecondWarning: time.Duration(cfg.SecondWarningSeconds) * time.Second,
	})
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Practice is strictly single-player: one human, the rest bots.
	if matchState.HumanID != "" && matchState.HumanID != presence.GetUserId() {
		return state, false, "practice match occupied"
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

		if matchState.HumanID == "" {
			matchState.HumanID = p.GetUserId()
			mh.seatTableAndDeal(matchState, dispatcher, logger, p)
		} else if matchState.Table != nil {
			// Reconnect: resend the full picture.
			mh.sendSnapshot(matchState, dispatcher, logger)
		}
	}

	return matchState
}

// seatTableAndDeal builds the table around the joining human and deals the
// first round.
func (mh *matchHandler) seatTableAndDeal(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, p runtime.Presence) {
	seats := make([]app.Seat, 0, len(state.pendingSeats)+1)
	seats = append(seats, app.Seat{ID: p.GetUserId(), Name: p.GetUsername()})
	seats = append(seats, state.pendingSeats...)

	table, err := state.App.NewTable(seats)
	if err != nil {
		logger.Error("MatchJoin: Failed to build table: %v", err)
		return
	}
	state.Table = table

	events := state.App.StartRound(table, time.Now())
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.sendSnapshot(state, dispatcher, logger)

	logger.Info("MatchJoin: Practice round dealt for %s against %d bots.", p.GetUserId(), len(state.pendingSeats))
}

// MatchLeave ends the practice match: with the only human gone there is
// nothing left to play for.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if p.GetUserId() == matchState.HumanID {
			logger.Info("MatchLeave: Human %s left, terminating practice match.", p.GetUserId())
			if matchState.Table != nil {
				matchState.App.ExitRound(matchState.Table)
			}
			return nil
		}
	}

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick
	now := time.Now()

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg, now)
	}

	if matchState.Table != nil {
		events := matchState.App.Tick(matchState.Table, now)
		mh.dispatchEvents(matchState, dispatcher, logger, events)

		mh.processBots(ctx, matchState, dispatcher, logger, now)

		if matchState.Table.ConsumeStateChanged() {
			mh.sendSnapshot(matchState, dispatcher, logger)
		}
	}

	return matchState
}

func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData, now time.Time) {
	if state.Table == nil {
		logger.Warn("handleMessage: No round in progress.")
		return
	}
	senderID := msg.GetUserId()

	var (
		events []app.Event
		err    error
	)

	switch msg.GetOpCode() {
	case OpDrawCard:
		events, err = state.App.DrawFromDeck(state.Table, senderID, now)
	case OpTakeDiscard:
		events, err = state.App.TakeDiscardTop(state.Table, senderID, now)
	case OpTakeDiscardAll:
		events, err = state.App.TakeDiscardAll(state.Table, senderID, now)
	case OpLayMeld:
		var req LayMeldRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.LayMeld(state.Table, senderID, req.CardIDs)
		}
	case OpAddToMeld:
		var req AddToMeldRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.AddToMeld(state.Table, senderID, req.OwnerSeat, req.MeldIndex, req.CardIDs)
		}
	case OpDiscardCard:
		var req DiscardRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.Discard(state.Table, senderID, req.CardID, now)
		}
	case OpPeekDiscard:
		var req PeekRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			events, err = state.App.PeekDiscard(state.Table, senderID, req.Depth)
		}
	case OpExitRound:
		state.App.ExitRound(state.Table)
		logger.Info("handleMessage: %s exited the practice round.", senderID)
		return
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if err != nil {
		logger.Warn("handleMessage: op %d from %s rejected: %v", msg.GetOpCode(), senderID, err)
		mh.sendRejected(state, dispatcher, logger, senderID, msg.GetOpCode(), err)
		return
	}

	mh.dispatchEvents(state, dispatcher, logger, events)
}

// processBots advances the acting bot by one move per think delay, so turns
// unfold at a human pace instead of resolving in a single tick.
func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, now time.Time) {
	t := state.Table
	if t.Round == nil {
		return
	}

	current := t.Round.CurrentPlayer()
	if !current.IsBot {
		state.BotWaitUntil = 0
		return
	}
	// Every turn opens in the draw phase: reaching it means a fresh meld
	// budget for this bot.
	if t.Round.Phase == domain.PhaseDraw {
		state.MeldActions = 0
	}

	if state.BotWaitUntil == 0 {
		spreadMs := state.Cfg.BotThinkMaxMs - state.Cfg.BotThinkMinMs + 1
		if spreadMs < 1 {
			spreadMs = 1
		}
		delayMs := state.rng.Intn(spreadMs) + state.Cfg.BotThinkMinMs
		state.BotWaitUntil = state.Tick + int64(delayMs*tickRatePerSec/1000) + 1
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	brain, exists := state.Brains[current.ID]
	if !exists {
		logger.Error("processBots: No brain for bot %s.", current.ID)
		return
	}

	move := brain.NextMove(mh.botView(t, current, state.MeldActions), state.rng)

	var (
		events []app.Event
		err    error
	)
	switch move.Kind {
	case bot.MoveDraw:
		events, err = state.App.DrawFromDeck(t, current.ID, now)
	case bot.MoveTakeTop:
		events, err = state.App.TakeDiscardTop(t, current.ID, now)
	case bot.MoveTakeAll:
		events, err = state.App.TakeDiscardAll(t, current.ID, now)
	case bot.MoveLayMeld:
		events, err = state.App.LayMeld(t, current.ID, move.CardIDs)
		if err == nil {
			state.MeldActions++
		}
	case bot.MoveAddToMeld:
		events, err = state.App.AddToMeld(t, current.ID, move.OwnerSeat, move.MeldIndex, move.CardIDs)
		if err == nil {
			state.MeldActions++
		}
	case bot.MoveDiscard:
		events, err = state.App.Discard(t, current.ID, move.CardIDs[0], now)
	}

	if err != nil {
		// A refused bot move means the view and strategy disagree; discard
		// something so the turn cannot wedge.
		logger.Error("processBots: Bot %s move %d rejected: %v", current.ID, move.Kind, err)
		if t.Round.Phase != domain.PhaseDraw && len(current.Hand) > 0 {
			events, err = state.App.Discard(t, current.ID, current.Hand[0].ID, now)
			if err != nil {
				return
			}
		} else {
			return
		}
	}

	mh.dispatchEvents(state, dispatcher, logger, events)
}

// botView assembles what the acting bot may legally see.
func (mh *matchHandler) botView(t *app.Table, current *domain.Player, meldActions int) bot.TableView {
	r := t.Round
	view := bot.TableView{
		Phase:               r.Phase,
		Hand:                current.Hand,
		UnwantedCount:       len(r.Piles.Unwanted),
		AddUnlocked:         current.HasLaidMeldThisRound,
		MeldActionsThisTurn: meldActions,
	}
	if n := len(r.Piles.Unwanted); n > 0 {
		top := r.Piles.Unwanted[n-1]
		view.UnwantedTop = &top
	}
	for seat, p := range r.Players {
		for i, m := range p.Melds {
			view.Melds = append(view.Melds, bot.MeldView{OwnerSeat: seat, Index: i, Meld: m})
		}
	}
	return view
}

// dispatchEvents converts engine events to wire messages, honouring targeted
// recipients, and forwards round results to the notifier.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, ok := eventOpCodes[ev.Kind]
		if !ok {
			logger.Error("dispatchEvents: No op code for event kind %s.", ev.Kind)
			continue
		}

		data, err := json.Marshal(ev.Payload)
		if err != nil {
			logger.Error("dispatchEvents: Failed to marshal %s: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := state.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			// Targeted events whose recipients are all bots must not fall
			// back to a broadcast.
			if len(recipients) == 0 {
				continue
			}
		}

		if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
			logger.Error("dispatchEvents: Broadcast failed for %s: %v", ev.Kind, err)
		}

		if ev.Kind == app.EventRoundWon && state.Notifier != nil {
			p := ev.Payload.(app.RoundWonPayload)
			result := ports.RoundResult{
				WinnerName: p.WinnerName,
				Deltas:     p.Deltas,
				Scores:     p.Scores,
			}
			if err := state.Notifier.NotifyRoundResult(context.Background(), state.HumanID, result); err != nil {
				logger.Warn("dispatchEvents: Round result notification failed: %v", err)
			}
		}
	}
}

// sendSnapshot delivers the human's view of the table. Bots never receive
// messages, so the human is the only viewer.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Table == nil || state.HumanID == "" {
		return
	}
	presence, ok := state.Presences[state.HumanID]
	if !ok {
		return
	}

	snap := app.BuildSnapshot(state.Table, state.HumanID, time.Now())
	if snap == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		logger.Error("sendSnapshot: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpSnapshot, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendSnapshot: Broadcast failed: %v", err)
	}
}

// sendRejected tells one client why its action was refused, using the stable
// reason codes so clients can branch without parsing prose.
func (mh *matchHandler) sendRejected(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, opCode int64, cause error) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}

	data, err := json.Marshal(RejectedPayload{OpCode: opCode, Reason: domain.Reason(cause)})
	if err != nil {
		logger.Error("sendRejected: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpRejected, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendRejected: Broadcast failed: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
