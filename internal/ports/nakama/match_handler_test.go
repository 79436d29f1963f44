package nakama

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/app"
	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/bot"
	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/config"
	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/domain"
	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/ports"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy
// the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	messages []sentMessage
}

type sentMessage struct {
	opCode     int64
	data       []byte
	recipients []runtime.Presence
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.messages = append(md.messages, sentMessage{
		opCode:     opCode,
		data:       append([]byte(nil), data...),
		recipients: presences,
	})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	return nil
}

func (md *mockDispatcher) byOpCode(opCode int64) []sentMessage {
	var out []sentMessage
	for _, m := range md.messages {
		if m.opCode == opCode {
			out = append(out, m)
		}
	}
	return out
}

// mockPresence is the minimal presence for the single human seat.
type mockPresence struct {
	userID   string
	username string
}

func (p mockPresence) GetUserId() string    { return p.userID }
func (p mockPresence) GetSessionId() string { return "session-" + p.userID }
func (p mockPresence) GetNodeId() string    { return "node" }
func (p mockPresence) GetHidden() bool      { return false }
func (p mockPresence) GetPersistence() bool { return true }
func (p mockPresence) GetUsername() string  { return p.username }
func (p mockPresence) GetStatus() string    { return "" }
func (p mockPresence) GetReason() runtime.PresenceReason {
	return runtime.PresenceReasonJoin
}

// mockNotifier records round result notifications.
type mockNotifier struct {
	results []ports.RoundResult
}

func (mn *mockNotifier) NotifyRoundResult(ctx context.Context, userID string, result ports.RoundResult) error {
	mn.results = append(mn.results, result)
	return nil
}

// mockMatchData shapes a client message for handleMessage.
type mockMatchData struct {
	mockPresence
	opCode int64
	data   []byte
}

func (m mockMatchData) GetOpCode() int64      { return m.opCode }
func (m mockMatchData) GetData() []byte       { return m.data }
func (m mockMatchData) GetReliable() bool     { return true }
func (m mockMatchData) GetReceiveTime() int64 { return 0 }

func testConfig() config.PracticeConfig {
	return config.PracticeConfig{
		TurnSeconds:          60,
		FirstWarningSeconds:  30,
		SecondWarningSeconds: 15,
		BotThinkMinMs:        1,
		BotThinkMaxMs:        2,
		DefaultBotCount:      2,
		DefaultDifficulty:    "mid",
	}
}

// newTestMatch wires a dealt practice table around a human and two bots,
// bypassing MatchInit so the rng can be seeded.
func newTestMatch(t *testing.T) (*matchHandler, *MatchState, *mockDispatcher, mockPresence) {
	t.Helper()
	cfg := testConfig()
	svc := app.NewService(rand.New(rand.NewSource(99)), app.Options{
		TurnDuration:  time.Duration(cfg.TurnSeconds) * time.Second,
		FirstWarning:  time.Duration(cfg.FirstWarningSeconds) * time.Second,
		SecondWarning: time.Duration(cfg.SecondWarningSeconds) * time.Second,
	})

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		App:       svc,
		Brains: map[string]bot.Brain{
			"bot:0": bot.NewBrain(bot.TierMid),
			"bot:1": bot.NewBrain(bot.TierMid),
		},
		pendingSeats: []app.Seat{
			{ID: "bot:0", Name: "Alice", IsBot: true},
			{ID: "bot:1", Name: "Mike", IsBot: true},
		},
		Cfg:      cfg,
		Notifier: &mockNotifier{},
		rng:      rand.New(rand.NewSource(99)),
	}

	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	human := mockPresence{userID: "human", username: "You"}

	out := mh.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state, []runtime.Presence{human})
	if out == nil {
		t.Fatal("MatchJoin terminated the match")
	}
	return mh, state, dispatcher, human
}

func TestMatchJoinDealsRound(t *testing.T) {
	_, state, dispatcher, human := newTestMatch(t)

	if state.HumanID != human.userID {
		t.Errorf("human id = %q, want %q", state.HumanID, human.userID)
	}
	if state.Table == nil || state.Table.Round == nil {
		t.Fatal("no round dealt on join")
	}
	if got := len(state.Table.Players); got != 3 {
		t.Errorf("seated players = %d, want human plus two bots", got)
	}

	if got := len(dispatcher.byOpCode(OpRoundStarted)); got != 1 {
		t.Errorf("round started messages = %d, want 1", got)
	}
	// Only the human has a presence: exactly one private hand message.
	dealt := dispatcher.byOpCode(OpHandDealt)
	if len(dealt) != 1 {
		t.Fatalf("hand dealt messages = %d, want 1 (bots have no socket)", len(dealt))
	}
	if len(dealt[0].recipients) != 1 || dealt[0].recipients[0].GetUserId() != human.userID {
		t.Error("hand not targeted at the human")
	}
	if got := len(dispatcher.byOpCode(OpSnapshot)); got != 1 {
		t.Errorf("snapshot messages = %d, want 1", got)
	}
}

func TestMatchJoinAttemptRejectsSecondHuman(t *testing.T) {
	mh, state, _, _ := newTestMatch(t)

	_, allowed, reason := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, &mockDispatcher{}, 1, state, mockPresence{userID: "intruder"}, nil)
	if allowed {
		t.Error("second human admitted to a practice match")
	}
	if reason == "" {
		t.Error("rejection carries no reason")
	}

	_, allowed, _ = mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, &mockDispatcher{}, 1, state, mockPresence{userID: "human"}, nil)
	if !allowed {
		t.Error("rejoining human refused")
	}
}

func TestHandleMessageRejectsBadAction(t *testing.T) {
	mh, state, dispatcher, human := newTestMatch(t)
	dispatcher.messages = nil

	// Discarding before acquiring is an invalid-phase action regardless of
	// whose turn it is.
	msg := mockMatchData{
		mockPresence: human,
		opCode:       OpDiscardCard,
		data:         mustJSON(t, DiscardRequest{CardID: "nope"}),
	}
	mh.handleMessage(context.Background(), state, dispatcher, noopLogger{}, msg, time.Now())

	rejected := dispatcher.byOpCode(OpRejected)
	if len(rejected) != 1 {
		t.Fatalf("rejected messages = %d, want 1", len(rejected))
	}
	var payload RejectedPayload
	if err := json.Unmarshal(rejected[0].data, &payload); err != nil {
		t.Fatalf("unmarshal rejection: %v", err)
	}
	if payload.OpCode != OpDiscardCard {
		t.Errorf("rejection op = %d, want %d", payload.OpCode, OpDiscardCard)
	}
	if payload.Reason != "InvalidPhase" && payload.Reason != "NotYourTurn" {
		t.Errorf("rejection reason = %q, want a stable reason code", payload.Reason)
	}
	if len(rejected[0].recipients) != 1 || rejected[0].recipients[0].GetUserId() != human.userID {
		t.Error("rejection not targeted at the sender")
	}
}

func TestHumanTurnRoundTrip(t *testing.T) {
	mh, state, dispatcher, human := newTestMatch(t)

	// Walk bot turns until the human holds the turn, applying bot moves
	// directly without the think delay.
	for tick := int64(1); tick < 500 && state.Table.Round.CurrentPlayer().IsBot; tick++ {
		state.Tick = tick
		state.BotWaitUntil = 1 // due immediately
		mh.processBots(context.Background(), state, dispatcher, noopLogger{}, time.Now())
	}
	p := state.Table.Round.CurrentPlayer()
	if p.IsBot {
		t.Fatal("never reached the human's turn")
	}

	dispatcher.messages = nil
	mh.handleMessage(context.Background(), state, dispatcher, noopLogger{},
		mockMatchData{mockPresence: human, opCode: OpDrawCard}, time.Now())

	if state.Table.Round.Phase != domain.PhaseMeld {
		t.Errorf("phase after draw = %v, want MELD", state.Table.Round.Phase)
	}
	if got := len(dispatcher.byOpCode(OpCardDrawn)); got != 1 {
		t.Errorf("card drawn messages = %d, want 1", got)
	}

	discard := DiscardRequest{CardID: p.Hand[0].ID}
	mh.handleMessage(context.Background(), state, dispatcher, noopLogger{},
		mockMatchData{mockPresence: human, opCode: OpDiscardCard, data: mustJSON(t, discard)}, time.Now())

	if got := len(dispatcher.byOpCode(OpCardDiscarded)); got != 1 {
		t.Errorf("card discarded messages = %d, want 1", got)
	}
	if !state.Table.Round.CurrentPlayer().IsBot {
		t.Error("turn did not pass to a bot after the discard")
	}
}

func TestBotWaitsForThinkDelay(t *testing.T) {
	mh, state, dispatcher, _ := newTestMatch(t)
	if !state.Table.Round.CurrentPlayer().IsBot {
		t.Skip("first turn landed on the human for this seed")
	}
	dispatcher.messages = nil

	state.Tick = 10
	mh.processBots(context.Background(), state, dispatcher, noopLogger{}, time.Now())
	if state.BotWaitUntil <= state.Tick {
		t.Fatalf("bot wait until = %d, want a future tick", state.BotWaitUntil)
	}
	if len(dispatcher.messages) != 0 {
		t.Error("bot acted before its think delay elapsed")
	}

	state.Tick = state.BotWaitUntil
	mh.processBots(context.Background(), state, dispatcher, noopLogger{}, time.Now())
	if len(dispatcher.messages) == 0 {
		t.Error("bot did not act once the delay elapsed")
	}
	if state.BotWaitUntil != 0 {
		t.Error("bot delay not re-armed for the next move")
	}
}

func TestBotThinkDelayToleratesInvertedBounds(t *testing.T) {
	mh, state, dispatcher, _ := newTestMatch(t)
	// A min above max can slip in through mismatched overrides; the delay
	// draw must survive it rather than crash the match loop.
	state.Cfg.BotThinkMinMs = 5000
	state.Cfg.BotThinkMaxMs = 2500

	for !state.Table.Round.CurrentPlayer().IsBot {
		p := state.Table.Round.CurrentPlayer()
		if _, err := state.App.DrawFromDeck(state.Table, p.ID, time.Now()); err != nil {
			t.Fatalf("draw: %v", err)
		}
		if _, err := state.App.Discard(state.Table, p.ID, p.Hand[0].ID, time.Now()); err != nil {
			t.Fatalf("discard: %v", err)
		}
	}

	state.Tick = 10
	mh.processBots(context.Background(), state, dispatcher, noopLogger{}, time.Now())
	if state.BotWaitUntil <= state.Tick {
		t.Errorf("bot wait until = %d, want a future tick despite inverted bounds", state.BotWaitUntil)
	}
}

func TestExitRoundMessageTearsDown(t *testing.T) {
	mh, state, dispatcher, human := newTestMatch(t)

	mh.handleMessage(context.Background(), state, dispatcher, noopLogger{},
		mockMatchData{mockPresence: human, opCode: OpExitRound}, time.Now())

	if state.Table.Round != nil {
		t.Error("round survived the exit request")
	}
	if state.Table.Clock.Running {
		t.Error("clock survived the exit request")
	}
}

func TestMatchLeaveTerminates(t *testing.T) {
	mh, state, dispatcher, human := newTestMatch(t)

	out := mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state, []runtime.Presence{human})
	if out != nil {
		t.Error("match kept running with no human seated")
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
