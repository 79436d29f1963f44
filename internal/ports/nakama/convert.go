package nakama

import (
	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/app"
)

// Client request payloads, JSON-encoded in the match data.

type LayMeldRequest struct {
	CardIDs []string `json:"card_ids"`
}

type AddToMeldRequest struct {
	OwnerSeat int      `json:"owner_seat"`
	MeldIndex int      `json:"meld_index"`
	CardIDs   []string `json:"card_ids"`
}

type DiscardRequest struct {
	CardID string `json:"card_id"`
}

type PeekRequest struct {
	Depth int `json:"depth"`
}

// RejectedPayload tells one client why its action was refused.
type RejectedPayload struct {
	OpCode int64  `json:"op_code"`
	Reason string `json:"reason"`
}

// eventOpCodes maps engine events to wire op codes. An event kind missing
// here is a programming error and is logged, never silently dropped.
var eventOpCodes = map[app.EventKind]int64{
	app.EventRoundStarted:   OpRoundStarted,
	app.EventHandDealt:      OpHandDealt,
	app.EventTurnStarted:    OpTurnStarted,
	app.EventCardDrawn:      OpCardDrawn,
	app.EventDeckReshuffled: OpDeckReshuffled,
	app.EventDiscardTaken:   OpDiscardTaken,
	app.EventPileTaken:      OpPileTaken,
	app.EventDiscardPeeked:  OpDiscardPeeked,
	app.EventMeldLaid:       OpMeldLaid,
	app.EventMeldExtended:   OpMeldExtended,
	app.EventCardDiscarded:  OpCardDiscarded,
	app.EventTurnWarning:    OpTurnWarning,
	app.EventTurnTimedOut:   OpTurnTimedOut,
	app.EventRoundWon:       OpRoundWon,
}
