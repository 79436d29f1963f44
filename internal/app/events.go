package app

import "github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/domain"

// EventKind identifies emitted engine events for host dispatch.
type EventKind string

const (
	EventRoundStarted   EventKind = "round_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventTurnStarted    EventKind = "turn_started"
	EventCardDrawn      EventKind = "card_drawn"
	EventDeckReshuffled EventKind = "deck_reshuffled"
	EventDiscardTaken   EventKind = "discard_taken"
	EventPileTaken      EventKind = "pile_taken"
	EventDiscardPeeked  EventKind = "discard_peeked"
	EventMeldLaid       EventKind = "meld_laid"
	EventMeldExtended   EventKind = "meld_extended"
	EventCardDiscarded  EventKind = "card_discarded"
	EventTurnWarning    EventKind = "turn_warning"
	EventTurnTimedOut   EventKind = "turn_timed_out"
	EventRoundWon       EventKind = "round_won"
)

// Event is an engine event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player IDs; empty means broadcast
}

type RoundStartedPayload struct {
	DealerSeat    int `json:"dealer_seat"`
	FirstTurnSeat int `json:"first_turn_seat"`
	DeckCount     int `json:"deck_count"`
}

type HandDealtPayload struct {
	PlayerID string        `json:"player_id"`
	Hand     []domain.Card `json:"hand"`
}

type TurnStartedPayload struct {
	Seat        int `json:"seat"`
	SecondsLeft int `json:"seconds_left"`
}

// CardDrawnPayload announces a deck draw. The card itself is only revealed to
// the drawing player via Recipients on a second event.
type CardDrawnPayload struct {
	Seat      int `json:"seat"`
	DeckCount int `json:"deck_count"`
}

type DeckReshuffledPayload struct {
	DeckCount int `json:"deck_count"`
}

// DiscardTakenPayload is broadcast with card details: the unwanted top was
// public information already.
type DiscardTakenPayload struct {
	Seat int         `json:"seat"`
	Card domain.Card `json:"card"`
}

type PileTakenPayload struct {
	Seat  int           `json:"seat"`
	Cards []domain.Card `json:"cards"`
}

type DiscardPeekedPayload struct {
	Seat  int         `json:"seat"`
	Depth int         `json:"depth"`
	Card  domain.Card `json:"card"`
}

type MeldLaidPayload struct {
	Seat      int         `json:"seat"`
	MeldIndex int         `json:"meld_index"`
	Meld      domain.Meld `json:"meld"`
	// Unlocked is true on the player's first lay of the round, when
	// add-to-meld becomes available to them.
	Unlocked bool `json:"unlocked"`
}

type MeldExtendedPayload struct {
	OwnerSeat int         `json:"owner_seat"`
	MeldIndex int         `json:"meld_index"`
	Meld      domain.Meld `json:"meld"`
	BySeat    int         `json:"by_seat"`
}

type CardDiscardedPayload struct {
	Seat int         `json:"seat"`
	Card domain.Card `json:"card"`
}

type TurnWarningPayload struct {
	Seat        int `json:"seat"`
	SecondsLeft int `json:"seconds_left"`
}

type TurnTimedOutPayload struct {
	Seat int `json:"seat"`
}

type RoundWonPayload struct {
	WinnerSeat int            `json:"winner_seat"`
	WinnerID   string         `json:"winner_id"`
	WinnerName string         `json:"winner_name"`
	Deltas     map[string]int `json:"deltas"`
	Scores     map[string]int `json:"scores"`
}
