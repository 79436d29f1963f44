package domain

import "errors"

// All rejections are non-fatal and non-mutating; each carries a stable reason
// code for the client via Reason.
var (
	ErrTooFewCards  = errors.New("meld needs at least 3 cards")
	ErrNotSetOrRun  = errors.New("cards do not form a set or a run")
	ErrInvalidPhase = errors.New("action is not legal in the current phase")
	ErrMustTakeAll  = errors.New("a buried card can only be acquired by taking the whole pile")
	ErrAddLocked    = errors.New("lay a meld this round before adding to one")
	ErrNotYourTurn  = errors.New("it is not this seat's turn")
	ErrEmptyDeck    = errors.New("draw pile exhausted")
	ErrEmptyPile    = errors.New("unwanted pile is empty")
	ErrUnknownCard  = errors.New("card is not in the acting hand")
	ErrUnknownMeld  = errors.New("no meld at that position")
)

// Reason maps a rejection error to its wire reason code.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrTooFewCards):
		return "TooFewCards"
	case errors.Is(err, ErrNotSetOrRun):
		return "NotSetOrRun"
	case errors.Is(err, ErrInvalidPhase):
		return "InvalidPhase"
	case errors.Is(err, ErrMustTakeAll):
		return "MustTakeAll"
	case errors.Is(err, ErrAddLocked):
		return "AddLocked"
	case errors.Is(err, ErrNotYourTurn):
		return "NotYourTurn"
	case errors.Is(err, ErrEmptyDeck):
		return "EmptyDeck"
	case errors.Is(err, ErrEmptyPile):
		return "EmptyPile"
	case errors.Is(err, ErrUnknownCard):
		return "UnknownCard"
	case errors.Is(err, ErrUnknownMeld):
		return "UnknownMeld"
	}
	return "Rejected"
}
