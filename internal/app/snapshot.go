package app

import (
	"time"

	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/domain"
)

// PlayerView is one seat as a specific viewer sees it. Hand contents are only
// present for the viewer's own seat; everyone else gets a count.
type PlayerView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Seat        int           `json:"seat"`
	IsBot       bool          `json:"is_bot"`
	HandCount   int           `json:"hand_count"`
	Hand        []domain.Card `json:"hand,omitempty"`
	Melds       []domain.Meld `json:"melds"`
	Score       int           `json:"score"`
	AddUnlocked bool          `json:"add_unlocked"`
	IsTurn      bool          `json:"is_turn"`
}

// Snapshot is the complete table state from one viewer's perspective,
// sufficient to redraw the client from scratch.
type Snapshot struct {
	Phase         domain.Phase `json:"phase"`
	TurnSeat      int          `json:"turn_seat"`
	DealerSeat    int          `json:"dealer_seat"`
	SecondsLeft   int          `json:"seconds_left"`
	DeckCount     int          `json:"deck_count"`
	UnwantedCount int          `json:"unwanted_count"`
	UnwantedTop   *domain.Card `json:"unwanted_top,omitempty"`
	PeekDepth     int          `json:"peek_depth"`
	Players       []PlayerView `json:"players"`
}

// BuildSnapshot renders the table for the given viewer. It is safe to call
// for spectating viewers: an unknown viewerID simply sees no hand.
func BuildSnapshot(t *Table, viewerID string, now time.Time) *Snapshot {
	if t.Round == nil {
		return nil
	}
	r := t.Round

	snap := &Snapshot{
		Phase:         r.Phase,
		TurnSeat:      r.TurnSeat,
		DealerSeat:    r.DealerSeat,
		SecondsLeft:   t.Clock.SecondsLeft(now),
		DeckCount:     len(r.Piles.Draw),
		UnwantedCount: len(r.Piles.Unwanted),
		PeekDepth:     r.Piles.PeekDepth,
		Players:       make([]PlayerView, len(r.Players)),
	}
	if n := len(r.Piles.Unwanted); n > 0 {
		top := r.Piles.Unwanted[n-1]
		snap.UnwantedTop = &top
	}

	for seat, p := range r.Players {
		view := PlayerView{
			ID:          p.ID,
			Name:        p.Name,
			Seat:        seat,
			IsBot:       p.IsBot,
			HandCount:   len(p.Hand),
			Melds:       p.Melds,
			Score:       p.Score,
			AddUnlocked: p.HasLaidMeldThisRound,
			IsTurn:      seat == r.TurnSeat,
		}
		if p.ID == viewerID {
			view.Hand = p.Hand
		}
		snap.Players[seat] = view
	}
	return snap
}
