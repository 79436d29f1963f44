package app

import "github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/domain"

// Seat describes one participant when a table is created.
type Seat struct {
	ID    string
	Name  string
	IsBot bool
}

// Table is a practice table: fixed seats in order, the round in progress and
// the turn clock. Player scores survive round boundaries; the round itself is
// replaced on every deal.
type Table struct {
	Players    []*domain.Player
	DealerSeat int
	Round      *domain.Round
	Clock      TurnClock

	stateChanged bool
}

// markChanged flags that observers need a fresh snapshot.
func (t *Table) markChanged() {
	t.stateChanged = true
}

// ConsumeStateChanged reports whether state changed since the last call and
// clears the flag. The host consumes it once per redraw cycle instead of
// re-rendering on every tick.
func (t *Table) ConsumeStateChanged() bool {
	changed := t.stateChanged
	t.stateChanged = false
	return changed
}

// PlayerByID returns the player with the given id, or nil.
func (t *Table) PlayerByID(id string) *domain.Player {
	for _, p := range t.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
