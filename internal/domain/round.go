package domain

import "math/rand"

// Round is the authoritative state for a single deal. Players keep their seat
// order and score across rounds; everything else belongs to this round.
type Round struct {
	Players    []*Player
	Piles      Piles
	DealerSeat int
	TurnSeat   int
	Phase      Phase
}

// NewRound shuffles a fresh deck and deals it: 7 cards per seat, 8 to the seat
// left of the dealer, one card seeded onto the unwanted pile, and the first
// turn assigned to that same left-of-dealer seat.
func NewRound(players []*Player, dealerSeat int, rng *rand.Rand) *Round {
	deck := NewDeck()
	ShuffleDeck(rng, deck)

	r := &Round{
		Players:    players,
		DealerSeat: dealerSeat,
		Phase:      PhaseDraw,
	}
	r.Piles.Draw = deck

	first := (dealerSeat + 1) % len(players)
	for seat, p := range players {
		p.Hand = nil
		p.Melds = nil
		p.HasLaidMeldThisRound = false

		count := BaseHandSize
		if seat == first {
			count++
		}
		for k := 0; k < count; k++ {
			c, _, _ := r.Piles.DrawTop(rng)
			p.Hand = append(p.Hand, c)
		}
	}

	seed, _, _ := r.Piles.DrawTop(rng)
	r.Piles.DiscardCard(seed)

	r.TurnSeat = first
	return r
}

// CurrentPlayer returns the player whose turn it is.
func (r *Round) CurrentPlayer() *Player {
	return r.Players[r.TurnSeat]
}

// SeatOf returns the seat index for a player id, or -1 if absent.
func (r *Round) SeatOf(playerID string) int {
	for seat, p := range r.Players {
		if p.ID == playerID {
			return seat
		}
	}
	return -1
}

// AdvanceTurn passes the turn to the next seat and resets per-turn state.
func (r *Round) AdvanceTurn() {
	r.TurnSeat = (r.TurnSeat + 1) % len(r.Players)
	r.Phase = PhaseDraw
	r.Piles.PeekDepth = 0
}

// AllCards gathers every card reachable from the round: both piles, all hands
// and all melds. Used to check the conservation invariant.
func (r *Round) AllCards() []Card {
	out := make([]Card, 0, DeckSize)
	out = append(out, r.Piles.Draw...)
	out = append(out, r.Piles.Unwanted...)
	for _, p := range r.Players {
		out = append(out, p.Hand...)
		for _, m := range p.Melds {
			out = append(out, m.Cards...)
		}
	}
	return out
}
