package domain

import "math/rand"

// Piles tracks the draw pile and the unwanted pile for a round. The top of
// each pile is the last element. PeekDepth records which unwanted card the
// acting player is currently inspecting (0 = top); only the top may be taken
// on its own, anything deeper costs the whole pile.
type Piles struct {
	Draw      []Card
	Unwanted  []Card
	PeekDepth int
}

// DrawTop removes and returns the top of the draw pile. When the pile is
// empty it reshuffles the unwanted pile minus its top card back into a new
// draw pile, preserving card conservation; the returned bool reports whether
// that recovery ran. If there are not enough unwanted cards to recover from,
// the draw fails with ErrEmptyDeck.
func (p *Piles) DrawTop(rng *rand.Rand) (Card, bool, error) {
	reshuffled := false
	if len(p.Draw) == 0 {
		if len(p.Unwanted) < 2 {
			return Card{}, false, ErrEmptyDeck
		}
		top := p.Unwanted[len(p.Unwanted)-1]
		p.Draw = append([]Card(nil), p.Unwanted[:len(p.Unwanted)-1]...)
		ShuffleDeck(rng, p.Draw)
		p.Unwanted = []Card{top}
		p.PeekDepth = 0
		reshuffled = true
	}
	c := p.Draw[len(p.Draw)-1]
	p.Draw = p.Draw[:len(p.Draw)-1]
	return c, reshuffled, nil
}

// Peek inspects the unwanted card at the given depth from the top without
// transferring ownership, and remembers the inspected depth.
func (p *Piles) Peek(depth int) (Card, error) {
	if depth < 0 || depth >= len(p.Unwanted) {
		return Card{}, ErrUnknownCard
	}
	p.PeekDepth = depth
	return p.Unwanted[len(p.Unwanted)-1-depth], nil
}

// TakeTop removes and returns the top unwanted card. It is only legal while
// the top itself is being inspected.
func (p *Piles) TakeTop() (Card, error) {
	if len(p.Unwanted) == 0 {
		return Card{}, ErrEmptyPile
	}
	if p.PeekDepth != 0 {
		return Card{}, ErrMustTakeAll
	}
	c := p.Unwanted[len(p.Unwanted)-1]
	p.Unwanted = p.Unwanted[:len(p.Unwanted)-1]
	return c, nil
}

// TakeAll removes and returns the entire unwanted pile in existing order.
// This is the only way to acquire a buried card.
func (p *Piles) TakeAll() ([]Card, error) {
	if len(p.Unwanted) == 0 {
		return nil, ErrEmptyPile
	}
	out := p.Unwanted
	p.Unwanted = nil
	p.PeekDepth = 0
	return out, nil
}

// DiscardCard pushes a card as the new unwanted top and resets the peek.
func (p *Piles) DiscardCard(c Card) {
	p.Unwanted = append(p.Unwanted, c)
	p.PeekDepth = 0
}
