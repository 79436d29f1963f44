package domain

import (
	"math/rand"
	"testing"
)

func TestPeekAndTakeTop(t *testing.T) {
	p := &Piles{}
	a := card(rk("4"), SuitClubs)
	b := card(rk("9"), SuitHearts)
	c := card(rk("K"), SuitSpades)
	p.DiscardCard(a)
	p.DiscardCard(b)
	p.DiscardCard(c)

	top, err := p.Peek(0)
	if err != nil || top.ID != c.ID {
		t.Fatalf("Peek(0) = %v, %v; want top card %v", top.Label(), err, c.Label())
	}

	buried, err := p.Peek(2)
	if err != nil || buried.ID != a.ID {
		t.Fatalf("Peek(2) = %v, %v; want bottom card %v", buried.Label(), err, a.Label())
	}

	// Inspecting a buried card blocks TakeTop.
	if _, err := p.TakeTop(); err != ErrMustTakeAll {
		t.Fatalf("TakeTop at depth 2 error = %v, want ErrMustTakeAll", err)
	}

	if _, err := p.Peek(0); err != nil {
		t.Fatalf("Peek(0) error: %v", err)
	}
	got, err := p.TakeTop()
	if err != nil || got.ID != c.ID {
		t.Fatalf("TakeTop = %v, %v; want %v", got.Label(), err, c.Label())
	}
	if len(p.Unwanted) != 2 {
		t.Fatalf("unwanted pile has %d cards after TakeTop, want 2", len(p.Unwanted))
	}
}

func TestPeekOutOfRange(t *testing.T) {
	p := &Piles{}
	p.DiscardCard(card(rk("4"), SuitClubs))
	if _, err := p.Peek(1); err != ErrUnknownCard {
		t.Fatalf("Peek(1) error = %v, want ErrUnknownCard", err)
	}
	if _, err := p.Peek(-1); err != ErrUnknownCard {
		t.Fatalf("Peek(-1) error = %v, want ErrUnknownCard", err)
	}
}

func TestTakeAllEmptiesPile(t *testing.T) {
	p := &Piles{}
	a := card(rk("4"), SuitClubs)
	b := card(rk("9"), SuitHearts)
	p.DiscardCard(a)
	p.DiscardCard(b)
	p.PeekDepth = 1

	cards, err := p.TakeAll()
	if err != nil {
		t.Fatalf("TakeAll error: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != a.ID || cards[1].ID != b.ID {
		t.Fatalf("TakeAll returned %v, want pile in existing order", cards)
	}
	if len(p.Unwanted) != 0 {
		t.Fatalf("unwanted pile not empty after TakeAll")
	}
	if _, err := p.TakeAll(); err != ErrEmptyPile {
		t.Fatalf("TakeAll on empty pile error = %v, want ErrEmptyPile", err)
	}
}

func TestDrawTopReshufflesUnwanted(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := &Piles{}
	a := card(rk("4"), SuitClubs)
	b := card(rk("9"), SuitHearts)
	c := card(rk("K"), SuitSpades)
	p.DiscardCard(a)
	p.DiscardCard(b)
	p.DiscardCard(c)

	got, reshuffled, err := p.DrawTop(rng)
	if err != nil {
		t.Fatalf("DrawTop error: %v", err)
	}
	if !reshuffled {
		t.Fatalf("DrawTop did not report reshuffle")
	}
	// The unwanted top must survive as the whole remaining unwanted pile.
	if len(p.Unwanted) != 1 || p.Unwanted[0].ID != c.ID {
		t.Fatalf("unwanted pile after reshuffle = %v, want just %v", p.Unwanted, c.Label())
	}
	if got.ID != a.ID && got.ID != b.ID {
		t.Fatalf("drawn card %v did not come from the buried unwanted cards", got.Label())
	}
	// One drawn, one still in the rebuilt draw pile.
	if len(p.Draw) != 1 {
		t.Fatalf("draw pile has %d cards after recovery draw, want 1", len(p.Draw))
	}
}

func TestDrawTopExhausted(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := &Piles{}
	p.DiscardCard(card(rk("4"), SuitClubs))
	if _, _, err := p.DrawTop(rng); err != ErrEmptyDeck {
		t.Fatalf("DrawTop with one unwanted card error = %v, want ErrEmptyDeck", err)
	}
}
