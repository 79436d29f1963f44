package domain

import "sort"

// MeldKind classifies a laid meld.
type MeldKind int

const (
	MeldInvalid MeldKind = iota
	// MeldSet is 3 or 4 cards of identical rank.
	MeldSet
	// MeldRun is 3+ same-suit cards of strictly consecutive ranks. The ace may
	// anchor low (A-2-3) or high (Q-K-A) but a run never wraps past the king.
	MeldRun
)

// Meld is a laid-down set or run. Run cards are kept in ascending order, with
// a high ace last.
type Meld struct {
	Kind  MeldKind `json:"kind"`
	Cards []Card   `json:"cards"`
}

// Points returns the meld's total point value.
func (m Meld) Points() int {
	return PointsOf(m.Cards)
}

// ValidateMeld classifies the selection as a set or run, independent of the
// order the cards were selected in.
func ValidateMeld(cards []Card) (Meld, error) {
	if len(cards) < 3 {
		return Meld{}, ErrTooFewCards
	}
	if isSet(cards) {
		return Meld{Kind: MeldSet, Cards: append([]Card(nil), cards...)}, nil
	}
	if run, ok := asRun(cards); ok {
		return Meld{Kind: MeldRun, Cards: run}, nil
	}
	return Meld{}, ErrNotSetOrRun
}

// CanExtend reports whether the added cards grow the meld legally and returns
// the resulting meld. A set stays capped at 4 cards; a run must be extended
// contiguously outward from either end, under either ace reading.
func CanExtend(m Meld, added []Card) (Meld, error) {
	if len(added) == 0 {
		return Meld{}, ErrNotSetOrRun
	}
	switch m.Kind {
	case MeldSet:
		if len(m.Cards)+len(added) > 4 {
			return Meld{}, ErrNotSetOrRun
		}
		rank := m.Cards[0].Rank
		for _, c := range added {
			if c.Rank != rank {
				return Meld{}, ErrNotSetOrRun
			}
		}
		cards := append(append([]Card(nil), m.Cards...), added...)
		return Meld{Kind: MeldSet, Cards: cards}, nil
	case MeldRun:
		// A combined valid run implies the added cards fill contiguous
		// positions beyond the existing ends; there is no way to interleave.
		combined := append(append([]Card(nil), m.Cards...), added...)
		if run, ok := asRun(combined); ok {
			return Meld{Kind: MeldRun, Cards: run}, nil
		}
		return Meld{}, ErrNotSetOrRun
	}
	return Meld{}, ErrNotSetOrRun
}

func isSet(cards []Card) bool {
	if len(cards) > 4 {
		return false
	}
	rank := cards[0].Rank
	for _, c := range cards {
		if c.Rank != rank {
			return false
		}
	}
	return true
}

// asRun returns the cards in ascending run order when they form a legal run.
func asRun(cards []Card) ([]Card, bool) {
	suit := cards[0].Suit
	for _, c := range cards {
		if c.Suit != suit {
			return nil, false
		}
	}
	if run, ok := orderedRun(cards, false); ok {
		return run, true
	}
	return orderedRun(cards, true)
}

// orderedRun sorts a copy by run position and checks strict consecutiveness.
func orderedRun(cards []Card, aceHigh bool) ([]Card, bool) {
	out := append([]Card(nil), cards...)
	sort.Slice(out, func(i, j int) bool {
		return runIndex(out[i].Rank, aceHigh) < runIndex(out[j].Rank, aceHigh)
	})
	for i := 1; i < len(out); i++ {
		if runIndex(out[i].Rank, aceHigh) != runIndex(out[i-1].Rank, aceHigh)+1 {
			return nil, false
		}
	}
	return out, true
}

// runIndex places a high ace just above the king; every other rank keeps its
// natural position.
func runIndex(r Rank, aceHigh bool) int {
	if aceHigh && r == RankAce {
		return RankCount
	}
	return int(r)
}
