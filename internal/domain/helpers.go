package domain

// RemoveCards removes the given cards from a hand by identity and returns the
// updated hand.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}
	removeIDs := make(map[string]bool, len(toRemove))
	for _, c := range toRemove {
		removeIDs[c.ID] = true
	}
	updated := make([]Card, 0, len(hand))
	for _, c := range hand {
		if removeIDs[c.ID] {
			continue
		}
		updated = append(updated, c)
	}
	return updated
}

// CardsByID resolves a client selection against the hand. Every id must match
// a distinct hand card or the whole selection is rejected.
func CardsByID(hand []Card, ids []string) ([]Card, error) {
	byID := make(map[string]Card, len(hand))
	for _, c := range hand {
		byID[c.ID] = c
	}
	out := make([]Card, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok || seen[id] {
			return nil, ErrUnknownCard
		}
		seen[id] = true
		out = append(out, c)
	}
	return out, nil
}
