package bot

import "github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/domain"

// bestMeld finds a meldable subset of the hand, preferring the highest scoring
// one. It only considers the practical shapes: same-rank groups and same-suit
// consecutive runs, which is exactly what the validator accepts.
func bestMeld(hand []domain.Card) []domain.Card {
	var best []domain.Card
	bestPoints := -1

	consider := func(cards []domain.Card) {
		m, err := domain.ValidateMeld(cards)
		if err != nil {
			return
		}
		if pts := m.Points(); pts > bestPoints {
			bestPoints = pts
			best = append([]domain.Card(nil), cards...)
		}
	}

	// Same-rank sets.
	byRank := make(map[domain.Rank][]domain.Card)
	for _, c := range hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	for _, group := range byRank {
		if len(group) >= 3 {
			consider(group)
		}
	}

	// Same-suit runs: longest consecutive stretch per suit, including the
	// ace rejoining above the king.
	bySuit := make(map[domain.Suit][]domain.Card)
	for _, c := range hand {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	for _, group := range bySuit {
		present := make(map[int]domain.Card, len(group)+1)
		for _, c := range group {
			present[int(c.Rank)] = c
			if c.Rank == domain.RankAce {
				present[int(domain.RankCount)] = c
			}
		}
		for start := 0; start <= int(domain.RankCount); start++ {
			var stretch []domain.Card
			for idx := start; idx <= int(domain.RankCount); idx++ {
				c, ok := present[idx]
				if !ok {
					break
				}
				// The ace occupies one end only.
				if idx == int(domain.RankCount) && start == 0 {
					break
				}
				stretch = append(stretch, c)
				if len(stretch) >= 3 {
					consider(stretch)
				}
			}
		}
	}

	return best
}

// extension finds a single hand card that legally grows one of the visible
// melds, returning the card and the meld it extends.
func extension(hand []domain.Card, melds []MeldView) (domain.Card, MeldView, bool) {
	for _, mv := range melds {
		for _, c := range hand {
			if _, err := domain.CanExtend(mv.Meld, []domain.Card{c}); err == nil {
				return c, mv, true
			}
		}
	}
	return domain.Card{}, MeldView{}, false
}

// wouldHelp reports whether taking the card moves the hand toward a meld: it
// completes a rank pair already held (two matching hand cards make the take a
// full set) or sits next to a same-suit neighbour.
func wouldHelp(hand []domain.Card, c domain.Card) bool {
	sameRank := 0
	for _, h := range hand {
		if h.Rank == c.Rank {
			sameRank++
			if sameRank >= 2 {
				return true
			}
		}
		if h.Suit == c.Suit && neighbours(h.Rank, c.Rank) {
			return true
		}
	}
	return false
}

func neighbours(a, b domain.Rank) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	if d == 1 {
		return true
	}
	// King and ace sit together in an ace-high run.
	return (a == domain.RankAce && b == domain.RankKing) || (a == domain.RankKing && b == domain.RankAce)
}

// connectivity counts how many other hand cards a card could meld with.
// Low connectivity marks a safe discard.
func connectivity(hand []domain.Card, c domain.Card) int {
	score := 0
	for _, h := range hand {
		if h.ID == c.ID {
			continue
		}
		if h.Rank == c.Rank {
			score += 2
		} else if h.Suit == c.Suit && neighbours(h.Rank, c.Rank) {
			score++
		}
	}
	return score
}
