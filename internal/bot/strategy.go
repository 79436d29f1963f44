package bot

import (
	"math/rand"

	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/domain"
)

// StandardBot is the tier-tuned opponent. It holds no per-turn state: every
// decision is recomputed from the view, so the host can rebuild the view
// between moves and the bot stays consistent.
type StandardBot struct {
	tier Tier
	cfg  tuning
}

// NewBrain builds the brain for a difficulty tier.
func NewBrain(tier Tier) Brain {
	cfg, ok := tiers[tier]
	if !ok {
		tier, cfg = TierMid, tiers[TierMid]
	}
	return &StandardBot{tier: tier, cfg: cfg}
}

func (b *StandardBot) NextMove(v TableView, rng *rand.Rand) Move {
	if v.Phase == domain.PhaseDraw {
		return b.acquire(v, rng)
	}
	return b.play(v, rng)
}

// acquire decides between the blind deck and the visible unwanted top.
func (b *StandardBot) acquire(v TableView, rng *rand.Rand) Move {
	if v.UnwantedTop != nil {
		if wouldHelp(v.Hand, *v.UnwantedTop) {
			if rng.Float64() < b.cfg.TakeDiscardProb {
				return Move{Kind: MoveTakeTop}
			}
		} else if rng.Float64() < b.cfg.WildInterestProb {
			// Deny the table a card even without an immediate use for it.
			return Move{Kind: MoveTakeTop}
		}
	}
	return Move{Kind: MoveDraw}
}

// play spends the tier's meld-action budget, then discards. A meld that would
// empty the hand is skipped: the round can only be won on a discard, so the
// bot always holds one card back.
func (b *StandardBot) play(v TableView, rng *rand.Rand) Move {
	if v.MeldActionsThisTurn < b.cfg.MeldActions {
		if cards := bestMeld(v.Hand); cards != nil && len(v.Hand)-len(cards) >= 1 {
			ids := make([]string, len(cards))
			for i, c := range cards {
				ids[i] = c.ID
			}
			return Move{Kind: MoveLayMeld, CardIDs: ids}
		}
		if b.cfg.ExtendsMelds && v.AddUnlocked && len(v.Hand) > 1 {
			if c, mv, ok := extension(v.Hand, v.Melds); ok {
				return Move{
					Kind:      MoveAddToMeld,
					CardIDs:   []string{c.ID},
					OwnerSeat: mv.OwnerSeat,
					MeldIndex: mv.Index,
				}
			}
		}
	}
	return Move{Kind: MoveDiscard, CardIDs: []string{b.pickDiscard(v, rng).ID}}
}

// pickDiscard chooses the card to shed. DiscardNoise is the tier's chance of
// shedding at random; otherwise the least connected card goes, the goat tier
// breaking ties toward high point values to limit its end-of-round penalty.
func (b *StandardBot) pickDiscard(v TableView, rng *rand.Rand) domain.Card {
	if rng.Float64() < b.cfg.DiscardNoise {
		return v.Hand[rng.Intn(len(v.Hand))]
	}

	best := v.Hand[0]
	bestConn := connectivity(v.Hand, best)
	for _, c := range v.Hand[1:] {
		conn := connectivity(v.Hand, c)
		switch {
		case conn < bestConn:
			best, bestConn = c, conn
		case conn == bestConn && b.cfg.ShedsPoints && domain.PointValue(c.Rank) > domain.PointValue(best.Rank):
			best = c
		}
	}
	return best
}
