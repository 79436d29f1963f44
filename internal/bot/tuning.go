package bot

// Tier selects how strong a practice opponent plays.
type Tier string

const (
	TierEasy Tier = "easy"
	TierMid  Tier = "mid"
	TierPro  Tier = "pro"
	TierGoat Tier = "goat"
)

// tuning is the knob set behind a tier. Strength comes from how many meld
// actions a bot spends per turn and how deliberately it acquires and discards,
// not from seeing hidden cards.
type tuning struct {
	// MeldActions caps lays plus extensions per turn.
	MeldActions int
	// TakeDiscardProb is the chance of picking up a useful unwanted top
	// instead of drawing blind.
	TakeDiscardProb float64
	// WildInterestProb is the chance of taking the top even when it does
	// not obviously help, denying it to the table.
	WildInterestProb float64
	// ExtendsMelds lets the bot spend meld actions on add-to-meld.
	ExtendsMelds bool
	// DiscardNoise is the chance of discarding at random instead of the
	// least connected card.
	DiscardNoise float64
	// ShedsPoints breaks discard ties toward high point cards.
	ShedsPoints bool
}

var tiers = map[Tier]tuning{
	TierEasy: {MeldActions: 0, DiscardNoise: 1},
	TierMid:  {MeldActions: 1, TakeDiscardProb: 0.5, DiscardNoise: 0.5},
	TierPro:  {MeldActions: 2, TakeDiscardProb: 0.9, ExtendsMelds: true, DiscardNoise: 0.15},
	TierGoat: {MeldActions: 2, TakeDiscardProb: 1, WildInterestProb: 0.2, ExtendsMelds: true, ShedsPoints: true},
}

// ParseTier maps a difficulty string to a known tier, defaulting to mid.
func ParseTier(s string) Tier {
	if _, ok := tiers[Tier(s)]; ok {
		return Tier(s)
	}
	return TierMid
}
