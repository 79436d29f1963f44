package domain

// Phase represents the stage of the acting player's turn.
type Phase string

const (
	// PhaseDraw opens every turn; the player must acquire a card before anything else.
	PhaseDraw Phase = "DRAW"
	// PhaseMeld follows any acquisition and lasts until the closing discard.
	PhaseMeld Phase = "MELD"
)

// Suit identifies one of the four French suits.
type Suit string

const (
	SuitSpades   Suit = "S"
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
)

// Suits lists all suits in deck-build order.
var Suits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// Rank indexes A..K as 0..12.
type Rank int

const (
	RankAce   Rank = 0
	RankTen   Rank = 9
	RankJack  Rank = 10
	RankQueen Rank = 11
	RankKing  Rank = 12

	// RankCount is the number of distinct ranks.
	RankCount = 13
)

var rankLabels = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Label returns the display label for a rank ("A", "2", ..., "K").
func (r Rank) Label() string {
	if r < 0 || int(r) >= len(rankLabels) {
		return "?"
	}
	return rankLabels[r]
}

// Card is a single playing card. ID keeps equal-rank, equal-suit cards
// distinguishable so client selections can be tracked by identity.
type Card struct {
	ID   string `json:"id"`
	Rank Rank   `json:"rank"`
	Suit Suit   `json:"suit"`
}

// Label returns a short human-readable form like "10H".
func (c Card) Label() string {
	return c.Rank.Label() + string(c.Suit)
}

// Player holds state for one seat at the table. Score carries across rounds;
// everything else is reset by NewRound.
type Player struct {
	ID    string
	Name  string
	IsBot bool

	Hand  []Card
	Melds []Meld

	// HasLaidMeldThisRound unlocks adding to melds. It is set on the player's
	// first successful lay and stays set for the rest of the round.
	HasLaidMeldThisRound bool

	Score int
}
