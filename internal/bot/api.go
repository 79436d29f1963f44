package bot

import (
	"math/rand"

	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/domain"
)

// MoveKind is one bot decision, mirroring the player actions.
type MoveKind int

const (
	MoveDraw MoveKind = iota
	MoveTakeTop
	MoveTakeAll
	MoveLayMeld
	MoveAddToMeld
	MoveDiscard
)

// Move is a single action the bot wants applied. CardIDs carries the selected
// hand cards; OwnerSeat and MeldIndex identify the target for MoveAddToMeld.
type Move struct {
	Kind      MoveKind
	CardIDs   []string
	OwnerSeat int
	MeldIndex int
}

// MeldView is a visible meld on the table.
type MeldView struct {
	OwnerSeat int
	Index     int
	Meld      domain.Meld
}

// TableView is everything a bot is allowed to see when deciding: its own hand,
// public pile information and every laid meld. Other hands never appear here.
type TableView struct {
	Phase               domain.Phase
	Hand                []domain.Card
	UnwantedTop         *domain.Card
	UnwantedCount       int
	AddUnlocked         bool
	Melds               []MeldView
	MeldActionsThisTurn int
}

// Brain decides one move at a time. The host calls NextMove repeatedly within
// a turn, rebuilding the view after each applied move, until a MoveDiscard
// ends the turn.
type Brain interface {
	NextMove(v TableView, rng *rand.Rand) Move
}
