package domain

import (
	"math/rand"

	"github.com/google/uuid"
)

// DeckSize is the number of cards in the full set.
const DeckSize = 52

// NewDeck returns the full ordered 52-card set with fresh card identities.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := Rank(0); r < RankCount; r++ {
			deck = append(deck, Card{ID: uuid.NewString(), Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffleDeck permutes the deck in place using the provided source.
func ShuffleDeck(rng *rand.Rand, deck []Card) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}
