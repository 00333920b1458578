package game

import "math/rand"

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// NewDeck returns the standard 52-card deck in canonical rank-major order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, rank := range Ranks() {
		for _, suit := range Suits() {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Shuffle permutes the deck in place with a Fisher-Yates walk. Decks of
// length 0 or 1 are left untouched.
func Shuffle(deck []Card, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Deal splits the deck into one hand per player, handSize cards each, taken
// from consecutive positions. Hands past the end of the deck come up short
// or empty; the caller decides whether that is acceptable for its roster.
func Deal(deck []Card, players int, handSize int) [][]Card {
	hands := make([][]Card, 0, players)
	for i := 0; i < players; i++ {
		start := min(i*handSize, len(deck))
		end := min(start+handSize, len(deck))
		hand := make([]Card, end-start)
		copy(hand, deck[start:end])
		hands = append(hands, hand)
	}
	return hands
}
