package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck, DeckSize)

	seen := make(map[Card]struct{}, DeckSize)
	for _, card := range deck {
		_, duplicate := seen[card]
		require.False(t, duplicate, "duplicate card %s", card)
		seen[card] = struct{}{}
	}

	for _, rank := range Ranks() {
		for _, suit := range Suits() {
			_, ok := seen[Card{Rank: rank, Suit: suit}]
			assert.True(t, ok, "missing %s of %s", rank, suit)
		}
	}
}

func TestNewDeckDeterministic(t *testing.T) {
	require.Equal(t, NewDeck(), NewDeck())
}

func TestShufflePreservesCards(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, size := range []int{0, 1, 5, DeckSize} {
		deck := NewDeck()[:size]
		before := counts(deck)
		Shuffle(deck, rng)
		require.Equal(t, before, counts(deck), "size %d", size)
	}
}

func TestShuffleSmallDecksAreNoOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	Shuffle(nil, rng)

	one := []Card{{Rank: Ace, Suit: Spades}}
	Shuffle(one, rng)
	require.Equal(t, []Card{{Rank: Ace, Suit: Spades}}, one)
}

func TestDealFourPlayers(t *testing.T) {
	deck := NewDeck()
	rng := rand.New(rand.NewSource(7))
	Shuffle(deck, rng)

	hands := Deal(deck, 4, 13)
	require.Len(t, hands, 4)

	union := make(map[Card]struct{})
	for i, hand := range hands {
		require.Len(t, hand, 13, "hand %d", i)
		for _, card := range hand {
			_, duplicate := union[card]
			require.False(t, duplicate, "card %s dealt twice", card)
			union[card] = struct{}{}
		}
	}
	require.Len(t, union, DeckSize)
}

func TestDealClampsPastDeckEnd(t *testing.T) {
	hands := Deal(NewDeck(), 5, 13)
	require.Len(t, hands, 5)
	for i := 0; i < 4; i++ {
		assert.Len(t, hands[i], 13, "hand %d", i)
	}
	assert.Empty(t, hands[4])
}

func counts(cards []Card) map[Card]int {
	out := make(map[Card]int)
	for _, card := range cards {
		out[card]++
	}
	return out
}
