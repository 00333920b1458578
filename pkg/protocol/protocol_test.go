package protocol

import (
	"encoding/json"
	"testing"

	"github.com/cardtable/server/pkg/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJoin(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"join","name":"ada"}`))
	require.NoError(t, err)
	require.Equal(t, Join{Name: "ada"}, msg)
}

func TestDecodeStart(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"start"}`))
	require.NoError(t, err)
	require.Equal(t, Start{}, msg)
}

func TestDecodePlayCard(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"playCard","card":{"rank":"A","suit":"spades"}}`))
	require.NoError(t, err)
	require.Equal(t, PlayCard{Card: game.Card{Rank: game.Ace, Suit: game.Spades}}, msg)
}

func TestDecodeMalformed(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{}`,
		`{"type":"dance"}`,
		`{"name":"ada"}`,
		`{"type":"playCard"}`,
		``,
	} {
		_, err := Decode([]byte(data))
		assert.ErrorIs(t, err, ErrMalformed, "payload %q", data)
	}
}

func TestEncodeTags(t *testing.T) {
	for _, tt := range []struct {
		event Event
		typ   string
	}{
		{NewNotice("Game started!"), "message"},
		{NewHand([]game.Card{{Rank: game.Two, Suit: game.Hearts}}), "cards"},
		{NewCardPlayed(0, game.Card{Rank: game.King, Suit: game.Clubs}), "playCard"},
	} {
		data, err := Encode(tt.event)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, tt.typ, raw["type"])
	}
}

func TestEncodeCardPlayed(t *testing.T) {
	data, err := Encode(NewCardPlayed(2, game.Card{Rank: game.Ten, Suit: game.Diamonds}))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"playCard","playerId":2,"card":{"rank":"10","suit":"diamonds"}}`, string(data))
}
