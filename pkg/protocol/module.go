package protocol

import (
	"encoding/json"
	"errors"

	"github.com/cardtable/server/pkg/game"
)

// One JSON object per websocket frame, in both directions, tagged by "type".

var ErrMalformed = errors.New("malformed message")

// Message is an inbound client request.
type Message interface {
	isMessage()
}

// Join asks to seat a new player at the table.
type Join struct {
	Name string
}

// Start asks to begin the game.
type Start struct{}

// PlayCard asks to play the named card for the caller.
type PlayCard struct {
	Card game.Card
}

func (Join) isMessage()     {}
func (Start) isMessage()    {}
func (PlayCard) isMessage() {}

type envelope struct {
	Type string     `json:"type"`
	Name string     `json:"name"`
	Card *game.Card `json:"card"`
}

// Decode parses an inbound frame. Anything that is not one of the three
// known request shapes comes back as ErrMalformed; callers treat that as
// transport noise and drop it.
func Decode(data []byte) (Message, error) {
	var raw envelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrMalformed
	}

	switch raw.Type {
	case "join":
		return Join{Name: raw.Name}, nil
	case "start":
		return Start{}, nil
	case "playCard":
		if raw.Card == nil {
			return nil, ErrMalformed
		}
		return PlayCard{Card: *raw.Card}, nil
	default:
		return nil, ErrMalformed
	}
}
