package protocol

import (
	"encoding/json"

	"github.com/cardtable/server/pkg/game"
)

// Event is an outbound server notification.
type Event interface {
	isEvent()
}

// Notice is a free-text announcement, broadcast for game flow and sent
// point-to-point as an advisory when a request is rejected.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Hand delivers a player their dealt cards. Point-to-point only.
type Hand struct {
	Type  string      `json:"type"`
	Cards []game.Card `json:"cards"`
}

// CardPlayed announces a successful play to the whole table.
type CardPlayed struct {
	Type     string    `json:"type"`
	PlayerID int       `json:"playerId"`
	Card     game.Card `json:"card"`
}

func (Notice) isEvent()     {}
func (Hand) isEvent()       {}
func (CardPlayed) isEvent() {}

func NewNotice(message string) Notice {
	return Notice{Type: "message", Message: message}
}

func NewHand(cards []game.Card) Hand {
	return Hand{Type: "cards", Cards: cards}
}

func NewCardPlayed(playerID int, card game.Card) CardPlayed {
	return CardPlayed{Type: "playCard", PlayerID: playerID, Card: card}
}

// Encode marshals an event for the wire.
func Encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}
