package table

import (
	"github.com/cardtable/server/pkg/game"
	"github.com/cardtable/server/pkg/protocol"
)

// Outgoing carries events to one client. The ingress owns the receiving
// side; the table only ever performs best-effort sends into it.
type Outgoing chan<- protocol.Event

// Player is a seat at the table. A player has no identity beyond its
// current roster position and the channel it is bound to; removing a
// player renumbers everyone after it.
type Player struct {
	Name string
	Hand []game.Card

	outgoing Outgoing
}
