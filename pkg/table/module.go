package table

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cardtable/server/pkg/game"
	"github.com/cardtable/server/pkg/protocol"
	"github.com/cardtable/server/pkg/utils"

	"github.com/sasha-s/go-deadlock"
)

// Config tunes the table. The zero value is filled in with the standard
// four-player, thirteen-card game.
type Config struct {
	MinPlayers int
	HandSize   int
}

const (
	DefaultMinPlayers = 4
	DefaultHandSize   = 13
)

// Table is the single authoritative game session. Every mutating entry
// point takes the table mutex, so inbound events are applied one at a
// time; sends to players never block inside the lock.
type Table struct {
	// Events receives a copy of every public event the table emits, for
	// observers outside the game. Dealt hands stay point-to-point.
	Events *utils.Topic[protocol.Event]

	mutex  deadlock.Mutex
	config Config
	rng    *rand.Rand

	started   bool
	players   []*Player
	turnIndex int
	trick     []game.Card
}

func New(config Config) *Table {
	if config.MinPlayers == 0 {
		config.MinPlayers = DefaultMinPlayers
	}
	if config.HandSize == 0 {
		config.HandSize = DefaultHandSize
	}
	return &Table{
		Events: utils.NewTopic[protocol.Event](),
		config: config,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Join seats a new player. The new seat's id is its position at the end of
// the roster.
func (t *Table) Join(name string, outgoing Outgoing) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.started {
		return ErrGameInProgress
	}

	t.players = append(t.players, &Player{
		Name:     name,
		Hand:     []game.Card{},
		outgoing: outgoing,
	})
	t.broadcast(protocol.NewNotice(fmt.Sprintf("%s joined the game", name)))
	return nil
}

// Start begins the game: fresh shuffled deck, one hand per seat, turn to
// seat zero.
func (t *Table) Start() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.started {
		return ErrAlreadyStarted
	}
	if len(t.players) < t.config.MinPlayers {
		return ErrNotEnoughPlayers
	}

	deck := game.NewDeck()
	game.Shuffle(deck, t.rng)

	hands := game.Deal(deck, len(t.players), t.config.HandSize)
	for i, player := range t.players {
		player.Hand = hands[i]
		t.sendTo(player, protocol.NewHand(hands[i]))
	}

	t.started = true
	t.turnIndex = 0

	t.broadcast(protocol.NewNotice("Game started!"))
	t.broadcast(protocol.NewNotice(t.turnNotice()))
	return nil
}

// PlayCard plays the named card for the connection bound to outgoing. The
// card is matched by exact rank and suit, first occurrence only.
func (t *Table) PlayCard(outgoing Outgoing, card game.Card) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.started {
		return ErrNotStarted
	}

	index := t.indexOf(outgoing)
	if index == -1 {
		return ErrUnknownPlayer
	}
	if index != t.turnIndex {
		return ErrNotYourTurn
	}

	player := t.players[index]
	at := -1
	for i, held := range player.Hand {
		if held == card {
			at = i
			break
		}
	}
	if at == -1 {
		return ErrCardNotInHand
	}

	player.Hand = append(player.Hand[:at], player.Hand[at+1:]...)
	t.trick = append(t.trick, card)
	t.broadcast(protocol.NewCardPlayed(index, card))

	t.turnIndex = (t.turnIndex + 1) % len(t.players)
	t.broadcast(protocol.NewNotice(t.turnNotice()))
	return nil
}

// Disconnect removes the player bound to outgoing, if any. When the last
// seat empties the table resets to its waiting state.
func (t *Table) Disconnect(outgoing Outgoing) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	index := t.indexOf(outgoing)
	if index == -1 {
		return
	}

	t.players = append(t.players[:index], t.players[index+1:]...)

	if len(t.players) == 0 {
		t.reset()
		return
	}

	// Keep the turn pointing at a live seat after renumbering.
	if t.turnIndex >= len(t.players) {
		t.turnIndex = 0
	}
}

// reset returns the table to the waiting state. Clearing state cannot
// fail, so this always succeeds.
func (t *Table) reset() {
	t.started = false
	t.turnIndex = 0
	t.trick = nil
	t.broadcast(protocol.NewNotice("All players disconnected. Game reset."))
}

// Started reports whether a game is running.
func (t *Table) Started() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.started
}

// NumPlayers returns the current roster size.
func (t *Table) NumPlayers() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.players)
}

func (t *Table) turnNotice() string {
	return fmt.Sprintf("Player %d's turn", t.turnIndex+1)
}

func (t *Table) indexOf(outgoing Outgoing) int {
	for i, player := range t.players {
		if player.outgoing == outgoing {
			return i
		}
	}
	return -1
}

// broadcast fans an event out to every seat, best effort; a full or dead
// channel is skipped rather than stalling the table.
func (t *Table) broadcast(event protocol.Event) {
	for _, player := range t.players {
		t.sendTo(player, event)
	}
	t.Events.Publish(event)
}

func (t *Table) sendTo(player *Player, event protocol.Event) {
	select {
	case player.outgoing <- event:
	default:
	}
}
