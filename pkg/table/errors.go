package table

import "errors"

var (
	// ErrGameInProgress rejects joins while a game is running.
	ErrGameInProgress = errors.New("game already started")
	// ErrAlreadyStarted rejects a second start.
	ErrAlreadyStarted = errors.New("game already in progress")
	// ErrNotEnoughPlayers rejects a start below the roster minimum.
	ErrNotEnoughPlayers = errors.New("not enough players")
	// ErrNotStarted rejects plays before the game begins.
	ErrNotStarted = errors.New("game has not started")
	// ErrNotYourTurn rejects plays out of turn order.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrCardNotInHand rejects playing a card the player does not hold.
	ErrCardNotInHand = errors.New("card not in hand")
	// ErrUnknownPlayer rejects actions from connections not seated at the table.
	ErrUnknownPlayer = errors.New("unknown player")
)
