package ingress

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/cardtable/server/pkg/protocol"
	"github.com/cardtable/server/pkg/table"
	"github.com/cardtable/server/pkg/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"nhooyr.io/websocket"
)

const (
	// Outbound events queued per client before sends start getting dropped.
	clientEventLimit = 64

	// Inbound message budget per client: sustained and burst.
	messageRate  = 20
	messageBurst = 40

	writeTimeout = 5 * time.Second
)

// Client is one websocket connection seated (or waiting to be seated) at
// the table. The table knows the client only by its outgoing channel.
type Client struct {
	id       uuid.UUID
	host     string
	session  utils.Session
	outgoing chan protocol.Event
	limiter  *rate.Limiter
}

// WSIngress accepts websocket connections and maps their lifecycle onto
// table operations: a decoded message becomes a table call, a closed
// socket becomes a disconnect.
type WSIngress struct {
	table   *table.Table
	clients map[*Client]struct{}
	mutex   sync.Mutex
}

func NewWSIngress(t *table.Table) *WSIngress {
	return &WSIngress{
		table:   t,
		clients: make(map[*Client]struct{}),
	}
}

func (server *WSIngress) AddClient(client *Client) {
	server.mutex.Lock()
	server.clients[client] = struct{}{}
	server.mutex.Unlock()
}

func (server *WSIngress) RemoveClient(client *Client) {
	server.mutex.Lock()
	delete(server.clients, client)
	server.mutex.Unlock()
}

// NumClients returns the number of open connections, seated or not.
func (server *WSIngress) NumClients() int {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	return len(server.clients)
}

func WriteTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Write(ctx, websocket.MessageText, msg)
}

func (server *WSIngress) HandleClient(ctx context.Context, c *websocket.Conn, host string) error {
	client := &Client{
		id:       uuid.New(),
		host:     host,
		session:  utils.NewSession(ctx),
		outgoing: make(chan protocol.Event, clientEventLimit),
		limiter:  rate.NewLimiter(rate.Limit(messageRate), messageBurst),
	}
	server.AddClient(client)
	defer server.RemoveClient(client)

	// Whatever ends this session, the seat is freed; the table resets
	// itself when the last one goes.
	defer server.table.Disconnect(client.outgoing)
	defer client.session.Cancel()

	logger := log.With().
		Str("client", client.id.String()).
		Str("host", host).
		Logger()

	logger.Info().Msg("client connected")
	defer logger.Info().Msg("client disconnected")

	receive := make(chan []byte)
	go func() {
		for {
			if client.session.IsDone() {
				return
			}

			_, message, err := c.Read(client.session.Ctx())
			if err != nil {
				client.session.Cancel()
				return
			}

			select {
			case receive <- message:
			case <-client.session.Ctx().Done():
				return
			}
		}
	}()

	for {
		select {
		case data := <-receive:
			if !client.limiter.Allow() {
				logger.Debug().Msg("client exceeded message budget; dropping")
				continue
			}
			server.handleMessage(&logger, client, data)
		case event := <-client.outgoing:
			data, err := protocol.Encode(event)
			if err != nil {
				logger.Error().Err(err).Msg("could not encode event")
				continue
			}
			if err := WriteTimeout(client.session.Ctx(), writeTimeout, c, data); err != nil {
				logger.Warn().Msg("client missed write timeout; disconnecting")
				return err
			}
		case <-client.session.Ctx().Done():
			return client.session.Ctx().Err()
		}
	}
}

// handleMessage applies one decoded message to the table and turns any
// rejection into an advisory notice for the caller. Malformed payloads are
// transport noise and are dropped without reply.
func (server *WSIngress) handleMessage(logger *zerolog.Logger, client *Client, data []byte) {
	message, err := protocol.Decode(data)
	if err != nil {
		logger.Debug().Msg("dropping malformed message")
		return
	}

	switch m := message.(type) {
	case protocol.Join:
		err := server.table.Join(m.Name, client.outgoing)
		if errors.Is(err, table.ErrGameInProgress) {
			server.advise(client, "Game already started. Please wait for the next game.")
		} else if err == nil {
			logger.Info().Str("name", m.Name).Msg("player joined")
		}
	case protocol.Start:
		err := server.table.Start()
		switch {
		case errors.Is(err, table.ErrNotEnoughPlayers), errors.Is(err, table.ErrAlreadyStarted):
			server.advise(client, "Cannot start game. Not enough players or game already started.")
		case err == nil:
			logger.Info().Int("players", server.table.NumPlayers()).Msg("game started")
		}
	case protocol.PlayCard:
		err := server.table.PlayCard(client.outgoing, m.Card)
		switch {
		case errors.Is(err, table.ErrNotYourTurn):
			server.advise(client, "It is not your turn.")
		case errors.Is(err, table.ErrCardNotInHand):
			server.advise(client, "You do not have that card.")
		case errors.Is(err, table.ErrNotStarted), errors.Is(err, table.ErrUnknownPlayer):
			// Plays from unseated or early connections are noise.
			logger.Debug().Err(err).Msg("dropping play")
		case err == nil:
			logger.Info().Str("card", m.Card.String()).Msg("card played")
		}
	}
}

// advise queues a point-to-point notice, best effort.
func (server *WSIngress) advise(client *Client, text string) {
	select {
	case client.outgoing <- protocol.NewNotice(text):
	default:
	}
}

func (server *WSIngress) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Error().Err(err).Msg("error accepting client connection")
		return
	}

	defer c.Close(websocket.StatusInternalError, "operational fault during session")

	hostname := r.RemoteAddr
	if original, ok := r.Header["X-Forwarded-For"]; ok {
		hostname = original[0]
	}

	err = server.HandleClient(r.Context(), c, hostname)
	if errors.Is(err, context.Canceled) {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
		websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		log.Debug().Err(err).Msg("client session ended")
	}
}
