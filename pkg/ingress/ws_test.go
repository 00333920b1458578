package ingress

import (
	"fmt"
	"testing"

	"github.com/cardtable/server/pkg/protocol"
	"github.com/cardtable/server/pkg/table"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testClient() *Client {
	return &Client{
		id:       uuid.New(),
		host:     "test",
		outgoing: make(chan protocol.Event, clientEventLimit),
		limiter:  rate.NewLimiter(rate.Inf, 1),
	}
}

func drain(client *Client) []protocol.Event {
	var events []protocol.Event
	for {
		select {
		case event := <-client.outgoing:
			events = append(events, event)
		default:
			return events
		}
	}
}

func newServer() (*WSIngress, zerolog.Logger) {
	return NewWSIngress(table.New(table.Config{})), zerolog.Nop()
}

func TestMalformedMessagesAreDropped(t *testing.T) {
	server, logger := newServer()
	client := testClient()

	for _, payload := range []string{"garbage", `{}`, `{"type":"quit"}`} {
		server.handleMessage(&logger, client, []byte(payload))
	}

	require.Empty(t, drain(client))
	require.Equal(t, 0, server.table.NumPlayers())
}

func TestJoinSeatsPlayer(t *testing.T) {
	server, logger := newServer()
	client := testClient()

	server.handleMessage(&logger, client, []byte(`{"type":"join","name":"ada"}`))

	require.Equal(t, 1, server.table.NumPlayers())
	require.Contains(t, drain(client), protocol.Event(protocol.NewNotice("ada joined the game")))
}

func TestStartRequiresFullTable(t *testing.T) {
	server, logger := newServer()
	client := testClient()

	server.handleMessage(&logger, client, []byte(`{"type":"join","name":"ada"}`))
	server.handleMessage(&logger, client, []byte(`{"type":"start"}`))

	require.Contains(
		t,
		drain(client),
		protocol.Event(protocol.NewNotice("Cannot start game. Not enough players or game already started.")),
	)
	require.False(t, server.table.Started())
}

func TestJoinAfterStartIsAdvised(t *testing.T) {
	server, logger := newServer()

	clients := make([]*Client, 0, 4)
	for i := 0; i < 4; i++ {
		client := testClient()
		payload := fmt.Sprintf(`{"type":"join","name":"p%d"}`, i)
		server.handleMessage(&logger, client, []byte(payload))
		clients = append(clients, client)
	}
	server.handleMessage(&logger, clients[0], []byte(`{"type":"start"}`))
	require.True(t, server.table.Started())

	late := testClient()
	server.handleMessage(&logger, late, []byte(`{"type":"join","name":"late"}`))

	require.Contains(
		t,
		drain(late),
		protocol.Event(protocol.NewNotice("Game already started. Please wait for the next game.")),
	)
	require.Equal(t, 4, server.table.NumPlayers())
}

func TestPlayOutOfTurnIsAdvised(t *testing.T) {
	server, logger := newServer()

	clients := make([]*Client, 0, 4)
	for i := 0; i < 4; i++ {
		client := testClient()
		payload := fmt.Sprintf(`{"type":"join","name":"p%d"}`, i)
		server.handleMessage(&logger, client, []byte(payload))
		clients = append(clients, client)
	}
	server.handleMessage(&logger, clients[0], []byte(`{"type":"start"}`))

	drain(clients[1])
	server.handleMessage(&logger, clients[1], []byte(`{"type":"playCard","card":{"rank":"A","suit":"spades"}}`))

	require.Contains(
		t,
		drain(clients[1]),
		protocol.Event(protocol.NewNotice("It is not your turn.")),
	)
}

func TestPlayBeforeStartIsSilent(t *testing.T) {
	server, logger := newServer()
	client := testClient()

	server.handleMessage(&logger, client, []byte(`{"type":"join","name":"ada"}`))
	drain(client)

	server.handleMessage(&logger, client, []byte(`{"type":"playCard","card":{"rank":"A","suit":"spades"}}`))
	require.Empty(t, drain(client))
}
