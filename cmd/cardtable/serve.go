package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/cardtable/server/pkg/config"
	"github.com/cardtable/server/pkg/ingress"
	"github.com/cardtable/server/pkg/protocol"
	"github.com/cardtable/server/pkg/table"

	"github.com/rs/zerolog/log"
)

// watchEvents mirrors the table's public event feed into the server log.
func watchEvents(ctx context.Context, t *table.Table) {
	feed := t.Events.Subscribe()
	defer feed.Done()

	for {
		select {
		case event := <-feed.Recv():
			switch e := event.(type) {
			case protocol.Notice:
				log.Info().Str("notice", e.Message).Msg("table")
			case protocol.CardPlayed:
				log.Info().
					Int("player", e.PlayerID).
					Str("card", e.Card.String()).
					Msg("table")
			}
		case <-ctx.Done():
			return
		}
	}
}

func serveCommand(configs []string) error {
	conf, err := config.Process(configs)
	if err != nil {
		return err
	}

	serverConfig := conf.Server

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := table.New(table.Config{
		MinPlayers: serverConfig.Table.MinPlayers,
		HandSize:   serverConfig.Table.HandSize,
	})

	go watchEvents(ctx, t)

	wsIngress := ingress.NewWSIngress(t)

	mux := http.NewServeMux()
	mux.Handle("/ws", wsIngress)

	address := fmt.Sprintf(
		"%s:%d",
		serverConfig.Ingress.Web.Host,
		serverConfig.Ingress.Web.Port,
	)

	log.Info().
		Str("address", address).
		Str("description", serverConfig.Description).
		Msg("card table listening")

	errc := make(chan error, 1)
	go func() {
		errc <- http.ListenAndServe(address, mux)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	select {
	case err := <-errc:
		log.Error().Err(err).Msg("failed to serve")
		return err
	case sig := <-sigs:
		log.Info().Msgf("terminating: %v", sig)
	}

	return nil
}
