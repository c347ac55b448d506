package main

import (
	"math/rand/v2"
	"net/url"
	"os"
	"time"

	"cardmatch/internal/game/card"
	"cardmatch/internal/game/table"
	"cardmatch/internal/network"
	"cardmatch/internal/session/message"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const quietPeriod = 500 * time.Millisecond

// Personalidades, escolhidas por BOT_ROLE:
//
//	RANDOM  joga uma carta válida qualquer e às vezes passa mesmo podendo jogar.
//	CHAOS   mistura jogadas válidas com lixo: formato errado, carta que não
//	        tem, jogada fora da vez. Serve para exercitar as rejeições.
func main() {
	role := os.Getenv("BOT_ROLE")
	if role == "" {
		role = "RANDOM"
	}
	log := logrus.WithFields(logrus.Fields{"bot": "mixed", "role": role})

	var decide func(*table.View) (network.Message, bool, error)
	switch role {
	case "RANDOM":
		decide = randomMove
	case "CHAOS":
		decide = chaosMove
	default:
		log.Fatalf("unknown BOT_ROLE %q", role)
	}

	addr := os.Getenv("SERVER_ADDRESS")
	if addr == "" {
		addr = "localhost:3000"
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.WithError(err).Error("could not connect to server")
		return
	}
	defer conn.Close()

	msgs := make(chan network.Message, 64)
	go func() {
		defer close(msgs)
		for {
			var msg network.Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			msgs <- msg
		}
	}()

	var view table.View
	for {
		if !drain(msgs, &view, log) {
			log.Info("connection closed")
			return
		}

		move, act, err := decide(&view)
		if err != nil {
			log.WithError(err).Error("could not build move")
			return
		}
		if !act {
			continue
		}
		log.WithFields(logrus.Fields{"type": move.Type, "payload": string(move.Payload)}).Info("sending")
		if err := conn.WriteJSON(move); err != nil {
			log.WithError(err).Warn("send failed")
			return
		}
	}
}

func drain(msgs <-chan network.Message, view *table.View, log *logrus.Entry) bool {
	msg, ok := <-msgs
	if !ok {
		return false
	}
	for {
		if err := view.Apply(msg); err != nil {
			log.WithError(err).Warn("could not apply server message")
		}
		if msg.Type == "INVALID_PLAY" {
			log.Info(string(msg.Payload))
		}

		select {
		case msg, ok = <-msgs:
			if !ok {
				return false
			}
		case <-time.After(quietPeriod):
			return true
		}
	}
}

func randomMove(view *table.View) (network.Message, bool, error) {
	if !view.MyTurn() {
		return network.Message{}, false, nil
	}
	options := view.Playable()
	if len(options) == 0 || rand.IntN(5) == 0 {
		msg, err := network.NewMessage(message.TypePassTurn, nil)
		return msg, true, err
	}
	pick := options[rand.IntN(len(options))]
	msg, err := network.NewMessage(message.TypePlayCard, message.PlayCardRequest{Card: pick.Key()})
	return msg, true, err
}

func chaosMove(view *table.View) (network.Message, bool, error) {
	if !view.Active || view.Over {
		return network.Message{}, false, nil
	}

	var payload any
	switch rand.IntN(6) {
	case 0:
		payload = map[string]string{"card": "Z-12"}
	case 1:
		// Uma carta qualquer do catálogo, provavelmente fora da mão.
		all := card.Catalog()
		payload = map[string]string{"card": all[rand.IntN(len(all))].Key()}
	case 2:
		msg, err := network.NewMessage(message.TypePassTurn, nil)
		return msg, true, err
	default:
		return randomMove(view)
	}
	msg, err := network.NewMessage(message.TypePlayCard, payload)
	return msg, true, err
}
