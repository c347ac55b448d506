package main

import (
	"net/url"
	"os"
	"time"

	"cardmatch/internal/game/table"
	"cardmatch/internal/network"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// thinkTime também é o tempo de silêncio que consideramos "mesa parada":
// o servidor manda todas as mensagens de uma ação de uma vez.
const thinkTime = 700 * time.Millisecond

func main() {
	log := logrus.WithField("bot", "simple")

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
	log.WithField("url", u.String()).Info("connected")

	msgs := make(chan network.Message, 64)
	go readLoop(conn, msgs, log)

	var view table.View
	for {
		if !waitForQuiet(msgs, &view, log) {
			log.Info("connection closed")
			return
		}
		if !view.MyTurn() {
			continue
		}

		move, err := view.Choose()
		if err != nil {
			log.WithError(err).Error("could not build move")
			return
		}
		log.WithField("move", string(move.Payload)).WithField("type", move.Type).Info("playing")
		if err := conn.WriteJSON(move); err != nil {
			log.WithError(err).Warn("send failed")
			return
		}
	}
}

func readLoop(conn *websocket.Conn, msgs chan<- network.Message, log *logrus.Entry) {
	defer close(msgs)
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		msgs <- msg
	}
}

// waitForQuiet bloqueia até chegar ao menos uma mensagem e depois aplica as
// seguintes até o servidor ficar quieto por thinkTime. Devolve false se a
// conexão caiu.
func waitForQuiet(msgs <-chan network.Message, view *table.View, log *logrus.Entry) bool {
	msg, ok := <-msgs
	if !ok {
		return false
	}
	apply(view, msg, log)

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return false
			}
			apply(view, msg, log)
		case <-time.After(thinkTime):
			return true
		}
	}
}

func apply(view *table.View, msg network.Message, log *logrus.Entry) {
	if err := view.Apply(msg); err != nil {
		log.WithError(err).Warn("could not apply server message")
	}
	if msg.Type == "INVALID_PLAY" || msg.Type == "GAME_OVER" {
		log.WithField("type", msg.Type).Info(string(msg.Payload))
	}
}
