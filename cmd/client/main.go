package main

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"cardmatch/internal/cluster"
	"cardmatch/internal/game/match"
	"cardmatch/internal/game/table"
	"cardmatch/internal/network"
	"cardmatch/internal/session/message"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var (
	// A mesa é lida pelo loop de entrada e escrita pelo readLoop.
	view      table.View
	viewMutex sync.Mutex
)

func main() {
	log := logrus.WithField("component", "client")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	// 1. Lista de servidores: SERVER_ADDRESSES="host1:3000,host2:3000" ou,
	// com CONSUL_HTTP_ADDR, as instâncias saudáveis registradas no Consul.
	addresses := []string{"localhost:3000"}
	if env := os.Getenv("SERVER_ADDRESSES"); env != "" {
		addresses = strings.Split(env, ",")
	} else if consulAddr := os.Getenv("CONSUL_HTTP_ADDR"); consulAddr != "" {
		if found, err := discover(consulAddr, log); err != nil {
			log.WithError(err).Warn("consul discovery failed, using defaults")
		} else {
			addresses = found
		}
	}

	// 2. Tenta cada endereço até uma conexão dar certo
	var conn *websocket.Conn
	for _, addr := range addresses {
		u := url.URL{Scheme: "ws", Host: strings.TrimSpace(addr), Path: "/ws"}
		log.WithField("url", u.String()).Info("connecting")

		var resp *http.Response
		var err error
		conn, resp, err = websocket.DefaultDialer.Dial(u.String(), nil)
		if err == nil {
			break
		}
		entry := log.WithError(err).WithField("addr", addr)
		if resp != nil {
			entry = entry.WithField("status", resp.Status)
		}
		entry.Warn("connection failed")
	}
	if conn == nil {
		log.Fatal("no server available")
	}
	defer conn.Close()

	pings := newPingTracker()
	conn.SetPongHandler(func(string) error {
		pings.pong(time.Now())
		return nil
	})

	done := make(chan struct{})
	go readLoop(conn, done, log)

	printHelp()
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			handleUserInput(conn, strings.TrimSpace(scanner.Text()), pings, log)
		}
	}()

	select {
	case <-done:
		fmt.Println("Disconnected from server.")
	case <-interrupt:
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

func discover(consulAddr string, log *logrus.Entry) ([]string, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "cardmatch"
	}
	client, err := cluster.NewConsulClient(consulAddr, log)
	if err != nil {
		return nil, err
	}
	return cluster.DiscoverHealthy(client, serviceName)
}

func readLoop(conn *websocket.Conn, done chan struct{}, log *logrus.Entry) {
	defer close(done)
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read failed")
			}
			return
		}

		viewMutex.Lock()
		if err := view.Apply(msg); err != nil {
			log.WithError(err).Warn("could not apply server message")
		}
		printServerMessage(msg)
		viewMutex.Unlock()
	}
}

func handleUserInput(conn *websocket.Conn, input string, pings *pingTracker, log *logrus.Entry) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return
	}

	var msg network.Message
	var err error
	switch strings.ToLower(fields[0]) {
	case "play", "p":
		if len(fields) != 2 {
			fmt.Println("Usage: play <card>, e.g. play A-7")
			return
		}
		msg, err = network.NewMessage(message.TypePlayCard, message.PlayCardRequest{Card: strings.ToUpper(fields[1])})
	case "pass":
		msg, err = network.NewMessage(message.TypePassTurn, nil)
	case "hand", "h":
		viewMutex.Lock()
		fmt.Println(view.String())
		viewMutex.Unlock()
		return
	case "ping":
		measurePing(conn, pings)
		return
	case "help":
		printHelp()
		return
	default:
		fmt.Println("Unknown command. Type 'help'.")
		return
	}
	if err != nil {
		log.WithError(err).Error("could not build message")
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.WithError(err).Warn("send failed")
	}
}

func measurePing(conn *websocket.Conn, pings *pingTracker) {
	pings.start(time.Now())
	if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
		pings.cancel()
		fmt.Println("Ping failed:", err)
		return
	}

	if latency, ok := pings.wait(3 * time.Second); ok {
		fmt.Printf("Pong! latency %v\n", latency)
		return
	}
	fmt.Println("Ping timed out.")
}

// printServerMessage deve ser chamado com viewMutex travado.
func printServerMessage(msg network.Message) {
	switch match.EventKind(msg.Type) {
	case match.EventInfo, match.EventError:
		var p match.TextPayload
		msg.Decode(&p)
		fmt.Println(">", p.Message)
	case match.EventInvalidPlay:
		var p match.RejectPayload
		msg.Decode(&p)
		fmt.Println("Invalid move:", p.Reason)
	case match.EventDeal, match.EventReceiveCard:
		fmt.Println(view.String())
	case match.EventCenterUpdate:
		fmt.Println("Center card:", view.Center)
	case match.EventTurnUpdate, match.EventInitialTurn:
		if view.Turn == view.Me && view.Me != 0 {
			fmt.Println("Your turn.")
			fmt.Println(view.String())
		} else {
			fmt.Printf("Player %d's turn.\n", view.Turn)
		}
	case match.EventGameOver:
		switch view.Winner {
		case 0:
			fmt.Println("Game over: draw.")
		case view.Me:
			fmt.Println("Game over: you won!")
		default:
			fmt.Printf("Game over: player %d won.\n", view.Winner)
		}
	case match.EventGameReset:
		fmt.Println("The table was reset.")
	case match.EventGameStart:
		fmt.Println("The game has started.")
	default:
		fmt.Printf("(%s) %s\n", msg.Type, string(msg.Payload))
	}
}

func printHelp() {
	fmt.Print(`
--- Card Match ---
play <card>   play a card, e.g. play A-7
pass          pass your turn
hand          show your hand and the center card
ping          measure latency
help          show this help
`)
}
