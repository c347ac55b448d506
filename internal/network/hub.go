package network

import (
	"context"

	"github.com/sirupsen/logrus"
)

// clientMessage empacota uma mensagem com o cliente que a enviou.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e roteia eventos para o handler.
// Todos os eventos passam pela goroutine de Run, então o handler nunca é
// chamado em paralelo.
type Hub struct {
	// Acessado SOMENTE pela goroutine do Hub.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	incoming   chan clientMessage

	// Fechado quando Run termina; libera quem estiver esperando nos canais.
	done chan struct{}

	handler EventHandler
	log     *logrus.Entry
}

func NewHub(handler EventHandler, log *logrus.Entry) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		done:       make(chan struct{}),
		handler:    handler,
		log:        log.WithField("component", "hub"),
	}
}

// Run processa eventos até ctx ser cancelado. Ao sair, fecha todos os clientes.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for client := range h.clients {
			client.Close()
		}
		h.log.Info("hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.WithField("clients", len(h.clients)).Debug("client registered")
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Sinal para a writeLoop daquele cliente parar.
				client.Close()
				h.log.WithField("clients", len(h.clients)).Debug("client unregistered")
				h.handler.OnDisconnect(client)
			}

		case cm := <-h.incoming:
			// O Hub não se importa com o conteúdo da mensagem.
			h.handler.OnMessage(cm.client, cm.msg)
		}
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) deliver(cm clientMessage) bool {
	select {
	case h.incoming <- cm:
		return true
	case <-h.done:
		return false
	}
}
