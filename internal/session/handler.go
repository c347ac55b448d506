package session

import (
	"fmt"
	"time"

	"cardmatch/internal/game/match"
	"cardmatch/internal/game/player"
	"cardmatch/internal/network"
	"cardmatch/internal/session/message"

	"github.com/sirupsen/logrus"
)

// CommandHandlerFunc trata um comando de um jogador já vinculado.
type CommandHandlerFunc func(m *Manager, seat *PlayerSession, msg network.Message) (match.Result, error)

// --- Implementação da Interface network.EventHandler ---

// OnConnect vincula a conexão ao próximo slot livre e distribui a mão.
// Com os dois slots ocupados a partida começa.
func (m *Manager) OnConnect(p network.Peer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := m.log.WithField("peer", p.ID())

	seat, err := m.seats.bind(p, time.Now())
	if err != nil {
		log.Info("session full, rejecting connection")
		message.SendInfo(p, "The game is full. Try again later.")
		p.Close()
		return
	}
	log = log.WithField("slot", seat.Slot.Number())

	if err := m.dealIn(seat); err != nil {
		log.WithError(err).Warn("could not deal a hand, rejecting connection")
		message.SendError(p, "Could not deal your hand. Try again later.")
		m.seats.unbind(seat.Slot)
		p.Close()
		return
	}
	log.Info("player joined")

	if m.seats.count() == len(player.Slots) {
		m.start()
		return
	}
	message.SendInfo(p, "Waiting for another player to join...")
}

// OnDisconnect desfaz a partida inteira: um jogador sozinho não continua.
func (m *Manager) OnDisconnect(p network.Peer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seat := m.seats.find(p)
	if seat == nil {
		m.log.WithField("peer", p.ID()).Debug("unseated connection closed")
		return
	}

	m.log.WithFields(logrus.Fields{
		"peer":      p.ID(),
		"slot":      seat.Slot.Number(),
		"lifecycle": m.lifecycle(),
	}).Info("player left, resetting session")

	m.seats.unbind(seat.Slot)
	notify := gameNotifier{m}
	notify.Broadcast(match.Info(fmt.Sprintf("Player %d disconnected. The game has been reset.", seat.Slot.Number())))

	m.cancelPendingReset()
	m.generation++
	m.game.Reset()
	notify.Broadcast(match.GameReset())
	for _, other := range m.seats.occupied() {
		message.SendInfo(other.Peer, "Reconnect to start a new game.")
	}
	m.seats.clear()
}

// OnMessage despacha o comando para o handler registrado.
func (m *Manager) OnMessage(p network.Peer, msg network.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := m.log.WithFields(logrus.Fields{"peer": p.ID(), "type": msg.Type})

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("recovered from panic while handling a command")
			message.SendError(p, "An unexpected error occurred. Please try again.")
		}
	}()

	seat := m.seats.find(p)
	if seat == nil {
		message.SendInvalid(p, match.Reason(match.ErrNotYourTurn))
		return
	}

	handler, found := m.router[msg.Type]
	if !found {
		message.SendInvalid(p, fmt.Sprintf("Unknown command: %s", msg.Type))
		return
	}

	res, err := handler(m, seat, msg)
	if err != nil {
		if match.IsRuleViolation(err) {
			log.WithError(err).Debug("move rejected")
			message.SendInvalid(p, match.Reason(err))
			return
		}
		log.WithError(err).Error("move failed")
		message.SendError(p, match.Reason(err))
		return
	}

	if res.GameOver {
		m.scheduleReset()
	}
}

// dealIn distribui as 7 cartas e as envia só para o dono.
func (m *Manager) dealIn(seat *PlayerSession) error {
	cards, err := m.game.Deal(seat.Slot)
	if err != nil {
		return err
	}
	m.send(seat.Peer, match.Deal(seat.Slot, cards))
	message.SendInfo(seat.Peer, "You are player %d.", seat.Slot.Number())
	return nil
}

func (m *Manager) start() {
	if err := m.game.Start(); err != nil {
		m.log.WithError(err).Warn("game could not start")
	}
}
