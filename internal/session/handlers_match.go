package session

import (
	"fmt"

	"cardmatch/internal/game/card"
	"cardmatch/internal/game/match"
	"cardmatch/internal/network"
	"cardmatch/internal/session/message"
)

func handlePlayCard(m *Manager, seat *PlayerSession, msg network.Message) (match.Result, error) {
	var req message.PlayCardRequest
	if err := msg.Decode(&req); err != nil {
		return match.Result{}, fmt.Errorf("%w: %v", card.ErrInvalidFormat, err)
	}
	return m.game.PlayCard(seat.Slot, req.Card)
}

func handlePassTurn(m *Manager, seat *PlayerSession, _ network.Message) (match.Result, error) {
	return m.game.Pass(seat.Slot)
}

// registerMatchHandlers popula o roteador com os comandos da partida.
func (m *Manager) registerMatchHandlers() {
	m.router[message.TypePlayCard] = handlePlayCard
	m.router[message.TypePassTurn] = handlePassTurn
}
