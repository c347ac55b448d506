package session

import (
	"errors"
	"time"

	"cardmatch/internal/game/player"
	"cardmatch/internal/network"
)

var ErrSessionFull = errors.New("session full")

// PlayerSession liga uma conexão a um slot da partida.
type PlayerSession struct {
	Peer     network.Peer
	Slot     player.Slot
	JoinedAt time.Time
}

// seats guarda os vínculos conexão -> slot. Posição livre é nil.
type seats [len(player.Slots)]*PlayerSession

// bind ocupa o primeiro slot livre, na ordem SlotOne, SlotTwo.
func (s *seats) bind(p network.Peer, now time.Time) (*PlayerSession, error) {
	for _, slot := range player.Slots {
		if s[slot.Index()] == nil {
			seat := &PlayerSession{Peer: p, Slot: slot, JoinedAt: now}
			s[slot.Index()] = seat
			return seat, nil
		}
	}
	return nil, ErrSessionFull
}

func (s *seats) unbind(slot player.Slot) {
	if slot.Valid() {
		s[slot.Index()] = nil
	}
}

func (s *seats) find(p network.Peer) *PlayerSession {
	for _, seat := range s {
		if seat != nil && seat.Peer.ID() == p.ID() {
			return seat
		}
	}
	return nil
}

func (s *seats) at(slot player.Slot) *PlayerSession {
	if !slot.Valid() {
		return nil
	}
	return s[slot.Index()]
}

func (s *seats) occupied() []*PlayerSession {
	out := make([]*PlayerSession, 0, len(s))
	for _, seat := range s {
		if seat != nil {
			out = append(out, seat)
		}
	}
	return out
}

func (s *seats) count() int { return len(s.occupied()) }

func (s *seats) clear() { *s = seats{} }
