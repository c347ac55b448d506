package session

import (
	"time"

	"cardmatch/internal/game/match"
	"cardmatch/internal/session/message"
)

// DefaultResetDelay é a pausa entre o fim da partida e o reset.
const DefaultResetDelay = 5 * time.Second

type Timer interface {
	Stop() bool
}

// Scheduler agenda o reset pós-vitória. Os testes usam um relógio falso.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// scheduleReset deve ser chamado com mu travado.
func (m *Manager) scheduleReset() {
	m.cancelPendingReset()
	gen := m.generation
	m.pending = m.sched.AfterFunc(m.resetDelay, func() { m.resetAfterGame(gen) })
	m.log.WithField("delay", m.resetDelay.String()).Info("game finished, reset scheduled")
}

func (m *Manager) cancelPendingReset() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

// resetAfterGame zera a partida mantendo os vínculos. Com Rematch ligado e
// os dois slots ocupados, uma nova partida é distribuída na hora.
func (m *Manager) resetAfterGame(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			m.log.WithField("panic", r).Error("recovered from panic during reset")
		}
	}()

	if gen != m.generation {
		m.log.Debug("stale reset timer ignored")
		return
	}
	m.pending = nil
	m.generation++
	m.game.Reset()
	gameNotifier{m}.Broadcast(match.GameReset())

	seated := m.seats.occupied()
	if !m.rematch || len(seated) < len(m.seats) {
		for _, seat := range seated {
			message.SendInfo(seat.Peer, "The game has been reset. Reconnect to play again.")
		}
		return
	}

	for _, seat := range seated {
		if err := m.dealIn(seat); err != nil {
			m.log.WithError(err).Error("rematch deal failed")
			return
		}
	}
	m.log.Info("rematch dealt")
	m.start()
}
