package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"cardmatch/internal/game/match"
	"cardmatch/internal/game/player"
	"cardmatch/internal/network"
	"cardmatch/internal/session/message"

	"github.com/sirupsen/logrus"
)

// Lifecycle é o estado da sessão visto de fora.
type Lifecycle string

const (
	LifecycleEmpty    Lifecycle = "empty"
	LifecycleWaiting  Lifecycle = "waiting"
	LifecycleActive   Lifecycle = "active"
	LifecycleFinished Lifecycle = "finished"
)

// Journal recebe cópia de todo evento público da partida.
type Journal interface {
	Record(gameID string, ev match.Event)
}

type nopJournal struct{}

func (nopJournal) Record(string, match.Event) {}

// Options configura o Manager. Campos zerados recebem valores padrão.
type Options struct {
	ResetDelay      time.Duration
	Rematch         bool
	EmptyDeckPolicy match.EmptyDeckPolicy
	Rand            *rand.Rand
	Scheduler       Scheduler
	Journal         Journal
	Logger          *logrus.Entry
}

// Manager implementa network.EventHandler. É o único dono da partida e dos
// vínculos de jogador; toda mutação acontece sob mu, seja vinda do Hub ou do
// timer de reset.
type Manager struct {
	mu     sync.Mutex
	game   *match.Game
	seats  seats
	router map[string]CommandHandlerFunc

	// generation muda a cada reset; timers de uma geração antiga são ignorados.
	generation uint64
	pending    Timer

	resetDelay time.Duration
	rematch    bool
	sched      Scheduler
	journal    Journal
	log        *logrus.Entry
}

func NewManager(opts Options) *Manager {
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clockScheduler{}
	}
	if opts.Journal == nil {
		opts.Journal = nopJournal{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}

	m := &Manager{
		router:     make(map[string]CommandHandlerFunc),
		resetDelay: opts.ResetDelay,
		rematch:    opts.Rematch,
		sched:      opts.Scheduler,
		journal:    opts.Journal,
		log:        opts.Logger.WithField("component", "session"),
	}
	m.game = match.New(gameNotifier{m}, match.Options{
		Rand:            opts.Rand,
		EmptyDeckPolicy: opts.EmptyDeckPolicy,
		Logger:          opts.Logger,
	})
	m.registerMatchHandlers()
	return m
}

// gameNotifier entrega os eventos do motor às conexões vinculadas.
type gameNotifier struct{ m *Manager }

func (n gameNotifier) Broadcast(ev match.Event) {
	for _, seat := range n.m.seats.occupied() {
		n.m.send(seat.Peer, ev)
	}
	n.m.journal.Record(n.m.game.ID().String(), ev)
}

func (n gameNotifier) Notify(slot player.Slot, ev match.Event) {
	if seat := n.m.seats.at(slot); seat != nil {
		n.m.send(seat.Peer, ev)
	}
}

func (m *Manager) send(p network.Peer, ev match.Event) {
	if err := message.SendEvent(p, ev); err != nil {
		m.log.WithError(err).WithField("type", ev.Kind).Error("could not encode event")
	}
}

// Status é o retrato servido em /status.
type Status struct {
	Lifecycle Lifecycle      `json:"lifecycle"`
	Seated    int            `json:"seated"`
	Game      match.Snapshot `json:"game"`
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		Lifecycle: m.lifecycle(),
		Seated:    m.seats.count(),
		Game:      m.game.Snapshot(),
	}
}

func (m *Manager) Lifecycle() Lifecycle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lifecycle()
}

// Seated conta os slots vinculados.
func (m *Manager) Seated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seats.count()
}

func (m *Manager) lifecycle() Lifecycle {
	switch m.game.Phase() {
	case match.PhaseInProgress:
		return LifecycleActive
	case match.PhaseFinished:
		return LifecycleFinished
	}
	if m.seats.count() == 0 {
		return LifecycleEmpty
	}
	return LifecycleWaiting
}
