package match

import (
	"fmt"
	"math/rand/v2"
	"time"

	"cardmatch/internal/game/card"
	"cardmatch/internal/game/deck"
	"cardmatch/internal/game/player"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Phase é a fase do motor de regras.
type Phase string

const (
	PhaseAwaitingPlayers Phase = "awaiting_players"
	PhaseInProgress      Phase = "in_progress"
	PhaseFinished        Phase = "finished"
)

// EmptyDeckPolicy decide o que acontece quando os dois jogadores passam
// seguidos e não há carta para renovar o centro.
type EmptyDeckPolicy string

const (
	PolicyHold   EmptyDeckPolicy = "hold"   // zera o contador, a vez não muda
	PolicySwitch EmptyDeckPolicy = "switch" // zera o contador e passa a vez
	PolicyDraw   EmptyDeckPolicy = "draw"   // encerra a partida empatada
)

func ParseEmptyDeckPolicy(s string) (EmptyDeckPolicy, error) {
	switch p := EmptyDeckPolicy(s); p {
	case PolicyHold, PolicySwitch, PolicyDraw:
		return p, nil
	default:
		return "", fmt.Errorf("unknown empty deck policy %q (want hold, switch or draw)", s)
	}
}

// Options configura um Game. Campos zerados recebem valores padrão.
type Options struct {
	Rand            *rand.Rand
	EmptyDeckPolicy EmptyDeckPolicy
	Logger          *logrus.Entry
}

// Result informa a sessão se a ação encerrou a partida.
type Result struct {
	GameOver bool
	Winner   player.Slot // SlotNone quando a partida termina empatada
}

// Game é o agregado de uma partida: deck, as duas mãos, carta central,
// vez e contador de passes. Não é seguro para uso concorrente; quem o
// possui (a sessão) serializa as chamadas.
type Game struct {
	id     uuid.UUID
	deck   *deck.Deck
	hands  [2]*player.Hand
	dealt  [2]bool
	center *card.Card
	turn   player.Slot

	passCount  int
	lastPasser player.Slot

	phase  Phase
	rng    *rand.Rand
	policy EmptyDeckPolicy
	notify Notifier

	baseLog *logrus.Entry
	log     *logrus.Entry
}

func New(notify Notifier, opts Options) *Game {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}
	if opts.EmptyDeckPolicy == "" {
		opts.EmptyDeckPolicy = PolicySwitch
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}

	g := &Game{
		hands:   [2]*player.Hand{player.NewHand(), player.NewHand()},
		rng:     opts.Rand,
		policy:  opts.EmptyDeckPolicy,
		notify:  notify,
		baseLog: opts.Logger.WithField("component", "match"),
	}
	g.Reset()
	return g
}

// Reset gera e embaralha um deck novo e limpa mãos, centro, vez e passes.
// Os vínculos de jogador pertencem à sessão e não são tocados aqui.
func (g *Game) Reset() {
	g.id = uuid.New()
	g.log = g.baseLog.WithField("game_id", g.id.String())

	g.deck = deck.Generate(g.rng)
	for i := range g.hands {
		g.hands[i].Clear()
		g.dealt[i] = false
	}
	g.center = nil
	g.turn = player.SlotNone
	g.resetPasses()
	g.phase = PhaseAwaitingPlayers

	g.log.Debug("game state reset")
}

// Deal compra as 7 cartas iniciais de um jogador. A compra é atômica: se o
// deck não tiver 7 cartas nada muda e o erro envolve deck.ErrDeckExhausted.
func (g *Game) Deal(slot player.Slot) ([player.HandSize]*card.Card, error) {
	var none [player.HandSize]*card.Card
	if g.phase != PhaseAwaitingPlayers {
		return none, ErrNotAwaitingPlayers
	}
	if !slot.Valid() {
		return none, fmt.Errorf("deal to %s: invalid slot", slot)
	}
	if g.dealt[slot.Index()] {
		return none, ErrAlreadyDealt
	}

	cards, err := g.deck.Draw(player.HandSize)
	if err != nil {
		return none, fmt.Errorf("deal to %s: %w", slot, err)
	}

	hand := g.hand(slot)
	for _, c := range cards {
		if _, err := hand.AddCard(c); err != nil {
			// A mão estava vazia; só chega aqui se o invariante quebrou.
			return none, fmt.Errorf("deal to %s: %w", slot, err)
		}
	}
	g.dealt[slot.Index()] = true

	g.log.WithFields(logrus.Fields{"slot": slot.Number(), "deck": g.deck.Size()}).Info("hand dealt")
	return hand.Slots(), nil
}

// Start sorteia quem começa e vira a primeira carta central.
func (g *Game) Start() error {
	if g.phase != PhaseAwaitingPlayers {
		return ErrNotAwaitingPlayers
	}
	if !g.dealt[0] || !g.dealt[1] {
		g.notify.Broadcast(Info("Waiting for more players to start the game."))
		return ErrPlayersMissing
	}

	first, err := g.deck.DrawOne()
	if err != nil {
		g.notify.Broadcast(Info("Deck exhausted. The game cannot start."))
		return fmt.Errorf("start: %w", err)
	}

	g.turn = player.Slots[g.rng.IntN(len(player.Slots))]
	g.center = &first
	g.resetPasses()
	g.phase = PhaseInProgress

	g.notify.Broadcast(CenterUpdate(first))
	g.notify.Broadcast(InitialTurn(g.turn))
	g.notify.Broadcast(GameStart())

	g.notify.Notify(g.turn, Info("You start! Center card played!"))
	g.notify.Notify(g.turn.Other(), Info(fmt.Sprintf("Player %d starts! Center card played!", g.turn.Number())))

	g.log.WithFields(logrus.Fields{"turn": g.turn.Number(), "center": first.Key()}).Info("game started")
	return nil
}

func (g *Game) finish(winner player.Slot) Result {
	g.phase = PhaseFinished

	if winner.Valid() {
		g.notify.Broadcast(Info(fmt.Sprintf("Player %d won the game!", winner.Number())))
	} else {
		g.notify.Broadcast(Info("The game ended in a draw."))
	}
	g.notify.Broadcast(GameOver(winner))

	g.log.WithField("winner", winner.Number()).Info("game over")
	return Result{GameOver: true, Winner: winner}
}

func (g *Game) resetPasses() {
	g.passCount = 0
	g.lastPasser = player.SlotNone
}

func (g *Game) hand(slot player.Slot) *player.Hand {
	return g.hands[slot.Index()]
}

// ---- Leitura de estado ----

func (g *Game) ID() uuid.UUID           { return g.id }
func (g *Game) Phase() Phase            { return g.phase }
func (g *Game) Turn() player.Slot       { return g.turn }
func (g *Game) PassCount() int          { return g.passCount }
func (g *Game) LastPasser() player.Slot { return g.lastPasser }
func (g *Game) DeckSize() int           { return g.deck.Size() }
func (g *Game) DeckCards() []card.Card  { return g.deck.Cards() }

// Center devolve uma cópia da carta central, ou nil antes do início.
func (g *Game) Center() *card.Card {
	if g.center == nil {
		return nil
	}
	c := *g.center
	return &c
}

// HandSlots devolve uma cópia das 7 posições da mão de um jogador.
func (g *Game) HandSlots(slot player.Slot) [player.HandSize]*card.Card {
	if !slot.Valid() {
		return [player.HandSize]*card.Card{}
	}
	return g.hand(slot).Slots()
}

func (g *Game) HandCount(slot player.Slot) int {
	if !slot.Valid() {
		return 0
	}
	return g.hand(slot).RemainingCount()
}

// Snapshot é a visão pública da partida (sem as cartas das mãos).
type Snapshot struct {
	GameID     string     `json:"gameId"`
	Phase      Phase      `json:"phase"`
	Turn       int        `json:"turn"`
	Center     *card.Card `json:"center"`
	PassCount  int        `json:"passCount"`
	LastPasser int        `json:"lastPasser"`
	DeckSize   int        `json:"deckSize"`
	HandCounts [2]int     `json:"handCounts"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		GameID:     g.id.String(),
		Phase:      g.phase,
		Turn:       g.turn.Number(),
		Center:     g.Center(),
		PassCount:  g.passCount,
		LastPasser: g.lastPasser.Number(),
		DeckSize:   g.deck.Size(),
		HandCounts: [2]int{g.hands[0].RemainingCount(), g.hands[1].RemainingCount()},
	}
}
