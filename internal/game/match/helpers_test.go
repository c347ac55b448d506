package match

import (
	"io"
	"math/rand/v2"
	"testing"

	"cardmatch/internal/game/card"
	"cardmatch/internal/game/deck"
	"cardmatch/internal/game/player"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// recorder guarda tudo o que o motor emitiu.
type recorder struct {
	broadcasts []Event
	private    map[player.Slot][]Event
}

func newRecorder() *recorder {
	return &recorder{private: make(map[player.Slot][]Event)}
}

func (r *recorder) Broadcast(ev Event) { r.broadcasts = append(r.broadcasts, ev) }

func (r *recorder) Notify(slot player.Slot, ev Event) {
	r.private[slot] = append(r.private[slot], ev)
}

func (r *recorder) clear() {
	r.broadcasts = nil
	r.private = make(map[player.Slot][]Event)
}

func (r *recorder) broadcastKinds() []EventKind {
	kinds := make([]EventKind, len(r.broadcasts))
	for i, ev := range r.broadcasts {
		kinds[i] = ev.Kind
	}
	return kinds
}

func (r *recorder) findBroadcast(kind EventKind) *Event {
	for i := len(r.broadcasts) - 1; i >= 0; i-- {
		if r.broadcasts[i].Kind == kind {
			return &r.broadcasts[i]
		}
	}
	return nil
}

func (r *recorder) findPrivate(slot player.Slot, kind EventKind) *Event {
	events := r.private[slot]
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == kind {
			return &events[i]
		}
	}
	return nil
}

// privateTexts devolve as mensagens INFO privadas de um jogador.
func (r *recorder) privateTexts(slot player.Slot) []string {
	var out []string
	for _, ev := range r.private[slot] {
		if ev.Kind == EventInfo {
			out = append(out, ev.Payload.(TextPayload).Message)
		}
	}
	return out
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestGame(t *testing.T, policy EmptyDeckPolicy) (*Game, *recorder) {
	t.Helper()
	rec := newRecorder()
	g := New(rec, Options{
		Rand:            rand.New(rand.NewPCG(99, 1)),
		EmptyDeckPolicy: policy,
		Logger:          quietLogger(),
	})
	return g, rec
}

// arrange monta uma mesa conhecida. deckTop fica no topo do deck e o resto do
// catálogo vai embaixo, de modo que as 40 cartas continuam todas em jogo.
func arrange(t *testing.T, g *Game, turn player.Slot, center string, one, two []string, deckTop ...string) {
	t.Helper()
	used := make(map[card.Card]bool)
	take := func(key string) card.Card {
		c := card.MustParse(key)
		require.False(t, used[c], "card %s used twice in arrange", key)
		used[c] = true
		return c
	}

	g.Reset()
	for i, keys := range [][]string{one, two} {
		for _, k := range keys {
			_, err := g.hands[i].AddCard(take(k))
			require.NoError(t, err)
		}
		g.dealt[i] = true
	}

	if center != "" {
		c := take(center)
		g.center = &c
	}

	var rest []card.Card
	for _, k := range deckTop {
		rest = append(rest, take(k))
	}
	for _, c := range card.Catalog() {
		if !used[c] {
			rest = append(rest, c)
		}
	}
	g.deck = deck.FromCards(rest)

	g.turn = turn
	g.phase = PhaseInProgress
}

// deckBottom devolve a última carta do deck.
func deckBottom(t *testing.T, g *Game) card.Card {
	t.Helper()
	cards := g.DeckCards()
	require.NotEmpty(t, cards)
	return cards[len(cards)-1]
}

// requireConservation checa que as 40 cartas estão em exatamente um lugar.
func requireConservation(t *testing.T, g *Game) {
	t.Helper()
	seen := make(map[card.Card]int)
	for _, c := range g.DeckCards() {
		seen[c]++
	}
	for _, s := range player.Slots {
		for _, c := range g.HandSlots(s) {
			if c != nil {
				seen[*c]++
			}
		}
	}
	if c := g.Center(); c != nil {
		seen[*c]++
	}

	total := 0
	for c, n := range seen {
		require.Equal(t, 1, n, "card %s appears %d times", c, n)
		total += n
	}
	require.Equal(t, card.CatalogSize, total)
}
