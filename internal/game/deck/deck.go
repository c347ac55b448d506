package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"cardmatch/internal/game/card"
)

var (
	// ErrDeckExhausted: o deck não tem as n cartas exigidas de uma vez.
	ErrDeckExhausted = errors.New("deck exhausted")
	// ErrDeckEmpty: não há carta para comprar; quem chama degrada o efeito.
	ErrDeckEmpty = errors.New("deck empty")
)

// Deck é a sequência ordenada das cartas restantes; a frente é a próxima compra.
type Deck struct {
	cards pileOfCards
}

// Generate cria um deck com as 40 cartas do catálogo, embaralhadas por r.
func Generate(r *rand.Rand) *Deck {
	d := &Deck{cards: pileOfCards(card.Catalog())}
	d.cards.Shuffle(r)
	return d
}

// FromCards monta um deck com uma ordem conhecida. A frente do slice é o topo.
func FromCards(cards []card.Card) *Deck {
	pile := make(pileOfCards, len(cards))
	copy(pile, cards)
	return &Deck{cards: pile}
}

func (d *Deck) Size() int   { return len(d.cards) }
func (d *Deck) Empty() bool { return len(d.cards) == 0 }

// Cards retorna uma cópia das cartas restantes, do topo para o fundo.
func (d *Deck) Cards() []card.Card {
	out := make([]card.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Draw remove n cartas do topo de forma atômica: ou vêm todas ou o deck fica intacto.
func (d *Deck) Draw(n int) ([]card.Card, error) {
	cards, err := d.cards.DrawN(n)
	if err != nil {
		return nil, fmt.Errorf("draw %d of %d: %w", n, d.Size(), err)
	}
	return cards, nil
}

// DrawOne remove a carta do topo. ErrDeckEmpty não é fatal.
func (d *Deck) DrawOne() (card.Card, error) {
	return d.cards.DrawTop()
}

// PutBottom devolve uma carta ao fundo do deck; é a última a ser comprada.
func (d *Deck) PutBottom(c card.Card) {
	d.cards.PutBottom(c)
}
