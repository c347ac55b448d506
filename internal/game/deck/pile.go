package deck

import (
	"cardmatch/internal/game/card"
	"math/rand/v2"
)

type pileOfCards []card.Card

// Shuffle é um Fisher-Yates: toda permutação tem a mesma chance.
func (p *pileOfCards) Shuffle(r *rand.Rand) {
	n := len(*p)
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		(*p)[i], (*p)[j] = (*p)[j], (*p)[i]
	}
}

func (p *pileOfCards) DrawTop() (card.Card, error) {
	if len(*p) == 0 {
		return card.Card{}, ErrDeckEmpty
	}

	top := (*p)[0] // carta do topo
	*p = (*p)[1:]  // remove do slice
	return top, nil
}

// DrawN remove exatamente n cartas do topo, ou nenhuma.
func (p *pileOfCards) DrawN(n int) ([]card.Card, error) {
	if n < 0 || n > len(*p) {
		return nil, ErrDeckExhausted
	}
	drawn := make([]card.Card, n)
	copy(drawn, (*p)[:n])
	*p = (*p)[n:]
	return drawn, nil
}

func (p *pileOfCards) PutBottom(c card.Card) {
	*p = append(*p, c)
}
