package player

import (
	"errors"
	"strings"

	"cardmatch/internal/game/card"
)

// HandSize é a capacidade fixa de uma mão.
const HandSize = 7

var (
	ErrHandFull     = errors.New("hand is full")
	ErrCardNotFound = errors.New("card not found in hand")
)

// Hand tem 7 posições fixas. A posição de uma carta não muda enquanto ela
// estiver na mão, por isso o índice serve de identificador para o cliente.
type Hand struct {
	slots [HandSize]*card.Card
}

func NewHand() *Hand {
	return &Hand{}
}

// AddCard coloca a carta na primeira posição vazia e devolve o índice (0-based).
func (h *Hand) AddCard(c card.Card) (int, error) {
	for i, s := range h.slots {
		if s == nil {
			held := c
			h.slots[i] = &held
			return i, nil
		}
	}
	return -1, ErrHandFull
}

// RemoveCard esvazia a primeira posição com a carta. Se ela não estiver na mão
// nada muda e ErrCardNotFound é devolvido.
func (h *Hand) RemoveCard(c card.Card) error {
	i := h.IndexOf(c)
	if i < 0 {
		return ErrCardNotFound
	}
	h.slots[i] = nil
	return nil
}

func (h *Hand) IndexOf(c card.Card) int {
	for i, s := range h.slots {
		if s != nil && *s == c {
			return i
		}
	}
	return -1
}

func (h *Hand) Contains(c card.Card) bool { return h.IndexOf(c) >= 0 }

// RemainingCount conta as posições ocupadas. Zero significa vitória.
func (h *Hand) RemainingCount() int {
	n := 0
	for _, s := range h.slots {
		if s != nil {
			n++
		}
	}
	return n
}

func (h *Hand) Full() bool { return h.RemainingCount() == HandSize }

// Slots devolve uma cópia das posições; nil marca posição vazia.
func (h *Hand) Slots() [HandSize]*card.Card {
	var out [HandSize]*card.Card
	for i, s := range h.slots {
		if s != nil {
			c := *s
			out[i] = &c
		}
	}
	return out
}

// Cards devolve só as cartas presentes, na ordem das posições.
func (h *Hand) Cards() []card.Card {
	cards := make([]card.Card, 0, HandSize)
	for _, s := range h.slots {
		if s != nil {
			cards = append(cards, *s)
		}
	}
	return cards
}

func (h *Hand) Clear() {
	h.slots = [HandSize]*card.Card{}
}

func (h *Hand) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, s := range h.slots {
		if i > 0 {
			sb.WriteString(" ")
		}
		if s == nil {
			sb.WriteString("---")
		} else {
			sb.WriteString(s.Key())
		}
	}
	sb.WriteString("]")
	return sb.String()
}
