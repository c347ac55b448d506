package card

import (
	"fmt"
)

// Card é uma carta imutável: um naipe (letra de A a D) e um valor (dígito de 0 a 9).
// O valor zero de Card não é uma carta válida.
type Card struct {
	suit byte
	rank uint8
}

func (c Card) Suit() byte   { return c.suit }
func (c Card) Rank() uint8  { return c.rank }
func (c Card) IsZero() bool { return c.suit == 0 }

// Key retorna a forma canônica da carta, ex: "C-7".
func (c Card) Key() string { return CardKey(c.suit, c.rank) }

func (c Card) String() string {
	if c.IsZero() {
		return "<no card>"
	}
	return c.Key()
}

// MarshalText faz a carta viajar como "A-7" em qualquer payload JSON.
func (c Card) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return nil, fmt.Errorf("cannot encode an empty card")
	}
	return []byte(c.Key()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ---- Construtor ----

func newCard(suit byte, rank uint8) (Card, error) {
	card := Card{suit: suit, rank: rank}

	validators := []cardValidator{
		validateSuit,
		validateRank,
	}

	for _, v := range validators {
		if err := v(card); err != nil {
			return Card{}, err
		}
	}

	return card, nil
}
