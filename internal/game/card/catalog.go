package card

import (
	"fmt"
)

// CatalogSize é o número de cartas distintas: 4 naipes x 10 valores.
const CatalogSize = 40

// Catalog devolve as 40 cartas em ordem canônica (A-0, A-1, ..., D-9).
// Cada chamada devolve um slice novo, que pode ser embaralhado à vontade.
func Catalog() []Card {
	cards := make([]Card, 0, CatalogSize)
	for _, s := range Suits {
		for r := MinRank; r <= MaxRank; r++ {
			cards = append(cards, Card{suit: s, rank: r})
		}
	}
	return cards
}

// Parse converte a forma de fio "A-7" numa Card.
// Só aceita exatamente uma letra de naipe, um hífen e um dígito.
func Parse(key string) (Card, error) {
	if len(key) != 3 || key[1] != '-' {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidFormat, key)
	}
	digit := key[2]
	if digit < '0' || digit > '9' {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidFormat, key)
	}
	return newCard(key[0], digit-'0')
}

// MustParse é o atalho para literais conhecidas, usado em testes e no bot.
func MustParse(key string) Card {
	c, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return c
}
