package card

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat é retornado quando uma carta não segue o formato "<Naipe>-<Dígito>".
var ErrInvalidFormat = errors.New("invalid card format")

const (
	MinRank uint8 = 0
	MaxRank uint8 = 9
)

// Suits lista os naipes na ordem canônica do catálogo.
var Suits = []byte{'A', 'B', 'C', 'D'}

func CardKey(suit byte, rank uint8) string {
	return fmt.Sprintf("%c-%d", suit, rank)
}

// Tipo para funções de validação
type cardValidator func(Card) error

var allowedSuits = map[byte]struct{}{
	'A': {},
	'B': {},
	'C': {},
	'D': {},
}

// ---- Funções de validação ----

func validateSuit(c Card) error {
	if _, ok := allowedSuits[c.suit]; !ok {
		return fmt.Errorf("%w: suit %q (must be A-D)", ErrInvalidFormat, c.suit)
	}
	return nil
}

func validateRank(c Card) error {
	if c.rank > MaxRank {
		return fmt.Errorf("%w: rank %d (must be 0-9)", ErrInvalidFormat, c.rank)
	}
	return nil
}
