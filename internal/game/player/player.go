package player

import (
	"fmt"
)

// Slot é a posição ordinal de um jogador na mesa. SlotNone é o valor zero
// e significa "ninguém" (vez ainda não definida, slot livre, etc).
type Slot uint8

const (
	SlotNone Slot = iota
	SlotOne
	SlotTwo
)

// Slots lista as duas posições válidas em ordem.
var Slots = [2]Slot{SlotOne, SlotTwo}

func (s Slot) Valid() bool { return s == SlotOne || s == SlotTwo }

// Other devolve o adversário. Para SlotNone devolve SlotNone.
func (s Slot) Other() Slot {
	switch s {
	case SlotOne:
		return SlotTwo
	case SlotTwo:
		return SlotOne
	default:
		return SlotNone
	}
}

// Index converte o slot num índice de array (0 ou 1). Só vale para slots válidos.
func (s Slot) Index() int { return int(s) - 1 }

// Number é o número do jogador como aparece no fio e nas mensagens (1 ou 2, 0 = ninguém).
func (s Slot) Number() int { return int(s) }

func (s Slot) String() string {
	if !s.Valid() {
		return "none"
	}
	return fmt.Sprintf("player %d", s)
}
