// card/rule.go
package card

// Valores com efeito especial.
const (
	RankExtraTurn uint8 = 7 // quem joga mantém a vez
	RankWild      uint8 = 8 // coringa simples
	RankDrawWild  uint8 = 9 // coringa que dá uma carta ao adversário
)

// IsWild diz se a carta é coringa (8 ou 9 de qualquer naipe).
func IsWild(c Card) bool {
	return c.rank == RankWild || c.rank == RankDrawWild
}

// IsDrawEffect diz se a carta obriga o adversário a comprar uma carta.
func IsDrawEffect(c Card) bool { return c.rank == RankDrawWild }

// IsExtraTurn diz se a carta permite jogar de novo.
func IsExtraTurn(c Card) bool { return c.rank == RankExtraTurn }

// Playable decide se candidate pode ser jogada sobre center (nil = sem carta central).
// A ordem importa: um coringa no centro libera tudo antes de olharmos a candidata.
func Playable(center *Card, candidate Card) bool {
	// --- Etapa 1: centro coringa ---
	if center != nil && IsWild(*center) {
		return true
	}

	// --- Etapa 2: candidata coringa ---
	if IsWild(candidate) {
		return true
	}

	// --- Etapa 3: mesa vazia ---
	if center == nil {
		return true
	}

	// --- Etapa 4: mesmo naipe ou mesmo valor ---
	return candidate.suit == center.suit || candidate.rank == center.rank
}
