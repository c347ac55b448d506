package match

import (
	"errors"

	"cardmatch/internal/game/card"
	"cardmatch/internal/game/deck"
	"cardmatch/internal/game/player"
)

var (
	ErrNotYourTurn      = errors.New("not your turn")
	ErrCardNotInHand    = errors.New("card not in hand")
	ErrIncompatibleCard = errors.New("incompatible card")

	// Erros de ciclo de vida, usados pela sessão.
	ErrNotAwaitingPlayers = errors.New("game is not awaiting players")
	ErrPlayersMissing     = errors.New("both players must be dealt in")
	ErrAlreadyDealt       = errors.New("player already has a hand")
)

// Reason traduz um erro de regra no texto mostrado ao jogador.
func Reason(err error) string {
	switch {
	case errors.Is(err, card.ErrInvalidFormat):
		return "Invalid card format!"
	case errors.Is(err, ErrNotYourTurn):
		return "It's not your turn!"
	case errors.Is(err, ErrCardNotInHand):
		return "That card is not in your hand!"
	case errors.Is(err, ErrIncompatibleCard):
		return "Incompatible card!"
	case errors.Is(err, player.ErrCardNotFound):
		return "Could not remove the card from your hand!"
	case errors.Is(err, deck.ErrDeckExhausted), errors.Is(err, deck.ErrDeckEmpty):
		return "The deck is exhausted."
	default:
		return "Something went wrong while processing your move."
	}
}

// IsRuleViolation diz se o erro é uma jogada ilegal (e não uma falha interna).
func IsRuleViolation(err error) bool {
	return errors.Is(err, card.ErrInvalidFormat) ||
		errors.Is(err, ErrNotYourTurn) ||
		errors.Is(err, ErrCardNotInHand) ||
		errors.Is(err, ErrIncompatibleCard)
}
