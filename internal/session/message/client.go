package message

// Mensagens no sentido cliente -> servidor e a conversão dos eventos do
// motor para o envelope de rede.
import (
	"cardmatch/internal/game/match"
	"cardmatch/internal/network"
)

// Tipos aceitos do cliente.
const (
	TypePlayCard = "PLAY_CARD"
	TypePassTurn = "PASS_TURN"
)

// PlayCardRequest é o payload de PLAY_CARD: {"card": "A-7"}.
type PlayCardRequest struct {
	Card string `json:"card"`
}

// FromEvent converte um evento do motor no envelope enviado ao cliente.
func FromEvent(ev match.Event) (network.Message, error) {
	return network.NewMessage(string(ev.Kind), ev.Payload)
}
