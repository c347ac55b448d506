package match

import (
	"cardmatch/internal/game/card"
	"cardmatch/internal/game/player"
)

// EventKind é o "type" do envelope que chega ao cliente.
type EventKind string

const (
	EventDeal         EventKind = "DEAL"          // Privado: slot e as 7 cartas iniciais.
	EventCenterUpdate EventKind = "CENTER_UPDATE" // Público: nova carta central.
	EventTurnUpdate   EventKind = "TURN_UPDATE"   // Público: de quem é a vez.
	EventInitialTurn  EventKind = "INITIAL_TURN"  // Público: quem começa.
	EventGameStart    EventKind = "GAME_START"    // Público: a partida começou.
	EventGameOver     EventKind = "GAME_OVER"     // Público: vencedor (0 = empate).
	EventGameReset    EventKind = "GAME_RESET"    // Público: estado zerado.
	EventInfo         EventKind = "INFO"          // Texto livre, público ou privado.
	EventReceiveCard  EventKind = "RECEIVE_CARD"  // Privado: carta bônus e sua posição.
	EventInvalidPlay  EventKind = "INVALID_PLAY"  // Privado: jogada rejeitada.
	EventError        EventKind = "ERROR"         // Privado: falha inesperada.
)

// Event é uma notificação de saída. Payload é serializado como JSON pela camada de rede.
type Event struct {
	Kind    EventKind
	Payload any
}

// Notifier entrega eventos aos jogadores. A sessão é quem sabe qual conexão
// está em cada slot; o motor só fala em slots.
type Notifier interface {
	Broadcast(ev Event)
	Notify(slot player.Slot, ev Event)
}

type CardPayload struct {
	Card card.Card `json:"card"`
}

type PlayerPayload struct {
	Player int `json:"player"`
}

type TextPayload struct {
	Message string `json:"message"`
}

type GameOverPayload struct {
	Winner int `json:"winner"`
}

type DealPayload struct {
	Player int                         `json:"player"`
	Cards  [player.HandSize]*card.Card `json:"cards"`
}

type ReceiveCardPayload struct {
	Card     card.Card `json:"card"`
	Position int       `json:"position"` // 1-based
}

type RejectPayload struct {
	Reason string `json:"reason"`
}

type emptyPayload struct{}

func Info(message string) Event {
	return Event{Kind: EventInfo, Payload: TextPayload{Message: message}}
}

func CenterUpdate(c card.Card) Event {
	return Event{Kind: EventCenterUpdate, Payload: CardPayload{Card: c}}
}

func TurnUpdate(s player.Slot) Event {
	return Event{Kind: EventTurnUpdate, Payload: PlayerPayload{Player: s.Number()}}
}

func InitialTurn(s player.Slot) Event {
	return Event{Kind: EventInitialTurn, Payload: PlayerPayload{Player: s.Number()}}
}

func GameStart() Event { return Event{Kind: EventGameStart, Payload: emptyPayload{}} }

func GameReset() Event { return Event{Kind: EventGameReset, Payload: emptyPayload{}} }

func GameOver(winner player.Slot) Event {
	return Event{Kind: EventGameOver, Payload: GameOverPayload{Winner: winner.Number()}}
}

func Deal(s player.Slot, cards [player.HandSize]*card.Card) Event {
	return Event{Kind: EventDeal, Payload: DealPayload{Player: s.Number(), Cards: cards}}
}

func ReceiveCard(c card.Card, index int) Event {
	return Event{Kind: EventReceiveCard, Payload: ReceiveCardPayload{Card: c, Position: index + 1}}
}

func InvalidPlay(reason string) Event {
	return Event{Kind: EventInvalidPlay, Payload: RejectPayload{Reason: reason}}
}

func Failure(message string) Event {
	return Event{Kind: EventError, Payload: TextPayload{Message: message}}
}
