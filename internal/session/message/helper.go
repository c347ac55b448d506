package message

import (
	"fmt"

	"cardmatch/internal/game/match"
	"cardmatch/internal/network"
)

// MessageSender é qualquer coisa que aceita uma mensagem de saída.
// Desacopla este pacote de network.Client.
type MessageSender interface {
	Send(msg network.Message) bool
}

// SendEvent serializa e envia um evento. Só falha se o payload não virar JSON.
func SendEvent(sender MessageSender, ev match.Event) error {
	msg, err := FromEvent(ev)
	if err != nil {
		return err
	}
	sender.Send(msg)
	return nil
}

// SendInfo envia um INFO com texto formatado.
func SendInfo(sender MessageSender, format string, args ...any) {
	_ = SendEvent(sender, match.Info(fmt.Sprintf(format, args...)))
}

// SendInvalid rejeita a jogada de quem enviou.
func SendInvalid(sender MessageSender, reason string) {
	_ = SendEvent(sender, match.InvalidPlay(reason))
}

// SendError avisa de uma falha inesperada.
func SendError(sender MessageSender, text string) {
	_ = SendEvent(sender, match.Failure(text))
}
