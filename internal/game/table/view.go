// Package table reconstrói, do lado do cliente, o que um jogador enxerga da
// mesa a partir das mensagens do servidor.
package table

import (
	"fmt"
	"strings"

	"cardmatch/internal/game/card"
	"cardmatch/internal/game/match"
	"cardmatch/internal/game/player"
	"cardmatch/internal/network"
	"cardmatch/internal/session/message"
)

// View é a mesa vista por um jogador. Não é segura para uso concorrente.
type View struct {
	Me     int
	Hand   [player.HandSize]*card.Card
	Center *card.Card
	Turn   int
	Active bool
	Winner int // válido só quando Over
	Over   bool
}

// Apply atualiza a visão com uma mensagem do servidor. Tipos desconhecidos
// são ignorados.
func (v *View) Apply(msg network.Message) error {
	switch match.EventKind(msg.Type) {
	case match.EventDeal:
		var p match.DealPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		v.Me = p.Player
		v.Hand = p.Cards
		v.Over = false

	case match.EventCenterUpdate:
		var p match.CardPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		c := p.Card
		v.Center = &c
		// Cada carta existe uma vez só: se ela estava na nossa mão, fomos nós que jogamos.
		v.remove(c)

	case match.EventInitialTurn, match.EventTurnUpdate:
		var p match.PlayerPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		v.Turn = p.Player

	case match.EventGameStart:
		v.Active = true

	case match.EventReceiveCard:
		var p match.ReceiveCardPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		if p.Position < 1 || p.Position > player.HandSize {
			return fmt.Errorf("received card at invalid position %d", p.Position)
		}
		c := p.Card
		v.Hand[p.Position-1] = &c

	case match.EventGameOver:
		var p match.GameOverPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		v.Active = false
		v.Over = true
		v.Winner = p.Winner

	case match.EventGameReset:
		*v = View{Me: v.Me}
	}
	return nil
}

func (v *View) remove(c card.Card) {
	for i, held := range v.Hand {
		if held != nil && *held == c {
			v.Hand[i] = nil
			return
		}
	}
}

// MyTurn diz se é a vez deste jogador numa partida em andamento.
func (v *View) MyTurn() bool {
	return v.Active && v.Me != 0 && v.Turn == v.Me
}

// Playable lista as cartas da mão que podem ir sobre o centro atual.
func (v *View) Playable() []card.Card {
	var out []card.Card
	for _, c := range v.Hand {
		if c != nil && card.Playable(v.Center, *c) {
			out = append(out, *c)
		}
	}
	return out
}

// Choose escolhe a jogada do bot: prefere 7 (joga de novo), depois 9
// (castiga o adversário), depois qualquer carta; sem opção, passa.
func (v *View) Choose() (network.Message, error) {
	options := v.Playable()
	if len(options) == 0 {
		return network.NewMessage(message.TypePassTurn, nil)
	}

	best := options[0]
	for _, c := range options {
		if card.IsExtraTurn(c) {
			best = c
			break
		}
		if card.IsDrawEffect(c) && !card.IsDrawEffect(best) {
			best = c
		}
	}
	return network.NewMessage(message.TypePlayCard, message.PlayCardRequest{Card: best.Key()})
}

// String desenha a mão com as posições, como o jogador as vê.
func (v *View) String() string {
	var sb strings.Builder
	center := "---"
	if v.Center != nil {
		center = v.Center.Key()
	}
	fmt.Fprintf(&sb, "center: %s | turn: player %d | you: player %d\n", center, v.Turn, v.Me)
	for i, c := range v.Hand {
		key := "---"
		if c != nil {
			key = c.Key()
		}
		fmt.Fprintf(&sb, " %d:%s", i+1, key)
	}
	return sb.String()
}
