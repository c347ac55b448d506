package match

import (
	"fmt"

	"cardmatch/internal/game/card"
	"cardmatch/internal/game/player"

	"github.com/sirupsen/logrus"
)

// PlayCard valida e aplica a jogada de raw (ex: "C-7") pelo jogador slot.
// As validações seguem a ordem: formato, vez, posse da carta, compatibilidade.
// Qualquer erro devolvido deixa o estado intacto.
func (g *Game) PlayCard(slot player.Slot, raw string) (Result, error) {
	played, err := card.Parse(raw)
	if err != nil {
		return Result{}, err
	}

	if g.phase != PhaseInProgress || !slot.Valid() || slot != g.turn {
		return Result{}, ErrNotYourTurn
	}

	hand := g.hand(slot)
	if !hand.Contains(played) {
		return Result{}, fmt.Errorf("%w: %s", ErrCardNotInHand, played)
	}

	if !card.Playable(g.center, played) {
		return Result{}, fmt.Errorf("%w: %s on %s", ErrIncompatibleCard, played, g.center)
	}

	if err := hand.RemoveCard(played); err != nil {
		g.log.WithFields(logrus.Fields{"slot": slot.Number(), "card": played.Key()}).
			Warn("consistency: card passed the possession check but could not be removed")
		return Result{}, fmt.Errorf("play %s: %w", played, err)
	}

	displaced := g.center
	g.center = &played
	g.notify.Broadcast(CenterUpdate(played))
	g.resetPasses()

	g.log.WithFields(logrus.Fields{
		"slot": slot.Number(),
		"card": played.Key(),
		"left": hand.RemainingCount(),
	}).Info("card played")

	// --- Efeitos especiais ---
	// 9 e 7 são disjuntos, então no máximo um dos dois dispara.
	if card.IsDrawEffect(played) {
		g.giveBonusCard(slot.Other())
	}
	// O bônus compra do topo antes de a carta deslocada ir para o fundo.
	g.returnToDeck(displaced)

	if card.IsExtraTurn(played) {
		g.notify.Notify(slot, Info("You played a card that blocked your opponent. Play again!"))
		g.notify.Notify(slot.Other(), Info(fmt.Sprintf("Player %d blocked you and plays again!", slot.Number())))
	} else {
		g.turn = slot.Other()
		g.notify.Broadcast(TurnUpdate(g.turn))
	}

	// --- Condição de vitória ---
	if hand.RemainingCount() == 0 {
		return g.finish(slot), nil
	}
	return Result{}, nil
}

// returnToDeck põe a carta que saiu do centro no fundo do deck.
func (g *Game) returnToDeck(c *card.Card) {
	if c == nil {
		return
	}
	g.deck.PutBottom(*c)
}

// giveBonusCard entrega uma carta do deck ao adversário de quem jogou um 9.
// Mão cheia ou deck vazio só cancelam o bônus; a jogada continua válida.
func (g *Game) giveBonusCard(target player.Slot) {
	hand := g.hand(target)
	entry := g.log.WithField("slot", target.Number())

	if hand.Full() {
		g.notify.Notify(target, Info("Your hand is full. The bonus card could not be added."))
		entry.Info("bonus card skipped: hand full")
		return
	}

	bonus, err := g.deck.DrawOne()
	if err != nil {
		g.notify.Notify(target, Info("The deck is exhausted. There are no more cards to hand out."))
		entry.Info("bonus card skipped: deck empty")
		return
	}

	pos, err := hand.AddCard(bonus)
	if err != nil {
		// Full() acabou de dizer que havia espaço.
		entry.WithError(err).Error("consistency: bonus card could not be added")
		return
	}

	g.notify.Notify(target, ReceiveCard(bonus, pos))
	g.notify.Notify(target, Info(fmt.Sprintf("You received card %s because of a special play!", bonus)))
	entry.WithFields(logrus.Fields{"card": bonus.Key(), "position": pos + 1}).Info("bonus card delivered")
}
