package match

import (
	"fmt"

	"cardmatch/internal/game/player"

	"github.com/sirupsen/logrus"
)

// passesToEscalate é quantos passes seguidos renovam a carta central.
const passesToEscalate = 2

// Pass passa a vez. Dois passes seguidos sem jogada no meio colocam uma
// carta nova no centro para destravar a partida.
func (g *Game) Pass(slot player.Slot) (Result, error) {
	if g.phase != PhaseInProgress || !slot.Valid() || slot != g.turn {
		return Result{}, ErrNotYourTurn
	}

	g.passCount++
	g.lastPasser = slot
	g.log.WithFields(logrus.Fields{"slot": slot.Number(), "passes": g.passCount}).Info("turn passed")

	if g.passCount >= passesToEscalate {
		return g.escalate(slot)
	}

	g.turn = slot.Other()
	g.notify.Broadcast(TurnUpdate(g.turn))
	g.notify.Notify(slot, Info(fmt.Sprintf("You passed. It's player %d's turn now!", g.turn.Number())))
	g.notify.Notify(g.turn, Info(fmt.Sprintf("Player %d passed. It's your turn to play!", slot.Number())))
	return Result{}, nil
}

func (g *Game) escalate(passer player.Slot) (Result, error) {
	g.notify.Broadcast(Info("Two consecutive passes! Adding a new card to the center."))

	fresh, err := g.deck.DrawOne()
	if err != nil {
		return g.emptyDeckDoublePass(passer), nil
	}

	g.returnToDeck(g.center)
	g.center = &fresh
	g.resetPasses()
	g.notify.Broadcast(CenterUpdate(fresh))

	g.turn = passer.Other()
	g.notify.Broadcast(TurnUpdate(g.turn))
	g.notify.Notify(g.turn, Info("It's your turn now! New center card played!"))
	g.notify.Notify(passer, Info(fmt.Sprintf("Player %d passed. It's player %d's turn now.", passer.Number(), g.turn.Number())))

	g.log.WithFields(logrus.Fields{"center": fresh.Key(), "turn": g.turn.Number()}).Info("double pass: new center card")
	return Result{}, nil
}

func (g *Game) emptyDeckDoublePass(passer player.Slot) Result {
	g.notify.Broadcast(Info("Deck exhausted. There are no more cards to add to the center."))
	g.resetPasses()
	g.log.WithField("policy", string(g.policy)).Info("double pass with an empty deck")

	switch g.policy {
	case PolicyDraw:
		return g.finish(player.SlotNone)
	case PolicySwitch:
		g.turn = passer.Other()
		g.notify.Broadcast(TurnUpdate(g.turn))
		g.notify.Notify(g.turn, Info("It's your turn now!"))
		g.notify.Notify(passer, Info(fmt.Sprintf("It's player %d's turn now.", g.turn.Number())))
	}
	// PolicyHold: a vez continua com quem passou por último.
	return Result{}
}
