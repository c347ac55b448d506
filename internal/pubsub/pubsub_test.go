package pubsub

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"cardmatch/internal/game/card"
	"cardmatch/internal/game/match"
	"cardmatch/internal/game/player"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "cardmatch.events.center_update", Subject("cardmatch.events", match.EventCenterUpdate))
	assert.Equal(t, "x.game_over", Subject("x", match.EventGameOver))
}

func TestEncode(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	p := NewPublisher(nil, "cardmatch.events", logrus.NewEntry(l))
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	subject, data, err := p.encode("g-1", match.CenterUpdate(card.MustParse("B-8")))
	require.NoError(t, err)
	assert.Equal(t, "cardmatch.events.center_update", subject)
	assert.JSONEq(t, `{
		"gameId": "g-1",
		"type": "CENTER_UPDATE",
		"payload": {"card": "B-8"},
		"at": "2026-01-02T03:04:05Z"
	}`, string(data))

	_, data, err = p.encode("g-1", match.GameOver(player.SlotNone))
	require.NoError(t, err)
	var env struct {
		Payload match.GameOverPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, 0, env.Payload.Winner)
}

func TestBrokerConnectFailsFast(t *testing.T) {
	_, err := BrokerConnect("nats://127.0.0.1:1", "test")
	assert.Error(t, err)
}
