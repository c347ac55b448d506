package pubsub

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cardmatch/internal/game/match"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// BrokerConnect abre a conexão com o NATS com reconexão automática.
func BrokerConnect(url, name string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}
	return nc, nil
}

// Envelope é o que vai para o broker: o evento público e de qual partida ele é.
type Envelope struct {
	GameID  string    `json:"gameId"`
	Type    string    `json:"type"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Subject monta o assunto de um evento: "<prefixo>.<tipo em minúsculas>".
func Subject(prefix string, kind match.EventKind) string {
	return prefix + "." + strings.ToLower(string(kind))
}

// Publisher publica no NATS os eventos públicos de cada partida.
// Eventos privados (a mão de cada jogador) nunca passam por aqui.
type Publisher struct {
	conn   *nats.Conn
	prefix string
	now    func() time.Time
	log    *logrus.Entry
}

func NewPublisher(nc *nats.Conn, prefix string, log *logrus.Entry) *Publisher {
	return &Publisher{
		conn:   nc,
		prefix: prefix,
		now:    time.Now,
		log:    log.WithField("component", "pubsub"),
	}
}

func (p *Publisher) encode(gameID string, ev match.Event) (string, []byte, error) {
	data, err := json.Marshal(Envelope{
		GameID:  gameID,
		Type:    string(ev.Kind),
		Payload: ev.Payload,
		At:      p.now().UTC(),
	})
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", ev.Kind, err)
	}
	return Subject(p.prefix, ev.Kind), data, nil
}

// Record publica o evento. Falhas só geram log: o jogo não depende do broker.
func (p *Publisher) Record(gameID string, ev match.Event) {
	subject, data, err := p.encode(gameID, ev)
	if err != nil {
		p.log.WithError(err).Error("could not encode event")
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.WithError(err).WithField("subject", subject).Warn("publish failed")
	}
}

// Check serve como verificação de saúde.
func (p *Publisher) Check() error {
	if !p.conn.IsConnected() {
		return errors.New("nats " + p.conn.Status().String())
	}
	return nil
}

// Close esvazia o buffer de saída antes de fechar a conexão.
func (p *Publisher) Close() error {
	return p.conn.Drain()
}
