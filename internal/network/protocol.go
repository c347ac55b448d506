package network

import (
	"encoding/json"
	"fmt"
)

// Message é o envelope padrão para toda a comunicação.
// Ele contém um tipo para roteamento e um payload com os dados.
type Message struct {
	Type    string          `json:"type"`              // Ex: "PLAY_CARD", "CENTER_UPDATE"
	Payload json.RawMessage `json:"payload,omitempty"` // Decodificado por quem conhece o tipo.
}

// MaxMessageSize limita o tamanho de um frame recebido.
const MaxMessageSize = 64 * 1024

// NewMessage serializa payload e monta o envelope.
func NewMessage(msgType string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s payload: %w", msgType, err)
	}
	return Message{Type: msgType, Payload: raw}, nil
}

// Decode lê o payload da mensagem em v. Payload vazio não é erro.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", m.Type, err)
	}
	return nil
}
