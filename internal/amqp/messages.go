package amqp

import (
	"encoding/json"
	"fmt"
	"strings"

	"finflow-ledger/internal/service"
)

// TransactionMessage is a transaction published by the messaging bot.
// Field values are kept raw so the ingest validator sees exactly what was sent.
type TransactionMessage struct {
	Phone       string          `json:"phone"`
	Description json.RawMessage `json:"description"`
	Value       json.RawMessage `json:"value"`
	Type        json.RawMessage `json:"type"`
	CategoryID  *string         `json:"categoryId,omitempty"`
}

// TransactionMessageFromJSON decodes a message body. A message without a phone is rejected.
func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	msg.Phone = strings.TrimSpace(msg.Phone)
	if msg.Phone == "" {
		return nil, fmt.Errorf("message has no phone")
	}
	return &msg, nil
}

// Raw returns the transaction part of the message.
func (m *TransactionMessage) Raw() service.RawTransaction {
	return service.RawTransaction{
		Description: m.Description,
		Value:       m.Value,
		Type:        m.Type,
		CategoryID:  m.CategoryID,
	}
}
