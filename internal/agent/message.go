package agent

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies a websocket message
type MessageType string

const (
	// MessageDecide carries a game.GameView to the agent
	MessageDecide MessageType = "decide"
	// MessageDecision carries the agent's game.Decision back
	MessageDecision MessageType = "decision"
	// MessageError reports that the agent failed to decide
	MessageError MessageType = "error"
)

// Message is the envelope for every websocket frame
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// ErrorData is the payload of a MessageError
type ErrorData struct {
	Message string `json:"message"`
}

// NewMessage creates a message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s message: %w", messageType, err)
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the payload into v
func (m *Message) Decode(v any) error {
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s message: %w", m.Type, err)
	}
	return nil
}
