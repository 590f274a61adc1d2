package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps every event the adapters publish.
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	CorrelationID uuid.UUID       `json:"correlation_id"`
	Venue         string          `json:"venue"`
	Topic         string          `json:"topic"`
	EventType     string          `json:"event_type"`
	Version       string          `json:"version"`
	Timestamp     time.Time       `json:"timestamp"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope builds an envelope with fresh ids around an already encoded payload.
func NewEnvelope(venue, topic, eventType string, payload json.RawMessage) *Envelope {
	return &Envelope{
		ID:            uuid.New(),
		CorrelationID: uuid.New(),
		Venue:         venue,
		Topic:         topic,
		EventType:     eventType,
		Version:       "1.0.0",
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
	}
}
