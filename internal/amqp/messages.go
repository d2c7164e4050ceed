package amqp

import (
	"encoding/json"
	"time"

	"tally/internal/notify"
)

// EntityEventMessage carries a full change event over the wire. Unlike a
// database-backed queue there is nothing for the consumer to fetch back, so
// the payload travels in the message itself.
type EntityEventMessage struct {
	Status          string    `json:"status"`
	Entity          string    `json:"entity"`
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	TransactionType string    `json:"transaction_type,omitempty"`
	Name            string    `json:"name,omitempty"`
	AmountCents     int64     `json:"amount_cents,omitempty"`
	Date            string    `json:"date,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

func NewEntityEventMessage(e notify.Event) *EntityEventMessage {
	return &EntityEventMessage{
		Status:          string(e.Status),
		Entity:          string(e.Entity),
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		TransactionType: e.TransactionType,
		Name:            e.Name,
		AmountCents:     e.AmountCents,
		Date:            e.Date,
		Timestamp:       time.Now(),
	}
}

func (m *EntityEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntityEventMessageFromJSON(data []byte) (*EntityEventMessage, error) {
	var msg EntityEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
