package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is one journaled order event awaiting drain into durable storage.
type Entry struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Action     string          `json:"action"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Retries    int             `json:"retries"`
	Timestamp  time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}
