package schema

import (
	"encoding/json"
	"time"
)

// Email is the payload of the outgoing email queue.
type Email struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queuedAt"`
}

func (e *Email) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Email) Unmarshal(data []byte) error {
	return json.Unmarshal(data, e)
}
