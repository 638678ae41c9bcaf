package amqp

import (
	"encoding/json"
	"time"
)

// ExportCompletedMessage announces a finished export run. Consumers get
// the bookkeeping identifiers, not the payload; the payload lives at the
// delivery location.
type ExportCompletedMessage struct {
	ExportID    string    `json:"exportId"`
	TemplateID  string    `json:"templateId,omitempty"`
	Format      string    `json:"format"`
	Filename    string    `json:"filename"`
	RecordCount int       `json:"recordCount"`
	Location    string    `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func (m *ExportCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExportCompletedMessageFromJSON(data []byte) (*ExportCompletedMessage, error) {
	var msg ExportCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
