package delivery

import (
	"context"
	"sync"
)

// Delivered is one payload captured by the in-memory deliverer.
type Delivered struct {
	Payload     []byte
	Filename    string
	ContentType string
}

// MemoryDeliverer collects payloads in memory. Used in tests in place of
// a real destination; Err forces every delivery to fail.
type MemoryDeliverer struct {
	mu        sync.Mutex
	Err       error
	delivered []Delivered
}

func (m *MemoryDeliverer) Deliver(_ context.Context, payload []byte, filename, contentType string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.delivered = append(m.delivered, Delivered{Payload: cp, Filename: filename, ContentType: contentType})
	return "memory://" + filename, nil
}

// All returns a snapshot of everything delivered so far.
func (m *MemoryDeliverer) All() []Delivered {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Delivered, len(m.delivered))
	copy(out, m.delivered)
	return out
}
