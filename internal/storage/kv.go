// Package storage persists the application's collections as JSON blobs
// behind a small key-value boundary. Each logical collection (expenses,
// export history, schedules, integrations) lives under its own key and is
// rewritten whole on every mutation.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Storage keys, one per persisted collection.
const (
	expensesKey     = "expenses"
	historyKey      = "export-history"
	schedulesKey    = "scheduled-exports"
	integrationsKey = "cloud-integrations"
)

// KV is the persistence boundary. Get reports presence explicitly so an
// absent key is not an error.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// newID returns a unique identifier built from the current unix-millis
// timestamp and a random hex suffix, so ids sort roughly by creation time.
func newID() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unreachable; fall back to
		// nanosecond time so Add never blocks.
		return fmt.Sprintf("%d-%d", time.Now().UnixMilli(), time.Now().UnixNano()%100000)
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
