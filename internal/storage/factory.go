package storage

import (
	"fmt"
	"log/slog"
)

// Backend names accepted by Open.
const (
	MemoryBackend = "memory"
	SQLiteBackend = "sqlite"
)

// Open selects and initializes the KV backend.
func Open(backend, dbPath string) (KV, error) {
	switch backend {
	case SQLiteBackend:
		kv, err := NewSQLiteKV(dbPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		slog.Info("Initialized SQLite backend", "db_path", dbPath)
		return kv, nil
	case MemoryBackend:
		slog.Info("Initialized memory backend")
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
