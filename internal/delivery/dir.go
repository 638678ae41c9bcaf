package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DirDeliverer saves payloads into a local directory. It is the default
// destination for both interactive downloads and scheduled runs.
type DirDeliverer struct {
	dir string
}

func NewDirDeliverer(dir string) (*DirDeliverer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory %s: %w", dir, err)
	}
	return &DirDeliverer{dir: dir}, nil
}

func (d *DirDeliverer) Deliver(ctx context.Context, payload []byte, filename, contentType string) (string, error) {
	path := filepath.Join(d.dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write export %s: %w", filename, err)
	}
	slog.InfoContext(ctx, "export written",
		"component", "delivery",
		"path", path,
		"content_type", contentType,
		"bytes", len(payload))
	return path, nil
}
