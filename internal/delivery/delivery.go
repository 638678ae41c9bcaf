// Package delivery moves finished export payloads to their destination.
// The engine produces bytes; a Deliverer decides where they land (local
// directory, cloud provider, mail). Cloud and mail backends are stubbed
// behind the same interface.
package delivery

import "context"

// Deliverer writes one export payload to a destination and returns a
// location string (path, URL) usable in history entries.
type Deliverer interface {
	Deliver(ctx context.Context, payload []byte, filename, contentType string) (string, error)
}
