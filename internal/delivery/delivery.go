// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a long-running transport server (HTTP API, worker, websocket).
type Delivery interface {
	Serve(ctx context.Context) error
}
