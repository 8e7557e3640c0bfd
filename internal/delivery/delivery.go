// Package delivery defines the contract every serving surface (HTTP API,
// background worker) fulfills so main can start them uniformly.
package delivery

import (
	"context"
	"time"
)

// DefaultShutdownTimeout bounds graceful shutdown of a delivery.
const DefaultShutdownTimeout = 10 * time.Second

// Delivery is a long-running serving surface started by main.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
