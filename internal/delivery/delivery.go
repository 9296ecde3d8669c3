// Package delivery defines the contract every transport adapter satisfies.
package delivery

import "context"

// Delivery is a serving surface of the application (HTTP today). Serve blocks
// until the server stops or ctx is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
