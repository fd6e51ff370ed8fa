package checkout

import (
	"context"
	"time"

	"checkout-svc/internal/domain/gateway"
)

//go:generate mockgen -source ports.go -destination mock_ports.go -package checkout

// Store deduplicates session creation by order reference within a bounded
// time window, so client-side retries of the same logical order do not mint
// multiple chargeable sessions.
type Store interface {
	// Get returns the stored handle for ref, if any non-expired one exists.
	Get(ctx context.Context, ref string) (gateway.SessionHandle, bool, error)
	// Put stores the handle under ref for the given window.
	Put(ctx context.Context, ref string, handle gateway.SessionHandle, ttl time.Duration) error
}

// EventSink records session lifecycle events for audit and search.
// Sinks are outbound only; recording failures never fail the request.
type EventSink interface {
	RecordSessionEvent(ctx context.Context, event SessionEvent) error
}
