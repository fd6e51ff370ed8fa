package checkout

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/errgroup"
)

type SessionEventKind string

const (
	SessionEventCreated   SessionEventKind = "session_created"
	SessionEventConfirmed SessionEventKind = "session_confirmed"
)

// SessionEvent is one audit record of the session lifecycle as seen from
// this service.
type SessionEvent struct {
	Kind        SessionEventKind `json:"kind"`
	SessionID   string           `json:"session_id"`
	OrderRef    string           `json:"order_ref,omitempty"`
	AmountMinor int64            `json:"amount_minor,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	Data        json.RawMessage  `json:"data,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// MultiSink fans an event out to every configured sink concurrently.
// One slow or failing sink does not stop the others.
type MultiSink []EventSink

func (m MultiSink) RecordSessionEvent(ctx context.Context, event SessionEvent) error {
	var g errgroup.Group
	for _, sink := range m {
		g.Go(func() error {
			return sink.RecordSessionEvent(ctx, event)
		})
	}
	return g.Wait()
}

// NoopSink discards events; used when no sink backend is configured.
type NoopSink struct{}

func (NoopSink) RecordSessionEvent(context.Context, SessionEvent) error { return nil }
