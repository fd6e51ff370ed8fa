package kafka

import (
	"context"
	"fmt"

	"checkout-svc/internal/domain/checkout"
	"checkout-svc/internal/messaging"
)

var _ checkout.EventSink = (*SessionSink)(nil)

// SessionSink publishes session lifecycle events to a Kafka topic, keyed by
// session id so events of one session stay in order.
type SessionSink struct {
	publisher messaging.Publisher
}

func NewSessionSink(publisher messaging.Publisher) *SessionSink {
	return &SessionSink{publisher: publisher}
}

func (s *SessionSink) RecordSessionEvent(ctx context.Context, event checkout.SessionEvent) error {
	env, err := messaging.NewEnvelope(event.SessionID, "checkout."+string(event.Kind), event)
	if err != nil {
		return fmt.Errorf("create envelope: %w", err)
	}
	return s.publisher.Publish(ctx, env)
}
