//go:build integration
// +build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	segmentio "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-svc/internal/domain/checkout"
	appkafka "checkout-svc/internal/external/kafka"
	"checkout-svc/internal/messaging"
	"checkout-svc/internal/testinfra"
	"checkout-svc/pkg/logger"
)

func TestSessionSink_PublishesEnvelope(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kc, err := testinfra.NewKafka(ctx)
	require.NoError(t, err)
	defer kc.Cleanup(context.Background())

	publisher := appkafka.NewPublisher(logger.New("error"), kc.Brokers, kc.SessionsTopic)
	defer publisher.Close()

	sink := appkafka.NewSessionSink(publisher)

	event := checkout.SessionEvent{
		Kind:        checkout.SessionEventCreated,
		SessionID:   "cs_test_1",
		OrderRef:    "ORD-1001",
		AmountMinor: 12000,
		Currency:    "aud",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, sink.RecordSessionEvent(ctx, event))

	reader := segmentio.NewReader(segmentio.ReaderConfig{
		Brokers: kc.Brokers,
		Topic:   kc.SessionsTopic,
		GroupID: kc.SessionsGroup,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", string(msg.Key))

	var env messaging.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "checkout.session_created", env.Type)
	assert.NotEmpty(t, env.EventID)

	var got checkout.SessionEvent
	require.NoError(t, json.Unmarshal(env.Payload, &got))
	assert.Equal(t, event.SessionID, got.SessionID)
	assert.Equal(t, event.AmountMinor, got.AmountMinor)
}
