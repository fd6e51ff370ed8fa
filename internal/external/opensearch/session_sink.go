package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"checkout-svc/internal/domain/checkout"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go"
)

var _ checkout.EventSink = (*SessionSink)(nil)

// SessionSink indexes session lifecycle events into OpenSearch for search
// and postmortem debugging.
type SessionSink struct {
	client *opensearch.Client
	index  string
}

func NewSessionSink(ctx context.Context, urls []string, index string) (*SessionSink, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	cfg := opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	}
	client, err := opensearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	sink := &SessionSink{client: client, index: index}

	if err := sink.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *SessionSink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil // already exists
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"event_id":     map[string]any{"type": "keyword"},
				"session_id":   map[string]any{"type": "keyword"},
				"order_ref":    map[string]any{"type": "keyword"},
				"kind":         map[string]any{"type": "keyword"},
				"amount_minor": map[string]any{"type": "long"},
				"currency":     map[string]any{"type": "keyword"},
				"created_at":   map[string]any{"type": "date"},
				"data":         map[string]any{"type": "object", "enabled": true},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0, // dev-friendly; change in prod
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

// doc stored in OpenSearch
type sessionEventDoc struct {
	EventID     string                    `json:"event_id"`
	SessionID   string                    `json:"session_id"`
	OrderRef    string                    `json:"order_ref,omitempty"`
	Kind        checkout.SessionEventKind `json:"kind"`
	AmountMinor int64                     `json:"amount_minor,omitempty"`
	Currency    string                    `json:"currency,omitempty"`
	Data        json.RawMessage           `json:"data,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
}

func (s *SessionSink) RecordSessionEvent(ctx context.Context, ev checkout.SessionEvent) error {
	eventID := uuid.NewString()
	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := sessionEventDoc{
		EventID:     eventID,
		SessionID:   ev.SessionID,
		OrderRef:    ev.OrderRef,
		Kind:        ev.Kind,
		AmountMinor: ev.AmountMinor,
		Currency:    ev.Currency,
		Data:        ev.Data,
		CreatedAt:   createdAt.UTC(),
	}
	payload, _ := json.Marshal(doc)
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(eventID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}
