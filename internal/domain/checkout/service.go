package checkout

import (
	"context"
	"fmt"
	"time"

	"checkout-svc/internal/domain/gateway"
	"checkout-svc/pkg/logger"

	"github.com/google/uuid"
)

// SessionConfig carries the fixed session parameters of this deployment:
// everything about a created session that is not derived from the submission.
type SessionConfig struct {
	Currency    string
	ProductName string

	// SuccessURL must contain the provider's session-id placeholder so the
	// confirmation page receives the created session's identifier.
	SuccessURL string
	CancelURL  string

	AllowedShipCountries []string

	IdempotencyTTL time.Duration
}

// Redirect is the outcome of a created checkout: where to send the payer.
type Redirect struct {
	SessionID string `json:"-"`
	URL       string `json:"url"`
}

// Service runs the order-to-session pipeline: validate, normalize the charge,
// encode metadata, create the session, and later retrieve and project it.
type Service struct {
	contract Contract
	cfg      SessionConfig
	provider gateway.Provider
	store    Store
	events   EventSink
	l        *logger.Logger
}

func NewService(contract Contract, cfg SessionConfig, provider gateway.Provider, store Store, events EventSink, l *logger.Logger) *Service {
	if events == nil {
		events = NoopSink{}
	}
	return &Service{
		contract: contract,
		cfg:      cfg,
		provider: provider,
		store:    store,
		events:   events,
		l:        l,
	}
}

// CreateCheckout validates and normalizes the submission, then creates a
// hosted checkout session for it. Validation failures are returned before any
// gateway call; a repeated submission with the same order reference inside
// the idempotency window returns the previously created session instead of
// minting a new one.
func (s *Service) CreateCheckout(ctx context.Context, sub Submission) (Redirect, error) {
	if err := s.contract.Validate(sub); err != nil {
		return Redirect{}, err
	}

	charge, err := NormalizeTotals(sub.Totals)
	if err != nil {
		return Redirect{}, err
	}

	metadata := s.contract.EncodeMetadata(sub)

	idemKey := sub.OrderRef
	if idemKey == "" {
		// No caller reference: creation is not deduplicated across requests.
		idemKey = uuid.NewString()
	} else {
		handle, ok, err := s.store.Get(ctx, sub.OrderRef)
		if err != nil {
			// Degraded dedup is preferable to a failed checkout.
			s.l.ErrorCtx(ctx, "idempotency lookup failed: order_ref=%s error=%v", sub.OrderRef, err)
		} else if ok {
			s.l.InfoCtx(ctx, "checkout replayed from idempotency store: order_ref=%s session_id=%s", sub.OrderRef, handle.ID)
			return Redirect{SessionID: handle.ID, URL: handle.URL}, nil
		}
	}

	handle, err := s.provider.CreateSession(ctx, gateway.CreateSessionRequest{
		AmountMinor:          int64(charge),
		Currency:             s.cfg.Currency,
		ProductName:          s.cfg.ProductName,
		ProductDescription:   orderDescription(sub),
		CustomerEmail:        sub.Customer.Email,
		Metadata:             metadata,
		SuccessURL:           s.cfg.SuccessURL,
		CancelURL:            s.cfg.CancelURL,
		AllowedShipCountries: s.cfg.AllowedShipCountries,
		IdempotencyKey:       idemKey,
	})
	if err != nil {
		return Redirect{}, fmt.Errorf("create session: %w", err)
	}

	if sub.OrderRef != "" {
		if err := s.store.Put(ctx, sub.OrderRef, handle, s.cfg.IdempotencyTTL); err != nil {
			s.l.ErrorCtx(ctx, "idempotency store failed: order_ref=%s session_id=%s error=%v", sub.OrderRef, handle.ID, err)
		}
	}

	s.recordEvent(ctx, SessionEvent{
		Kind:        SessionEventCreated,
		SessionID:   handle.ID,
		OrderRef:    sub.OrderRef,
		AmountMinor: int64(charge),
		Currency:    s.cfg.Currency,
		CreatedAt:   time.Now().UTC(),
	})

	return Redirect{SessionID: handle.ID, URL: handle.URL}, nil
}

// ConfirmSession retrieves the session with its line items and customer
// details in one round trip and projects it into the stable result shape.
func (s *Service) ConfirmSession(ctx context.Context, sessionID string) (SessionResult, error) {
	session, err := s.provider.RetrieveSession(ctx, sessionID, []gateway.Expand{
		gateway.ExpandLineItems,
		gateway.ExpandCustomerDetails,
	})
	if err != nil {
		return SessionResult{}, fmt.Errorf("retrieve session %s: %w", sessionID, err)
	}

	result := MapSession(session)

	s.recordEvent(ctx, SessionEvent{
		Kind:        SessionEventConfirmed,
		SessionID:   session.ID,
		OrderRef:    session.Metadata[MetaOrderRef],
		AmountMinor: session.AmountTotal,
		Currency:    session.Currency,
		CreatedAt:   time.Now().UTC(),
	})

	return result, nil
}

func (s *Service) recordEvent(ctx context.Context, event SessionEvent) {
	if err := s.events.RecordSessionEvent(ctx, event); err != nil {
		s.l.ErrorCtx(ctx, "session event sink failed: kind=%s session_id=%s error=%v", event.Kind, event.SessionID, err)
	}
}

func orderDescription(sub Submission) string {
	desc := fmt.Sprintf("%d item(s)", len(sub.Items))
	if sub.ShipMethod != "" {
		desc += ", " + sub.ShipMethod
	}
	if sub.Region != "" {
		desc += ", " + sub.Region
	}
	return desc
}
