package gateway

import "context"

//go:generate mockgen -source port.go -destination mock_port.go -package gateway

// Provider is the hosted-checkout capability of the external payment gateway.
// Creation is never retried here: it is not safely retryable without the
// idempotency key the service derives from the order reference.
type Provider interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (SessionHandle, error)
	RetrieveSession(ctx context.Context, id string, expand []Expand) (Session, error)
}

// Expand names a session sub-resource fetched together with the session
// in a single round trip.
type Expand string

const (
	ExpandLineItems       Expand = "line_items"
	ExpandCustomerDetails Expand = "customer_details"
)

type CreateSessionRequest struct {
	// AmountMinor is the whole order as a single aggregate charge in minor
	// currency units; the gateway is never given per-product pricing.
	AmountMinor int64
	Currency    string

	ProductName        string
	ProductDescription string

	CustomerEmail string

	Metadata map[string]string

	// SuccessURL carries the provider's session-id placeholder so the
	// confirmation page can retrieve the session.
	SuccessURL string
	CancelURL  string

	AllowedShipCountries []string

	// IdempotencyKey dedups creation at the provider within its retention
	// window; derived from the caller's order reference.
	IdempotencyKey string
}

type SessionHandle struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type SessionStatus string

const (
	SessionStatusOpen     SessionStatus = "open"
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusExpired  SessionStatus = "expired"
)

type PaymentStatus string

const (
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusUnpaid            PaymentStatus = "unpaid"
	PaymentStatusNoPaymentRequired PaymentStatus = "no_payment_required"
)

// Session is the gateway-side entity as retrieved; read-only from this
// service's perspective, its lifecycle is owned entirely by the provider.
type Session struct {
	ID              string
	Status          SessionStatus
	PaymentStatus   PaymentStatus
	AmountTotal     int64
	Currency        string
	CustomerDetails *CustomerDetails
	LineItems       []LineItem
	Metadata        map[string]string
}

type CustomerDetails struct {
	Name    string
	Email   string
	Phone   string
	Address *Address
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type LineItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	AmountTotal int64  `json:"amount_total"`
	Currency    string `json:"currency"`
}
