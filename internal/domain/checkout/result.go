package checkout

import "checkout-svc/internal/domain/gateway"

// SessionResult is the stable caller-facing projection of a retrieved
// session. Every field is always present: absent sub-resources map to empty
// values, never to missing or null fields.
type SessionResult struct {
	PaymentStatus string             `json:"payment_status"`
	AmountTotal   int64              `json:"amount_total"`
	Currency      string             `json:"currency"`
	Customer      ResultCustomer     `json:"customer"`
	LineItems     []gateway.LineItem `json:"line_items"`
	Metadata      map[string]string  `json:"metadata"`
}

type ResultCustomer struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address gateway.Address `json:"address"`
}

// MapSession projects a gateway session into a SessionResult. Pure and
// idempotent.
func MapSession(s gateway.Session) SessionResult {
	res := SessionResult{
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      s.Currency,
		LineItems:     []gateway.LineItem{},
		Metadata:      map[string]string{},
	}

	if s.CustomerDetails != nil {
		res.Customer.Name = s.CustomerDetails.Name
		res.Customer.Email = s.CustomerDetails.Email
		res.Customer.Phone = s.CustomerDetails.Phone
		if s.CustomerDetails.Address != nil {
			res.Customer.Address = *s.CustomerDetails.Address
		}
	}

	if len(s.LineItems) > 0 {
		res.LineItems = append(res.LineItems, s.LineItems...)
	}
	for k, v := range s.Metadata {
		res.Metadata[k] = v
	}

	return res
}
