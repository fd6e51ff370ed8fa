package checkout

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Submission is a customer-submitted order as it arrives from the storefront.
// It is created once per request, immutable after validation and discarded
// after the session is created.
type Submission struct {
	Items    []json.RawMessage `json:"items"`
	Customer Customer          `json:"customer"`
	Totals   Totals            `json:"totals"`

	ShipMethod string `json:"shipMethod"`
	Region     string `json:"region"`
	Notes      string `json:"notes"`

	// OrderRef is the caller's stable reference for this logical order;
	// creation is deduplicated by it.
	OrderRef string `json:"orderRef"`
}

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// Totals carries the client-computed amounts. Different storefront code paths
// supply different subsets; NormalizeTotals is the single source of truth
// reconciling them.
type Totals struct {
	ProductsTotal Decimal `json:"productsTotal"`
	ShippingTotal Decimal `json:"shippingTotal"`
	OrderTotal    Decimal `json:"orderTotal"`
}

// Decimal is a JSON field that accepts a number or a numeric string.
// Anything else (null, absent, non-numeric) leaves it unusable rather than
// failing the whole body.
type Decimal struct {
	value decimal.Decimal
	ok    bool
}

// NewDecimal returns a usable Decimal carrying v.
func NewDecimal(v decimal.Decimal) Decimal {
	return Decimal{value: v, ok: true}
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*d = Decimal{}
		return nil
	}
	s = strings.Trim(s, `"`)

	v, err := decimal.NewFromString(s)
	if err != nil {
		*d = Decimal{}
		return nil
	}

	*d = Decimal{value: v, ok: true}
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.ok {
		return []byte("null"), nil
	}
	return []byte(d.value.String()), nil
}

// Usable reports whether the field held a parseable number.
func (d Decimal) Usable() bool {
	return d.ok
}

// Value returns the parsed number; zero when unusable.
func (d Decimal) Value() decimal.Decimal {
	return d.value
}

// String formats the value with two decimal places, or "" when unusable.
func (d Decimal) String() string {
	if !d.ok {
		return ""
	}
	return d.value.StringFixed(2)
}
