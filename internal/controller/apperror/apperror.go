package apperror

import "errors"

// ErrMissingField marks a submission rejected for a missing or empty
// required field; the wrapping error names the field.
var ErrMissingField = errors.New("missing required field")

// ErrEmptyOrder marks a submission with no line items.
var ErrEmptyOrder = errors.New("order has no items")

// ErrInvalidTotal marks totals that reconcile to a non-positive or
// unparseable charge amount.
var ErrInvalidTotal = errors.New("invalid order total")

// ErrSessionNotFound marks a retrieval of a session the gateway does not know.
var ErrSessionNotFound = errors.New("checkout session not found")

// ErrGateway marks any other provider rejection or transport failure; the
// wrapping error carries the provider diagnostic.
var ErrGateway = errors.New("payment gateway error")

// IsValidation reports whether err is one of the pre-gateway rejection reasons.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrInvalidTotal)
}
