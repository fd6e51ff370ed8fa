package checkout

import (
	"checkout-svc/internal/controller/apperror"
)

// ChargeAmount is the single chargeable amount in minor currency units.
// Always a positive integer; a zero charge is rejected.
type ChargeAmount int64

// NormalizeTotals reconciles the client-supplied totals into one chargeable
// amount. An explicit positive orderTotal wins; otherwise the charge is
// productsTotal + shippingTotal with unusable components treated as zero.
// The same rule applies regardless of which fields were supplied.
func NormalizeTotals(t Totals) (ChargeAmount, error) {
	total := t.ProductsTotal.Value().Add(t.ShippingTotal.Value())
	if t.OrderTotal.Usable() && t.OrderTotal.Value().IsPositive() {
		total = t.OrderTotal.Value()
	}

	if !total.IsPositive() {
		return 0, apperror.ErrInvalidTotal
	}

	// Minor units at two decimal places, rounded half away from zero.
	minor := total.Shift(2).Round(0).IntPart()
	if minor <= 0 {
		return 0, apperror.ErrInvalidTotal
	}

	return ChargeAmount(minor), nil
}
