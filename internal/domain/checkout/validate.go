package checkout

import (
	"fmt"
	"regexp"

	"checkout-svc/internal/controller/apperror"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the submission against the contract. Rules run in order and
// the first failure wins; a failed submission is never partially processed.
func (c Contract) Validate(sub Submission) error {
	if len(sub.Items) == 0 {
		return apperror.ErrEmptyOrder
	}

	if sub.Customer.Name == "" {
		return fmt.Errorf("%w: customer.name", apperror.ErrMissingField)
	}
	if sub.Customer.Email == "" {
		return fmt.Errorf("%w: customer.email", apperror.ErrMissingField)
	}
	if !emailRe.MatchString(sub.Customer.Email) {
		return fmt.Errorf("%w: customer.email is not an email address", apperror.ErrMissingField)
	}

	for _, field := range c.Required {
		if requiredFieldValue(sub, field) == "" {
			return fmt.Errorf("%w: %s", apperror.ErrMissingField, field)
		}
	}

	return nil
}

func requiredFieldValue(sub Submission, field string) string {
	switch field {
	case "shipMethod":
		return sub.ShipMethod
	case "region":
		return sub.Region
	case "orderRef":
		return sub.OrderRef
	case "notes":
		return sub.Notes
	case "customer.phone":
		return sub.Customer.Phone
	default:
		// Unknown contract entries cannot be satisfied; reject loudly rather
		// than silently accepting a misconfigured contract.
		return ""
	}
}
