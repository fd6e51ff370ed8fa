package checkout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-svc/internal/domain/gateway"
)

func TestMapSession(t *testing.T) {
	t.Parallel()

	t.Run("should project a fully expanded session", func(t *testing.T) {
		session := gateway.Session{
			ID:            "cs_test_1",
			Status:        gateway.SessionStatusComplete,
			PaymentStatus: gateway.PaymentStatusPaid,
			AmountTotal:   12000,
			Currency:      "aud",
			CustomerDetails: &gateway.CustomerDetails{
				Name:  "Ada Lovelace",
				Email: "ada@example.com",
				Phone: "+61 400 000 000",
				Address: &gateway.Address{
					Line1:      "1 Example St",
					City:       "Sydney",
					State:      "NSW",
					PostalCode: "2000",
					Country:    "AU",
				},
			},
			LineItems: []gateway.LineItem{
				{Description: "Frame Order", Quantity: 1, AmountTotal: 12000, Currency: "aud"},
			},
			Metadata: map[string]string{MetaOrderRef: "ORD-1001"},
		}

		result := MapSession(session)

		assert.Equal(t, "paid", result.PaymentStatus)
		assert.Equal(t, int64(12000), result.AmountTotal)
		assert.Equal(t, "aud", result.Currency)
		assert.Equal(t, "Ada Lovelace", result.Customer.Name)
		assert.Equal(t, "Sydney", result.Customer.Address.City)
		assert.Equal(t, session.LineItems, result.LineItems)
		assert.Equal(t, "ORD-1001", result.Metadata[MetaOrderRef])
	})

	t.Run("should map absent sub-resources to empty values", func(t *testing.T) {
		result := MapSession(gateway.Session{
			ID:            "cs_test_2",
			PaymentStatus: gateway.PaymentStatusUnpaid,
			Currency:      "aud",
		})

		assert.Equal(t, ResultCustomer{}, result.Customer)
		assert.NotNil(t, result.LineItems)
		assert.Empty(t, result.LineItems)
		assert.NotNil(t, result.Metadata)
	})

	t.Run("should serialize with every field present", func(t *testing.T) {
		raw, err := json.Marshal(MapSession(gateway.Session{ID: "cs_test_3"}))
		require.NoError(t, err)

		var decoded map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &decoded))

		for _, key := range []string{"payment_status", "amount_total", "currency", "customer", "line_items", "metadata"} {
			assert.Contains(t, decoded, key)
			assert.NotEqual(t, "null", string(decoded[key]), key)
		}

		// An absent address still appears as an empty object.
		var customer map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(decoded["customer"], &customer))
		assert.JSONEq(t, `{"line1":"","line2":"","city":"","state":"","postal_code":"","country":""}`, string(customer["address"]))
	})
}
