package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-svc/internal/controller/apperror"
	"checkout-svc/internal/domain/gateway"
)

func TestClient_CreateSession(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))
			assert.Equal(t, "2024-06-20", r.Header.Get("Stripe-Version"))
			assert.Equal(t, "ORD-1001", r.Header.Get("Idempotency-Key"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "payment", r.PostForm.Get("mode"))
			assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))
			assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
			assert.Equal(t, "12000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, "aud", r.PostForm.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "Frame Order", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
			assert.Equal(t, "2 item(s), express", r.PostForm.Get("line_items[0][price_data][product_data][description]"))
			assert.Equal(t, "ada@example.com", r.PostForm.Get("customer_email"))
			assert.Equal(t, "https://shop.example.com/confirm?sid={CHECKOUT_SESSION_ID}", r.PostForm.Get("success_url"))
			assert.Equal(t, "https://shop.example.com/cart", r.PostForm.Get("cancel_url"))
			assert.Equal(t, "ORD-1001", r.PostForm.Get("metadata[order_ref]"))
			assert.Equal(t, "AU", r.PostForm.Get("shipping_address_collection[allowed_countries][0]"))

			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"id": "cs_test_1", "url": "https://checkout.stripe.com/c/pay/cs_test_1"}`))
		}))
		defer server.Close()

		client := New(server.URL, "sk_test_key", nil)

		handle, err := client.CreateSession(context.Background(), gateway.CreateSessionRequest{
			AmountMinor:          12000,
			Currency:             "aud",
			ProductName:          "Frame Order",
			ProductDescription:   "2 item(s), express",
			CustomerEmail:        "ada@example.com",
			Metadata:             map[string]string{"order_ref": "ORD-1001"},
			SuccessURL:           "https://shop.example.com/confirm?sid={CHECKOUT_SESSION_ID}",
			CancelURL:            "https://shop.example.com/cart",
			AllowedShipCountries: []string{"AU"},
			IdempotencyKey:       "ORD-1001",
		})

		require.NoError(t, err)
		assert.Equal(t, gateway.SessionHandle{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, handle)
	})

	t.Run("omits idempotency header when key is empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, present := r.Header["Idempotency-Key"]
			assert.False(t, present)
			_, _ = w.Write([]byte(`{"id": "cs_test_1", "url": "https://checkout.stripe.com/c/pay/cs_test_1"}`))
		}))
		defer server.Close()

		client := New(server.URL, "sk_test_key", nil)

		_, err := client.CreateSession(context.Background(), gateway.CreateSessionRequest{AmountMinor: 100, Currency: "aud"})

		assert.NoError(t, err)
	})

	t.Run("returns ErrGateway with the provider message on 400", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "Invalid currency: xxx"}}`))
		}))
		defer server.Close()

		client := New(server.URL, "sk_test_key", nil)

		_, err := client.CreateSession(context.Background(), gateway.CreateSessionRequest{AmountMinor: 100, Currency: "xxx"})

		assert.ErrorIs(t, err, apperror.ErrGateway)
		assert.Contains(t, err.Error(), "Invalid currency: xxx")
	})

	t.Run("returns ErrGateway on transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := New(server.URL, "sk_test_key", nil)

		_, err := client.CreateSession(context.Background(), gateway.CreateSessionRequest{AmountMinor: 100})

		assert.ErrorIs(t, err, apperror.ErrGateway)
	})
}

func TestClient_RetrieveSession(t *testing.T) {
	t.Run("successful request with expansions", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/checkout/sessions/cs_test_1", r.URL.Path)
			assert.Equal(t, []string{"line_items", "customer_details"}, r.URL.Query()["expand[]"])

			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{
				"id": "cs_test_1",
				"status": "complete",
				"payment_status": "paid",
				"amount_total": 12000,
				"currency": "aud",
				"customer_details": {
					"name": "Ada Lovelace",
					"email": "ada@example.com",
					"phone": "+61400000000",
					"address": {"line1": "1 Example St", "city": "Sydney", "state": "NSW", "postal_code": "2000", "country": "AU"}
				},
				"line_items": {"data": [{"description": "Frame Order", "quantity": 1, "amount_total": 12000, "currency": "aud"}]},
				"metadata": {"order_ref": "ORD-1001"}
			}`))
		}))
		defer server.Close()

		client := New(server.URL, "sk_test_key", nil)

		session, err := client.RetrieveSession(context.Background(), "cs_test_1", []gateway.Expand{
			gateway.ExpandLineItems,
			gateway.ExpandCustomerDetails,
		})

		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", session.ID)
		assert.Equal(t, gateway.SessionStatusComplete, session.Status)
		assert.Equal(t, gateway.PaymentStatusPaid, session.PaymentStatus)
		assert.Equal(t, int64(12000), session.AmountTotal)
		require.NotNil(t, session.CustomerDetails)
		assert.Equal(t, "Ada Lovelace", session.CustomerDetails.Name)
		require.NotNil(t, session.CustomerDetails.Address)
		assert.Equal(t, "AU", session.CustomerDetails.Address.Country)
		require.Len(t, session.LineItems, 1)
		assert.Equal(t, int64(12000), session.LineItems[0].AmountTotal)
		assert.Equal(t, "ORD-1001", session.Metadata["order_ref"])
	})

	t.Run("leaves absent sub-resources nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id": "cs_test_2", "status": "open", "payment_status": "unpaid", "currency": "aud"}`))
		}))
		defer server.Close()

		client := New(server.URL, "sk_test_key", nil)

		session, err := client.RetrieveSession(context.Background(), "cs_test_2", nil)

		require.NoError(t, err)
		assert.Nil(t, session.CustomerDetails)
		assert.Nil(t, session.LineItems)
	})

	t.Run("returns ErrSessionNotFound on 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "code": "resource_missing", "message": "No such checkout session"}}`))
		}))
		defer server.Close()

		client := New(server.URL, "sk_test_key", nil)

		_, err := client.RetrieveSession(context.Background(), "cs_missing", nil)

		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("returns ErrSessionNotFound on resource_missing with a non-404 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"code": "resource_missing", "message": "No such checkout session"}}`))
		}))
		defer server.Close()

		client := New(server.URL, "sk_test_key", nil)

		_, err := client.RetrieveSession(context.Background(), "cs_missing", nil)

		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("returns ErrGateway on 500", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := New(server.URL, "sk_test_key", nil)

		_, err := client.RetrieveSession(context.Background(), "cs_test_1", nil)

		assert.ErrorIs(t, err, apperror.ErrGateway)
		assert.NotErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("escapes the session id in the path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/checkout/sessions/cs%2F..%2Fadmin", r.URL.EscapedPath())
			_, _ = w.Write([]byte(`{"id": "x"}`))
		}))
		defer server.Close()

		client := New(server.URL, "sk_test_key", nil)

		_, err := client.RetrieveSession(context.Background(), "cs/../admin", nil)

		assert.NoError(t, err)
	})
}
