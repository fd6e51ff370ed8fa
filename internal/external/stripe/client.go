// Package stripe implements the checkout gateway port against the Stripe
// Checkout Sessions API.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"checkout-svc/internal/controller/apperror"
	"checkout-svc/internal/domain/gateway"
	"checkout-svc/pkg/metrics"

	"github.com/google/go-querystring/query"
)

const (
	sessionsPath = "/v1/checkout/sessions"
	apiVersion   = "2024-06-20"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    httpClient,
	}
}

var _ gateway.Provider = (*Client)(nil)

// createSessionForm is the form-encoded create payload. The whole order is a
// single aggregate line item, so the item index is fixed in the tags.
type createSessionForm struct {
	Mode               string `url:"mode"`
	PaymentMethodType  string `url:"payment_method_types[0]"`
	CustomerEmail      string `url:"customer_email,omitempty"`
	Quantity           int64  `url:"line_items[0][quantity]"`
	Currency           string `url:"line_items[0][price_data][currency]"`
	UnitAmount         int64  `url:"line_items[0][price_data][unit_amount]"`
	ProductName        string `url:"line_items[0][price_data][product_data][name]"`
	ProductDescription string `url:"line_items[0][price_data][product_data][description],omitempty"`
	SuccessURL         string `url:"success_url"`
	CancelURL          string `url:"cancel_url"`
}

// CreateSession creates a hosted checkout session. It is never retried here
// and never partially applied: either a handle comes back or an error does.
func (c *Client) CreateSession(ctx context.Context, req gateway.CreateSessionRequest) (gateway.SessionHandle, error) {
	form, err := query.Values(createSessionForm{
		Mode:               "payment",
		PaymentMethodType:  "card",
		CustomerEmail:      req.CustomerEmail,
		Quantity:           1,
		Currency:           req.Currency,
		UnitAmount:         req.AmountMinor,
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		SuccessURL:         req.SuccessURL,
		CancelURL:          req.CancelURL,
	})
	if err != nil {
		return gateway.SessionHandle{}, fmt.Errorf("encode form: %w", err)
	}
	for k, v := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}
	for i, country := range req.AllowedShipCountries {
		form.Set(fmt.Sprintf("shipping_address_collection[allowed_countries][%d]", i), country)
	}

	start := time.Now()

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+sessionsPath,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return gateway.SessionHandle{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setCommonHeaders(httpReq)
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	var handle gateway.SessionHandle
	err = c.do(httpReq, &handle)
	observe("create_session", start, err)
	if err != nil {
		return gateway.SessionHandle{}, err
	}

	metrics.SessionsCreatedTotal.Inc()
	return handle, nil
}

// RetrieveSession fetches the session with the requested sub-resources
// expanded in a single round trip.
func (c *Client) RetrieveSession(ctx context.Context, id string, expand []gateway.Expand) (gateway.Session, error) {
	params := url.Values{}
	for _, e := range expand {
		params.Add("expand[]", string(e))
	}

	u := c.BaseURL + sessionsPath + "/" + url.PathEscape(id)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return gateway.Session{}, fmt.Errorf("create request: %w", err)
	}
	c.setCommonHeaders(httpReq)

	var resp sessionResp
	err = c.do(httpReq, &resp)
	observe("retrieve_session", start, err)
	if err != nil {
		return gateway.Session{}, err
	}

	return resp.toSession(), nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Stripe-Version", apiVersion)
}

// do executes the request and decodes a 2xx body into out. Provider and
// transport failures are translated to the apperror taxonomy; a missing
// session is distinguished from other gateway failures.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrGateway, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		var apiErr errorResp
		_ = json.Unmarshal(raw, &apiErr)

		if resp.StatusCode == http.StatusNotFound || apiErr.Error.Code == "resource_missing" {
			return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, apiErr.message(resp.Status))
		}
		return fmt.Errorf("%w: %s", apperror.ErrGateway, apiErr.message(resp.Status))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", apperror.ErrGateway, err)
	}
	return nil
}

type errorResp struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e errorResp) message(fallback string) string {
	if e.Error.Message != "" {
		return e.Error.Message
	}
	return fallback
}

type sessionResp struct {
	ID              string            `json:"id"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	CustomerDetails *customerDetails  `json:"customer_details"`
	LineItems       *lineItemList     `json:"line_items"`
	Metadata        map[string]string `json:"metadata"`
}

type customerDetails struct {
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Phone   string           `json:"phone"`
	Address *gateway.Address `json:"address"`
}

type lineItemList struct {
	Data []lineItem `json:"data"`
}

type lineItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	AmountTotal int64  `json:"amount_total"`
	Currency    string `json:"currency"`
}

func (r sessionResp) toSession() gateway.Session {
	s := gateway.Session{
		ID:            r.ID,
		Status:        gateway.SessionStatus(r.Status),
		PaymentStatus: gateway.PaymentStatus(r.PaymentStatus),
		AmountTotal:   r.AmountTotal,
		Currency:      r.Currency,
		Metadata:      r.Metadata,
	}
	if r.CustomerDetails != nil {
		s.CustomerDetails = &gateway.CustomerDetails{
			Name:    r.CustomerDetails.Name,
			Email:   r.CustomerDetails.Email,
			Phone:   r.CustomerDetails.Phone,
			Address: r.CustomerDetails.Address,
		}
	}
	if r.LineItems != nil {
		for _, li := range r.LineItems.Data {
			s.LineItems = append(s.LineItems, gateway.LineItem{
				Description: li.Description,
				Quantity:    li.Quantity,
				AmountTotal: li.AmountTotal,
				Currency:    li.Currency,
			})
		}
	}
	return s
}

func observe(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.GatewayRequestDuration.
		WithLabelValues(operation, outcome).
		Observe(time.Since(start).Seconds())
}
