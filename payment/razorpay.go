package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

var (
	ErrPaymentNotCaptured = errors.New("payment not captured")
	ErrAmountMismatch     = errors.New("payment amount mismatch")
	ErrCurrencyMismatch   = errors.New("payment currency mismatch")
)

// Client talks to the Razorpay orders and payments API over basic auth.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	hc        *http.Client
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		hc:        &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is for tests pointing at a local server.
func NewClientWithBaseURL(keyID, keySecret, baseURL string) *Client {
	c := NewClient(keyID, keySecret)
	c.baseURL = baseURL
	return c
}

type Order struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Payment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Captured bool   `json:"captured"`
}

// CreateOrder creates an order for amount in major currency units. Razorpay
// wants the smallest unit, so the amount is scaled by 100 before sending.
func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*Order, error) {
	payload := map[string]any{
		"amount":   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency": currency,
		"receipt":  receipt,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("createOrder: json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewBuffer(b))
	if err != nil {
		return nil, fmt.Errorf("createOrder: http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("createOrder: hc.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rbody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("createOrder: resp.StatusCode: %d, resp.Body: %s", resp.StatusCode, rbody)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("createOrder: json.Decode: %w", err)
	}
	return &order, nil
}

// FetchPayment looks up a payment by id.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("fetchPayment: http.NewRequestWithContext: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetchPayment: hc.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rbody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetchPayment: resp.StatusCode: %d, resp.Body: %s", resp.StatusCode, rbody)
	}

	var p Payment
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("fetchPayment: json.Decode: %w", err)
	}
	return &p, nil
}

// VerifyCaptured checks that a payment exists, is captured, and matches the
// expected amount (in major units) and currency exactly.
func (c *Client) VerifyCaptured(ctx context.Context, paymentID string, expected decimal.Decimal, currency string) error {
	p, err := c.FetchPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if !p.Captured || p.Status != "captured" {
		return ErrPaymentNotCaptured
	}
	if p.Currency != currency {
		return ErrCurrencyMismatch
	}

	want := expected.Mul(decimal.NewFromInt(100)).IntPart()
	if p.Amount != want {
		return ErrAmountMismatch
	}
	return nil
}
