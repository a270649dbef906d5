package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(2500), body["amount"])
		assert.Equal(t, "INR", body["currency"])

		json.NewEncoder(w).Encode(Order{
			ID:       "order_123",
			Amount:   2500,
			Currency: "INR",
			Receipt:  "rcpt_1",
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("key", "secret", srv.URL)
	order, err := c.CreateOrder(context.Background(), decimal.NewFromInt(25), "INR", "rcpt_1")
	require.NoError(t, err)
	assert.Equal(t, "order_123", order.ID)
	assert.Equal(t, int64(2500), order.Amount)
}

func TestVerifyCaptured(t *testing.T) {
	payments := map[string]Payment{
		"pay_ok":    {ID: "pay_ok", Amount: 2500, Currency: "INR", Status: "captured", Captured: true},
		"pay_auth":  {ID: "pay_auth", Amount: 2500, Currency: "INR", Status: "authorized", Captured: false},
		"pay_short": {ID: "pay_short", Amount: 100, Currency: "INR", Status: "captured", Captured: true},
		"pay_over":  {ID: "pay_over", Amount: 5000, Currency: "INR", Status: "captured", Captured: true},
		"pay_usd":   {ID: "pay_usd", Amount: 2500, Currency: "USD", Status: "captured", Captured: true},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := payments[r.URL.Path[len("/payments/"):]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(p)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("key", "secret", srv.URL)
	fee := decimal.NewFromInt(25)

	assert.NoError(t, c.VerifyCaptured(context.Background(), "pay_ok", fee, "INR"))
	assert.ErrorIs(t, c.VerifyCaptured(context.Background(), "pay_auth", fee, "INR"), ErrPaymentNotCaptured)
	assert.ErrorIs(t, c.VerifyCaptured(context.Background(), "pay_short", fee, "INR"), ErrAmountMismatch)
	assert.ErrorIs(t, c.VerifyCaptured(context.Background(), "pay_over", fee, "INR"), ErrAmountMismatch)
	assert.ErrorIs(t, c.VerifyCaptured(context.Background(), "pay_usd", fee, "INR"), ErrCurrencyMismatch)
	assert.Error(t, c.VerifyCaptured(context.Background(), "pay_missing", fee, "INR"))
}
