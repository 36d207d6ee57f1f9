package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"
)

// ErrInvalidAmount rejects order creation before any gateway call is made.
var ErrInvalidAmount = errors.New("validation: amount must be greater than zero")

// GatewayOrder is the gateway's transaction record created before the guest
// pays. Amount is in minor units.
type GatewayOrder struct {
	OrderID  string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentGateway talks to the third-party payment provider. Order creation is
// the only remote call; signature verification is purely local HMAC.
type PaymentGateway struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Currency  string
	Client    *http.Client
}

// NewPaymentGatewayFromEnv reads PAYMENT_GATEWAY_URL / PAYMENT_KEY_ID /
// PAYMENT_KEY_SECRET / PAYMENT_CURRENCY. With no URL configured the adapter
// still verifies signatures but refuses to create orders.
func NewPaymentGatewayFromEnv() *PaymentGateway {
	currency := os.Getenv("PAYMENT_CURRENCY")
	if currency == "" {
		currency = "INR"
	}
	return &PaymentGateway{
		BaseURL:   os.Getenv("PAYMENT_GATEWAY_URL"),
		KeyID:     os.Getenv("PAYMENT_KEY_ID"),
		KeySecret: os.Getenv("PAYMENT_KEY_SECRET"),
		Currency:  currency,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateOrder converts the major-unit amount to the gateway's minor-unit
// convention (x100) and creates an order carrying the receipt reference.
func (g *PaymentGateway) CreateOrder(ctx context.Context, amountMajor float64, receipt string, notes map[string]string) (*GatewayOrder, error) {
	if amountMajor <= 0 {
		return nil, ErrInvalidAmount
	}
	if g.BaseURL == "" {
		return nil, errors.New("failed to create order: payment gateway not configured")
	}

	payload := map[string]interface{}{
		// Round, don't truncate; float representation of e.g. 19.99 would
		// otherwise drop a minor unit.
		"amount":   int64(math.Round(amountMajor * 100)),
		"currency": g.Currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.KeyID, g.KeySecret)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("failed to create order: gateway returned %d: %s", resp.StatusCode, string(msg))
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to create order: bad gateway response: %w", err)
	}
	if order.OrderID == "" {
		return nil, errors.New("failed to create order: gateway response missing order id")
	}
	return &order, nil
}

// VerifyPaymentSignature recomputes the HMAC-SHA256 of "orderId|paymentId"
// under the shared secret and compares it to the supplied signature in
// constant time. This is the sole trust boundary for confirming a payment.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifiedPayment reports whether the gateway callback triplet carries a
// valid signature. Fails closed when the shared secret is not configured or
// any field is missing.
func (g *PaymentGateway) VerifiedPayment(orderID, paymentID, signature string) bool {
	if g.KeySecret == "" || orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	return VerifyPaymentSignature(orderID, paymentID, signature, g.KeySecret)
}
