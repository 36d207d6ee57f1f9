package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signPayment builds the signature a well-behaved gateway would send back.
func signPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// mutateHex flips the last character of a hex signature.
func mutateHex(s string) string {
	last := s[len(s)-1]
	repl := byte('0')
	if last == '0' {
		repl = '1'
	}
	return s[:len(s)-1] + string(repl)
}

func TestVerifyPaymentSignature(t *testing.T) {
	const secret = "test_key_secret"
	valid := signPayment("order_123", "pay_456", secret)

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{"valid signature", "order_123", "pay_456", valid, true},
		{"same inputs are deterministic", "order_123", "pay_456", signPayment("order_123", "pay_456", secret), true},
		{"tampered order id", "order_124", "pay_456", valid, false},
		{"tampered payment id", "order_123", "pay_457", valid, false},
		{"mutated signature", "order_123", "pay_456", mutateHex(valid), false},
		{"empty signature", "order_123", "pay_456", "", false},
		{"swapped order and payment", "pay_456", "order_123", valid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifyPaymentSignature(tt.orderID, tt.paymentID, tt.signature, secret)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifyPaymentSignature_DifferentSecret(t *testing.T) {
	valid := signPayment("order_123", "pay_456", "secret_a")
	assert.False(t, VerifyPaymentSignature("order_123", "pay_456", valid, "secret_b"))
}

func TestCreateOrder_RejectsNonPositiveAmount(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	gw := &PaymentGateway{BaseURL: srv.URL, KeyID: "key", KeySecret: "secret", Currency: "INR", Client: srv.Client()}

	for _, amount := range []float64{0, -1, -500.25} {
		_, err := gw.CreateOrder(context.Background(), amount, "BK-TEST", nil)
		require.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.False(t, called, "gateway must not be contacted for invalid amounts")
}

func TestCreateOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(123450), payload["amount"])
		assert.Equal(t, "INR", payload["currency"])
		assert.Equal(t, "BK-20260831-AB12CD", payload["receipt"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_xyz",
			"amount":   123450,
			"currency": "INR",
		})
	}))
	defer srv.Close()

	gw := &PaymentGateway{BaseURL: srv.URL, KeyID: "key_id", KeySecret: "key_secret", Currency: "INR", Client: srv.Client()}

	order, err := gw.CreateOrder(context.Background(), 1234.50, "BK-20260831-AB12CD", map[string]string{"lodge": "bhakti-nivas"})
	require.NoError(t, err)
	assert.Equal(t, "order_xyz", order.OrderID)
	assert.Equal(t, int64(123450), order.Amount)
	assert.Equal(t, "INR", order.Currency)
}

func TestCreateOrder_RoundsMinorUnits(t *testing.T) {
	var got int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		got = int64(payload["amount"].(float64))
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "order_xyz", "amount": got, "currency": "INR"})
	}))
	defer srv.Close()

	gw := &PaymentGateway{BaseURL: srv.URL, KeyID: "key", KeySecret: "secret", Currency: "INR", Client: srv.Client()}

	tests := []struct {
		major float64
		minor int64
	}{
		{19.99, 1999},
		{0.07, 7},
		{600, 60000},
		{1234.50, 123450},
	}
	for _, tt := range tests {
		_, err := gw.CreateOrder(context.Background(), tt.major, "BK-TEST", nil)
		require.NoError(t, err)
		assert.Equal(t, tt.minor, got, "amount %v", tt.major)
	}
}

func TestVerifiedPayment(t *testing.T) {
	gw := &PaymentGateway{KeySecret: "secret"}
	sig := signPayment("order_1", "pay_1", "secret")

	assert.True(t, gw.VerifiedPayment("order_1", "pay_1", sig))
	assert.False(t, gw.VerifiedPayment("", "pay_1", sig))
	assert.False(t, gw.VerifiedPayment("order_1", "", sig))
	assert.False(t, gw.VerifiedPayment("order_1", "pay_1", ""))
	assert.False(t, gw.VerifiedPayment("order_1", "pay_1", mutateHex(sig)))

	// Unset shared secret fails closed, even for a matching empty-secret HMAC.
	bare := &PaymentGateway{}
	forged := signPayment("order_1", "pay_1", "")
	assert.False(t, bare.VerifiedPayment("order_1", "pay_1", forged))
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	gw := &PaymentGateway{BaseURL: srv.URL, KeyID: "key", KeySecret: "secret", Currency: "INR", Client: srv.Client()}

	_, err := gw.CreateOrder(context.Background(), 100, "BK-TEST", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway returned 400")
}

func TestCreateOrder_Unconfigured(t *testing.T) {
	gw := &PaymentGateway{Currency: "INR", Client: http.DefaultClient}
	_, err := gw.CreateOrder(context.Background(), 100, "BK-TEST", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
