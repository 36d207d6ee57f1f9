package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// NewBookingRef returns a human-readable booking reference such as
// "BK-20260831-4F7A2C": booking date plus a random suffix. Collisions are
// unlikely at expected volume; the unique index on booking_ref is the real
// guard, and callers retry on a duplicate-key error.
func NewBookingRef() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("BK-%s-%s",
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(hex.EncodeToString(b)),
	), nil
}

// IsNumericID reports whether s looks like a bare primary key rather than a
// booking reference. Used for the dual lookup on booking endpoints.
func IsNumericID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewCashPaymentID synthesizes a payment identifier for manually reconciled
// cash payments, distinguishable from gateway-issued ones by prefix.
func NewCashPaymentID() string {
	return fmt.Sprintf("CASH-%d", time.Now().UnixMilli())
}

// GenerateSecureToken returns a hex token built from n random bytes.
func GenerateSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
