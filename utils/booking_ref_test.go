package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingRefPattern = regexp.MustCompile(`^BK-\d{8}-[0-9A-F]{6}$`)

func TestNewBookingRef(t *testing.T) {
	ref, err := NewBookingRef()
	require.NoError(t, err)
	assert.Regexp(t, bookingRefPattern, ref)
}

func TestIsNumericID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"42", true},
		{"0", true},
		{"123456789", true},
		{"", false},
		{"BK-20260831-4F7A2C", false},
		{"12a", false},
		{"-1", false},
		{" 42", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNumericID(tt.in), "input %q", tt.in)
	}
}

func TestNewCashPaymentID(t *testing.T) {
	id := NewCashPaymentID()
	assert.True(t, strings.HasPrefix(id, "CASH-"))
	assert.True(t, IsNumericID(strings.TrimPrefix(id, "CASH-")))
}

func TestGenerateSecureToken(t *testing.T) {
	tok, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, tok, 32)

	other, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
