package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingSummaryLines(t *testing.T) {
	d := BookingEmailData{
		BookingRef:    "BK-20260831-4F7A2C",
		LodgeName:     "Bhakti Nivas",
		RoomName:      "AC Room",
		RoomUnits:     2,
		CheckIn:       "2026-09-01",
		CheckOut:      "2026-09-03",
		Guests:        3,
		TotalAmount:   2200,
		PaymentMethod: "online",
		PaymentStatus: "paid",
		PaymentID:     "pay_abc123",
	}

	out := BookingSummaryLines(d)
	assert.Contains(t, out, "Booking ID: BK-20260831-4F7A2C")
	assert.Contains(t, out, "Lodge: Bhakti Nivas")
	assert.Contains(t, out, "Room: AC Room x2")
	assert.Contains(t, out, "Stay: 2026-09-01 to 2026-09-03")
	assert.Contains(t, out, "Guests: 3")
	assert.Contains(t, out, "Amount: 2200.00")
	assert.Contains(t, out, "Payment: online (paid)")
	assert.Contains(t, out, "Payment ID: pay_abc123")
}

func TestBookingSummaryLinesOmitsEmptyPaymentID(t *testing.T) {
	out := BookingSummaryLines(BookingEmailData{BookingRef: "BK-1", PaymentMethod: "payAtLodge", PaymentStatus: "pending"})
	assert.NotContains(t, out, "Payment ID:")
}

func TestSendEmailsFallBackToMockWithoutSMTP(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_USERNAME", "")
	t.Setenv("SMTP_PASSWORD", "")

	d := BookingEmailData{BookingRef: "BK-1", GuestEmail: "guest@example.com"}
	assert.NoError(t, SendBookingConfirmationEmail(d))
	assert.NoError(t, SendBookingAlertEmail("admin@example.com", d))
}
