package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge-backend/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to confirmed", models.BookingPending, models.BookingConfirmed, true},
		{"pending to cancelled", models.BookingPending, models.BookingCancelled, true},
		{"confirmed to checked-in", models.BookingConfirmed, models.BookingCheckedIn, true},
		{"confirmed to cancelled", models.BookingConfirmed, models.BookingCancelled, true},
		{"checked-in to checked-out", models.BookingCheckedIn, models.BookingCheckedOut, true},
		{"checked-in to cancelled", models.BookingCheckedIn, models.BookingCancelled, true},

		{"pending cannot skip to checked-in", models.BookingPending, models.BookingCheckedIn, false},
		{"pending cannot skip to checked-out", models.BookingPending, models.BookingCheckedOut, false},
		{"confirmed cannot skip to checked-out", models.BookingConfirmed, models.BookingCheckedOut, false},
		{"no going back to pending", models.BookingConfirmed, models.BookingPending, false},
		{"checked-in cannot revert", models.BookingCheckedIn, models.BookingConfirmed, false},
		{"checked-out is terminal", models.BookingCheckedOut, models.BookingCancelled, false},
		{"cancelled is terminal", models.BookingCancelled, models.BookingConfirmed, false},
		{"cancelled cannot cancel again", models.BookingCancelled, models.BookingCancelled, false},
		{"self transition rejected", models.BookingConfirmed, models.BookingConfirmed, false},
		{"unknown source", "teleported", models.BookingConfirmed, false},
		{"unknown target", models.BookingConfirmed, "teleported", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestRestoresStock(t *testing.T) {
	assert.True(t, restoresStock(models.BookingCancelled))
	assert.True(t, restoresStock(models.BookingCheckedOut))
	assert.False(t, restoresStock(models.BookingPending))
	assert.False(t, restoresStock(models.BookingConfirmed))
	assert.False(t, restoresStock(models.BookingCheckedIn))
}

func TestCreateBookingInputValidate(t *testing.T) {
	base := func() CreateBookingInput {
		return CreateBookingInput{
			LodgeID:        1,
			RoomID:         2,
			CheckIn:        mustDate(t, "2026-09-01"),
			CheckOut:       mustDate(t, "2026-09-03"),
			Guests:         2,
			RoomUnits:      1,
			CustomerName:   "Ramesh Kumar",
			CustomerMobile: "9876543210",
			PaymentMethod:  models.PayAtLodge,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*CreateBookingInput)
		wantErr string
	}{
		{"valid", func(in *CreateBookingInput) {}, ""},
		{"room by name only", func(in *CreateBookingInput) { in.RoomID = 0; in.RoomName = "AC Room" }, ""},
		{"zero room units", func(in *CreateBookingInput) { in.RoomUnits = 0 }, "rooms must be at least 1"},
		{"zero guests", func(in *CreateBookingInput) { in.Guests = 0 }, "guests must be at least 1"},
		{"no room selection", func(in *CreateBookingInput) { in.RoomID = 0; in.RoomName = "  " }, "room selection required"},
		{"check-out before check-in", func(in *CreateBookingInput) { in.CheckOut = in.CheckIn.AddDate(0, 0, -1) }, "check-out must be after check-in"},
		{"zero-night stay", func(in *CreateBookingInput) { in.CheckOut = in.CheckIn }, "check-out must be after check-in"},
		{"missing customer name", func(in *CreateBookingInput) { in.CustomerName = " " }, "customer name and mobile required"},
		{"missing mobile", func(in *CreateBookingInput) { in.CustomerMobile = "" }, "customer name and mobile required"},
		{"unknown payment method", func(in *CreateBookingInput) { in.PaymentMethod = "cheque" }, "unknown payment method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			err := in.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return parsed
}
