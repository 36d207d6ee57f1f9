package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lodge-backend/models"
)

// newBookingStore opens an in-memory store seeded with the demo lodge and a
// two-unit room, mirroring the first-run seed.
func newBookingStore(t *testing.T) (*BookingService, *gorm.DB, models.Lodge) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Lodge{}, &models.Room{}, &models.User{}, &models.Booking{}))

	lodge := models.Lodge{
		Slug:          "bhakti-nivas",
		Name:          "Bhakti Nivas",
		PriceStarting: 600,
		Availability:  models.LodgeAvailable,
		Rooms: []models.Room{
			{Type: models.RoomTypeNonAC, Name: "Basic Room", Price: 600, MaxOccupancy: 2, Available: 2},
		},
	}
	require.NoError(t, db.Create(&lodge).Error)

	return NewBookingService(db, nil), db, lodge
}

func storeBookingInput(lodge models.Lodge, units int) CreateBookingInput {
	return CreateBookingInput{
		LodgeID:        lodge.ID,
		RoomID:         lodge.Rooms[0].ID,
		CheckIn:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Guests:         2,
		RoomUnits:      units,
		CustomerName:   "Ramesh Kumar",
		CustomerMobile: "9876543210",
		PaymentMethod:  models.PayAtLodge,
		TotalAmount:    1200,
	}
}

func roomAvailable(t *testing.T, db *gorm.DB, roomID uint) int {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, roomID).Error)
	return room.Available
}

func TestCreateBookingRoundTrip(t *testing.T) {
	svc, db, lodge := newBookingStore(t)
	in := storeBookingInput(lodge, 1)

	created, err := svc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, created.Status)
	assert.Equal(t, models.PaymentPending, created.PaymentStatus)
	assert.Regexp(t, `^BK-\d{8}-[0-9A-F]{6}$`, created.BookingRef)
	assert.Equal(t, 1, roomAvailable(t, db, lodge.Rooms[0].ID))

	got, err := svc.GetByRef(created.BookingRef)
	require.NoError(t, err)
	assert.True(t, got.CheckIn.Equal(in.CheckIn))
	assert.True(t, got.CheckOut.Equal(in.CheckOut))
	assert.Equal(t, in.CustomerName, got.CustomerName)
	assert.Equal(t, in.CustomerMobile, got.CustomerMobile)
	assert.Equal(t, in.Guests, got.Guests)
	assert.Equal(t, in.TotalAmount, got.TotalAmount)
	assert.Equal(t, lodge.Name, got.LodgeName)
	assert.Equal(t, lodge.Rooms[0].ID, got.RoomID)

	// Numeric primary key works as a fallback lookup.
	byID, err := svc.GetByRef(fmt.Sprint(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.BookingRef, byID.BookingRef)
}

func TestBookingStockSequence(t *testing.T) {
	svc, db, lodge := newBookingStore(t)
	roomID := lodge.Rooms[0].ID

	first, err := svc.Create(storeBookingInput(lodge, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, roomAvailable(t, db, roomID))

	_, err = svc.UpdateStatus(first.BookingRef, models.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, 2, roomAvailable(t, db, roomID))

	_, err = svc.Create(storeBookingInput(lodge, 2))
	require.NoError(t, err)
	assert.Equal(t, 0, roomAvailable(t, db, roomID))

	var before int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&before).Error)

	_, err = svc.Create(storeBookingInput(lodge, 1))
	require.ErrorIs(t, err, ErrInsufficientAvailability)
	assert.Equal(t, 0, roomAvailable(t, db, roomID))

	// The rejected attempt must not leave a booking behind.
	var after int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestCancelRestoresStockExactlyOnce(t *testing.T) {
	svc, db, lodge := newBookingStore(t)
	roomID := lodge.Rooms[0].ID

	booking, err := svc.Create(storeBookingInput(lodge, 2))
	require.NoError(t, err)
	assert.Equal(t, 0, roomAvailable(t, db, roomID))

	cancelled, err := svc.UpdateStatus(booking.BookingRef, models.BookingCancelled)
	require.NoError(t, err)
	assert.True(t, cancelled.AvailabilityRestored)
	assert.Equal(t, 2, roomAvailable(t, db, roomID))

	// Cancelled is terminal; a repeat is rejected and nothing is restored.
	_, err = svc.UpdateStatus(booking.BookingRef, models.BookingCancelled)
	require.ErrorContains(t, err, "illegal_transition")
	assert.Equal(t, 2, roomAvailable(t, db, roomID))

	// Even if a retried transition slips past the table (status rewound with
	// the restore flag still set), the flag blocks a second restore.
	require.NoError(t, db.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		UpdateColumn("status", models.BookingCheckedIn).Error)
	again, err := svc.UpdateStatus(booking.BookingRef, models.BookingCancelled)
	require.NoError(t, err)
	assert.True(t, again.AvailabilityRestored)
	assert.Equal(t, 2, roomAvailable(t, db, roomID))
}

func TestCheckInCheckOutFlow(t *testing.T) {
	svc, db, lodge := newBookingStore(t)
	roomID := lodge.Rooms[0].ID

	booking, err := svc.Create(storeBookingInput(lodge, 1))
	require.NoError(t, err)

	checkedIn, err := svc.UpdateStatus(booking.BookingRef, models.BookingCheckedIn)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, checkedIn.Status)
	require.NotNil(t, checkedIn.CheckedInAt)
	assert.False(t, checkedIn.AvailabilityRestored)
	assert.Equal(t, 1, roomAvailable(t, db, roomID))

	checkedOut, err := svc.UpdateStatus(booking.BookingRef, models.BookingCheckedOut)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedOut, checkedOut.Status)
	require.NotNil(t, checkedOut.CheckedOutAt)
	assert.True(t, checkedOut.AvailabilityRestored)
	assert.Equal(t, 2, roomAvailable(t, db, roomID))
}

func TestUpdatePaymentStatusSynthesizesCashID(t *testing.T) {
	svc, _, lodge := newBookingStore(t)

	booking, err := svc.Create(storeBookingInput(lodge, 1))
	require.NoError(t, err)
	assert.Nil(t, booking.PaymentID)

	paid, err := svc.UpdatePaymentStatus(booking.BookingRef, models.PaymentPaid, models.PayAtLodge, "")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentID)
	assert.True(t, strings.HasPrefix(*paid.PaymentID, "CASH-"))
}
