package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lodge-backend/models"
	"lodge-backend/services"
)

const testGatewaySecret = "test_key_secret"

func newBookingTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, models.Lodge) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Lodge{}, &models.Room{}, &models.User{}, &models.Booking{}))

	lodge := models.Lodge{
		Slug: "bhakti-nivas",
		Name: "Bhakti Nivas",
		Rooms: []models.Room{
			{Type: models.RoomTypeNonAC, Name: "Basic Room", Price: 600, MaxOccupancy: 2, Available: 2},
		},
	}
	require.NoError(t, db.Create(&lodge).Error)

	gw := &services.PaymentGateway{KeySecret: testGatewaySecret, Currency: "INR"}
	ctrl := NewBookingController(services.NewBookingService(db, nil), gw)

	r := gin.New()
	r.POST("/api/bookings", ctrl.CreateBooking)
	return r, db, lodge
}

func bookingBody(lodge models.Lodge, extra map[string]interface{}) []byte {
	body := map[string]interface{}{
		"lodge_id":        lodge.ID,
		"room_id":         lodge.Rooms[0].ID,
		"check_in":        "2026-09-01",
		"check_out":       "2026-09-03",
		"guests":          2,
		"rooms":           1,
		"customer_name":   "Ramesh Kumar",
		"customer_mobile": "9876543210",
		"payment_method":  models.PaymentOnline,
		"total_amount":    1200,
	}
	for k, v := range extra {
		body[k] = v
	}
	b, _ := json.Marshal(body)
	return b
}

func gatewaySignature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func postBooking(r *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// A caller cannot self-certify payment; legacy-style flags book as pending.
func TestCreateBookingIgnoresClientPaymentClaims(t *testing.T) {
	r, db, lodge := newBookingTestRouter(t)

	w := postBooking(r, bookingBody(lodge, map[string]interface{}{
		"payment_verified": true,
		"payment_status":   "paid",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking models.Booking
	require.NoError(t, db.Order("id DESC").First(&booking).Error)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
	assert.Nil(t, booking.PaymentID)
}

func TestCreateBookingWithValidSignatureMarksPaid(t *testing.T) {
	r, db, lodge := newBookingTestRouter(t)

	w := postBooking(r, bookingBody(lodge, map[string]interface{}{
		"order_id":   "order_123",
		"payment_id": "pay_456",
		"signature":  gatewaySignature("order_123", "pay_456"),
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking models.Booking
	require.NoError(t, db.Order("id DESC").First(&booking).Error)
	assert.Equal(t, models.PaymentPaid, booking.PaymentStatus)
	require.NotNil(t, booking.PaymentID)
	assert.Equal(t, "pay_456", *booking.PaymentID)
}

func TestCreateBookingWithBadSignatureRejected(t *testing.T) {
	r, db, lodge := newBookingTestRouter(t)

	w := postBooking(r, bookingBody(lodge, map[string]interface{}{
		"order_id":   "order_123",
		"payment_id": "pay_456",
		"signature":  "deadbeef",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "signatureMismatch")

	// Nothing persisted and no stock consumed.
	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
	var room models.Room
	require.NoError(t, db.First(&room, lodge.Rooms[0].ID).Error)
	assert.Equal(t, 2, room.Available)
}
