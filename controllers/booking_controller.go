// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lodge-backend/metrics"
	"lodge-backend/middleware"
	"lodge-backend/models"
	"lodge-backend/services"
	"lodge-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	LodgeID  uint   `json:"lodge_id" binding:"required"`
	RoomID   uint   `json:"room_id"`
	RoomName string `json:"room_name"`

	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests" binding:"required"`
	Rooms    int    `json:"rooms" binding:"required"`

	CustomerName   string `json:"customer_name" binding:"required"`
	CustomerMobile string `json:"customer_mobile" binding:"required"`
	CustomerEmail  string `json:"customer_email"`
	IDProofType    string `json:"id_proof_type"`
	IDProofNumber  string `json:"id_proof_number"`

	PaymentMethod string  `json:"payment_method" binding:"required"`
	TotalAmount   float64 `json:"total_amount" binding:"required"`

	// Gateway callback fields for an online payment completed before the
	// booking is created. The signature is re-verified server-side; the
	// booking is only persisted as paid when it checks out.
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	PaymentID     string `json:"payment_id"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
	Gateway    *services.PaymentGateway
}

func NewBookingController(svc *services.BookingService, gateway *services.PaymentGateway) *BookingController {
	return &BookingController{BookingSvc: svc, Gateway: gateway}
}

// parseStayDate accepts plain dates and RFC3339 timestamps.
func parseStayDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// respondServiceError maps the service error vocabulary onto HTTP codes.
func respondServiceError(c *gin.Context, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "lodge_not_found"):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.lodgeNotFound", "lodge not found")
	case strings.Contains(msg, "room_not_found"):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.roomNotFound", "room not found")
	case strings.Contains(msg, "booking_not_found"):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")
	case strings.Contains(msg, "user_not_found"):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.userNotFound", "user not found")
	case errors.Is(err, services.ErrInsufficientAvailability):
		utils.JSONErrorCode(c, http.StatusConflict, "error.insufficientAvailability", "not enough rooms available for the requested dates")
	case strings.Contains(msg, "illegal_transition"):
		utils.JSONErrorCode(c, http.StatusConflict, "error.illegalTransition", msg)
	case strings.Contains(msg, "validation"):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", msg)
	default:
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal", "internal error")
	}
}

// ---------------------------
// CRUD: Bookings
// ---------------------------

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("CreateBooking bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	checkIn, err := parseStayDate(payload.CheckIn)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "invalid check_in format")
		return
	}
	checkOut, err := parseStayDate(payload.CheckOut)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "invalid check_out format")
		return
	}

	// Clients never certify their own payment: a supplied gateway triplet is
	// re-verified here, anything less books as pending.
	verified := false
	if payload.OrderID != "" || payload.PaymentID != "" || payload.Signature != "" {
		if !ctrl.Gateway.VerifiedPayment(payload.OrderID, payload.PaymentID, payload.Signature) {
			metrics.PaymentVerifications.WithLabelValues("mismatch").Inc()
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.signatureMismatch", "payment signature verification failed")
			return
		}
		metrics.PaymentVerifications.WithLabelValues("verified").Inc()
		verified = true
	}

	booking, err := ctrl.BookingSvc.Create(services.CreateBookingInput{
		LodgeID:  payload.LodgeID,
		RoomID:   payload.RoomID,
		RoomName: payload.RoomName,

		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    payload.Guests,
		RoomUnits: payload.Rooms,

		CustomerName:   payload.CustomerName,
		CustomerMobile: payload.CustomerMobile,
		CustomerEmail:  payload.CustomerEmail,
		IDProofType:    payload.IDProofType,
		IDProofNumber:  payload.IDProofNumber,

		PaymentMethod: payload.PaymentMethod,
		TotalAmount:   payload.TotalAmount,

		PaymentID:       payload.PaymentID,
		PaymentVerified: verified,
	})
	if err != nil {
		log.Printf("CreateBooking service error: %v", err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "data": booking})
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var lodgeID uint
	if v := c.Query("lodgeId"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			lodgeID = uint(parsed)
		}
	}
	status := c.Query("status")
	if status != "" && !models.ValidBookingStatus(status) {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "unknown status filter")
		return
	}

	bookings, err := ctrl.BookingSvc.List(claims, lodgeID, status)
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.fetchBookings", "could not retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	ref := c.Param("ref")
	booking, err := ctrl.BookingSvc.GetByRef(ref)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// Lifecycle / payment updates
// ---------------------------

func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	var payload UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "status is required")
		return
	}

	booking, err := ctrl.BookingSvc.UpdateStatus(c.Param("ref"), payload.Status)
	if err != nil {
		log.Printf("UpdateStatus error for %s: %v", c.Param("ref"), err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *BookingController) UpdatePaymentStatus(c *gin.Context) {
	var payload UpdatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "payment_status is required")
		return
	}

	booking, err := ctrl.BookingSvc.UpdatePaymentStatus(
		c.Param("ref"), payload.PaymentStatus, payload.PaymentMethod, payload.PaymentID)
	if err != nil {
		log.Printf("UpdatePaymentStatus error for %s: %v", c.Param("ref"), err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

// ---------------------------
// Spreadsheet export
// ---------------------------

func (ctrl *BookingController) ExportBookings(c *gin.Context) {
	from, err1 := time.Parse("2006-01-02", c.Query("from"))
	to, err2 := time.Parse("2006-01-02", c.Query("to"))
	if err1 != nil || err2 != nil || to.Before(from) {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "from and to must be dates (YYYY-MM-DD), from <= to")
		return
	}

	bookings, err := ctrl.BookingSvc.ListRange(middleware.ClaimsFrom(c), from, to)
	if err != nil {
		log.Printf("ExportBookings error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.exportFailed", "could not export bookings")
		return
	}

	f, err := services.BookingsWorkbook(bookings)
	if err != nil {
		log.Printf("ExportBookings workbook error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.exportFailed", "could not build workbook")
		return
	}

	filename := "bookings_" + c.Query("from") + "_" + c.Query("to") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Printf("ExportBookings write error: %v", err)
	}
}
