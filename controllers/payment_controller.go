package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodge-backend/metrics"
	"lodge-backend/models"
	"lodge-backend/services"
	"lodge-backend/utils"
)

type CreateOrderRequest struct {
	Amount     float64 `json:"amount" binding:"required"`
	BookingRef string  `json:"booking_ref"`
	LodgeSlug  string  `json:"lodge_slug"`
}

type VerifyPaymentRequest struct {
	OrderID    string `json:"order_id" binding:"required"`
	PaymentID  string `json:"payment_id" binding:"required"`
	Signature  string `json:"signature" binding:"required"`
	BookingRef string `json:"booking_ref"`
}

type PaymentController struct {
	Gateway    *services.PaymentGateway
	BookingSvc *services.BookingService
}

func NewPaymentController(gateway *services.PaymentGateway, bookingSvc *services.BookingService) *PaymentController {
	return &PaymentController{Gateway: gateway, BookingSvc: bookingSvc}
}

// CreateOrder creates a gateway order for an online payment. The receipt ties
// the gateway record back to our booking flow.
func (ctrl *PaymentController) CreateOrder(c *gin.Context) {
	var payload CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "amount is required")
		return
	}

	receipt := payload.BookingRef
	if receipt == "" {
		token, err := utils.GenerateSecureToken(8)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal", "could not generate receipt")
			return
		}
		receipt = "rcpt_" + token
	}

	notes := map[string]string{}
	if payload.LodgeSlug != "" {
		notes["lodge"] = payload.LodgeSlug
	}

	order, err := ctrl.Gateway.CreateOrder(c.Request.Context(), payload.Amount, receipt, notes)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidAmount", "amount must be greater than zero")
			return
		}
		log.Printf("CreateOrder gateway error: %v", err)
		utils.JSONErrorCode(c, http.StatusBadGateway, "error.orderCreateFailed", err.Error())
		return
	}

	metrics.PaymentOrdersCreated.Inc()
	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"orderId":  order.OrderID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

// VerifyPayment is the trust boundary for online payments: the client posts
// back the gateway callback fields and we recompute the signature locally.
// On a mismatch the booking's payment status stays pending.
func (ctrl *PaymentController) VerifyPayment(c *gin.Context) {
	var payload VerifyPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "order_id, payment_id and signature are required")
		return
	}

	verified := ctrl.Gateway.VerifiedPayment(payload.OrderID, payload.PaymentID, payload.Signature)
	if !verified {
		metrics.PaymentVerifications.WithLabelValues("mismatch").Inc()
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.signatureMismatch", "payment signature verification failed")
		return
	}
	metrics.PaymentVerifications.WithLabelValues("verified").Inc()

	// Optional: attach the verified payment to an existing booking.
	if payload.BookingRef != "" {
		if _, err := ctrl.BookingSvc.UpdatePaymentStatus(
			payload.BookingRef, models.PaymentPaid, models.PaymentOnline, payload.PaymentID); err != nil {
			log.Printf("VerifyPayment: could not mark %s paid: %v", payload.BookingRef, err)
			respondServiceError(c, err)
			return
		}
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"verified": true, "paymentId": payload.PaymentID})
}
