// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lodge-backend/metrics"
	"lodge-backend/models"
	"lodge-backend/queue"
	"lodge-backend/utils"
)

// BookingService owns the booking state machine and its coupling to the room
// stock counters.
type BookingService struct {
	DB       *gorm.DB
	Notifier *NotifyDispatcher
}

func NewBookingService(db *gorm.DB, notifier *NotifyDispatcher) *BookingService {
	return &BookingService{DB: db, Notifier: notifier}
}

// statusTransitions is the forward-only lifecycle graph. Cancellation is
// allowed from any non-terminal state; checked-out and cancelled are terminal.
var statusTransitions = map[string][]string{
	models.BookingPending:    {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed:  {models.BookingCheckedIn, models.BookingCancelled},
	models.BookingCheckedIn:  {models.BookingCheckedOut, models.BookingCancelled},
	models.BookingCheckedOut: {},
	models.BookingCancelled:  {},
}

// CanTransition reports whether the lifecycle graph allows from -> to.
func CanTransition(from, to string) bool {
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// restoresStock reports whether entering status gives room units back.
func restoresStock(status string) bool {
	return status == models.BookingCancelled || status == models.BookingCheckedOut
}

// CreateBookingInput is everything the engine needs to persist a booking.
// Exactly one of RoomID / RoomName selects the room within the lodge.
type CreateBookingInput struct {
	LodgeID  uint
	RoomID   uint
	RoomName string

	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	RoomUnits int

	CustomerName   string
	CustomerMobile string
	CustomerEmail  string
	IDProofType    string
	IDProofNumber  string

	PaymentMethod string
	TotalAmount   float64

	// Set when an online payment was already verified against the gateway;
	// the booking is then persisted as paid.
	PaymentID       string
	PaymentVerified bool
}

func (in *CreateBookingInput) validate() error {
	if in.RoomUnits < 1 {
		return errors.New("validation: rooms must be at least 1")
	}
	if in.Guests < 1 {
		return errors.New("validation: guests must be at least 1")
	}
	if in.RoomID == 0 && strings.TrimSpace(in.RoomName) == "" {
		return errors.New("validation: room selection required")
	}
	if !in.CheckOut.After(in.CheckIn) {
		return errors.New("validation: check-out must be after check-in")
	}
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.CustomerMobile) == "" {
		return errors.New("validation: customer name and mobile required")
	}
	if in.PaymentMethod != models.PayAtLodge && in.PaymentMethod != models.PaymentOnline {
		return errors.New("validation: unknown payment method")
	}
	return nil
}

// Create validates the request, then inserts the booking and decrements the
// room's stock in one transaction. Notification dispatch and event publishing
// happen after commit, fire-and-forget.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var lodge models.Lodge
	if err := s.DB.First(&lodge, in.LodgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("lodge_not_found")
		}
		return nil, fmt.Errorf("db error checking lodge %d: %w", in.LodgeID, err)
	}

	var room models.Room
	roomQuery := s.DB.Where("lodge_id = ?", lodge.ID)
	if in.RoomID != 0 {
		roomQuery = roomQuery.Where("id = ?", in.RoomID)
	} else {
		roomQuery = roomQuery.Where("name = ?", strings.TrimSpace(in.RoomName))
	}
	if err := roomQuery.First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("room_not_found")
		}
		return nil, fmt.Errorf("db error checking room: %w", err)
	}

	paymentStatus := models.PaymentPending
	var paymentID *string
	if in.PaymentVerified && in.PaymentID != "" {
		paymentStatus = models.PaymentPaid
		pid := in.PaymentID
		paymentID = &pid
	}

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := ReserveRoomStock(tx, room.ID, in.RoomUnits); err != nil {
			return err
		}

		// Retry on reference collision; the unique index is the guard.
		maxRetries := 5
		var createErr error
		for attempt := 0; attempt < maxRetries; attempt++ {
			ref, gErr := utils.NewBookingRef()
			if gErr != nil {
				return fmt.Errorf("failed to generate booking reference: %w", gErr)
			}

			booking = models.Booking{
				BookingRef: ref,
				LodgeID:    lodge.ID,
				LodgeName:  lodge.Name,
				RoomID:     room.ID,
				RoomType:   room.Type,
				RoomName:   room.Name,
				RoomPrice:  room.Price,

				CheckIn:   in.CheckIn,
				CheckOut:  in.CheckOut,
				Guests:    in.Guests,
				RoomUnits: in.RoomUnits,

				CustomerName:   strings.TrimSpace(in.CustomerName),
				CustomerMobile: strings.TrimSpace(in.CustomerMobile),
				CustomerEmail:  strings.TrimSpace(in.CustomerEmail),
				IDProofType:    in.IDProofType,
				IDProofNumber:  in.IDProofNumber,

				PaymentMethod: in.PaymentMethod,
				TotalAmount:   in.TotalAmount,
				PaymentStatus: paymentStatus,
				PaymentID:     paymentID,

				Status: models.BookingConfirmed,
			}

			createErr = tx.Create(&booking).Error
			if createErr == nil {
				return nil
			}

			if isDuplicateKeyError(createErr) {
				log.Printf("booking reference collision (attempt %d) - retrying", attempt+1)
				continue
			}
			return fmt.Errorf("failed to create booking: %w", createErr)
		}
		return fmt.Errorf("failed to create booking after retries: %w", createErr)
	})
	if txErr != nil {
		return nil, txErr
	}

	metrics.BookingsCreated.Inc()
	go s.dispatchCreated(booking, lodge)

	return &booking, nil
}

// dispatchCreated runs off the request path. Notification and event failures
// are logged, never surfaced to the guest.
func (s *BookingService) dispatchCreated(b models.Booking, lodge models.Lodge) {
	adminEmail := s.lodgeAdminEmail(lodge.ID)
	if s.Notifier != nil {
		res := s.Notifier.BookingCreated(b, adminEmail)
		log.Printf("booking %s notified guest=%t admin=%t", b.BookingRef, res.GuestSent, res.AdminSent)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue.PublishBookingEvent(ctx, queue.BookingCreatedKey, bookingEvent(b))
}

// lodgeAdminEmail finds the scoped admin for a lodge, if one exists.
func (s *BookingService) lodgeAdminEmail(lodgeID uint) string {
	var user models.User
	err := s.DB.
		Where("lodge_id = ? AND role = ?", lodgeID, models.RoleAdmin).
		Order("id ASC").
		First(&user).Error
	if err != nil {
		return ""
	}
	return user.Email
}

func bookingEvent(b models.Booking) queue.BookingEvent {
	return queue.BookingEvent{
		BookingRef:    b.BookingRef,
		LodgeID:       b.LodgeID,
		LodgeName:     b.LodgeName,
		RoomName:      b.RoomName,
		RoomUnits:     b.RoomUnits,
		CheckIn:       b.CheckIn.Format("2006-01-02"),
		CheckOut:      b.CheckOut.Format("2006-01-02"),
		Status:        b.Status,
		TotalAmount:   b.TotalAmount,
		PaymentStatus: b.PaymentStatus,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

// findByRef resolves a booking by its reference first, falling back to the
// primary key when the input is numeric.
func findByRef(tx *gorm.DB, ref string) (*models.Booking, error) {
	var booking models.Booking
	err := tx.Where("booking_ref = ?", ref).First(&booking).Error
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up booking: %w", err)
	}

	if utils.IsNumericID(ref) {
		id, _ := strconv.ParseUint(ref, 10, 64)
		if err := tx.First(&booking, uint(id)).Error; err == nil {
			return &booking, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up booking: %w", err)
		}
	}
	return nil, errors.New("booking_not_found")
}

// GetByRef returns a booking by reference or numeric id.
func (s *BookingService) GetByRef(ref string) (*models.Booking, error) {
	return findByRef(s.DB, ref)
}

// UpdateStatus applies a lifecycle transition. Entering cancelled or
// checked-out restores the room's stock exactly once, keyed by the stable
// room id stored on the booking.
func (s *BookingService) UpdateStatus(ref, newStatus string) (*models.Booking, error) {
	if !models.ValidBookingStatus(newStatus) {
		return nil, errors.New("validation: unknown status")
	}

	var updated models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := findByRef(tx.Clauses(clause.Locking{Strength: "UPDATE"}), ref)
		if err != nil {
			return err
		}

		if !CanTransition(booking.Status, newStatus) {
			return fmt.Errorf("illegal_transition: %s -> %s", booking.Status, newStatus)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{"status": newStatus}
		switch newStatus {
		case models.BookingCheckedIn:
			updates["checked_in_at"] = now
		case models.BookingCheckedOut:
			updates["checked_out_at"] = now
		}

		if restoresStock(newStatus) && !booking.AvailabilityRestored {
			if err := ReleaseRoomStock(tx, booking.RoomID, booking.RoomUnits); err != nil {
				return fmt.Errorf("failed to restore availability: %w", err)
			}
			updates["availability_restored"] = true
		}

		if err := tx.Model(booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		// Reload so timestamps and the restore flag reflect this update.
		if err := tx.First(&updated, booking.ID).Error; err != nil {
			return fmt.Errorf("failed to reload booking: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	metrics.BookingStatusChanges.WithLabelValues(newStatus).Inc()

	if restoresStock(newStatus) {
		key := queue.BookingCancelledKey
		if newStatus == models.BookingCheckedOut {
			key = queue.BookingCheckedOutKey
		}
		go func(b models.Booking, key string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue.PublishBookingEvent(ctx, key, bookingEvent(b))
		}(updated, key)
	}

	return &updated, nil
}

// UpdatePaymentStatus sets the payment sub-state, orthogonal to the lifecycle
// status. Marking paid with no payment id synthesizes a cash identifier so
// manual reconciliations stay distinguishable from gateway payments.
func (s *BookingService) UpdatePaymentStatus(ref, paymentStatus, paymentMethod, paymentID string) (*models.Booking, error) {
	if paymentStatus != models.PaymentPending && paymentStatus != models.PaymentPaid {
		return nil, errors.New("validation: unknown payment status")
	}

	booking, err := findByRef(s.DB, ref)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"payment_status": paymentStatus}
	if paymentMethod != "" {
		updates["payment_method"] = paymentMethod
	}
	if paymentID != "" {
		updates["payment_id"] = paymentID
	} else if paymentStatus == models.PaymentPaid && booking.PaymentID == nil {
		updates["payment_id"] = utils.NewCashPaymentID()
	}

	if err := s.DB.Model(booking).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	return findByRef(s.DB, booking.BookingRef)
}

// List returns bookings newest first, optionally filtered by lodge and
// status. A lodge-scoped admin only ever sees their own lodge regardless of
// the filter they ask for.
func (s *BookingService) List(claims *utils.AuthClaims, lodgeID uint, status string) ([]models.Booking, error) {
	q := s.DB.Order("created_at DESC")

	if claims != nil && !claims.SuperAdmin() && claims.LodgeID != nil {
		q = q.Where("lodge_id = ?", *claims.LodgeID)
	} else if lodgeID != 0 {
		q = q.Where("lodge_id = ?", lodgeID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// ListRange returns bookings created inside [from, to] under the same lodge
// scoping rules; used by the spreadsheet export.
func (s *BookingService) ListRange(claims *utils.AuthClaims, from, to time.Time) ([]models.Booking, error) {
	q := s.DB.
		Where("created_at >= ? AND created_at < ?", from, to.AddDate(0, 0, 1)).
		Order("created_at ASC")
	if claims != nil && !claims.SuperAdmin() && claims.LodgeID != nil {
		q = q.Where("lodge_id = ?", *claims.LodgeID)
	}

	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}
