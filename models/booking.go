package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking lifecycle states.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked-in"
	BookingCheckedOut = "checked-out"
	BookingCancelled  = "cancelled"
)

// Payment fields.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"

	PayAtLodge    = "payAtLodge"
	PaymentOnline = "online"
)

// Booking is a guest's reservation of room units for a date range.
//
// Lodge name and room name/type/price are snapshots taken at creation time;
// editing a lodge or room later does not rewrite history. RoomID is the
// stable key used when stock is restored on cancel/checkout, so renaming a
// room cannot break the restore.
type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingRef string `gorm:"column:booking_ref;uniqueIndex;size:32" json:"bookingId"`

	LodgeID   uint   `gorm:"index;column:lodge_id" json:"lodge_id"`
	LodgeName string `gorm:"size:255" json:"lodgeName"`

	RoomID    uint    `gorm:"index;column:room_id" json:"room_id"`
	RoomType  string  `gorm:"size:30" json:"roomType"`
	RoomName  string  `gorm:"size:150" json:"roomName"`
	RoomPrice float64 `gorm:"column:room_price" json:"roomPrice"`

	CheckIn   time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut  time.Time `gorm:"column:check_out" json:"checkOut"`
	Guests    int       `json:"guests"`
	RoomUnits int       `gorm:"column:room_units" json:"rooms"`

	CustomerName   string `gorm:"size:255" json:"customerName"`
	CustomerMobile string `gorm:"size:30" json:"customerMobile"`
	CustomerEmail  string `gorm:"size:255" json:"customerEmail,omitempty"`
	IDProofType    string `gorm:"column:id_proof_type;size:50" json:"idProofType,omitempty"`
	IDProofNumber  string `gorm:"column:id_proof_number;size:100" json:"idProofNumber,omitempty"`

	PaymentMethod string  `gorm:"size:30" json:"paymentMethod"`
	TotalAmount   float64 `gorm:"column:total_amount" json:"totalAmount"`
	PaymentStatus string  `gorm:"size:20;default:'pending'" json:"paymentStatus"`
	PaymentID     *string `gorm:"column:payment_id;size:100" json:"paymentId,omitempty"`

	Status string `gorm:"size:20;index" json:"status"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checkedOutAt,omitempty"`

	// Set the first time stock is given back so a repeated cancel/checkout
	// can never double-restore.
	AvailabilityRestored bool `gorm:"column:availability_restored;default:false" json:"-"`
}

// ValidBookingStatus reports whether s is a known lifecycle state.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}
