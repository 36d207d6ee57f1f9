// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingEvent is published when a booking is created or reaches a terminal
// state. It carries enough context for downstream consumers (analytics,
// audit, sync jobs) without querying the primary database.
type BookingEvent struct {
	BookingRef    string  `json:"booking_ref"`
	LodgeID       uint    `json:"lodge_id"`
	LodgeName     string  `json:"lodge_name"`
	RoomName      string  `json:"room_name"`
	RoomUnits     int     `json:"room_units"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Status        string  `json:"status"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentStatus string  `json:"payment_status"`
	OccurredAt    string  `json:"occurred_at"`
}

// Routing keys (doubling as queue names on the default exchange).
const (
	BookingCreatedKey    = "booking.created"
	BookingCancelledKey  = "booking.cancelled"
	BookingCheckedOutKey = "booking.checked_out"
)
