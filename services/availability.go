package services

import (
	"errors"

	"gorm.io/gorm"

	"lodge-backend/models"
)

// ErrInsufficientAvailability is returned when a reservation asks for more
// units than the room has in stock.
var ErrInsufficientAvailability = errors.New("insufficient_availability")

// ReserveRoomStock decrements a room's available counter by units inside the
// caller's transaction. The guard lives in the WHERE clause so the counter can
// never go negative and concurrent bookings cannot both win the last unit.
func ReserveRoomStock(tx *gorm.DB, roomID uint, units int) error {
	res := tx.Model(&models.Room{}).
		Where("id = ? AND available >= ?", roomID, units).
		UpdateColumn("available", gorm.Expr("available - ?", units))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientAvailability
	}
	return nil
}

// ReleaseRoomStock gives units back on cancel/checkout. Single atomic update,
// never read-modify-write.
func ReleaseRoomStock(tx *gorm.DB, roomID uint, units int) error {
	return tx.Model(&models.Room{}).
		Where("id = ?", roomID).
		UpdateColumn("available", gorm.Expr("available + ?", units)).Error
}
