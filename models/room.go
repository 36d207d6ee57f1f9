package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room types offered across lodges.
const (
	RoomTypeNonAC     = "Non-AC"
	RoomTypeAC        = "AC"
	RoomTypeFamily    = "Family"
	RoomTypeDormitory = "Dormitory"
)

// Room is a bookable room category within a lodge. Available is a stock
// counter mutated only through atomic updates; it must never go below zero.
type Room struct {
	gorm.Model

	LodgeID uint `gorm:"index;column:lodge_id" json:"lodge_id"`

	Type         string  `gorm:"size:30" json:"type"`
	Name         string  `gorm:"size:150" json:"name"`
	Price        float64 `json:"price"`
	MaxOccupancy int     `gorm:"column:max_occupancy" json:"maxOccupancy"`
	Available    int     `gorm:"default:0" json:"available"`

	Amenities datatypes.JSON `json:"amenities,omitempty"`

	Lodge Lodge `gorm:"foreignKey:LodgeID;references:ID" json:"-"`
}

// ValidRoomType reports whether t is one of the supported room types.
func ValidRoomType(t string) bool {
	switch t {
	case RoomTypeNonAC, RoomTypeAC, RoomTypeFamily, RoomTypeDormitory:
		return true
	}
	return false
}
