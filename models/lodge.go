package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lodge availability summary values. Informational only; the Room.Available
// counter is the authoritative signal.
const (
	LodgeAvailable = "available"
	LodgeLimited   = "limited"
	LodgeFull      = "full"
)

type Lodge struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug        string `gorm:"uniqueIndex;size:150" json:"slug"`
	Name        string `gorm:"size:255" json:"name"`
	Tagline     string `gorm:"size:255" json:"tagline,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Address     string `gorm:"type:text" json:"address,omitempty"`
	Phone       string `gorm:"size:30" json:"phone,omitempty"`
	Whatsapp    string `gorm:"size:30" json:"whatsapp,omitempty"`

	PriceStarting float64 `gorm:"column:price_starting" json:"priceStarting"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `gorm:"column:review_count" json:"reviewCount"`

	Availability string `gorm:"size:20;default:'available'" json:"availability"`

	Amenities datatypes.JSON `json:"amenities,omitempty"`
	Images    datatypes.JSON `json:"images,omitempty"`
	Featured  bool           `gorm:"default:false" json:"featured"`

	Rooms []Room `gorm:"foreignKey:LodgeID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
}
