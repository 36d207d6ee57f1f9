package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles. A lodge admin is scoped to a single lodge; a super admin sees
// everything and has no lodge scope.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255" json:"email"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	Role     string `gorm:"size:20;default:'admin'" json:"role"`

	// nil for super_admin
	LodgeID *uint `gorm:"column:lodge_id;index" json:"lodge_id,omitempty"`

	Lodge *Lodge `gorm:"foreignKey:LodgeID;references:ID" json:"lodge,omitempty"`
}
