package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleName is the closed set of roles a user can hold.
type RoleName string

const (
	RoleAdmin RoleName = "Admin"
	RoleStaff RoleName = "Staff"
)

// Valid reports whether r is one of the known roles.
func (r RoleName) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Capability is a feature area gated by a role flag.
type Capability string

const (
	CapabilityAnalytics Capability = "analytics"
	CapabilityInventory Capability = "inventory"
)

// Role carries the capability table row for one RoleName.
type Role struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name               RoleName  `gorm:"type:varchar(50);uniqueIndex;not null"`
	CanAccessAnalytics bool      `gorm:"not null;default:false"`
	CanAccessInventory bool      `gorm:"not null;default:false"`
}

func (r *Role) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Allows reports whether the role grants cap. Admin holds every capability
// regardless of its stored flags.
func (r *Role) Allows(cap Capability) bool {
	if r.Name == RoleAdmin {
		return true
	}
	switch cap {
	case CapabilityAnalytics:
		return r.CanAccessAnalytics
	case CapabilityInventory:
		return r.CanAccessInventory
	default:
		return false
	}
}
