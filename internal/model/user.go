package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStatus: "Active" | "Inactive". Inactive users cannot log in.
type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
)

// User is a staff account that logs into the dashboard.
type User struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primaryKey"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(150);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	RoleID       uuid.UUID  `gorm:"type:varchar(36);not null;index"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'Active'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Role *Role `gorm:"foreignKey:RoleID"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RoleName returns the joined role name, or "" when the role was not preloaded.
func (u *User) RoleName() RoleName {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
