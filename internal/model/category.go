package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products (lab equipment, sports, IT...).
type Category struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
