package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a read-only source for the sales trend report.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	ProductID  *uuid.UUID      `gorm:"type:varchar(36);index"`
	Quantity   int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaleDate   time.Time       `gorm:"not null;index"`
}

func (s *Sale) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
