package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementKind identifies what caused a stock change.
type MovementKind string

const (
	MovementInitial    MovementKind = "initial"
	MovementAdjustment MovementKind = "adjustment"
	MovementBorrow     MovementKind = "borrow"
	MovementReturn     MovementKind = "return"
)

// StockMovement records every change of a product's stock_qty. It is written in
// the same transaction as the quantity update it describes.
type StockMovement struct {
	ID          uuid.UUID    `gorm:"type:varchar(36);primaryKey"`
	ProductID   uuid.UUID    `gorm:"type:varchar(36);not null;index"`
	Kind        MovementKind `gorm:"type:varchar(20);not null"`
	Delta       int          `gorm:"not null"` // positive = in, negative = out
	QtyBefore   int          `gorm:"not null"`
	QtyAfter    int          `gorm:"not null"`
	ReferenceID *uuid.UUID   `gorm:"type:varchar(36)"` // borrowing id when applicable
	ActorID     *uuid.UUID   `gorm:"type:varchar(36)"`
	Note        string       `gorm:"type:varchar(255)"`
	CreatedAt   time.Time    `gorm:"index"`
}

func (m *StockMovement) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
