package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a stock item. StockQty is the sole source of truth for how many
// units are on the shelf; Status is derived from it via StockStatusFor and is
// rewritten with every quantity write.
type Product struct {
	ID         uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	Name       string          `gorm:"type:varchar(150);not null;index"`
	CategoryID *uuid.UUID      `gorm:"type:varchar(36);index"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockQty   int             `gorm:"not null;default:0"`
	Status     StockStatus     `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// BeforeCreate assigns the UUID client-side so every driver behaves the same.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SetStock writes the quantity and its derived status together.
func (p *Product) SetStock(qty int) {
	p.StockQty = qty
	p.Status = StockStatusFor(qty)
}

// CategoryName returns the joined category name, or "" when uncategorized.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
