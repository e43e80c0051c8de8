package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BorrowingStatus is the lifecycle of a borrowing record: Borrowed → Returned.
type BorrowingStatus string

const (
	BorrowingBorrowed BorrowingStatus = "Borrowed"
	BorrowingReturned BorrowingStatus = "Returned"
)

// Borrowing logs one transfer of Quantity units from the shelf to a borrower.
// Quantity and BorrowDate are fixed at creation; ReturnDate is set exactly once.
type Borrowing struct {
	ID           uuid.UUID       `gorm:"type:varchar(36);primaryKey"`
	ProductID    uuid.UUID       `gorm:"type:varchar(36);not null;index"`
	BorrowerName string          `gorm:"type:varchar(100);not null"`
	Quantity     int             `gorm:"not null"`
	Status       BorrowingStatus `gorm:"type:varchar(20);not null;index"`
	BorrowDate   time.Time       `gorm:"not null;index"`
	ReturnDate   *time.Time

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (b *Borrowing) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsReturned reports whether the record reached its terminal state.
func (b *Borrowing) IsReturned() bool { return b.Status == BorrowingReturned }
