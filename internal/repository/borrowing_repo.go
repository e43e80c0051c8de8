package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BorrowingRepository interface {
	List(ctx context.Context, filter dto.BorrowingFilter) ([]model.Borrowing, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Borrowing, error)

	CreateTx(tx *gorm.DB, b *model.Borrowing) error
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Borrowing, error)
	// MarkReturnedTx moves a Borrowed record to Returned. It is a no-op
	// returning ErrAlreadyReturned when another writer got there first.
	MarkReturnedTx(tx *gorm.DB, b *model.Borrowing, at time.Time) error
}

type borrowingRepo struct{ db *gorm.DB }

func NewBorrowingRepository(db *gorm.DB) BorrowingRepository { return &borrowingRepo{db: db} }

func (r *borrowingRepo) List(ctx context.Context, filter dto.BorrowingFilter) ([]model.Borrowing, error) {
	q := r.db.WithContext(ctx).Preload("Product")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	var rows []model.Borrowing
	if err := q.Order("borrow_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *borrowingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Borrowing, error) {
	var b model.Borrowing
	if err := r.db.WithContext(ctx).Preload("Product").First(&b, "id = ?", id).Error; err != nil {
		return nil, classify(err, "borrowing record")
	}
	return &b, nil
}

func (r *borrowingRepo) CreateTx(tx *gorm.DB, b *model.Borrowing) error {
	return tx.Omit("Product").Create(b).Error
}

func (r *borrowingRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Borrowing, error) {
	var b model.Borrowing
	if err := forUpdate(tx).First(&b, "id = ?", id).Error; err != nil {
		return nil, classify(err, "borrowing record")
	}
	return &b, nil
}

func (r *borrowingRepo) MarkReturnedTx(tx *gorm.DB, b *model.Borrowing, at time.Time) error {
	res := tx.Model(&model.Borrowing{}).
		Where("id = ? AND status = ?", b.ID, model.BorrowingBorrowed).
		Updates(map[string]interface{}{
			"status":      model.BorrowingReturned,
			"return_date": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", apierror.ErrAlreadyReturned, b.ID)
	}
	b.Status = model.BorrowingReturned
	b.ReturnDate = &at
	return nil
}
