package repository

import (
	"context"

	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementRepository appends to and reads the stock audit trail.
type StockMovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.StockMovement, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.StockMovement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
