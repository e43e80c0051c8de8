package repository

import (
	"context"
	"strings"

	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository is the stock ledger's data access contract.
// Methods suffixed with Tx run on the caller's transaction handle.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error)

	CreateTx(tx *gorm.DB, p *model.Product) error
	UpdateTx(tx *gorm.DB, p *model.Product) error
	// DeleteTx removes the product and every borrowing that references it.
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// FindByIDForUpdateTx reads the row under an exclusive lock on engines
	// that support SELECT ... FOR UPDATE.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	// SetStockTx writes stock_qty together with its derived status.
	SetStockTx(tx *gorm.DB, p *model.Product, qty int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, classify(err, "product")
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{}).Preload("Category")

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR category_id IN (?)", like,
			r.db.Model(&model.Category{}).Select("id").Where("LOWER(name) LIKE ?", like))
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var products []model.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) CreateTx(tx *gorm.DB, p *model.Product) error {
	return classify(tx.Omit(clause.Associations).Create(p).Error, "product")
}

// UpdateTx expects the row to be locked by FindByIDForUpdateTx. RowsAffected
// is not checked: MySQL reports 0 for an update that changes nothing.
func (r *productRepo) UpdateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"category_id": p.CategoryID,
		"price":       p.Price,
		"stock_qty":   p.StockQty,
		"status":      p.Status,
	}).Error
}

func (r *productRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("product_id = ?", id).Delete(&model.Borrowing{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", id).Delete(&model.StockMovement{}).Error; err != nil {
		return err
	}
	res := tx.Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "product")
	}
	return nil
}

func (r *productRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := forUpdate(tx).First(&p, "id = ?", id).Error; err != nil {
		return nil, classify(err, "product")
	}
	return &p, nil
}

func (r *productRepo) SetStockTx(tx *gorm.DB, p *model.Product, qty int) error {
	status := model.StockStatusFor(qty)
	err := tx.Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"stock_qty": qty,
		"status":    status,
	}).Error
	if err != nil {
		return err
	}
	p.StockQty = qty
	p.Status = status
	return nil
}

// forUpdate adds a row lock. sqlite has no FOR UPDATE; it serialises writers
// at the database level instead.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
