package service

import (
	"context"

	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"gorm.io/gorm"
)

// Cache keys of the reporting views. Every committed stock write drops them.
const (
	cacheKeyDashboard     = "report:dashboard"
	cacheKeyCategoryStats = "report:category-stats"
	cacheKeySalesReport   = "report:sales"
)

var stockReportKeys = []string{cacheKeyDashboard, cacheKeyCategoryStats}

// StockAlerter receives products that a committed write left at Low Stock or
// Out of Stock. Implementations must not block the caller for long.
type StockAlerter interface {
	EnqueueLowStock(ctx context.Context, alert dto.LowStockAlert) error
}

// runTx executes fn inside a GORM transaction bound to ctx. The transaction
// commits when fn returns nil and rolls back on any error or panic.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Price:     p.Price,
		StockQty:  p.StockQty,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.Category != nil {
		name := p.Category.Name
		resp.Category = &name
	}
	return resp
}

func toBorrowingResponse(b *model.Borrowing) dto.BorrowingResponse {
	resp := dto.BorrowingResponse{
		ID:           b.ID.String(),
		ProductID:    b.ProductID.String(),
		BorrowerName: b.BorrowerName,
		Quantity:     b.Quantity,
		Status:       string(b.Status),
		BorrowDate:   b.BorrowDate,
		ReturnDate:   b.ReturnDate,
	}
	if b.Product != nil {
		resp.ProductName = b.Product.Name
	}
	return resp
}
