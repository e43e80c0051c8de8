package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// ProductRequest is shared by create and update. Price is optional and
// defaults to zero; status is never accepted from clients.
type ProductRequest struct {
	Name       string           `json:"name" validate:"required,min=1,max=150"`
	CategoryID *string          `json:"category_id" validate:"omitempty,uuid"`
	Price      *decimal.Decimal `json:"price" validate:"omitempty,min=0"`
	StockQty   *int             `json:"stock_qty" validate:"required,min=0"`
}

// ProductFilter carries the query-string options of GET /api/inventory.
type ProductFilter struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	Status     string `form:"status"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID *string         `json:"category_id"`
	Category   *string         `json:"category"`
	Price      decimal.Decimal `json:"price"`
	StockQty   int             `json:"stock_qty"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type StockMovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Kind        string    `json:"kind"`
	Delta       int       `json:"delta"`
	QtyBefore   int       `json:"qty_before"`
	QtyAfter    int       `json:"qty_after"`
	ReferenceID *string   `json:"reference_id,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MessageResponse is returned by mutations that only acknowledge success.
type MessageResponse struct {
	Message string `json:"message"`
}

// LowStockAlert is queued after a committed write leaves a product at or
// below the low stock threshold.
type LowStockAlert struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	StockQty    int    `json:"stock_qty"`
	Status      string `json:"status"`
	Cause       string `json:"cause"`
}
