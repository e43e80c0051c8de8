package model

// StockStatus is the human-readable stock level label persisted next to stock_qty.
type StockStatus string

const (
	StockOutOfStock StockStatus = "Out of Stock"
	StockLow        StockStatus = "Low Stock"
	StockOptimal    StockStatus = "Optimal"
)

// LowStockThreshold is the first quantity considered Optimal.
const LowStockThreshold = 10

// StockStatusFor maps a quantity to its status label. It is the only place the
// thresholds live; every write of stock_qty must persist its result alongside.
func StockStatusFor(qty int) StockStatus {
	switch {
	case qty <= 0:
		return StockOutOfStock
	case qty < LowStockThreshold:
		return StockLow
	default:
		return StockOptimal
	}
}

// NeedsAttention is true for the labels that trigger a low-stock alert.
func (s StockStatus) NeedsAttention() bool {
	return s == StockOutOfStock || s == StockLow
}
