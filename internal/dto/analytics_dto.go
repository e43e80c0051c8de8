package dto

import "github.com/shopspring/decimal"

type CategoryStat struct {
	Name     string `json:"name"`
	TotalQty int64  `json:"total_qty"`
}

// SalesDay is one row of the 7-day trend; Date is YYYY-MM-DD.
type SalesDay struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int64           `json:"count"`
}

type ActivityItem struct {
	Text   string `json:"text"`
	Action string `json:"action"`
	Time   string `json:"time"`
	Type   string `json:"type"`
}

type DashboardStats struct {
	TotalProducts    int64          `json:"total_products"`
	ActiveBorrowings int64          `json:"active_borrowings"`
	LowStock         int64          `json:"low_stock"`
	TotalUsers       int64          `json:"total_users"`
	TotalStock       int64          `json:"total_stock"`
	RecentActivity   []ActivityItem `json:"recent_activity"`
}
