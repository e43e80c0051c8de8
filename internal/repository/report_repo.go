package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository serves the read-only reporting views with hand-written SQL
// over the same connection pool GORM uses.
type ReportRepository interface {
	CategoryStats(ctx context.Context) ([]CategoryStatRow, error)
	SalesTrend(ctx context.Context, days int) ([]SalesDayRow, error)
	DashboardTotals(ctx context.Context) (*DashboardTotalsRow, error)
	RecentBorrowings(ctx context.Context, limit int) ([]RecentBorrowingRow, error)
}

type CategoryStatRow struct {
	Name     string `db:"name"`
	TotalQty int64  `db:"total_qty"`
}

type SalesDayRow struct {
	Day     string          `db:"day"`
	Revenue decimal.Decimal `db:"revenue"`
	Count   int64           `db:"count"`
}

type DashboardTotalsRow struct {
	TotalProducts    int64 `db:"total_products"`
	TotalStock       int64 `db:"total_stock"`
	LowStock         int64 `db:"low_stock"`
	ActiveBorrowings int64 `db:"active_borrowings"`
	TotalUsers       int64 `db:"total_users"`
}

type RecentBorrowingRow struct {
	BorrowerName string    `db:"borrower_name"`
	Quantity     int       `db:"quantity"`
	ProductName  string    `db:"product_name"`
	BorrowDate   time.Time `db:"borrow_date"`
}

type reportRepo struct{ db *sqlx.DB }

// NewReportRepository wraps gorm's *sql.DB in sqlx with the bind style of the
// connected dialect.
func NewReportRepository(gdb *gorm.DB) (ReportRepository, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("report repo: get sql.DB: %w", err)
	}
	driverName := gdb.Dialector.Name()
	if driverName == "sqlite" {
		driverName = "sqlite3"
	}
	return &reportRepo{db: sqlx.NewDb(sqlDB, driverName)}, nil
}

const categoryStatsQuery = `
SELECT c.name AS name, COALESCE(SUM(p.stock_qty), 0) AS total_qty
FROM products p
JOIN categories c ON p.category_id = c.id
GROUP BY c.name
ORDER BY c.name`

func (r *reportRepo) CategoryStats(ctx context.Context) ([]CategoryStatRow, error) {
	rows := []CategoryStatRow{}
	if err := r.db.SelectContext(ctx, &rows, categoryStatsQuery); err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return rows, nil
}

const salesTrendQuery = `
SELECT DATE(sale_date) AS day,
       COALESCE(SUM(total_price), 0) AS revenue,
       COALESCE(SUM(quantity), 0) AS count
FROM sales
GROUP BY DATE(sale_date)
ORDER BY DATE(sale_date) DESC
LIMIT ?`

// SalesTrend returns the most recent sale days, newest first. Day is always
// normalised to YYYY-MM-DD whatever the driver hands back.
func (r *reportRepo) SalesTrend(ctx context.Context, days int) ([]SalesDayRow, error) {
	rows := []SalesDayRow{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(salesTrendQuery), days); err != nil {
		return nil, fmt.Errorf("sales trend: %w", err)
	}
	for i := range rows {
		if len(rows[i].Day) > 10 {
			rows[i].Day = rows[i].Day[:10]
		}
	}
	return rows, nil
}

const dashboardTotalsQuery = `
SELECT
    (SELECT COUNT(*) FROM products) AS total_products,
    (SELECT COALESCE(SUM(stock_qty), 0) FROM products) AS total_stock,
    (SELECT COUNT(*) FROM products WHERE status = ?) AS low_stock,
    (SELECT COUNT(*) FROM borrowings WHERE status = ?) AS active_borrowings,
    (SELECT COUNT(*) FROM users) AS total_users`

func (r *reportRepo) DashboardTotals(ctx context.Context) (*DashboardTotalsRow, error) {
	var row DashboardTotalsRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(dashboardTotalsQuery),
		string(model.StockLow), string(model.BorrowingBorrowed))
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}
	return &row, nil
}

const recentBorrowingsQuery = `
SELECT b.borrower_name AS borrower_name, b.quantity AS quantity,
       p.name AS product_name, b.borrow_date AS borrow_date
FROM borrowings b
JOIN products p ON b.product_id = p.id
ORDER BY b.borrow_date DESC
LIMIT ?`

func (r *reportRepo) RecentBorrowings(ctx context.Context, limit int) ([]RecentBorrowingRow, error) {
	rows := []RecentBorrowingRow{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(recentBorrowingsQuery), limit); err != nil {
		return nil, fmt.Errorf("recent borrowings: %w", err)
	}
	return rows, nil
}
