package service

import (
	"context"
	"fmt"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"
)

const (
	salesTrendDays     = 7
	recentActivityRows = 5
)

// AnalyticsService exposes the read-only reporting views. Results are cached
// for the configured TTL and dropped on every stock write.
type AnalyticsService interface {
	CategoryStats(ctx context.Context) ([]dto.CategoryStat, error)
	SalesReport(ctx context.Context) ([]dto.SalesDay, error)
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
}

type analyticsService struct {
	reports repository.ReportRepository
	cache   *infra.Cache
}

func NewAnalyticsService(reports repository.ReportRepository, cache *infra.Cache) AnalyticsService {
	return &analyticsService{reports: reports, cache: cache}
}

func (s *analyticsService) CategoryStats(ctx context.Context) ([]dto.CategoryStat, error) {
	var cached []dto.CategoryStat
	if s.cache.Get(ctx, cacheKeyCategoryStats, &cached) {
		return cached, nil
	}
	rows, err := s.reports.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryStat, len(rows))
	for i, r := range rows {
		resp[i] = dto.CategoryStat{Name: r.Name, TotalQty: r.TotalQty}
	}
	s.cache.Set(ctx, cacheKeyCategoryStats, resp)
	return resp, nil
}

func (s *analyticsService) SalesReport(ctx context.Context) ([]dto.SalesDay, error) {
	var cached []dto.SalesDay
	if s.cache.Get(ctx, cacheKeySalesReport, &cached) {
		return cached, nil
	}
	rows, err := s.reports.SalesTrend(ctx, salesTrendDays)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SalesDay, len(rows))
	for i, r := range rows {
		resp[i] = dto.SalesDay{Date: r.Day, Revenue: r.Revenue, Count: r.Count}
	}
	s.cache.Set(ctx, cacheKeySalesReport, resp)
	return resp, nil
}

// DashboardStats combines the totals with the latest borrowings. LowStock
// counts products whose status is "Low Stock" under the stock status policy.
func (s *analyticsService) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	var cached dto.DashboardStats
	if s.cache.Get(ctx, cacheKeyDashboard, &cached) {
		return &cached, nil
	}
	totals, err := s.reports.DashboardTotals(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.reports.RecentBorrowings(ctx, recentActivityRows)
	if err != nil {
		return nil, err
	}

	activity := make([]dto.ActivityItem, len(recent))
	for i, r := range recent {
		activity[i] = dto.ActivityItem{
			Text:   r.BorrowerName,
			Action: fmt.Sprintf("Borrowed %d %s", r.Quantity, r.ProductName),
			Time:   r.BorrowDate.UTC().Format(time.RFC3339),
			Type:   "update",
		}
	}
	stats := &dto.DashboardStats{
		TotalProducts:    totals.TotalProducts,
		ActiveBorrowings: totals.ActiveBorrowings,
		LowStock:         totals.LowStock,
		TotalUsers:       totals.TotalUsers,
		TotalStock:       totals.TotalStock,
		RecentActivity:   activity,
	}
	s.cache.Set(ctx, cacheKeyDashboard, stats)
	return stats, nil
}
