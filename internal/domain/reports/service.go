package reports

import (
	"context"
	"fmt"
	"time"

	"billbook/internal/core/id"
	"billbook/internal/core/types"
)

// Repository defines the read queries behind the reports.
type Repository interface {
	// SalesTotal sums bill totals created in [from, to); open bounds
	// when nil.
	SalesTotal(ctx context.Context, from, to *time.Time) (types.Money, error)

	CountBills(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountLowStockItems(ctx context.Context, threshold int) (int64, error)
	InventoryValue(ctx context.Context) (types.Money, error)
	RecentBills(ctx context.Context, limit int) ([]RecentBill, error)

	ProductSales(ctx context.Context, itemID id.ID) ([]ProductSale, error)
}

// Service assembles dashboard and sales reports.
type Service struct {
	repo Repository

	// now is swappable for tests
	now func() time.Time
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Dashboard builds the front-page summary.
func (s *Service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	total, err := s.repo.SalesTotal(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("total sales: %w", err)
	}

	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	todaySales, err := s.repo.SalesTotal(ctx, &dayStart, nil)
	if err != nil {
		return nil, fmt.Errorf("today sales: %w", err)
	}

	monthlySales, err := s.repo.SalesTotal(ctx, &monthStart, nil)
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}

	totalBills, err := s.repo.CountBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bills: %w", err)
	}

	totalCustomers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	lowStock, err := s.repo.CountLowStockItems(ctx, LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("count low stock: %w", err)
	}

	inventoryValue, err := s.repo.InventoryValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory value: %w", err)
	}

	recent, err := s.repo.RecentBills(ctx, RecentBillsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent bills: %w", err)
	}

	avg := types.Zero()
	if totalBills > 0 {
		avg = total.DivRound(types.NewMoney(float64(totalBills)), 2)
	}

	return &DashboardSummary{
		TotalSales:     total,
		TodaySales:     todaySales,
		MonthlySales:   monthlySales,
		TotalBills:     totalBills,
		TotalCustomers: totalCustomers,
		AverageBill:    avg,
		LowStockItems:  lowStock,
		InventoryValue: inventoryValue,
		RecentBills:    recent,
	}, nil
}

// ProductSales returns the sales history of one item, newest first.
func (s *Service) ProductSales(ctx context.Context, itemID id.ID) ([]ProductSale, error) {
	sales, err := s.repo.ProductSales(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("product sales: %w", err)
	}
	return sales, nil
}
