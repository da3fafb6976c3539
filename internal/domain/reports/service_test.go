package reports

import (
	"context"
	"testing"
	"time"

	"billbook/internal/core/id"
	"billbook/internal/core/types"
)

type fakeRepo struct {
	total   types.Money
	today   types.Money
	monthly types.Money
	bills   int64

	fromSeen []*time.Time
}

func (r *fakeRepo) SalesTotal(ctx context.Context, from, to *time.Time) (types.Money, error) {
	r.fromSeen = append(r.fromSeen, from)
	switch len(r.fromSeen) {
	case 1:
		return r.total, nil
	case 2:
		return r.today, nil
	default:
		return r.monthly, nil
	}
}

func (r *fakeRepo) CountBills(ctx context.Context) (int64, error)     { return r.bills, nil }
func (r *fakeRepo) CountCustomers(ctx context.Context) (int64, error) { return 7, nil }
func (r *fakeRepo) CountLowStockItems(ctx context.Context, threshold int) (int64, error) {
	return 2, nil
}
func (r *fakeRepo) InventoryValue(ctx context.Context) (types.Money, error) {
	return types.MustMoney("5000"), nil
}
func (r *fakeRepo) RecentBills(ctx context.Context, limit int) ([]RecentBill, error) {
	return []RecentBill{{Number: "SQE-2026-08-00001"}}, nil
}
func (r *fakeRepo) ProductSales(ctx context.Context, itemID id.ID) ([]ProductSale, error) {
	return nil, nil
}

func TestService_Dashboard(t *testing.T) {
	repo := &fakeRepo{
		total:   types.MustMoney("1000"),
		today:   types.MustMoney("100"),
		monthly: types.MustMoney("400"),
		bills:   4,
	}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	}

	sum, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if !sum.TotalSales.Equal(types.MustMoney("1000")) {
		t.Errorf("total sales = %s", sum.TotalSales)
	}
	if !sum.AverageBill.Equal(types.MustMoney("250")) {
		t.Errorf("average bill = %s, want 250", sum.AverageBill)
	}
	if sum.TotalCustomers != 7 || sum.LowStockItems != 2 {
		t.Errorf("counts: customers=%d lowstock=%d", sum.TotalCustomers, sum.LowStockItems)
	}
	if len(sum.RecentBills) != 1 {
		t.Errorf("recent bills = %d", len(sum.RecentBills))
	}

	// Day and month windows derived from the injected clock.
	if repo.fromSeen[1] == nil || !repo.fromSeen[1].Equal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("today window from = %v", repo.fromSeen[1])
	}
	if repo.fromSeen[2] == nil || !repo.fromSeen[2].Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month window from = %v", repo.fromSeen[2])
	}
}

func TestService_Dashboard_NoBills(t *testing.T) {
	repo := &fakeRepo{total: types.Zero(), bills: 0}
	svc := NewService(repo)

	sum, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !sum.AverageBill.IsZero() {
		t.Errorf("average bill with no bills = %s, want 0", sum.AverageBill)
	}
}
