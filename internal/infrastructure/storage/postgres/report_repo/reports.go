// Package report_repo provides PostgreSQL implementations for report queries.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"billbook/internal/core/id"
	"billbook/internal/core/types"
	"billbook/internal/domain/reports"
	"billbook/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ reports.Repository = (*ReportRepo)(nil)

// SalesTotal sums bill totals created in [from, to); open bounds when nil.
func (r *ReportRepo) SalesTotal(ctx context.Context, from, to *time.Time) (types.Money, error) {
	q := r.builder.
		Select("COALESCE(SUM(total_amount), 0)").
		From("bills")

	if from != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *from})
	}
	if to != nil {
		q = q.Where(squirrel.Lt{"created_at": *to})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build sales total: %w", err)
	}

	var total types.Money
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return types.Zero(), fmt.Errorf("sales total: %w", err)
	}

	return total, nil
}

// CountBills returns the total number of bills.
func (r *ReportRepo) CountBills(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM bills")
}

// CountCustomers returns the total number of customers.
func (r *ReportRepo) CountCustomers(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM customers")
}

// CountLowStockItems counts items with stock below the threshold.
func (r *ReportRepo) CountLowStockItems(ctx context.Context, threshold int) (int64, error) {
	querier := r.txManager.GetQuerier(ctx)

	var count int64
	err := querier.QueryRow(ctx, "SELECT COUNT(*) FROM items WHERE stock < $1", threshold).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count low stock items: %w", err)
	}

	return count, nil
}

// InventoryValue totals price * stock across the catalog.
func (r *ReportRepo) InventoryValue(ctx context.Context) (types.Money, error) {
	querier := r.txManager.GetQuerier(ctx)

	var value types.Money
	err := querier.QueryRow(ctx, "SELECT COALESCE(SUM(price * stock), 0) FROM items").Scan(&value)
	if err != nil {
		return types.Zero(), fmt.Errorf("inventory value: %w", err)
	}

	return value, nil
}

// RecentBills returns the latest bills, newest first.
func (r *ReportRepo) RecentBills(ctx context.Context, limit int) ([]reports.RecentBill, error) {
	q := r.builder.
		Select("id", "number", "customer_name", "total_amount", "created_at").
		From("bills").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent bills: %w", err)
	}

	var bills []reports.RecentBill
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &bills, sql, args...); err != nil {
		return nil, fmt.Errorf("recent bills: %w", err)
	}

	return bills, nil
}

// ProductSales returns the sales rows of one item, newest first.
// Customer name falls back to the snapshot on the bill when the
// customer record was removed or never linked.
func (r *ReportRepo) ProductSales(ctx context.Context, itemID id.ID) ([]reports.ProductSale, error) {
	query := `
		SELECT
			b.created_at AS date,
			b.number AS invoice_number,
			COALESCE(c.name, b.customer_name) AS customer_name,
			l.quantity,
			l.price,
			l.amount + l.tax_amount AS total
		FROM bill_lines l
		JOIN bills b ON b.id = l.document_id
		LEFT JOIN customers c ON c.id = b.customer_id
		WHERE l.item_id = $1
		ORDER BY b.created_at DESC
	`

	var sales []reports.ProductSale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &sales, query, itemID); err != nil {
		return nil, fmt.Errorf("product sales: %w", err)
	}

	return sales, nil
}

func (r *ReportRepo) count(ctx context.Context, query string) (int64, error) {
	querier := r.txManager.GetQuerier(ctx)

	var count int64
	if err := querier.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return count, nil
}
