// Package history_repo provides the PostgreSQL implementation of the
// inventory history repository.
package history_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"billbook/internal/domain"
	"billbook/internal/domain/history"
	"billbook/internal/infrastructure/storage/postgres"
)

const historyTable = "inventory_history"

// HistoryRepo implements history.Repository.
type HistoryRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewHistoryRepo creates a new history repository.
func NewHistoryRepo(txManager *postgres.TxManager) *HistoryRepo {
	return &HistoryRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ history.Repository = (*HistoryRepo)(nil)

// Create appends an entry to the ledger. Snapshots are stored as JSONB.
func (r *HistoryRepo) Create(ctx context.Context, entry *history.Entry) error {
	query := `
		INSERT INTO inventory_history (
			id, item_id, user_id, action, old_values, new_values, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	q := r.txManager.GetQuerier(ctx)
	_, err := q.Exec(ctx, query,
		entry.ID, entry.ItemID, entry.UserID, entry.Action,
		entry.OldValues, entry.NewValues, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	return nil
}

// List retrieves entries with item names resolved from the catalog.
// Force-deleted items leave item_name NULL.
func (r *HistoryRepo) List(ctx context.Context, filter history.ListFilter) (domain.ListResult[*history.Entry], error) {
	result := domain.ListResult[*history.Entry]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder.
		Select(
			"h.id", "h.item_id", "i.name AS item_name", "h.user_id",
			"h.action", "h.old_values", "h.new_values", "h.created_at",
		).
		From(historyTable + " h").
		LeftJoin("items i ON i.id = h.item_id")

	if filter.ItemID != nil {
		q = q.Where(squirrel.Eq{"h.item_id": *filter.ItemID})
	}

	if filter.Action != nil {
		q = q.Where(squirrel.Eq{"h.action": *filter.Action})
	}

	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	// Newest first; the ledger is append-only so created_at is stable.
	q = q.OrderBy("h.created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list history: %w", err)
	}

	return result, nil
}

// DeleteAll wipes the ledger and returns the number of removed entries.
func (r *HistoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	q := r.txManager.GetQuerier(ctx)

	result, err := q.Exec(ctx, "DELETE FROM inventory_history")
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}

	return result.RowsAffected(), nil
}
