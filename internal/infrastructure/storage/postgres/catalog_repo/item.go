package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/domain/catalogs/item"
	"billbook/internal/infrastructure/storage/postgres"
)

const itemTable = "items"

// ItemRepo implements item.Repository.
type ItemRepo struct {
	*BaseCatalogRepo[*item.Item]
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txManager *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*item.Item](
			txManager,
			itemTable,
			postgres.ExtractDBColumns[item.Item](),
			func() *item.Item { return &item.Item{} },
		),
	}
}

var _ item.Repository = (*ItemRepo)(nil)

// FindByName retrieves an item by exact name.
func (r *ItemRepo) FindByName(ctx context.Context, name string) (*item.Item, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	it, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("item", name)
		}
		return nil, err
	}
	return it, nil
}

// DecrementStock atomically subtracts quantity from stock.
// The guard in WHERE prevents stock from going negative; callers inspect
// the returned bool to detect insufficient stock.
func (r *ItemRepo) DecrementStock(ctx context.Context, itemID id.ID, quantity int) (bool, error) {
	q := r.Builder().
		Update(itemTable).
		Set("stock", squirrel.Expr("stock - ?", quantity)).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": itemID}).
		Where(squirrel.GtOrEq{"stock": quantity})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build decrement stock: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// CountReferences counts dependent rows across bill lines, quotation
// lines and inventory history.
func (r *ItemRepo) CountReferences(ctx context.Context, itemID id.ID) (item.References, error) {
	var refs item.References

	const sql = `
		SELECT
			(SELECT COUNT(*) FROM bill_lines WHERE item_id = $1),
			(SELECT COUNT(*) FROM quotation_lines WHERE item_id = $1),
			(SELECT COUNT(*) FROM inventory_history WHERE item_id = $1)
	`

	err := r.querier(ctx).QueryRow(ctx, sql, itemID).
		Scan(&refs.BillLines, &refs.QuotationLines, &refs.HistoryEntries)
	if err != nil {
		return refs, fmt.Errorf("count item references: %w", err)
	}

	return refs, nil
}

// ClearReferences nulls the item reference on all dependent rows.
// Runs inside the force-delete transaction.
func (r *ItemRepo) ClearReferences(ctx context.Context, itemID id.ID) error {
	querier := r.querier(ctx)

	for _, table := range []string{"bill_lines", "quotation_lines", "inventory_history"} {
		q := r.Builder().
			Update(table).
			Set("item_id", nil).
			Where(squirrel.Eq{"item_id": itemID})

		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build clear references (%s): %w", table, err)
		}

		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("clear references (%s): %w", table, err)
		}
	}

	return nil
}
