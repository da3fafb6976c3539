package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"billbook/internal/core/id"
	"billbook/internal/domain"
	"billbook/internal/domain/documents/bill"
	"billbook/internal/infrastructure/storage/postgres"
)

const (
	billsTable     = "bills"
	billLinesTable = "bill_lines"
)

// BillRepo implements bill.Repository.
type BillRepo struct {
	*BaseDocumentRepo[*bill.Bill]
}

// NewBillRepo creates a new bill repository.
func NewBillRepo(txManager *postgres.TxManager) *BillRepo {
	return &BillRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*bill.Bill](
			txManager,
			billsTable,
			postgres.ExtractDBColumns[bill.Bill](),
			func() *bill.Bill { return &bill.Bill{} },
		),
	}
}

var _ bill.Repository = (*BillRepo)(nil)

// GetLines retrieves lines for a bill. Item name and HSN/SAC are resolved
// from the items catalog; force-deleted items leave them NULL.
func (r *BillRepo) GetLines(ctx context.Context, docID id.ID) ([]bill.Line, error) {
	q := r.Builder().
		Select(
			"l.line_id", "l.line_no", "l.item_id",
			"i.name AS item_name", "i.hsn_sac_number",
			"l.quantity", "l.price", "l.tax_rate", "l.tax_amount", "l.amount",
		).
		From(billLinesTable + " l").
		LeftJoin("items i ON i.id = l.item_id").
		Where(squirrel.Eq{"l.document_id": docID}).
		OrderBy("l.line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []bill.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for a bill (delete existing + insert new).
func (r *BillRepo) SaveLines(ctx context.Context, docID id.ID, lines []bill.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + billLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(billLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "item_id",
			"quantity", "price", "tax_rate", "tax_amount", "amount",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ItemID,
			line.Quantity, line.Price, line.TaxRate, line.TaxAmount, line.Amount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves bills with filtering.
func (r *BillRepo) List(ctx context.Context, filter bill.ListFilter) (domain.ListResult[*bill.Bill], error) {
	q := r.baseSelect()

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	if filter.StockState != nil {
		q = q.Where(squirrel.Eq{"stock_state": *filter.StockState})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"customer_name": searchPattern},
		})
	}

	return r.listPage(ctx, q, filter.ListFilter)
}
