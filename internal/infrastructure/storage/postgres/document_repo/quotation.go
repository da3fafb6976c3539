package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"billbook/internal/core/id"
	"billbook/internal/domain"
	"billbook/internal/domain/documents/quotation"
	"billbook/internal/infrastructure/storage/postgres"
)

const (
	quotationsTable     = "quotations"
	quotationLinesTable = "quotation_lines"
)

// QuotationRepo implements quotation.Repository.
type QuotationRepo struct {
	*BaseDocumentRepo[*quotation.Quotation]
}

// NewQuotationRepo creates a new quotation repository.
func NewQuotationRepo(txManager *postgres.TxManager) *QuotationRepo {
	return &QuotationRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*quotation.Quotation](
			txManager,
			quotationsTable,
			postgres.ExtractDBColumns[quotation.Quotation](),
			func() *quotation.Quotation { return &quotation.Quotation{} },
		),
	}
}

var _ quotation.Repository = (*QuotationRepo)(nil)

// GetLines retrieves lines for a quotation with item details resolved
// from the items catalog.
func (r *QuotationRepo) GetLines(ctx context.Context, docID id.ID) ([]quotation.Line, error) {
	q := r.Builder().
		Select(
			"l.line_id", "l.line_no", "l.item_id",
			"i.name AS item_name", "i.hsn_sac_number",
			"l.quantity", "l.price", "l.tax_rate", "l.tax_amount", "l.amount",
		).
		From(quotationLinesTable + " l").
		LeftJoin("items i ON i.id = l.item_id").
		Where(squirrel.Eq{"l.document_id": docID}).
		OrderBy("l.line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []quotation.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for a quotation (delete existing + insert new).
func (r *QuotationRepo) SaveLines(ctx context.Context, docID id.ID, lines []quotation.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + quotationLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(quotationLinesTable).
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

// List retrieves quotations with filtering.
func (r *QuotationRepo) List(ctx context.Context, filter quotation.ListFilter) (domain.ListResult[*quotation.Quotation], error) {
	q := r.baseSelect()

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
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
