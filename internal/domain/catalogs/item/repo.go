package item

import (
	"context"

	"billbook/internal/core/id"
	"billbook/internal/domain"
)

// References counts document and history rows pointing at an item.
type References struct {
	BillLines      int64 `json:"billLines"`
	QuotationLines int64 `json:"quotationLines"`
	HistoryEntries int64 `json:"historyEntries"`
}

// Total returns the overall reference count.
func (r References) Total() int64 {
	return r.BillLines + r.QuotationLines + r.HistoryEntries
}

// Repository defines the interface for Item persistence.
type Repository interface {
	domain.CatalogRepository[*Item]

	// FindByName retrieves an item by exact name.
	FindByName(ctx context.Context, name string) (*Item, error)

	// GetForUpdate retrieves an item with a row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Item, error)

	// DecrementStock atomically subtracts quantity from stock.
	// Returns false without error when stock is insufficient.
	DecrementStock(ctx context.Context, id id.ID, quantity int) (bool, error)

	// CountReferences counts bill lines, quotation lines and history
	// entries that reference the item.
	CountReferences(ctx context.Context, id id.ID) (References, error)

	// ClearReferences nulls the item reference on all dependent rows.
	ClearReferences(ctx context.Context, id id.ID) error
}
