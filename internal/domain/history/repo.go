package history

import (
	"context"

	"billbook/internal/core/id"
	"billbook/internal/domain"
)

// ListFilter for filtering history entries.
type ListFilter struct {
	domain.ListFilter

	ItemID *id.ID
	Action *string
}

// Repository defines operations for history entries.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Entry], error)

	// DeleteAll wipes the ledger (administrative reset).
	DeleteAll(ctx context.Context) (int64, error)
}
