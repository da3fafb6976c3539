package bill

import (
	"context"
	"time"

	"billbook/internal/core/id"
	"billbook/internal/domain"
)

// Repository defines operations for bill documents.
type Repository interface {
	Create(ctx context.Context, doc *Bill) error
	GetByID(ctx context.Context, docID id.ID) (*Bill, error)
	GetByNumber(ctx context.Context, number string) (*Bill, error)
	Update(ctx context.Context, doc *Bill) error
	Delete(ctx context.Context, docID id.ID) error

	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error)

	// GetForUpdate retrieves the bill header with a row lock, used to
	// serialize stock commitment.
	GetForUpdate(ctx context.Context, docID id.ID) (*Bill, error)
}

// ListFilter for filtering bills.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	StockState *StockState
	DateFrom   *time.Time
	DateTo     *time.Time
}
