package quotation

import (
	"context"
	"time"

	"billbook/internal/core/id"
	"billbook/internal/domain"
)

// Repository defines operations for quotation documents.
type Repository interface {
	Create(ctx context.Context, doc *Quotation) error
	GetByID(ctx context.Context, docID id.ID) (*Quotation, error)
	GetByNumber(ctx context.Context, number string) (*Quotation, error)
	Delete(ctx context.Context, docID id.ID) error

	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quotation], error)
}

// ListFilter for filtering quotations.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time
}
