package customer

import (
	"context"

	"billbook/internal/core/id"
	"billbook/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByName retrieves a customer by exact name.
	FindByName(ctx context.Context, name string) (*Customer, error)

	// CountBills counts bills linked to the customer.
	CountBills(ctx context.Context, id id.ID) (int64, error)
}
