package customer

import (
	"context"
	"fmt"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/core/tx"
	"billbook/internal/domain"
)

// Service provides business logic for the Customer catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		txManager:      txManager,
	}

	svc.Hooks().OnBeforeDelete(svc.checkNoBills)

	return svc
}

// checkNoBills vetoes deletion of a customer that has bills.
// Bills keep a denormalized customer snapshot, but the link is still
// needed for customer-wise reporting.
func (s *Service) checkNoBills(ctx context.Context, c *Customer) error {
	count, err := s.repo.CountBills(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("count customer bills: %w", err)
	}
	if count > 0 {
		return apperror.NewReferenced("customer", c.ID.String(), fmt.Sprintf("%d bill(s)", count)).
			WithDetail("bills", count)
	}
	return nil
}

// FindByName retrieves a customer by exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*Customer, error) {
	c, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", name)
		}
		return nil, err
	}
	return c, nil
}

// ResolveOrCreate returns the customer with the given name, creating it
// on the fly when it does not exist. Used when a bill is keyed in with a
// free-form customer name.
func (s *Service) ResolveOrCreate(ctx context.Context, name string) (*Customer, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	c := NewCustomer(name)
	if err := s.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CountBills returns the number of bills linked to a customer.
func (s *Service) CountBills(ctx context.Context, customerID id.ID) (int64, error) {
	return s.repo.CountBills(ctx, customerID)
}
