package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/infrastructure/storage/postgres"
)

const customerTable = "customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txManager,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

var _ customer.Repository = (*CustomerRepo)(nil)

// FindByName retrieves a customer by exact name.
func (r *CustomerRepo) FindByName(ctx context.Context, name string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", name)
		}
		return nil, err
	}
	return c, nil
}

// CountBills counts bills linked to the customer.
func (r *CustomerRepo) CountBills(ctx context.Context, customerID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From("bills").
		Where(squirrel.Eq{"customer_id": customerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count bills: %w", err)
	}

	var count int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bills: %w", err)
	}

	return count, nil
}
