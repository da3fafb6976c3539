package export

import (
	"context"
	"fmt"

	"billbook/internal/domain"
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/domain/catalogs/item"
	"billbook/internal/domain/documents/bill"
)

const exportTimeFormat = "2006-01-02 15:04"

// listPageSize bounds each page pulled from the repositories while
// streaming a full export.
const listPageSize = 500

// BillSource lists bills for export.
type BillSource interface {
	List(ctx context.Context, filter bill.ListFilter) (domain.ListResult[*bill.Bill], error)
}

// CustomerSource lists customers for export.
type CustomerSource interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*customer.Customer], error)
}

// ItemSource lists items for export.
type ItemSource interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*item.Item], error)
}

// Service builds export datasets from the domain listings.
type Service struct {
	bills     BillSource
	customers CustomerSource
	items     ItemSource
}

// NewService creates a new export service.
func NewService(bills BillSource, customers CustomerSource, items ItemSource) *Service {
	return &Service{bills: bills, customers: customers, items: items}
}

// Bills exports all bills, newest first.
func (s *Service) Bills(ctx context.Context) (Dataset, error) {
	ds := Dataset{
		Name:    "bills",
		Headers: []string{"Invoice Number", "Customer Name", "Date", "Total Amount", "Payment Mode"},
	}

	for offset := 0; ; offset += listPageSize {
		filter := bill.ListFilter{}
		filter.OrderBy = "-created_at"
		filter.Limit = listPageSize
		filter.Offset = offset

		page, err := s.bills.List(ctx, filter)
		if err != nil {
			return ds, fmt.Errorf("list bills: %w", err)
		}

		for _, b := range page.Items {
			ds.Rows = append(ds.Rows, []any{
				b.Number,
				b.CustomerName,
				b.CreatedAt.Format(exportTimeFormat),
				b.TotalAmount.StringFixed(2),
				b.PaymentMode,
			})
		}

		if len(page.Items) < listPageSize {
			return ds, nil
		}
	}
}

// Customers exports all customers ordered by name.
func (s *Service) Customers(ctx context.Context) (Dataset, error) {
	ds := Dataset{
		Name:    "customers",
		Headers: []string{"Name", "Phone", "Email", "Address", "GSTIN", "Created At"},
	}

	for offset := 0; ; offset += listPageSize {
		filter := domain.ListFilter{OrderBy: "name", Limit: listPageSize, Offset: offset}

		page, err := s.customers.List(ctx, filter)
		if err != nil {
			return ds, fmt.Errorf("list customers: %w", err)
		}

		for _, c := range page.Items {
			ds.Rows = append(ds.Rows, []any{
				c.Name,
				c.Phone,
				c.Email,
				c.Address,
				c.GSTIN,
				c.CreatedAt.Format(exportTimeFormat),
			})
		}

		if len(page.Items) < listPageSize {
			return ds, nil
		}
	}
}

// Inventory exports all items ordered by name.
func (s *Service) Inventory(ctx context.Context) (Dataset, error) {
	ds := Dataset{
		Name:    "inventory",
		Headers: []string{"Name", "Description", "Price", "Stock", "HSN/SAC Number", "Tax Rate", "Created At"},
	}

	for offset := 0; ; offset += listPageSize {
		filter := domain.ListFilter{OrderBy: "name", Limit: listPageSize, Offset: offset}

		page, err := s.items.List(ctx, filter)
		if err != nil {
			return ds, fmt.Errorf("list items: %w", err)
		}

		for _, it := range page.Items {
			ds.Rows = append(ds.Rows, []any{
				it.Name,
				it.Description,
				it.Price.StringFixed(2),
				it.Stock,
				it.HSNSACNumber,
				it.TaxRate.StringFixed(1),
				it.CreatedAt.Format(exportTimeFormat),
			})
		}

		if len(page.Items) < listPageSize {
			return ds, nil
		}
	}
}
