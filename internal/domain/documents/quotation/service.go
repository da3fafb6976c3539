package quotation

import (
	"context"
	"fmt"
	"time"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/core/tx"
	"billbook/internal/core/types"
	"billbook/internal/domain"
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/domain/catalogs/item"
	"billbook/pkg/logger"
	"billbook/pkg/numerator"
)

// ItemCatalog resolves catalog items for line defaults.
type ItemCatalog interface {
	GetByID(ctx context.Context, itemID id.ID) (*item.Item, error)
}

// CustomerDirectory resolves customers for snapshotting.
type CustomerDirectory interface {
	GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error)
}

// Service provides business operations for quotations.
type Service struct {
	repo      Repository
	items     ItemCatalog
	customers CustomerDirectory
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new quotation service.
func NewService(
	repo Repository,
	items ItemCatalog,
	customers CustomerDirectory,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		customers: customers,
		numerator: num,
		txManager: txManager,
	}
}

// Create persists a new quotation: snapshot the customer, assign the
// number, compute totals and save atomically. Stock is never affected.
func (s *Service) Create(ctx context.Context, doc *Quotation) error {
	if doc.CustomerID != nil {
		if err := s.snapshotCustomer(ctx, doc); err != nil {
			return err
		}
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	doc.RecalculateTotals()

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate quotation number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create quotation: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "quotation created", "id", doc.ID, "number", doc.Number, "total", doc.TotalAmount)
	return nil
}

func (s *Service) snapshotCustomer(ctx context.Context, doc *Quotation) error {
	c, err := s.customers.GetByID(ctx, *doc.CustomerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("customer", doc.CustomerID.String())
		}
		return err
	}

	doc.CustomerName = c.Name
	doc.MobileNumber = c.Phone
	doc.Email = c.Email
	doc.Address = c.Address
	doc.GSTIN = c.GSTIN
	return nil
}

// ResolveLine builds a line from an item reference: the tax rate always
// comes from the catalog, the unit price only when no override is given.
func (s *Service) ResolveLine(ctx context.Context, doc *Quotation, itemID id.ID, quantity int, priceOverride *string) error {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("item", itemID.String())
		}
		return err
	}

	price := it.Price
	if priceOverride != nil && *priceOverride != "" {
		p, err := types.NewMoneyFromString(*priceOverride)
		if err != nil {
			return apperror.NewValidation("invalid price").
				WithDetail("field", "price").
				WithDetail("value", *priceOverride)
		}
		price = p
	}

	doc.AddLine(&it.ID, quantity, price, it.TaxRate)
	return nil
}

// GetByID retrieves a quotation with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Quotation, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("quotation", docID.String())
		}
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Delete removes a quotation with its lines.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	if _, err := s.repo.GetByID(ctx, docID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("quotation", docID.String())
		}
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, docID)
	})
}

// List retrieves quotations with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quotation], error) {
	return s.repo.List(ctx, filter)
}
