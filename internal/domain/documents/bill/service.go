package bill

import (
	"context"
	"fmt"
	"time"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/core/tx"
	"billbook/internal/domain"
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/domain/catalogs/item"
	"billbook/pkg/logger"
	"billbook/pkg/numerator"
)

// Inventory is the slice of the item repository the bill lifecycle needs.
type Inventory interface {
	// GetByID retrieves an item for line resolution.
	GetByID(ctx context.Context, itemID id.ID) (*item.Item, error)

	// GetForUpdate retrieves an item with a row lock.
	GetForUpdate(ctx context.Context, itemID id.ID) (*item.Item, error)

	// DecrementStock atomically subtracts quantity; returns false when
	// stock is insufficient.
	DecrementStock(ctx context.Context, itemID id.ID, quantity int) (bool, error)
}

// CustomerDirectory resolves customers for snapshotting.
type CustomerDirectory interface {
	GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error)
}

// Service provides business operations for bills.
type Service struct {
	repo      Repository
	inventory Inventory
	customers CustomerDirectory
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new bill service.
func NewService(
	repo Repository,
	inventory Inventory,
	customers CustomerDirectory,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		inventory: inventory,
		customers: customers,
		numerator: num,
		txManager: txManager,
	}
}

// Create persists a new bill: snapshot the customer, assign the invoice
// number, verify stock availability and save header plus lines in one
// transaction. Stock itself is not decremented here; that happens on the
// first invoice render (CommitStock).
func (s *Service) Create(ctx context.Context, doc *Bill) error {
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
			return fmt.Errorf("generate invoice number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkStock(ctx, doc); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create bill: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "bill created", "id", doc.ID, "number", doc.Number, "total", doc.TotalAmount)
	return nil
}

// snapshotCustomer copies the customer's current contact fields onto the
// bill. The snapshot never changes afterwards.
func (s *Service) snapshotCustomer(ctx context.Context, doc *Bill) error {
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

// ResolveLine builds a line from an item reference. Invoice lines always
// carry catalog pricing; there is no per-line price override on bills.
func (s *Service) ResolveLine(ctx context.Context, doc *Bill, itemID id.ID, quantity int) error {
	it, err := s.inventory.GetByID(ctx, itemID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("item", itemID.String())
		}
		return err
	}

	doc.AddLine(&it.ID, quantity, it.Price, it.TaxRate)
	return nil
}

// checkStock locks each referenced item and rejects the whole bill when
// any line exceeds the available quantity.
func (s *Service) checkStock(ctx context.Context, doc *Bill) error {
	for _, line := range doc.Lines {
		if line.ItemID == nil {
			continue
		}

		it, err := s.inventory.GetForUpdate(ctx, *line.ItemID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("item", line.ItemID.String())
			}
			return err
		}

		if !it.HasStock(line.Quantity) {
			return apperror.NewInsufficientStock(it.Name, line.Quantity, it.Stock)
		}
	}
	return nil
}

// GetByID retrieves a bill with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Bill, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("bill", docID.String())
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

// CommitStock decrements item stock for the bill's lines and flips the
// bill to committed. Runs on the first invoice render; repeated calls
// are no-ops, so a bill's quantities come out of stock exactly once.
//
// Lines whose item cannot cover the quantity anymore are skipped: the
// invoice was already issued to the customer, so rendering must not fail
// over a stock race.
func (s *Service) CommitStock(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("bill", docID.String())
			}
			return err
		}

		if doc.IsProcessed() {
			return nil
		}

		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}

		for _, line := range lines {
			if line.ItemID == nil {
				continue
			}

			applied, err := s.inventory.DecrementStock(ctx, *line.ItemID, line.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !applied {
				logger.Warn(ctx, "stock not decremented, insufficient quantity",
					"bill", doc.Number, "item_id", line.ItemID, "quantity", line.Quantity)
			}
		}

		doc.MarkCommitted()
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update bill: %w", err)
		}

		logger.Info(ctx, "bill stock committed", "id", doc.ID, "number", doc.Number)
		return nil
	})
}

// Delete removes a pending bill with its lines. Committed bills are
// immutable accounting records and cannot be deleted.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("bill", docID.String())
		}
		return err
	}

	if err := doc.CanDelete(); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, docID); err != nil {
			return fmt.Errorf("delete bill: %w", err)
		}
		return nil
	})
}

// List retrieves bills with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error) {
	return s.repo.List(ctx, filter)
}
