package item

import (
	"context"
	"fmt"
	"strings"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/core/tx"
	"billbook/internal/domain"
)

// HistoryRecorder records item audit trail entries.
// Implemented by the history service; kept as a local interface so the
// catalog does not depend on the history package.
type HistoryRecorder interface {
	RecordItemChange(ctx context.Context, itemID id.ID, action string, oldValues, newValues map[string]any) error
}

// Service provides business logic for the Item catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Item]
	repo      Repository
	txManager tx.Manager
	history   HistoryRecorder
}

// NewService creates a new Item service.
func NewService(repo Repository, txManager tx.Manager, history HistoryRecorder) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Item]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "item",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		txManager:      txManager,
		history:        history,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)

	return svc
}

// checkNameUnique rejects a second item with the same name.
func (s *Service) checkNameUnique(ctx context.Context, it *Item) error {
	existing, err := s.repo.FindByName(ctx, it.Name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != it.ID {
		return apperror.NewDuplicate("item", "name", it.Name)
	}
	return nil
}

// Update applies changes to an item and records the before/after field
// snapshot in the inventory history.
func (s *Service) Update(ctx context.Context, it *Item) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}

	if err := s.checkNameUnique(ctx, it); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, it.ID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("item", it.ID.String())
			}
			return err
		}

		oldValues := current.Snapshot()

		if err := s.repo.Update(ctx, it); err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		if err := s.history.RecordItemChange(ctx, it.ID, "edit", oldValues, it.Snapshot()); err != nil {
			return fmt.Errorf("record item history: %w", err)
		}

		return nil
	})
}

// Delete removes an item unless documents or history still reference it.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	if _, err := s.GetByID(ctx, itemID); err != nil {
		return err
	}

	refs, err := s.repo.CountReferences(ctx, itemID)
	if err != nil {
		return fmt.Errorf("count item references: %w", err)
	}

	if refs.Total() > 0 {
		return apperror.NewReferenced("item", itemID.String(), describeReferences(refs)).
			WithDetail("bill_lines", refs.BillLines).
			WithDetail("quotation_lines", refs.QuotationLines).
			WithDetail("history_entries", refs.HistoryEntries)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, itemID)
	})
}

// ForceDelete removes an item after detaching every dependent row:
// bill lines and quotation lines keep their snapshot data, history
// entries keep their payload, all with the item reference nulled.
func (s *Service) ForceDelete(ctx context.Context, itemID id.ID) error {
	if _, err := s.GetByID(ctx, itemID); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.ClearReferences(ctx, itemID); err != nil {
			return fmt.Errorf("clear item references: %w", err)
		}
		if err := s.repo.Delete(ctx, itemID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
}

// FindByName retrieves an item by exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*Item, error) {
	it, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("item", name)
		}
		return nil, err
	}
	return it, nil
}

func describeReferences(refs References) string {
	var parts []string
	if refs.BillLines > 0 {
		parts = append(parts, fmt.Sprintf("%d bill line(s)", refs.BillLines))
	}
	if refs.QuotationLines > 0 {
		parts = append(parts, fmt.Sprintf("%d quotation line(s)", refs.QuotationLines))
	}
	if refs.HistoryEntries > 0 {
		parts = append(parts, fmt.Sprintf("%d history record(s)", refs.HistoryEntries))
	}
	return strings.Join(parts, ", ")
}
