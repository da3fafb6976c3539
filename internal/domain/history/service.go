package history

import (
	"context"
	"fmt"

	appctx "billbook/internal/core/context"
	"billbook/internal/core/id"
	"billbook/internal/core/tx"
	"billbook/internal/domain"
	"billbook/pkg/logger"
)

// Service provides the inventory audit ledger.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new history service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// RecordItemChange appends an audit entry for an item change.
// The acting user is attributed from the request context when present.
// Satisfies item.HistoryRecorder.
func (s *Service) RecordItemChange(ctx context.Context, itemID id.ID, action string, oldValues, newValues map[string]any) error {
	entry := NewEntry(itemID, action, oldValues, newValues)

	if user := appctx.GetUser(ctx); user != nil && user.UserID != "" {
		if uid, err := id.Parse(user.UserID); err == nil {
			entry.UserID = &uid
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("record history entry: %w", err)
	}
	return nil
}

// List retrieves history entries, newest first by default.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Entry], error) {
	if filter.OrderBy == "" || filter.OrderBy == "name" {
		filter.OrderBy = "-created_at"
	}
	return s.repo.List(ctx, filter)
}

// Reset wipes the entire ledger. Admin-only; the caller enforces the
// permission check.
func (s *Service) Reset(ctx context.Context) (int64, error) {
	var removed int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		n, err := s.repo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("reset history: %w", err)
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Warn(ctx, "inventory history reset", "removed", removed)
	return removed, nil
}
