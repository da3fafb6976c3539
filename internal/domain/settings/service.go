package settings

import (
	"context"
	"fmt"
	"sync"

	"billbook/internal/core/apperror"
	"billbook/internal/core/tx"
	"billbook/pkg/logger"
)

// Repository defines operations for the settings row.
type Repository interface {
	// Get returns the singleton row; apperror.NotFound when unset.
	Get(ctx context.Context) (*Settings, error)

	// Upsert creates or replaces the singleton row.
	Upsert(ctx context.Context, s *Settings) error
}

// Service serves the company profile with an in-memory cache.
// The profile is read on every PDF render and export, so it is cached
// and invalidated on update instead of hitting the database each time.
type Service struct {
	repo      Repository
	txManager tx.Manager

	mu     sync.RWMutex
	cached *Settings
}

// NewService creates a new settings service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Get returns the company profile, an empty default when never saved.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	s.mu.RLock()
	if s.cached != nil {
		cached := *s.cached
		s.mu.RUnlock()
		return &cached, nil
	}
	s.mu.RUnlock()

	current, err := s.repo.Get(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}

	s.mu.Lock()
	s.cached = current
	s.mu.Unlock()

	copied := *current
	return &copied, nil
}

// Update replaces the company profile and invalidates the cache.
func (s *Service) Update(ctx context.Context, updated *Settings) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.Get(ctx)
		switch {
		case err == nil:
			updated.ID = current.ID
		case apperror.IsNotFound(err):
			// First save creates the row.
		default:
			return fmt.Errorf("load settings: %w", err)
		}

		if err := s.repo.Upsert(ctx, updated); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	logger.Info(ctx, "settings updated", "company", updated.CompanyName)
	return nil
}
