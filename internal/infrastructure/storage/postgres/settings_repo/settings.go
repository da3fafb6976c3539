// Package settings_repo provides the PostgreSQL implementation of the
// company settings repository.
package settings_repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"billbook/internal/core/apperror"
	"billbook/internal/domain/settings"
	"billbook/internal/infrastructure/storage/postgres"
)

// SettingsRepo implements settings.Repository.
// The settings table holds at most one row.
type SettingsRepo struct {
	txManager *postgres.TxManager
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txManager *postgres.TxManager) *SettingsRepo {
	return &SettingsRepo{txManager: txManager}
}

var _ settings.Repository = (*SettingsRepo)(nil)

// Get returns the singleton row.
func (r *SettingsRepo) Get(ctx context.Context) (*settings.Settings, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `
		SELECT id, company_name, address, phone, email, gstin, website,
		       bank_name, bank_account_number, ifsc_code
		FROM settings
		LIMIT 1
	`

	var s settings.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.CompanyName, &s.Address, &s.Phone, &s.Email,
		&s.GSTIN, &s.Website, &s.BankName, &s.BankAccountNumber, &s.IFSCCode,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("settings", "singleton")
	}
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}

	return &s, nil
}

// Upsert creates or replaces the singleton row.
func (r *SettingsRepo) Upsert(ctx context.Context, s *settings.Settings) error {
	q := r.txManager.GetQuerier(ctx)

	query := `
		INSERT INTO settings (
			id, company_name, address, phone, email, gstin, website,
			bank_name, bank_account_number, ifsc_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			gstin = EXCLUDED.gstin,
			website = EXCLUDED.website,
			bank_name = EXCLUDED.bank_name,
			bank_account_number = EXCLUDED.bank_account_number,
			ifsc_code = EXCLUDED.ifsc_code
	`

	_, err := q.Exec(ctx, query,
		s.ID, s.CompanyName, s.Address, s.Phone, s.Email,
		s.GSTIN, s.Website, s.BankName, s.BankAccountNumber, s.IFSCCode,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	return nil
}
