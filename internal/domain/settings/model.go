// Package settings provides the company profile singleton: seller
// details and bank information printed on invoices and quotations.
package settings

import (
	"billbook/internal/core/id"
)

// Settings is the single company profile row.
type Settings struct {
	ID id.ID `db:"id" json:"id"`

	CompanyName string `db:"company_name" json:"companyName"`
	Address     string `db:"address" json:"address"`
	Phone       string `db:"phone" json:"phone"`
	Email       string `db:"email" json:"email"`
	GSTIN       string `db:"gstin" json:"gstin"`
	Website     string `db:"website" json:"website"`

	// Bank details for the payment block on invoices
	BankName          string `db:"bank_name" json:"bankName"`
	BankAccountNumber string `db:"bank_account_number" json:"bankAccountNumber"`
	IFSCCode          string `db:"ifsc_code" json:"ifscCode"`
}

// Default returns an empty profile used until settings are saved.
func Default() *Settings {
	return &Settings{ID: id.New()}
}
