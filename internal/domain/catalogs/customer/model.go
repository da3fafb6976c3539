// Package customer provides the Customer catalog: billing parties with
// contact details and GST registration.
package customer

import (
	"context"
	"strings"

	"billbook/internal/core/apperror"
	"billbook/internal/core/entity"
)

// Customer represents a billing party.
type Customer struct {
	entity.Catalog

	// Phone contact number
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email address
	Email *string `db:"email" json:"email,omitempty"`

	// Address is the postal address printed on documents
	Address *string `db:"address" json:"address,omitempty"`

	// GSTIN is the customer's GST identification number
	GSTIN *string `db:"gstin" json:"gstin,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(name),
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != nil && *c.Email != "" && !strings.Contains(*c.Email, "@") {
		return apperror.NewValidation("invalid email address").
			WithDetail("field", "email").
			WithDetail("value", *c.Email)
	}

	// GSTIN is 15 characters when present
	if c.GSTIN != nil && *c.GSTIN != "" && len(*c.GSTIN) != 15 {
		return apperror.NewValidation("GSTIN must be 15 characters").
			WithDetail("field", "gstin").
			WithDetail("value", *c.GSTIN)
	}

	return nil
}
