package entity

import (
	"context"
	"time"

	"billbook/internal/core/apperror"
)

// Catalog is the base type for reference data (items, customers).
type Catalog struct {
	BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`

	// CreatedAt records when the entry was added
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
