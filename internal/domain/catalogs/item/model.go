// Package item provides the Item catalog: goods available for sale,
// with pricing, GST rate and on-hand stock.
package item

import (
	"context"

	"billbook/internal/core/apperror"
	"billbook/internal/core/entity"
	"billbook/internal/core/types"
)

// Item represents a sellable product or service.
type Item struct {
	entity.Catalog

	// Description is shown on printed documents below the item name
	Description *string `db:"description" json:"description,omitempty"`

	// Price is the unit price before tax
	Price types.Money `db:"price" json:"price"`

	// Stock is the quantity currently on hand
	Stock int `db:"stock" json:"stock"`

	// HSNSACNumber is the HSN/SAC classification code for GST
	HSNSACNumber *string `db:"hsn_sac_number" json:"hsnSacNumber,omitempty"`

	// TaxRate is the GST percentage applied to this item (e.g. 18)
	TaxRate types.Money `db:"tax_rate" json:"taxRate"`
}

// NewItem creates a new Item with required fields.
func NewItem(name string, price types.Money) *Item {
	return &Item{
		Catalog: entity.NewCatalog(name),
		Price:   price,
		TaxRate: types.Zero(),
	}
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}

	if i.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	if i.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}

	if i.TaxRate.IsNegative() || i.TaxRate.GreaterThan(types.MustMoney("100")) {
		return apperror.NewValidation("tax rate must be between 0 and 100").
			WithDetail("field", "taxRate").
			WithDetail("value", i.TaxRate.String())
	}

	return nil
}

// Snapshot returns the audited field set as stored in inventory history.
func (i *Item) Snapshot() map[string]any {
	var description, hsn string
	if i.Description != nil {
		description = *i.Description
	}
	if i.HSNSACNumber != nil {
		hsn = *i.HSNSACNumber
	}

	return map[string]any{
		"name":           i.Name,
		"description":    description,
		"price":          i.Price,
		"stock":          i.Stock,
		"hsn_sac_number": hsn,
		"tax_rate":       i.TaxRate,
	}
}

// HasStock reports whether quantity units can be supplied from stock.
func (i *Item) HasStock(quantity int) bool {
	return i.Stock >= quantity
}
