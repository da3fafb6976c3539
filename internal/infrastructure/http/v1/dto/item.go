package dto

import (
	"time"

	"billbook/internal/core/types"
	"billbook/internal/domain/catalogs/item"
)

// --- Request DTOs ---

// CreateItemRequest is the request body for creating an item.
type CreateItemRequest struct {
	Name         string       `json:"name" binding:"required"`
	Description  *string      `json:"description"`
	Price        types.Money  `json:"price" binding:"required"`
	Stock        int          `json:"stock" binding:"min=0"`
	HSNSACNumber *string      `json:"hsnSacNumber"`
	TaxRate      *types.Money `json:"taxRate"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateItemRequest) ToEntity() *item.Item {
	it := item.NewItem(r.Name, r.Price)
	it.Description = r.Description
	it.Stock = r.Stock
	it.HSNSACNumber = r.HSNSACNumber
	if r.TaxRate != nil {
		it.TaxRate = *r.TaxRate
	}
	return it
}

// UpdateItemRequest is the request body for updating an item.
type UpdateItemRequest struct {
	Name         string       `json:"name" binding:"required"`
	Description  *string      `json:"description"`
	Price        types.Money  `json:"price" binding:"required"`
	Stock        int          `json:"stock" binding:"min=0"`
	HSNSACNumber *string      `json:"hsnSacNumber"`
	TaxRate      *types.Money `json:"taxRate"`
	Version      int          `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateItemRequest) ApplyTo(it *item.Item) {
	it.Name = r.Name
	it.Description = r.Description
	it.Price = r.Price
	it.Stock = r.Stock
	it.HSNSACNumber = r.HSNSACNumber
	if r.TaxRate != nil {
		it.TaxRate = *r.TaxRate
	}
	it.Version = r.Version
}

// --- Response DTOs ---

// ItemResponse is the response body for an item.
type ItemResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  *string     `json:"description,omitempty"`
	Price        types.Money `json:"price"`
	Stock        int         `json:"stock"`
	HSNSACNumber *string     `json:"hsnSacNumber,omitempty"`
	TaxRate      types.Money `json:"taxRate"`
	Version      int         `json:"version"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// FromItem creates response DTO from domain entity.
func FromItem(it *item.Item) *ItemResponse {
	return &ItemResponse{
		ID:           it.ID.String(),
		Name:         it.Name,
		Description:  it.Description,
		Price:        it.Price,
		Stock:        it.Stock,
		HSNSACNumber: it.HSNSACNumber,
		TaxRate:      it.TaxRate,
		Version:      it.Version,
		CreatedAt:    it.CreatedAt,
	}
}
