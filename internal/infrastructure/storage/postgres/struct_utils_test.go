package postgres

import (
	"testing"
	"time"

	"billbook/internal/core/entity"
	"billbook/internal/core/types"

	"github.com/stretchr/testify/assert"
)

type MockCatalog struct {
	entity.Catalog
	Price types.Money `db:"price" json:"price"`
	Stock int         `db:"stock" json:"stock"`
	Notes string      `db:"-" json:"notes"`
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{
		"id", "version", "name", "created_at", "price", "stock",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	now := time.Now().UTC()
	cat := MockCatalog{
		Catalog: entity.Catalog{
			BaseEntity: entity.NewBaseEntity(),
			Name:       "Steel Pipe",
			CreatedAt:  now,
		},
		Price: types.NewMoney(149.50),
		Stock: 12,
		Notes: "not persisted",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 1, m["version"])
	assert.Equal(t, "Steel Pipe", m["name"])
	assert.Equal(t, now, m["created_at"])
	assert.True(t, cat.Price.Equal(m["price"].(types.Money)))
	assert.Equal(t, 12, m["stock"])

	_, hasNotes := m["notes"]
	assert.False(t, hasNotes)
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &MockCatalog{
		Catalog: entity.NewCatalog("Copper Wire"),
		Stock:   3,
	}

	m := StructToMap(cat)

	assert.Equal(t, "Copper Wire", m["name"])
	assert.Equal(t, 3, m["stock"])
}
