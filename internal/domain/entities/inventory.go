package entities

import (
	"time"

	"github.com/google/uuid"
)

// InventoryPart represents a stocked part
type InventoryPart struct {
	ID           uuid.UUID  `json:"id"`
	SKU          string     `json:"sku"`
	Name         string     `json:"name"`
	Quantity     int        `json:"quantity"`
	UnitPrice    float64    `json:"unitPrice"`
	ReorderLevel int        `json:"reorderLevel"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}

// LowStock reports whether the part is at or below its reorder level
func (p *InventoryPart) LowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// CreatePartInput represents input for adding a part
type CreatePartInput struct {
	SKU          string  `json:"sku" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Quantity     int     `json:"quantity" binding:"min=0"`
	UnitPrice    float64 `json:"unitPrice" binding:"min=0"`
	ReorderLevel int     `json:"reorderLevel" binding:"min=0"`
}

// AdjustStockInput represents a stock movement (positive receive, negative consume)
type AdjustStockInput struct {
	Delta int `json:"delta" binding:"required"`
}
