package models

import "strings"

// InventoryItem tracks a stocked ingredient or supply.
//
// MinimumStock is the reorder threshold: at or below it the item counts as
// low stock, and at or below zero as out of stock.
type InventoryItem struct {
	BaseModel

	Name         string  `gorm:"type:varchar(120);not null;index" json:"name"`
	Category     string  `gorm:"type:varchar(64);index" json:"category"`
	CurrentStock float64 `gorm:"not null;default:0" json:"current_stock"`
	Unit         string  `gorm:"type:varchar(32)" json:"unit"`
	MinimumStock float64 `gorm:"not null;default:0" json:"minimum_stock"`
	Supplier     string  `gorm:"type:varchar(120)" json:"supplier,omitempty"`

	IsAlcohol     bool     `gorm:"default:false" json:"is_alcohol"`
	AlcoholType   *string  `gorm:"type:varchar(64)" json:"alcohol_type,omitempty"`
	AlcoholVolume *float64 `json:"alcohol_volume,omitempty"`
}

// Normalise trims free-text fields before persistence.
func (i *InventoryItem) Normalise() {
	i.Name = strings.TrimSpace(i.Name)
	i.Category = strings.TrimSpace(i.Category)
	i.Supplier = strings.TrimSpace(i.Supplier)
}

// OutOfStock reports whether the item has no stock left.
func (i *InventoryItem) OutOfStock() bool {
	return i.CurrentStock <= 0
}

// LowStock reports whether the item is at or below its reorder threshold but
// not yet out of stock.
func (i *InventoryItem) LowStock() bool {
	return !i.OutOfStock() && i.CurrentStock <= i.MinimumStock
}
