package entity

import (
	"gorm.io/gorm"
)

const (
	ItemSizeSmall  = "small"
	ItemSizeMedium = "medium"
	ItemSizeLarge  = "large"

	ItemStatusQueued        = "queued"
	ItemStatusInPreparation = "in_preparation"
	ItemStatusReady         = "ready"
	ItemStatusServed        = "served"
)

// OrderItem is one line of an order. No menu catalog — the name and price are
// free-form snapshots. The id stays stable for the item's lifetime; removal is
// always by id, never by position.
type OrderItem struct {
	gorm.Model
	MenuItemName string   `json:"menuItemName"`
	Size         string   `gorm:"not null;default:medium" json:"size"` // small | medium | large
	Quantity     int      `json:"quantity"`
	UnitPrice    float64  `json:"unitPrice"`
	Modifiers    []string `gorm:"serializer:json" json:"modifiers"`
	ItemStatus   string   `gorm:"not null;default:queued" json:"itemStatus"` // queued | in_preparation | ready | served

	OrderID uint        `gorm:"index" json:"orderId"`
	Order   CoffeeOrder `json:"-"`
}
