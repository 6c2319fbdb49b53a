package entity

import (
	"gorm.io/gorm"
)

const (
	ShopStatusOpen        = "open"
	ShopStatusClosed      = "closed"
	ShopStatusMaintenance = "maintenance"
)

type CoffeeShop struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `gorm:"not null;default:open;index" json:"status"` // open | closed | maintenance
	City        string `json:"city"`
	Address     string `json:"address"`

	MenuCategories []string `gorm:"serializer:json" json:"menuCategories"`
	Tags           []string `gorm:"serializer:json" json:"tags"`

	Archived bool `gorm:"index" json:"archived"`

	OwnerID uint `gorm:"index" json:"ownerId"`
	Owner   User `json:"-"`

	Staff []ShopStaff `gorm:"foreignKey:ShopID" json:"staff"`

	Orders []CoffeeOrder `gorm:"foreignKey:ShopID" json:"-"`
}
