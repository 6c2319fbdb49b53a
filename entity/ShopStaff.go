package entity

import (
	"gorm.io/gorm"
)

// ShopStaff is one membership row per (shop, user). Duplicate membership is a conflict.
type ShopStaff struct {
	gorm.Model
	ShopID uint   `gorm:"index:idx_shop_user,unique" json:"shopId"`
	UserID uint   `gorm:"index:idx_shop_user,unique" json:"userId"`
	Role   string `gorm:"not null;default:barista" json:"role"` // owner | manager | barista | cashier

	User User `json:"-"`
}
