package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName string `json:"fullName"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Role     string `gorm:"not null;default:user" json:"role"` // admin | user

	// Relations — preload only when needed
	ShopsOwned []CoffeeShop  `gorm:"foreignKey:OwnerID" json:"-"`
	Orders     []CoffeeOrder `gorm:"foreignKey:CreatedByID" json:"-"`
}
