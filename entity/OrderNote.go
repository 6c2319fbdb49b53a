package entity

import (
	"gorm.io/gorm"
)

type OrderNote struct {
	gorm.Model
	Text string `json:"text"`

	AuthorID uint `gorm:"index" json:"authorId"`
	Author   User `json:"-"`

	OrderID uint        `gorm:"index" json:"orderId"`
	Order   CoffeeOrder `json:"-"`
}
