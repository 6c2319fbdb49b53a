package entity

import (
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusServed    = "served"
	OrderStatusCancelled = "cancelled"

	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"

	OrderTypeDineIn   = "dine_in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeDelivery = "delivery"
)

// CoffeeOrder is the order aggregate: header + embedded items/notes + derived totals.
// Subtotal and TotalAmount are never written by callers directly; every mutation
// path recomputes them from the item list before the row is saved.
type CoffeeOrder struct {
	gorm.Model
	CustomerName  string `json:"customerName"`
	Status        string `gorm:"not null;default:pending;index" json:"status"`       // pending | preparing | served | cancelled
	PaymentStatus string `gorm:"not null;default:unpaid;index" json:"paymentStatus"` // unpaid | paid | refunded
	OrderType     string `gorm:"not null;default:takeaway" json:"orderType"`         // dine_in | takeaway | delivery
	TableNumber   string `json:"tableNumber"` // only meaningful for dine_in

	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	TotalAmount    float64 `gorm:"index" json:"totalAmount"`
	Currency       string  `gorm:"not null;default:USD" json:"currency"`

	ShopID uint       `gorm:"index" json:"shopId"`
	Shop   CoffeeShop `json:"-"`

	// Cashier is the staff member credited with the sale; CreatedBy is whoever
	// opened the order. They can differ when an admin assigns a cashier.
	CashierID uint `gorm:"index" json:"cashierId"`
	Cashier   User `json:"-"`

	CreatedByID uint `gorm:"index" json:"createdById"`
	CreatedBy   User `json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Notes []OrderNote `gorm:"foreignKey:OrderID" json:"notes"`
}
