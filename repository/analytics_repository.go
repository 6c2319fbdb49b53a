package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// ---------------- Shop sales summary facets ----------------

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (r *AnalyticsRepository) StatusBreakdown(shopID uint) ([]StatusCount, error) {
	var out []StatusCount
	err := r.DB.Model(&entity.CoffeeOrder{}).
		Select("status, COUNT(*) AS count").
		Where("shop_id = ?", shopID).
		Group("status").
		Order("count DESC").
		Scan(&out).Error
	return out, err
}

func (r *AnalyticsRepository) PaymentBreakdown(shopID uint) ([]StatusCount, error) {
	var out []StatusCount
	err := r.DB.Model(&entity.CoffeeOrder{}).
		Select("payment_status AS status, COUNT(*) AS count").
		Where("shop_id = ?", shopID).
		Group("payment_status").
		Order("count DESC").
		Scan(&out).Error
	return out, err
}

type RevenueRow struct {
	TotalOrders       int64
	TotalRevenue      float64
	AverageTicketSize float64
	PaidRevenue       float64
}

func (r *AnalyticsRepository) RevenueMetrics(shopID uint) (*RevenueRow, error) {
	var row RevenueRow
	err := r.DB.Model(&entity.CoffeeOrder{}).
		Select(`COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COALESCE(AVG(total_amount), 0) AS average_ticket_size,
			COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN total_amount ELSE 0 END), 0) AS paid_revenue`).
		Where("shop_id = ?", shopID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

type ProductStat struct {
	MenuItemName  string  `json:"menuItemName"`
	TotalQuantity int64   `json:"totalQuantity"`
	TotalSales    float64 `json:"totalSales"`
}

func (r *AnalyticsRepository) TopProducts(shopID uint, limit int) ([]ProductStat, error) {
	var out []ProductStat
	err := r.DB.Table("order_items AS oi").
		Select("oi.menu_item_name, SUM(oi.quantity) AS total_quantity, SUM(oi.quantity * oi.unit_price) AS total_sales").
		Joins("JOIN coffee_orders o ON o.id = oi.order_id").
		Where("o.shop_id = ? AND o.deleted_at IS NULL AND oi.deleted_at IS NULL", shopID).
		Group("oi.menu_item_name").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

type HourCount struct {
	Hour       int   `json:"hour"`
	OrderCount int64 `json:"orderCount"`
}

func (r *AnalyticsRepository) HourlyDemand(shopID uint) ([]HourCount, error) {
	var out []HourCount
	err := r.DB.Model(&entity.CoffeeOrder{}).
		Select("CAST(strftime('%H', created_at) AS INTEGER) AS hour, COUNT(*) AS order_count").
		Where("shop_id = ?", shopID).
		Group("hour").
		Order("hour ASC").
		Scan(&out).Error
	return out, err
}

// ---------------- Staff performance ----------------

type CashierStatusRow struct {
	CashierID    uint
	Status       string
	OrderCount   int64
	TotalRevenue float64
}

// CashierStatusStats groups orders of the given shops by (cashier, status).
func (r *AnalyticsRepository) CashierStatusStats(shopIDs []uint) ([]CashierStatusRow, error) {
	if len(shopIDs) == 0 {
		return nil, nil
	}
	var out []CashierStatusRow
	err := r.DB.Model(&entity.CoffeeOrder{}).
		Select("cashier_id, status, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS total_revenue").
		Where("shop_id IN ?", shopIDs).
		Group("cashier_id, status").
		Scan(&out).Error
	return out, err
}

func (r *AnalyticsRepository) UsersByIDs(ids []uint) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []entity.User
	err := r.DB.Select("id, full_name, email").Where("id IN ?", ids).Find(&users).Error
	return users, err
}
