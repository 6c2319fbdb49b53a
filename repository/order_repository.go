package repository

import (
	"backend/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders (aggregate CRUD) ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.CoffeeOrder) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) FindByID(id uint) (*entity.CoffeeOrder, error) {
	var o entity.CoffeeOrder
	if err := r.DB.Preload("Items").Preload("Notes").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// FindHeader loads the order row without embedded collections.
func (r *OrderRepository) FindHeader(id uint) (*entity.CoffeeOrder, error) {
	var o entity.CoffeeOrder
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) SaveHeader(o *entity.CoffeeOrder) error {
	return r.DB.Omit(clause.Associations).Save(o).Error
}

// DeleteHard removes the order with its items and notes. No recovery path.
func (r *OrderRepository) DeleteHard(orderID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("order_id = ?", orderID).Delete(&entity.OrderNote{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&entity.CoffeeOrder{}, orderID).Error
	})
}

// ---------------- Listing ----------------

type OrderListFilter struct {
	CreatedByID   uint // 0 = no creator scoping (admin)
	ShopID        uint
	Status        string
	PaymentStatus string
	CashierID     uint
	Search        string
}

// sortColumns whitelists caller-specified sort keys.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"totalAmount":   "total_amount",
	"subtotal":      "subtotal",
	"status":        "status",
	"paymentStatus": "payment_status",
	"customerName":  "customer_name",
}

func SortColumn(key string) string {
	if col, ok := sortColumns[key]; ok {
		return col
	}
	return "created_at"
}

func (r *OrderRepository) buildListQuery(f OrderListFilter) *gorm.DB {
	q := r.DB.Model(&entity.CoffeeOrder{})
	if f.CreatedByID != 0 {
		q = q.Where("created_by_id = ?", f.CreatedByID)
	}
	if f.ShopID != 0 {
		q = q.Where("shop_id = ?", f.ShopID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.CashierID != 0 {
		q = q.Where("cashier_id = ?", f.CashierID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"(customer_name LIKE ? OR EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = coffee_orders.id AND oi.deleted_at IS NULL AND oi.menu_item_name LIKE ?))",
			like, like,
		)
	}
	return q
}

// List returns one page plus the total count from the same filter.
func (r *OrderRepository) List(f OrderListFilter, sortBy, sortDir string, page, limit int) ([]entity.CoffeeOrder, int64, error) {
	var total int64
	if err := r.buildListQuery(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := SortColumn(sortBy) + " " + sortDir
	var orders []entity.CoffeeOrder
	err := r.buildListQuery(f).
		Preload("Items").
		Order(order).
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

// ---------------- Totals ----------------

// GetItems reads the current item list straight from storage. Callers recompute
// totals from this fresh read, never from an in-memory copy.
func (r *OrderRepository) GetItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}

func (r *OrderRepository) SaveTotals(orderID uint, subtotal, total float64) error {
	return r.DB.Model(&entity.CoffeeOrder{}).
		Where("id = ?", orderID).
		Updates(map[string]any{"subtotal": subtotal, "total_amount": total}).Error
}

// ---------------- Targeted item mutations ----------------

func (r *OrderRepository) AppendItem(item *entity.OrderItem) error {
	return r.DB.Create(item).Error
}

func (r *OrderRepository) GetItem(orderID, itemID uint) (*entity.OrderItem, error) {
	var item entity.OrderItem
	if err := r.DB.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// IncItemQuantity applies a relative quantity change to one item by id,
// without rewriting the rest of the list.
func (r *OrderRepository) IncItemQuantity(orderID, itemID uint, delta int) (bool, error) {
	res := r.DB.Model(&entity.OrderItem{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *OrderRepository) SetItemStatus(orderID, itemID uint, status string) (bool, error) {
	res := r.DB.Model(&entity.OrderItem{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Update("item_status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RemoveItem deletes by id; removing an absent item is a no-op.
func (r *OrderRepository) RemoveItem(orderID, itemID uint) error {
	return r.DB.Unscoped().
		Where("id = ? AND order_id = ?", itemID, orderID).
		Delete(&entity.OrderItem{}).Error
}

// ---------------- Notes ----------------

func (r *OrderRepository) AppendNote(note *entity.OrderNote) error {
	return r.DB.Create(note).Error
}

func (r *OrderRepository) RemoveNote(orderID, noteID uint) error {
	return r.DB.Unscoped().
		Where("id = ? AND order_id = ?", noteID, orderID).
		Delete(&entity.OrderNote{}).Error
}
