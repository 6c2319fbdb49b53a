package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// OrderService owns the order aggregate lifecycle. Every mutation path ends in
// saveTotals, which recomputes derived financials from a fresh read of the
// item list — callers can never persist totals computed before the list's
// latest change.
type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	ShopRepo *repository.ShopRepository
	Audit    *AuditLogger
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, shopRepo *repository.ShopRepository, audit *AuditLogger) *OrderService {
	return &OrderService{DB: db, Repo: repo, ShopRepo: shopRepo, Audit: audit}
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	MenuItemName string   `json:"menuItemName" binding:"required,min=2,max=120"`
	Size         string   `json:"size" binding:"omitempty,oneof=small medium large"`
	Quantity     int      `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice    float64  `json:"unitPrice" binding:"gte=0"`
	Modifiers    []string `json:"modifiers"`
	ItemStatus   string   `json:"itemStatus" binding:"omitempty,oneof=queued in_preparation ready served"`
}

type CreateOrderReq struct {
	ShopID         uint          `json:"shop" binding:"required"`
	CustomerName   string        `json:"customerName" binding:"required,min=2,max=120"`
	CashierID      uint          `json:"cashier"`
	Status         string        `json:"status" binding:"omitempty,oneof=pending preparing served cancelled"`
	PaymentStatus  string        `json:"paymentStatus" binding:"omitempty,oneof=unpaid paid refunded"`
	OrderType      string        `json:"orderType" binding:"omitempty,oneof=dine_in takeaway delivery"`
	TableNumber    string        `json:"tableNumber" binding:"max=20"`
	Items          []OrderItemIn `json:"items" binding:"omitempty,dive"`
	DiscountAmount float64       `json:"discountAmount" binding:"gte=0"`
	TaxAmount      float64       `json:"taxAmount" binding:"gte=0"`
	Currency       string        `json:"currency" binding:"omitempty,min=3,max=10"`
}

type UpdateOrderReq struct {
	CustomerName   *string  `json:"customerName" binding:"omitempty,min=2,max=120"`
	CashierID      *uint    `json:"cashier"`
	Status         *string  `json:"status" binding:"omitempty,oneof=pending preparing served cancelled"`
	PaymentStatus  *string  `json:"paymentStatus" binding:"omitempty,oneof=unpaid paid refunded"`
	OrderType      *string  `json:"orderType" binding:"omitempty,oneof=dine_in takeaway delivery"`
	TableNumber    *string  `json:"tableNumber" binding:"omitempty,max=20"`
	DiscountAmount *float64 `json:"discountAmount" binding:"omitempty,gte=0"`
	TaxAmount      *float64 `json:"taxAmount" binding:"omitempty,gte=0"`
	Currency       *string  `json:"currency" binding:"omitempty,min=3,max=10"`
}

type OrderListQuery struct {
	Page          int
	Limit         int
	ShopID        uint
	Status        string
	PaymentStatus string
	CashierID     uint
	Search        string
	SortBy        string
	SortOrder     string // asc | desc, default desc
}

type OrderListOut struct {
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	Total      int64                `json:"total"`
	TotalPages int64                `json:"totalPages"`
	Items      []entity.CoffeeOrder `json:"items"`
}

// ----- shop orderability -----

// ensureOrderableShop resolves the shop and applies CanOrderFromShop,
// keeping the self-order rejection distinguishable for the caller.
func (s *OrderService) ensureOrderableShop(actor *entity.User, shopID uint) (*entity.CoffeeShop, error) {
	shop, err := s.ShopRepo.FindByID(shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if shop.Archived {
		return nil, ErrShopNotFound
	}
	if actor.Role != RoleAdmin && shop.OwnerID == actor.ID {
		return nil, ErrSelfOrder
	}
	if !CanOrderFromShop(actor, shop) {
		return nil, ErrNotOrderable
	}
	return shop, nil
}

// ----- Create -----

func (s *OrderService) Create(actor *entity.User, req *CreateOrderReq) (*entity.CoffeeOrder, error) {
	if _, err := s.ensureOrderableShop(actor, req.ShopID); err != nil {
		return nil, err
	}

	// Only admins may credit the sale to someone else.
	cashierID := actor.ID
	if actor.Role == RoleAdmin && req.CashierID != 0 {
		cashierID = req.CashierID
	}

	order := &entity.CoffeeOrder{
		ShopID:         req.ShopID,
		CustomerName:   req.CustomerName,
		CashierID:      cashierID,
		CreatedByID:    actor.ID,
		Status:         defaultStr(req.Status, entity.OrderStatusPending),
		PaymentStatus:  defaultStr(req.PaymentStatus, entity.PaymentUnpaid),
		OrderType:      defaultStr(req.OrderType, entity.OrderTypeTakeaway),
		TableNumber:    req.TableNumber,
		DiscountAmount: req.DiscountAmount,
		TaxAmount:      req.TaxAmount,
		Currency:       defaultStr(req.Currency, "USD"),
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, newOrderItem(in))
	}
	CalculateTotals(order, items)
	order.Items = items

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "create_order", "order", order.ID, map[string]any{
		"shopId": order.ShopID, "cashier": order.CashierID,
	})
	return s.Repo.FindByID(order.ID)
}

// ----- List & Detail -----

func (s *OrderService) List(actor *entity.User, q OrderListQuery) (*OrderListOut, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	filter := repository.OrderListFilter{
		ShopID:        q.ShopID,
		Status:        q.Status,
		PaymentStatus: q.PaymentStatus,
		CashierID:     q.CashierID,
		Search:        q.Search,
	}
	// Non-admins only ever see orders they created.
	if actor.Role != RoleAdmin {
		filter.CreatedByID = actor.ID
	}
	if q.ShopID != 0 {
		if _, err := s.ensureOrderableShop(actor, q.ShopID); err != nil {
			return nil, err
		}
	}

	sortDir := "DESC"
	if q.SortOrder == "asc" {
		sortDir = "ASC"
	}

	items, total, err := s.Repo.List(filter, q.SortBy, sortDir, page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOut{Page: page, Limit: limit, Total: total, TotalPages: totalPages(total, limit), Items: items}, nil
}

func (s *OrderService) Get(actor *entity.User, id uint) (*entity.CoffeeOrder, error) {
	order, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !CanAccessOrder(actor, order) {
		return nil, ErrForbidden
	}
	return order, nil
}

// ----- Update -----

func (s *OrderService) Update(actor *entity.User, id uint, req *UpdateOrderReq) (*entity.CoffeeOrder, error) {
	order, err := s.loadForMutation(actor, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.CashierID != nil {
		order.CashierID = *req.CashierID
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		order.PaymentStatus = *req.PaymentStatus
	}
	if req.OrderType != nil {
		order.OrderType = *req.OrderType
	}
	if req.TableNumber != nil {
		order.TableNumber = *req.TableNumber
	}
	if req.DiscountAmount != nil {
		order.DiscountAmount = *req.DiscountAmount
	}
	if req.TaxAmount != nil {
		order.TaxAmount = *req.TaxAmount
	}
	if req.Currency != nil {
		order.Currency = *req.Currency
	}

	// Recompute even for non-financial edits, in case a concurrent item
	// mutation landed since this header was read.
	items, err := s.Repo.GetItems(order.ID)
	if err != nil {
		return nil, err
	}
	CalculateTotals(order, items)

	if err := s.Repo.SaveHeader(order); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "update_order", "order", order.ID, map[string]any{"orderId": order.ID})
	return s.Repo.FindByID(order.ID)
}

// ----- Delete -----

// Delete is a hard delete of the whole aggregate. There is no recovery path.
func (s *OrderService) Delete(actor *entity.User, id uint) error {
	order, err := s.loadForMutation(actor, id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteHard(order.ID); err != nil {
		return err
	}

	s.Audit.Record(actor.ID, "delete_order", "order", order.ID, map[string]any{})
	return nil
}

// ----- shared internals -----

// loadForMutation reads the order header and applies the access policy. Used
// by every operation that goes on to mutate the aggregate.
func (s *OrderService) loadForMutation(actor *entity.User, id uint) (*entity.CoffeeOrder, error) {
	order, err := s.Repo.FindHeader(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !CanAccessOrder(actor, order) {
		return nil, ErrForbidden
	}
	return order, nil
}

// saveTotals is the single recompute-and-persist path: re-read the item list,
// recompute, write the two derived columns. Two concurrent item mutations race
// on this write and the later recompute wins; the item rows themselves are
// only ever touched by targeted per-id statements, so siblings never clobber
// each other (see DESIGN.md on the accepted totals race).
func (s *OrderService) saveTotals(order *entity.CoffeeOrder) error {
	items, err := s.Repo.GetItems(order.ID)
	if err != nil {
		return err
	}
	CalculateTotals(order, items)
	return s.Repo.SaveTotals(order.ID, order.Subtotal, order.TotalAmount)
}

func newOrderItem(in OrderItemIn) entity.OrderItem {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	return entity.OrderItem{
		MenuItemName: in.MenuItemName,
		Size:         defaultStr(in.Size, entity.ItemSizeMedium),
		Quantity:     qty,
		UnitPrice:    in.UnitPrice,
		Modifiers:    in.Modifiers,
		ItemStatus:   defaultStr(in.ItemStatus, entity.ItemStatusQueued),
	}
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
