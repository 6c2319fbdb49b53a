package services

import (
	"testing"

	"backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	t.Run("DefaultsAndTotals", func(t *testing.T) {
		order, err := env.Orders.Create(customer, &CreateOrderReq{
			ShopID:       shop.ID,
			CustomerName: "Walk-in",
			TaxAmount:    0.70,
			Items: []OrderItemIn{
				{MenuItemName: "Cappuccino", Quantity: 1, UnitPrice: 4.50},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, entity.OrderStatusPending, order.Status)
		assert.Equal(t, entity.PaymentUnpaid, order.PaymentStatus)
		assert.Equal(t, entity.OrderTypeTakeaway, order.OrderType)
		assert.Equal(t, "USD", order.Currency)
		assert.Equal(t, customer.ID, order.CreatedByID)
		assert.Equal(t, customer.ID, order.CashierID, "non-admin is always own cashier")
		assert.Equal(t, 4.50, order.Subtotal)
		assert.Equal(t, 5.20, order.TotalAmount)
		require.Len(t, order.Items, 1)
		assert.Equal(t, entity.ItemStatusQueued, order.Items[0].ItemStatus)
		assert.Equal(t, entity.ItemSizeMedium, order.Items[0].Size)
	})

	t.Run("NonAdminCannotAssignCashier", func(t *testing.T) {
		order, err := env.Orders.Create(customer, &CreateOrderReq{
			ShopID:       shop.ID,
			CustomerName: "Walk-in",
			CashierID:    owner.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, customer.ID, order.CashierID)
	})

	t.Run("AdminAssignsCashier", func(t *testing.T) {
		admin := seedUser(t, env.DB, "Ada Admin", "admin")
		order, err := env.Orders.Create(admin, &CreateOrderReq{
			ShopID:       shop.ID,
			CustomerName: "Walk-in",
			CashierID:    customer.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, customer.ID, order.CashierID)
		assert.Equal(t, admin.ID, order.CreatedByID, "creator stays the actor")
	})

	t.Run("OwnerCannotSelfOrder", func(t *testing.T) {
		_, err := env.Orders.Create(owner, &CreateOrderReq{
			ShopID:       shop.ID,
			CustomerName: "Walk-in",
		})
		assert.ErrorIs(t, err, ErrSelfOrder)
	})

	t.Run("AdminMayOrderFromOwnShop", func(t *testing.T) {
		adminOwner := seedUser(t, env.DB, "Oscar AdminOwner", "admin")
		ownShop := seedShop(t, env.DB, adminOwner, entity.ShopStatusOpen)
		_, err := env.Orders.Create(adminOwner, &CreateOrderReq{
			ShopID:       ownShop.ID,
			CustomerName: "Walk-in",
		})
		assert.NoError(t, err)
	})

	t.Run("ClosedShopRejected", func(t *testing.T) {
		closed := seedShop(t, env.DB, owner, entity.ShopStatusClosed)
		_, err := env.Orders.Create(customer, &CreateOrderReq{
			ShopID:       closed.ID,
			CustomerName: "Walk-in",
		})
		assert.ErrorIs(t, err, ErrNotOrderable)
	})

	t.Run("ArchivedShopIsNotFound", func(t *testing.T) {
		archived := seedShop(t, env.DB, owner, entity.ShopStatusOpen)
		require.NoError(t, env.DB.Model(archived).Update("archived", true).Error)
		_, err := env.Orders.Create(customer, &CreateOrderReq{
			ShopID:       archived.ID,
			CustomerName: "Walk-in",
		})
		assert.ErrorIs(t, err, ErrShopNotFound)
	})

	t.Run("MissingShop", func(t *testing.T) {
		_, err := env.Orders.Create(customer, &CreateOrderReq{
			ShopID:       99999,
			CustomerName: "Walk-in",
		})
		assert.ErrorIs(t, err, ErrShopNotFound)
	})
}

// The worked lifecycle: create, add item, reject an under-floor adjustment,
// accept a valid one. Totals must track every accepted step.
func TestOrderItemLifecycle(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	order, err := env.Orders.Create(customer, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
		TaxAmount:    0.70,
		Items: []OrderItemIn{
			{MenuItemName: "Cappuccino", Quantity: 1, UnitPrice: 4.50},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 4.50, order.Subtotal)
	assert.Equal(t, 5.20, order.TotalAmount)

	order, err = env.Orders.AddItem(customer, order.ID, &OrderItemIn{
		MenuItemName: "Latte", Quantity: 2, UnitPrice: 4.00,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.50, order.Subtotal)
	assert.Equal(t, 13.20, order.TotalAmount)
	require.Len(t, order.Items, 2)

	var latteID uint
	for _, item := range order.Items {
		if item.MenuItemName == "Latte" {
			latteID = item.ID
		}
	}
	require.NotZero(t, latteID)

	// Driving quantity below 1 is rejected and nothing changes.
	_, err = env.Orders.AdjustItemQuantity(customer, order.ID, latteID, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	unchanged, err := env.Orders.Get(customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.50, unchanged.Subtotal)
	for _, item := range unchanged.Items {
		if item.ID == latteID {
			assert.Equal(t, 2, item.Quantity)
		}
	}

	order, err = env.Orders.AdjustItemQuantity(customer, order.ID, latteID, -1)
	require.NoError(t, err)
	assert.Equal(t, 8.50, order.Subtotal)
	assert.Equal(t, 9.20, order.TotalAmount)
	for _, item := range order.Items {
		if item.ID == latteID {
			assert.Equal(t, 1, item.Quantity)
		}
	}
}

func TestAdjustItemQuantity(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	order, err := env.Orders.Create(customer, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
		Items: []OrderItemIn{
			{MenuItemName: "Flat White", Quantity: 2, UnitPrice: 3.75},
		},
	})
	require.NoError(t, err)
	itemID := order.Items[0].ID

	t.Run("ZeroDelta", func(t *testing.T) {
		_, err := env.Orders.AdjustItemQuantity(customer, order.ID, itemID, 0)
		assert.ErrorIs(t, err, ErrInvalidDelta)
	})

	t.Run("DeltaOutOfRange", func(t *testing.T) {
		_, err := env.Orders.AdjustItemQuantity(customer, order.ID, itemID, 21)
		assert.ErrorIs(t, err, ErrInvalidDelta)
		_, err = env.Orders.AdjustItemQuantity(customer, order.ID, itemID, -21)
		assert.ErrorIs(t, err, ErrInvalidDelta)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		_, err := env.Orders.AdjustItemQuantity(customer, order.ID, 99999, 1)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Increment", func(t *testing.T) {
		got, err := env.Orders.AdjustItemQuantity(customer, order.ID, itemID, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Items[0].Quantity)
		assert.Equal(t, 18.75, got.Subtotal)
	})
}

func TestSetItemStatus(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	order, err := env.Orders.Create(customer, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
		Items: []OrderItemIn{
			{MenuItemName: "Americano", Quantity: 1, UnitPrice: 3.00},
		},
	})
	require.NoError(t, err)
	itemID := order.Items[0].ID

	got, err := env.Orders.SetItemStatus(customer, order.ID, itemID, entity.ItemStatusReady)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusReady, got.Items[0].ItemStatus)
	assert.Equal(t, 3.00, got.Subtotal, "status change keeps totals intact")

	_, err = env.Orders.SetItemStatus(customer, order.ID, 99999, entity.ItemStatusReady)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	order, err := env.Orders.Create(customer, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
		Items: []OrderItemIn{
			{MenuItemName: "Espresso", Quantity: 1, UnitPrice: 2.50},
			{MenuItemName: "Croissant", Quantity: 1, UnitPrice: 3.20},
		},
	})
	require.NoError(t, err)
	target := order.Items[0].ID

	first, err := env.Orders.RemoveItem(customer, order.ID, target)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, 3.20, first.Subtotal)

	// Second removal of the same id is a no-op, not an error.
	second, err := env.Orders.RemoveItem(customer, order.ID, target)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.Equal(t, first.TotalAmount, second.TotalAmount)
}

func TestUpdateOrder(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	order, err := env.Orders.Create(customer, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
		Items: []OrderItemIn{
			{MenuItemName: "Cortado", Quantity: 2, UnitPrice: 3.25},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 6.50, order.TotalAmount)

	t.Run("FinancialFieldsRecompute", func(t *testing.T) {
		discount := 1.50
		got, err := env.Orders.Update(customer, order.ID, &UpdateOrderReq{
			DiscountAmount: &discount,
		})
		require.NoError(t, err)
		assert.Equal(t, 6.50, got.Subtotal)
		assert.Equal(t, 5.00, got.TotalAmount)
	})

	t.Run("PartialHeaderOnly", func(t *testing.T) {
		status := entity.OrderStatusPreparing
		name := "Regular Ray"
		got, err := env.Orders.Update(customer, order.ID, &UpdateOrderReq{
			Status:       &status,
			CustomerName: &name,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPreparing, got.Status)
		assert.Equal(t, "Regular Ray", got.CustomerName)
		assert.Equal(t, 5.00, got.TotalAmount, "untouched fields survive")
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		stranger := seedUser(t, env.DB, "Sam Stranger", "user")
		status := entity.OrderStatusServed
		_, err := env.Orders.Update(stranger, order.ID, &UpdateOrderReq{Status: &status})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestDeleteOrder(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	order, err := env.Orders.Create(customer, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
		Items: []OrderItemIn{
			{MenuItemName: "Espresso", Quantity: 1, UnitPrice: 2.50},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.Orders.Delete(customer, order.ID))

	_, err = env.Orders.Get(customer, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Hard delete: nothing left behind, not even soft-deleted rows.
	var itemCount int64
	env.DB.Unscoped().Model(&entity.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	assert.Zero(t, itemCount)
}

func TestListOrders(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	alice := seedUser(t, env.DB, "Alice One", "user")
	bob := seedUser(t, env.DB, "Bob Two", "user")
	admin := seedUser(t, env.DB, "Ada Admin", "admin")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	mk := func(actor *entity.User, name, item string, price float64) {
		_, err := env.Orders.Create(actor, &CreateOrderReq{
			ShopID:       shop.ID,
			CustomerName: name,
			Items:        []OrderItemIn{{MenuItemName: item, Quantity: 1, UnitPrice: price}},
		})
		require.NoError(t, err)
	}
	mk(alice, "Morning Rush", "Cappuccino", 4.50)
	mk(alice, "Lunch Break", "Latte", 4.00)
	mk(bob, "Afternoon", "Mocha", 4.75)

	t.Run("NonAdminSeesOnlyOwn", func(t *testing.T) {
		out, err := env.Orders.List(alice, OrderListQuery{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, out.Total)
		for _, o := range out.Items {
			assert.Equal(t, alice.ID, o.CreatedByID)
		}
	})

	t.Run("AdminSeesAll", func(t *testing.T) {
		out, err := env.Orders.List(admin, OrderListQuery{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, out.Total)
	})

	t.Run("SearchMatchesItemName", func(t *testing.T) {
		out, err := env.Orders.List(admin, OrderListQuery{Search: "Mocha"})
		require.NoError(t, err)
		require.EqualValues(t, 1, out.Total)
		assert.Equal(t, "Afternoon", out.Items[0].CustomerName)
	})

	t.Run("SearchMatchesCustomerName", func(t *testing.T) {
		out, err := env.Orders.List(admin, OrderListQuery{Search: "Lunch"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, out.Total)
	})

	t.Run("SortAscending", func(t *testing.T) {
		out, err := env.Orders.List(admin, OrderListQuery{SortBy: "totalAmount", SortOrder: "asc"})
		require.NoError(t, err)
		require.Len(t, out.Items, 3)
		assert.True(t, out.Items[0].TotalAmount <= out.Items[1].TotalAmount)
		assert.True(t, out.Items[1].TotalAmount <= out.Items[2].TotalAmount)
	})

	t.Run("Pagination", func(t *testing.T) {
		out, err := env.Orders.List(admin, OrderListQuery{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, out.Total)
		assert.EqualValues(t, 2, out.TotalPages)
		assert.Len(t, out.Items, 1)
	})
}

func TestOrderNotes(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	order, err := env.Orders.Create(customer, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
	})
	require.NoError(t, err)

	got, err := env.Orders.AddNote(customer, order.ID, "extra hot, oat milk")
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, customer.ID, got.Notes[0].AuthorID, "author is always the actor")

	noteID := got.Notes[0].ID
	got, err = env.Orders.RemoveNote(customer, order.ID, noteID)
	require.NoError(t, err)
	assert.Empty(t, got.Notes)

	// Removing again is tolerated.
	got, err = env.Orders.RemoveNote(customer, order.ID, noteID)
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
}

func TestGetOrderAccess(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	stranger := seedUser(t, env.DB, "Sam Stranger", "user")
	admin := seedUser(t, env.DB, "Ada Admin", "admin")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	order, err := env.Orders.Create(customer, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
	})
	require.NoError(t, err)

	_, err = env.Orders.Get(stranger, order.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.Orders.Get(admin, order.ID)
	assert.NoError(t, err)

	_, err = env.Orders.Get(customer, 99999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAuditTrail(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	customer := seedUser(t, env.DB, "Casey Customer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	order, err := env.Orders.Create(customer, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
		Items:        []OrderItemIn{{MenuItemName: "Espresso", Quantity: 1, UnitPrice: 2.50}},
	})
	require.NoError(t, err)
	require.NoError(t, env.Orders.Delete(customer, order.ID))

	var logs []entity.ActivityLog
	require.NoError(t, env.DB.Where("entity_type = ? AND entity_id = ?", "order", order.ID).Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "create_order", logs[0].Action)
	assert.Equal(t, "delete_order", logs[1].Action)
	assert.Equal(t, customer.ID, logs[0].ActorID)
}
