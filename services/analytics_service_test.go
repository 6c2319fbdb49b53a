package services

import (
	"testing"

	"backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopSalesSummary(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	casey := seedUser(t, env.DB, "Casey Customer", "user")
	bob := seedUser(t, env.DB, "Bob Buyer", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	mk := func(actor *entity.User, payment, item string, qty int, price float64) {
		_, err := env.Orders.Create(actor, &CreateOrderReq{
			ShopID:        shop.ID,
			CustomerName:  "Walk-in",
			PaymentStatus: payment,
			Items:         []OrderItemIn{{MenuItemName: item, Quantity: qty, UnitPrice: price}},
		})
		require.NoError(t, err)
	}
	mk(casey, entity.PaymentPaid, "Latte", 2, 5.00)    // 10.00 paid
	mk(bob, entity.PaymentPaid, "Mocha", 3, 5.00)      // 15.00 paid
	mk(casey, entity.PaymentUnpaid, "Latte", 1, 10.00) // 10.00 unpaid

	out, err := env.Analytics.ShopSalesSummary(owner, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, shop.ID, out.ShopID)
	assert.False(t, out.GeneratedAt.IsZero())

	rev := out.Summary.RevenueMetrics
	assert.EqualValues(t, 3, rev.TotalOrders)
	assert.Equal(t, 35.00, rev.TotalRevenue)
	assert.Equal(t, 11.67, rev.AverageTicketSize)
	assert.Equal(t, 25.00, rev.PaidRevenue)

	// Payment breakdown: 2 paid, 1 unpaid, sorted by count descending.
	require.Len(t, out.Summary.PaymentStatusBreakdown, 2)
	assert.Equal(t, entity.PaymentPaid, out.Summary.PaymentStatusBreakdown[0].Status)
	assert.EqualValues(t, 2, out.Summary.PaymentStatusBreakdown[0].Count)

	require.Len(t, out.Summary.OrderStatusBreakdown, 1)
	assert.Equal(t, entity.OrderStatusPending, out.Summary.OrderStatusBreakdown[0].Status)
	assert.EqualValues(t, 3, out.Summary.OrderStatusBreakdown[0].Count)

	// Latte and Mocha tie on quantity, so assert per-product totals
	// rather than rank order.
	require.Len(t, out.Summary.TopProducts, 2)
	byName := map[string]struct {
		qty   int64
		sales float64
	}{}
	for _, p := range out.Summary.TopProducts {
		byName[p.MenuItemName] = struct {
			qty   int64
			sales float64
		}{p.TotalQuantity, p.TotalSales}
	}
	assert.EqualValues(t, 3, byName["Latte"].qty)
	assert.Equal(t, 20.00, byName["Latte"].sales)
	assert.EqualValues(t, 3, byName["Mocha"].qty)
	assert.Equal(t, 15.00, byName["Mocha"].sales)

	// All three orders land in the same hour bucket.
	require.Len(t, out.Summary.HourlyDemand, 1)
	assert.EqualValues(t, 3, out.Summary.HourlyDemand[0].OrderCount)
}

func TestShopSalesSummaryAccess(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	barista := seedUser(t, env.DB, "Bella Barista", "user")
	stranger := seedUser(t, env.DB, "Sam Stranger", "user")
	admin := seedUser(t, env.DB, "Ada Admin", "admin")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)
	require.NoError(t, env.DB.Create(&entity.ShopStaff{ShopID: shop.ID, UserID: barista.ID, Role: "barista"}).Error)

	_, err := env.Analytics.ShopSalesSummary(owner, shop.ID)
	assert.NoError(t, err)

	_, err = env.Analytics.ShopSalesSummary(barista, shop.ID)
	assert.NoError(t, err)

	_, err = env.Analytics.ShopSalesSummary(admin, shop.ID)
	assert.NoError(t, err)

	_, err = env.Analytics.ShopSalesSummary(stranger, shop.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.Analytics.ShopSalesSummary(owner, 99999)
	assert.ErrorIs(t, err, ErrShopNotFound)

	require.NoError(t, env.DB.Model(shop).Update("archived", true).Error)
	_, err = env.Analytics.ShopSalesSummary(owner, shop.ID)
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestShopSalesSummaryEmptyShop(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	out, err := env.Analytics.ShopSalesSummary(owner, shop.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 0, out.Summary.RevenueMetrics.TotalOrders)
	assert.Zero(t, out.Summary.RevenueMetrics.TotalRevenue)
	assert.Zero(t, out.Summary.RevenueMetrics.AverageTicketSize)
	assert.Empty(t, out.Summary.OrderStatusBreakdown)
	assert.Empty(t, out.Summary.PaymentStatusBreakdown)
	assert.Empty(t, out.Summary.TopProducts)
	assert.Empty(t, out.Summary.HourlyDemand)
}

func TestStaffPerformance(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	casey := seedUser(t, env.DB, "Casey Cashier", "user")
	bob := seedUser(t, env.DB, "Bob Barista", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	mk := func(actor *entity.User, status string, price float64) {
		_, err := env.Orders.Create(actor, &CreateOrderReq{
			ShopID:       shop.ID,
			CustomerName: "Walk-in",
			Status:       status,
			Items:        []OrderItemIn{{MenuItemName: "Espresso", Quantity: 1, UnitPrice: price}},
		})
		require.NoError(t, err)
	}
	// Casey: two orders, 9.00 revenue. Bob: one order, 12.00 revenue.
	mk(casey, entity.OrderStatusServed, 4.00)
	mk(casey, entity.OrderStatusPending, 5.00)
	mk(bob, entity.OrderStatusServed, 12.00)

	out, err := env.Analytics.StaffPerformance(owner)
	require.NoError(t, err)
	require.Len(t, out.Staff, 2)

	// Ranked by revenue, highest first.
	assert.Equal(t, bob.ID, out.Staff[0].UserID)
	assert.Equal(t, "Bob Barista", out.Staff[0].FullName)
	assert.Equal(t, 12.00, out.Staff[0].TotalRevenue)
	assert.EqualValues(t, 1, out.Staff[0].TotalOrders)

	assert.Equal(t, casey.ID, out.Staff[1].UserID)
	assert.Equal(t, 9.00, out.Staff[1].TotalRevenue)
	assert.EqualValues(t, 2, out.Staff[1].TotalOrders)
	require.Len(t, out.Staff[1].StatusStats, 2)
}

func TestStaffPerformanceScope(t *testing.T) {
	env := setupEnv(t)
	owner := seedUser(t, env.DB, "Olive Owner", "user")
	casey := seedUser(t, env.DB, "Casey Cashier", "user")
	outsider := seedUser(t, env.DB, "Oscar Outsider", "user")
	shop := seedShop(t, env.DB, owner, entity.ShopStatusOpen)

	_, err := env.Orders.Create(casey, &CreateOrderReq{
		ShopID:       shop.ID,
		CustomerName: "Walk-in",
		Items:        []OrderItemIn{{MenuItemName: "Espresso", Quantity: 1, UnitPrice: 3.00}},
	})
	require.NoError(t, err)

	// No shop membership: empty report, not an error.
	out, err := env.Analytics.StaffPerformance(outsider)
	require.NoError(t, err)
	assert.Empty(t, out.Staff)

	// Staff membership grants the shop's numbers.
	require.NoError(t, env.DB.Create(&entity.ShopStaff{ShopID: shop.ID, UserID: outsider.ID, Role: "barista"}).Error)
	out, err = env.Analytics.StaffPerformance(outsider)
	require.NoError(t, err)
	assert.Len(t, out.Staff, 1)
}
