package services

import (
	"fmt"
	"strings"
	"testing"

	"backend/entity"
	"backend/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens a per-test in-memory database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.CoffeeShop{}, &entity.ShopStaff{},
		&entity.CoffeeOrder{}, &entity.OrderItem{}, &entity.OrderNote{},
		&entity.ActivityLog{},
	))
	return db
}

type testEnv struct {
	DB        *gorm.DB
	Orders    *OrderService
	Shops     *ShopService
	Analytics *AnalyticsService
	Audit     *AuditLogger
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupDB(t)

	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	audit := NewAuditLogger(repository.NewActivityRepository(db))

	return &testEnv{
		DB:        db,
		Orders:    NewOrderService(db, orderRepo, shopRepo, audit),
		Shops:     NewShopService(db, shopRepo, userRepo, audit),
		Analytics: NewAnalyticsService(analyticsRepo, shopRepo),
		Audit:     audit,
	}
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		FullName: name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedShop(t *testing.T, db *gorm.DB, owner *entity.User, status string) *entity.CoffeeShop {
	t.Helper()
	shop := &entity.CoffeeShop{
		Name:        "Bean There",
		Description: "Specialty coffee and pastries.",
		Status:      status,
		City:        "Portland",
		Address:     "12 Roast St",
		OwnerID:     owner.ID,
	}
	require.NoError(t, db.Create(shop).Error)
	require.NoError(t, db.Create(&entity.ShopStaff{ShopID: shop.ID, UserID: owner.ID, Role: "owner"}).Error)
	return shop
}
