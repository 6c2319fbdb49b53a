package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/repository"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "coffee-shop-management-api"})
	})

	// Repositories
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	audit := services.NewAuditLogger(activityRepo)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, cfg.AdminRegistKey)
	userSvc := services.NewUserService(userRepo)
	shopSvc := services.NewShopService(db, shopRepo, userRepo, audit)
	orderSvc := services.NewOrderService(db, orderRepo, shopRepo, audit)
	analyticsSvc := services.NewAnalyticsService(analyticsRepo, shopRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	userCtrl := controllers.NewUserController(userSvc)
	shopCtrl := controllers.NewShopController(shopSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	analyticsCtrl := controllers.NewAnalyticsController(analyticsSvc)

	api := r.Group("/api/v1")

	// Auth (public)
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)
	}

	// Shops
	shops := api.Group("/shops", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		shops.POST("", shopCtrl.Create)
		shops.GET("", shopCtrl.List)
		shops.GET("/:id", shopCtrl.Detail)
		shops.PATCH("/:id", shopCtrl.Update)
		shops.DELETE("/:id", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"), shopCtrl.Archive)
		shops.POST("/:id/staff", shopCtrl.AddStaff)
		shops.DELETE("/:id/staff/:userId", shopCtrl.RemoveStaff)
	}

	// Orders
	orders := api.Group("/orders", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		orders.POST("", orderCtrl.Create)
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PATCH("/:id", orderCtrl.Update)
		orders.DELETE("/:id", orderCtrl.Delete)

		orders.POST("/:id/items", orderCtrl.AddItem)
		orders.PATCH("/:id/items/:itemId/quantity", orderCtrl.AdjustItemQuantity)
		orders.PATCH("/:id/items/:itemId/status", orderCtrl.SetItemStatus)
		orders.DELETE("/:id/items/:itemId", orderCtrl.RemoveItem)

		orders.POST("/:id/notes", orderCtrl.AddNote)
		orders.DELETE("/:id/notes/:noteId", orderCtrl.RemoveNote)
	}

	// Analytics — authentication only; shop-level access is enforced in the service
	analytics := api.Group("/analytics", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		analytics.GET("/shops/:shopId/summary", analyticsCtrl.ShopSalesSummary)
		analytics.GET("/staff/performance", analyticsCtrl.StaffPerformance)
	}

	// Users (admin only)
	users := api.Group("/users", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		users.GET("", userCtrl.List)
		users.PATCH("/:id/role", userCtrl.UpdateRole)
	}
}
