package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cuecafe/pos/controllers"
	"github.com/cuecafe/pos/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db)
	menuCtrl := controllers.NewMenuController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	playCtrl := controllers.NewPlayController(db)
	reportCtrl := controllers.NewReportController(db)
	settingCtrl := controllers.NewSettingController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// ORDERS (staff/admin)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PUT("/orders/:order_id", orderCtrl.UpdateOrder)
	auth.POST("/orders/:order_id/items", orderCtrl.AddOrderItems)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

	// MENU
	auth.GET("/menu", menuCtrl.GetAllMenuItems)
	auth.POST("/menu", menuCtrl.CreateMenuItem)
	auth.POST("/menu/upload", menuCtrl.UploadMenuItems)
	auth.DELETE("/menu/:menu_id", menuCtrl.DeleteMenuItem)

	// INVENTORY
	auth.GET("/inventory", inventoryCtrl.GetAllInventoryItems)
	auth.POST("/inventory", inventoryCtrl.CreateInventoryItem)
	auth.PATCH("/inventory/:item_id", inventoryCtrl.UpdateInventoryItem)
	auth.DELETE("/inventory/:item_id", inventoryCtrl.DeleteInventoryItem)

	// PLAY SESSIONS
	auth.GET("/play-sessions", playCtrl.GetActiveSessions)
	auth.POST("/play-sessions", playCtrl.StartSession)
	auth.POST("/play-sessions/:session_id/end", playCtrl.EndSession)
	auth.POST("/play-sessions/:session_id/bill", playCtrl.EndSessionAndBill)

	// REPORTS
	auth.GET("/reports/daily-summary", reportCtrl.GetDailySummary)
	auth.GET("/reports/revenue", reportCtrl.GetRevenueReport)
	auth.GET("/reports/item-popularity", reportCtrl.GetItemPopularity)

	// SETTINGS
	auth.GET("/settings/:key", settingCtrl.GetSetting)

	// Live dashboard updates
	auth.GET("/ws", controllers.EventsHandler)

	// Admin only: user management, order deletion, settings writes
	admin := auth.Group("/")
	admin.Use(middlewares.AdminOnly())
	{
		admin.POST("/register", userCtrl.Register)
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
		admin.PUT("/settings/:key", settingCtrl.UpdateSetting)
	}

	return r
}
