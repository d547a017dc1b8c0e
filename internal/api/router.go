package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/gastropro/gastropro/internal/app"
	"github.com/gastropro/gastropro/internal/handlers"
	"github.com/gastropro/gastropro/internal/middleware"
	"github.com/gastropro/gastropro/internal/notifications"
	"github.com/gastropro/gastropro/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, cfg *app.Config, hub *notifications.Hub) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	// Basic rate limiting: 300 requests/minute per IP+path
	r.Use(middleware.RateLimit(300, time.Minute))

	r.NoRoute(middleware.NotFoundHandler)

	// Health endpoint (public)
	r.GET("/health", handlers.Health(db))

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// Services
	notificationSvc, err := services.NewNotificationService(db, hub, cfg.Notifications.ServiceConfig())
	if err != nil {
		return nil, err
	}
	events := services.NewNotificationEvents(notificationSvc)

	menuSvc, err := services.NewMenuService(db)
	if err != nil {
		return nil, err
	}
	inventorySvc, err := services.NewInventoryService(db, events)
	if err != nil {
		return nil, err
	}
	orderSvc, err := services.NewOrderService(db, events)
	if err != nil {
		return nil, err
	}
	staffSvc, err := services.NewStaffService(db)
	if err != nil {
		return nil, err
	}

	api := r.Group("/api")

	// Menu
	menuHandler := handlers.NewMenuHandler(menuSvc)
	menu := api.Group("/menu")
	{
		menu.GET("", menuHandler.List)
		menu.GET("/categories", menuHandler.Categories)
		menu.GET("/:id", menuHandler.Get)
		menu.POST("", menuHandler.Create)
		menu.PUT("/:id", menuHandler.Update)
		menu.DELETE("/:id", menuHandler.Delete)
	}

	// Inventory
	inventoryHandler := handlers.NewInventoryHandler(inventorySvc)
	inventory := api.Group("/inventory")
	{
		inventory.GET("", inventoryHandler.List)
		inventory.GET("/:id", inventoryHandler.Get)
		inventory.POST("", inventoryHandler.Create)
		inventory.PUT("/:id", inventoryHandler.Update)
		inventory.POST("/:id/adjust", inventoryHandler.AdjustStock)
		inventory.DELETE("/:id", inventoryHandler.Delete)
	}

	// Orders
	orderHandler := handlers.NewOrderHandler(orderSvc)
	orders := api.Group("/orders")
	{
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.POST("", orderHandler.Create)
		orders.PUT("/:id/status", orderHandler.UpdateStatus)
		orders.DELETE("/:id", orderHandler.Delete)
	}

	// Staff
	staffHandler := handlers.NewStaffHandler(staffSvc)
	staff := api.Group("/staff")
	{
		staff.GET("", staffHandler.List)
		staff.GET("/:id", staffHandler.Get)
		staff.POST("", staffHandler.Create)
		staff.PUT("/:id", staffHandler.Update)
		staff.DELETE("/:id", staffHandler.Delete)
	}

	// Notifications
	notificationHandler := handlers.NewNotificationHandler(notificationSvc, inventorySvc, hub, cfg.Notifications.PollInterval)
	notif := api.Group("/notifications")
	{
		notif.GET("", notificationHandler.List)
		notif.GET("/stats", notificationHandler.Stats)
		notif.GET("/unread-count", notificationHandler.UnreadCount)
		notif.GET("/settings", notificationHandler.Settings)
		notif.GET("/stream", notificationHandler.Stream)
		notif.POST("", notificationHandler.Create)
		notif.PUT("/:id", notificationHandler.Update)
		notif.POST("/mark-all-read", notificationHandler.MarkAllRead)
		notif.POST("/cleanup-expired", notificationHandler.Cleanup)
		notif.POST("/check-inventory-alerts", notificationHandler.CheckInventory)
		notif.DELETE("/:id", notificationHandler.Delete)
	}

	return r, nil
}
