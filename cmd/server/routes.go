package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autoserve.backend/internal/interfaces/http/handlers"
	"autoserve.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler          *handlers.AuthHandler
	apiKeyHandler        *handlers.ApiKeyHandler
	analyticsHandler     *handlers.AnalyticsHandler
	customerHandler      *handlers.CustomerHandler
	vehicleHandler       *handlers.VehicleHandler
	bookingHandler       *handlers.BookingHandler
	serviceRecordHandler *handlers.ServiceRecordHandler
	inventoryHandler     *handlers.InventoryHandler
	warrantyHandler      *handlers.WarrantyHandler
	invoiceHandler       *handlers.InvoiceHandler
	notificationHandler  *handlers.NotificationHandler
	authGateway          gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/me", d.authGateway, d.authHandler.Me)
			auth.POST("/logout-all", d.authGateway, d.authHandler.LogoutAll)
			auth.POST("/change-password", d.authGateway, d.authHandler.ChangePassword)
		}

		// Customer routes (protected)
		customers := v1.Group("/customers")
		customers.Use(d.authGateway, middleware.RequirePermission("customers"))
		{
			customers.POST("", d.customerHandler.CreateCustomer)
			customers.GET("", d.customerHandler.ListCustomers)
			customers.GET("/:id", d.customerHandler.GetCustomer)
			customers.PUT("/:id", d.customerHandler.UpdateCustomer)
			customers.DELETE("/:id", d.customerHandler.DeleteCustomer)
			customers.GET("/:id/vehicles", d.vehicleHandler.ListByCustomer)
			customers.GET("/:id/bookings", d.bookingHandler.ListByCustomer)
			customers.GET("/:id/invoices", d.invoiceHandler.ListByCustomer)
			customers.GET("/:id/notifications", d.notificationHandler.ListByCustomer)
		}

		// Vehicle routes (protected)
		vehicles := v1.Group("/vehicles")
		vehicles.Use(d.authGateway, middleware.RequirePermission("vehicles"))
		{
			vehicles.POST("", d.vehicleHandler.RegisterVehicle)
			vehicles.GET("/:id", d.vehicleHandler.GetVehicle)
			vehicles.PUT("/:id/mileage", d.vehicleHandler.RecordMileage)
			vehicles.DELETE("/:id", d.vehicleHandler.DeleteVehicle)
			vehicles.GET("/:id/service-records", d.serviceRecordHandler.ListByVehicle)
			vehicles.GET("/:id/warranties", d.warrantyHandler.ListByVehicle)
			vehicles.GET("/:id/coverage", d.warrantyHandler.CheckCoverage)
		}

		// Booking routes (protected)
		bookings := v1.Group("/bookings")
		bookings.Use(d.authGateway, middleware.RequirePermission("bookings"))
		{
			bookings.POST("", d.bookingHandler.CreateBooking)
			bookings.GET("", d.bookingHandler.ListBookings)
			bookings.GET("/:id", d.bookingHandler.GetBooking)
			bookings.PUT("/:id/status", d.bookingHandler.UpdateStatus)
		}

		// Service record routes (protected)
		serviceRecords := v1.Group("/service-records")
		serviceRecords.Use(d.authGateway, middleware.RequirePermission("service-records"))
		{
			serviceRecords.POST("", d.serviceRecordHandler.CreateRecord)
			serviceRecords.GET("/:id", d.serviceRecordHandler.GetRecord)
			serviceRecords.POST("/:id/complete", d.serviceRecordHandler.CompleteRecord)
		}

		// Inventory routes (protected)
		inventory := v1.Group("/inventory")
		inventory.Use(d.authGateway, middleware.RequirePermission("inventory"))
		{
			inventory.POST("", d.inventoryHandler.CreatePart)
			inventory.GET("", d.inventoryHandler.ListParts)
			inventory.GET("/low-stock", d.inventoryHandler.ListLowStock)
			inventory.GET("/:id", d.inventoryHandler.GetPart)
			inventory.POST("/:id/adjust", d.inventoryHandler.AdjustStock)
		}

		// Warranty routes (protected)
		warranties := v1.Group("/warranties")
		warranties.Use(d.authGateway, middleware.RequirePermission("warranties"))
		{
			warranties.POST("", d.warrantyHandler.RegisterWarranty)
			warranties.DELETE("/:id", d.warrantyHandler.CancelWarranty)
		}

		// Invoice routes (protected)
		invoices := v1.Group("/invoices")
		invoices.Use(d.authGateway, middleware.RequirePermission("invoices"))
		{
			invoices.POST("", d.invoiceHandler.IssueInvoice)
			invoices.GET("/:id", d.invoiceHandler.GetInvoice)
			invoices.PUT("/:id/status", d.invoiceHandler.UpdateStatus)
		}

		// Notification dispatch routes (staff only)
		notifications := v1.Group("/notifications")
		notifications.Use(d.authGateway)
		{
			notifications.GET("/pending", d.notificationHandler.ListPending)
			notifications.POST("/:id/sent", d.notificationHandler.MarkSent)
			notifications.POST("/:id/failed", d.notificationHandler.MarkFailed)
		}

		// Admin routes (protected, staff sessions only)
		admin := v1.Group("/admin")
		admin.Use(d.authGateway, middleware.RequireAdmin())
		{
			admin.POST("/api-keys", d.apiKeyHandler.CreateApiKey)
			admin.GET("/api-keys", d.apiKeyHandler.ListApiKeys)
			admin.DELETE("/api-keys/:id", d.apiKeyHandler.RevokeApiKey)

			admin.GET("/analytics/usage", d.analyticsHandler.ListSummaries)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
