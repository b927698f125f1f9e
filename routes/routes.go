package routes

import (
	"github.com/ichi1107/bento-order-system/authz"
	"github.com/ichi1107/bento-order-system/handlers"
	"github.com/ichi1107/bento-order-system/middleware"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)
		public.POST("/auth/refresh", handlers.RefreshToken)
		public.POST("/auth/password-reset-request", handlers.RequestPasswordReset)
		public.POST("/auth/password-reset-confirm", handlers.ConfirmPasswordReset)

		// Order lifecycle info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/auth/me", handlers.GetMe)
		auth.POST("/auth/logout", handlers.Logout)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/menus", handlers.ListMenus)
		customer.GET("/menus/:id", handlers.GetMenu)
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Store staff routes ─────────────────────────────────────────
	store := r.Group("/api/store")
	store.Use(middleware.AuthRequired())
	{
		// Dashboard
		store.GET("/dashboard", middleware.RequirePermission(authz.PermissionView), handlers.GetDashboard)
		store.GET("/dashboard/weekly-sales", middleware.RequirePermission(authz.PermissionView), handlers.GetWeeklySales)

		// Order management
		store.GET("/orders", middleware.RequirePermission(authz.PermissionView), handlers.GetStoreOrders)
		store.PUT("/orders/:id/status", middleware.RequirePermission(authz.PermissionManageOrders), handlers.UpdateOrderStatus)

		// Menu management
		store.GET("/menus", middleware.RequirePermission(authz.PermissionView), handlers.GetStoreMenus)
		store.POST("/menus", middleware.RequirePermission(authz.PermissionManageMenus), handlers.CreateMenu)
		store.PUT("/menus/:id", middleware.RequirePermission(authz.PermissionManageMenus), handlers.UpdateMenu)
		store.DELETE("/menus/:id", middleware.RequirePermission(authz.PermissionDeleteMenu), handlers.DeleteMenu)

		// Reports
		store.GET("/reports/sales", middleware.RequirePermission(authz.PermissionViewReports), handlers.GetSalesReport)

		// Store administration
		store.GET("/profile", middleware.RequirePermission(authz.PermissionView), handlers.GetStoreProfile)
		store.PUT("/profile", middleware.RequirePermission(authz.PermissionManageStore), handlers.UpdateStoreProfile)
		store.GET("/staff", middleware.RequirePermission(authz.PermissionManageStore), handlers.GetStoreStaff)
		store.POST("/staff/roles", middleware.RequirePermission(authz.PermissionManageStore), handlers.AssignStaffRole)
		store.DELETE("/staff/:userId/roles/:roleId", middleware.RequirePermission(authz.PermissionManageStore), handlers.RevokeStaffRole)
	}
}
