package handlers

import (
	"net/http"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/middleware"
	"github.com/ichi1107/bento-order-system/models"
	"github.com/ichi1107/bento-order-system/statemachine"

	"github.com/gin-gonic/gin"
)

// ListMenus returns orderable menus across all active stores
func ListMenus(c *gin.Context) {
	page, perPage := parsePagination(c)

	query := config.DB.Model(&models.Menu{}).
		Select("menus.*").
		Joins("JOIN stores ON stores.id = menus.store_id").
		Where("stores.is_active = ?", true)

	// Customers see available items unless they ask otherwise
	switch c.DefaultQuery("is_available", "true") {
	case "true":
		query = query.Where("menus.is_available = ?", true)
	case "false":
		query = query.Where("menus.is_available = ?", false)
	}
	if priceMin := c.Query("price_min"); priceMin != "" {
		query = query.Where("menus.price >= ?", priceMin)
	}
	if priceMax := c.Query("price_max"); priceMax != "" {
		query = query.Where("menus.price <= ?", priceMax)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("menus.name LIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var menus []models.Menu
	query.Order("menus.id").Offset((page - 1) * perPage).Limit(perPage).Find(&menus)

	c.JSON(http.StatusOK, gin.H{"menus": menus, "total": total})
}

// GetMenu returns a single available menu
func GetMenu(c *gin.Context) {
	var menu models.Menu
	err := config.DB.
		Select("menus.*").
		Joins("JOIN stores ON stores.id = menus.store_id").
		Where("menus.id = ? AND menus.is_available = ? AND stores.is_active = ?", c.Param("id"), true, true).
		First(&menu).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

type PlaceOrderRequest struct {
	MenuID       uint    `json:"menu_id" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,min=1,max=10"`
	DeliveryTime *string `json:"delivery_time" binding:"omitempty,datetime=15:04:05"`
	Notes        string  `json:"notes" binding:"max=500"`
}

// PlaceOrder creates a new order in state pending. The total price is the
// menu price at this moment times quantity, and never changes afterwards.
func PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var menu models.Menu
	err := config.DB.
		Select("menus.*").
		Joins("JOIN stores ON stores.id = menus.store_id").
		Where("menus.id = ? AND menus.is_available = ? AND stores.is_active = ?", req.MenuID, true, true).
		First(&menu).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found or not available"})
		return
	}

	order := models.Order{
		UserID:       userID,
		MenuID:       menu.ID,
		StoreID:      menu.StoreID,
		Quantity:     req.Quantity,
		TotalPrice:   menu.Price * req.Quantity,
		Status:       models.StatusPending,
		DeliveryTime: req.DeliveryTime,
		Notes:        req.Notes,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	config.DB.Preload("Menu").First(&order, order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders returns the caller's own orders, newest first
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, perPage := parsePagination(c)

	query := config.DB.Model(&models.Order{}).Where("user_id = ?", userID)
	if status := c.Query("status_filter"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	query.Preload("Menu").Order("ordered_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&orders)

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

// GetOrderDetail returns one of the caller's orders. Other customers' orders
// are indistinguishable from absent ones.
func GetOrderDetail(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	err := config.DB.Preload("Menu").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels the caller's own order while it is still pending
func CancelOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	err := config.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, statemachine.ActorCustomer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Only pending orders can be cancelled",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	// Guard against a concurrent transition between read and write
	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.StatusPending).
		Update("status", models.StatusCancelled)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Order status has changed, reload and try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}
