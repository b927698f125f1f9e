package handlers

import (
	"net/http"
	"time"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/middleware"
	"github.com/ichi1107/bento-order-system/models"
	"github.com/ichi1107/bento-order-system/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStoreOrders returns the store's orders with status/date filters, newest first
func GetStoreOrders(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	page, perPage := parsePagination(c)

	query := config.DB.Model(&models.Order{}).Where("store_id = ?", storeID)

	if status := c.Query("status_filter"); status != "" {
		query = query.Where("status = ?", status)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		t, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format. Use YYYY-MM-DD"})
			return
		}
		query = query.Where("ordered_at >= ?", t)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		t, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format. Use YYYY-MM-DD"})
			return
		}
		// Inclusive through the end of the given day
		query = query.Where("ordered_at < ?", t.AddDate(0, 0, 1))
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	query.Preload("Menu").Preload("User").
		Order("ordered_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&orders)

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending confirmed preparing ready completed cancelled"`
}

// UpdateOrderStatus performs a store-side state transition on an order
func UpdateOrderStatus(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	err := config.DB.
		Where("id = ? AND store_id = ?", c.Param("id"), storeID).
		First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, statemachine.ActorStore); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	// Single conditional update: if another session already moved the order,
	// zero rows match and the transition is rejected instead of overwritten.
	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", req.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Order status has changed, reload and try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": string(order.Status),
		"current_status":  string(req.Status),
	})
}
