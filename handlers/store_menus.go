package handlers

import (
	"net/http"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/middleware"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/gin-gonic/gin"
)

// GetStoreMenus lists the store's own menus, including unavailable ones
func GetStoreMenus(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	page, perPage := parsePagination(c)

	query := config.DB.Model(&models.Menu{}).Where("store_id = ?", storeID)
	switch c.Query("is_available") {
	case "true":
		query = query.Where("is_available = ?", true)
	case "false":
		query = query.Where("is_available = ?", false)
	}

	var total int64
	query.Count(&total)

	var menus []models.Menu
	query.Order("id").Offset((page - 1) * perPage).Limit(perPage).Find(&menus)

	c.JSON(http.StatusOK, gin.H{"menus": menus, "total": total})
}

type CreateMenuRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Price       int    `json:"price" binding:"required,min=1"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsAvailable *bool  `json:"is_available"`
}

// CreateMenu adds a new menu to the caller's store
func CreateMenu(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	menu := models.Menu{
		StoreID:     storeID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
	}
	if err := config.DB.Create(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Menu created successfully", "menu": menu})
}

type UpdateMenuRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Price       *int    `json:"price" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsAvailable *bool   `json:"is_available"`
}

// UpdateMenu partially updates one of the store's menus. Price edits never
// touch existing orders: their totals were frozen at order time.
func UpdateMenu(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var menu models.Menu
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("id"), storeID).First(&menu).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&menu).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu updated successfully", "menu": menu})
}

// DeleteMenu removes a menu, or disables it when orders already reference it
// so order history keeps resolving.
func DeleteMenu(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var menu models.Menu
	if err := config.DB.Where("id = ? AND store_id = ?", c.Param("id"), storeID).First(&menu).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}

	var orderCount int64
	config.DB.Model(&models.Order{}).Where("menu_id = ?", menu.ID).Count(&orderCount)
	if orderCount > 0 {
		if err := config.DB.Model(&menu).Update("is_available", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable menu"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Menu disabled due to existing orders"})
		return
	}

	if err := config.DB.Delete(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted successfully"})
}
