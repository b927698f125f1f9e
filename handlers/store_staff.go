package handlers

import (
	"net/http"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/middleware"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/gin-gonic/gin"
)

// GetStoreStaff lists the store's staff accounts with their fine-grained roles
func GetStoreStaff(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var staff []models.User
	if err := config.DB.Preload("Roles").
		Where("store_id = ? AND role = ?", storeID, models.RoleStore).
		Order("id").
		Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load staff"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff, "total": len(staff)})
}

type AssignRoleRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	RoleID uint `json:"role_id" binding:"required"`
}

// AssignStaffRole grants a fine-grained role to a staff member of the same
// store. Assigning a role the user already holds is a no-op.
func AssignStaffRole(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Target must belong to the caller's store
	var target models.User
	if err := config.DB.
		Where("id = ? AND store_id = ? AND role = ?", req.UserID, storeID, models.RoleStore).
		First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var role models.Role
	if err := config.DB.First(&role, req.RoleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	assignment := models.RoleAssignment{UserID: target.ID, RoleID: role.ID}
	if err := config.DB.
		Where(models.RoleAssignment{UserID: target.ID, RoleID: role.ID}).
		FirstOrCreate(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role assigned successfully",
		"user_id": target.ID,
		"role":    role.Name,
	})
}

// RevokeStaffRole removes a fine-grained role from a staff member
func RevokeStaffRole(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var target models.User
	if err := config.DB.
		Where("id = ? AND store_id = ?", c.Param("userId"), storeID).
		First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	res := config.DB.
		Where("user_id = ? AND role_id = ?", target.ID, c.Param("roleId")).
		Delete(&models.RoleAssignment{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke role"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role assignment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role revoked successfully"})
}
