package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	resetTokenTTL      = time.Hour
	resetRequestWindow = 5 * time.Minute
)

// resetRequestedMessage is returned for every reset request, whether the
// email is known, unknown or rate-limited, so callers cannot enumerate accounts.
const resetRequestedMessage = "If the email is registered, a password reset link has been sent"

var errInvalidResetToken = errors.New("invalid or expired token")

type PasswordResetRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirmBody struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// RequestPasswordReset issues a single-use reset token valid for one hour.
// At most one token per email is issued per five-minute window; the window
// check and the insert are a single conditional statement so concurrent
// requests cannot slip past it.
func RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count == 0 {
		logrus.Infof("Password reset requested for unknown email %s", req.Email)
		c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
		return
	}

	token := uuid.NewString()
	now := time.Now()
	res := config.DB.Exec(`
		INSERT INTO password_reset_tokens (token, email, expires_at, created_at)
		SELECT ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM password_reset_tokens
			WHERE email = ? AND created_at > ?
		)`,
		token, req.Email, now.Add(resetTokenTTL), now,
		req.Email, now.Add(-resetRequestWindow),
	)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		return
	}
	if res.RowsAffected == 0 {
		logrus.Infof("Password reset for %s suppressed by rate limit", req.Email)
	} else {
		// No mail delivery in this system; the token is logged for manual use
		logrus.Infof("Password reset token issued for %s: %s", req.Email, token)
	}

	c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
}

// ConfirmPasswordReset redeems a token exactly once and sets the new password
func ConfirmPasswordReset(c *gin.Context) {
	var req PasswordResetConfirmBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var prt models.PasswordResetToken
		if err := tx.Where("token = ?", req.Token).First(&prt).Error; err != nil {
			return errInvalidResetToken
		}
		if prt.UsedAt != nil || time.Now().After(prt.ExpiresAt) {
			return errInvalidResetToken
		}

		// Claim the token; zero rows means another request redeemed it first
		res := tx.Model(&models.PasswordResetToken{}).
			Where("id = ? AND used_at IS NULL", prt.ID).
			Update("used_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errInvalidResetToken
		}

		var user models.User
		if err := tx.Where("email = ?", prt.Email).First(&user).Error; err != nil {
			return errInvalidResetToken
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return tx.Model(&user).Update("password_hash", string(hash)).Error
	})

	if errors.Is(err, errInvalidResetToken) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid or expired token"})
		return
	}
	if err != nil {
		logrus.Errorf("Failed to confirm password reset with error: %+v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}
