package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ichi1107/bento-order-system/authz"
	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ForbiddenMessage is the single response body for every policy denial, so
// callers cannot probe which rule rejected them.
const ForbiddenMessage = "You do not have permission to perform this action"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    uint            `json:"user_id"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	StoreID   *uint           `json:"store_id,omitempty"`
	TokenType string          `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a short-lived signed JWT for a given user
func GenerateAccessToken(user *models.User) (string, error) {
	return generateToken(user, TokenTypeAccess, config.App.AccessTTL)
}

// GenerateRefreshToken creates the long-lived companion token
func GenerateRefreshToken(user *models.User) (string, error) {
	return generateToken(user, TokenTypeRefresh, config.App.RefreshTTL)
}

func generateToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		StoreID:   user.StoreID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// ParseToken validates a signed JWT and returns its claims
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return config.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// BearerToken extracts the raw token from the Authorization header
func BearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(h, "Bearer "), true
}

// AuthRequired validates the access JWT and resolves the caller from the
// database, so role and store changes take effect without re-login.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := BearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		claims, err := ParseToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if claims.TokenType != TokenTypeAccess {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			c.Abort()
			return
		}

		var user models.User
		if err := config.DB.Preload("Roles").First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Inactive user"})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Set("role", string(user.Role))
		c.Set("currentUser", &user)
		c.Next()
	}
}

// RoleRequired enforces that the caller holds one of the allowed primary roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole := CurrentUser(c).Role
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": ForbiddenMessage})
		c.Abort()
	}
}

// RequirePermission gates a store-scoped route on the permission matrix.
// The target store is the caller's own store; handlers re-scope every lookup
// by that id, so cross-store resources surface as not found.
func RequirePermission(perm authz.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user.Role != models.RoleStore {
			c.JSON(http.StatusForbidden, gin.H{"error": ForbiddenMessage})
			c.Abort()
			return
		}
		if user.StoreID == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			c.Abort()
			return
		}
		if !authz.Can(user.Role, user.StoreID, *user.StoreID, user.RoleNames(), perm) {
			c.JSON(http.StatusForbidden, gin.H{"error": ForbiddenMessage})
			c.Abort()
			return
		}
		c.Set("storeID", *user.StoreID)
		c.Next()
	}
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	return val.(uint)
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) models.UserRole {
	val, _ := c.Get("role")
	return models.UserRole(val.(string))
}

// CurrentUser returns the database-resolved caller set by AuthRequired
func CurrentUser(c *gin.Context) *models.User {
	val, _ := c.Get("currentUser")
	return val.(*models.User)
}

// GetStoreID returns the caller's store id set by RequirePermission
func GetStoreID(c *gin.Context) uint {
	val, _ := c.Get("storeID")
	return val.(uint)
}
